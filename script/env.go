package script

import (
	"github.com/d5/tengo/v2"

	"github.com/milk9111/aitoolkit/ecs"
	"github.com/milk9111/aitoolkit/ecs/component"
	"github.com/milk9111/aitoolkit/targeting"
)

// buildEnv exposes narrow world accessors to a script: read position and
// target state, write position, clear the target. Scripts never see the
// whole store.
func buildEnv(e ecs.Entity, w *ecs.World) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["entity"] = &tengo.UserFunction{Name: "entity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(e.ID)}, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return floatPair(tr.X, tr.Y), nil
	}}

	values["set_position"] = &tengo.UserFunction{Name: "set_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok || !okX || !okY {
			return tengo.FalseValue, nil
		}
		tr.X = x
		tr.Y = y
		return tengo.TrueValue, nil
	}}

	values["has_target"] = &tengo.UserFunction{Name: "has_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if target(e, w).Valid() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["target_position"] = &tengo.UserFunction{Name: "target_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		tgt := target(e, w)
		if !tgt.Valid() {
			return tengo.UndefinedValue, nil
		}
		tr, ok := ecs.Get(w, tgt, component.TransformComponent)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return floatPair(tr.X, tr.Y), nil
	}}

	values["target_distance"] = &tengo.UserFunction{Name: "target_distance", Value: func(args ...tengo.Object) (tengo.Object, error) {
		tgt := target(e, w)
		if !tgt.Valid() {
			return &tengo.Float{Value: -1}, nil
		}
		self, okSelf := ecs.Get(w, e, component.TransformComponent)
		other, okOther := ecs.Get(w, tgt, component.TransformComponent)
		if !okSelf || !okOther {
			return &tengo.Float{Value: -1}, nil
		}
		return &tengo.Float{Value: self.DistanceTo(*other)}, nil
	}}

	values["clear_target"] = &tengo.UserFunction{Name: "clear_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t, ok := ecs.Get(w, e, targeting.TargetComponent)
		if !ok {
			return tengo.FalseValue, nil
		}
		t.Entity = ecs.Entity{}
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func target(e ecs.Entity, w *ecs.World) ecs.Entity {
	t, ok := ecs.Get(w, e, targeting.TargetComponent)
	if !ok {
		return ecs.Entity{}
	}
	tgt, ok := t.Resolve(w)
	if !ok {
		return ecs.Entity{}
	}
	return tgt
}

func floatPair(x, y float64) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: x},
		&tengo.Float{Value: y},
	}}
}
