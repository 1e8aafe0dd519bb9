package defs

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/aitoolkit/behavior"
	"github.com/milk9111/aitoolkit/ecs"
	"github.com/milk9111/aitoolkit/ecs/component"
	"github.com/milk9111/aitoolkit/targeting"
	"github.com/milk9111/aitoolkit/utility"
)

type LeafMaker func(arg any) (behavior.Node, error)

type ScorerMaker func(arg any) (utility.Scorer, error)

type ActionMaker func(arg any) (utility.Action, error)

// ScriptLoader turns a script path into a leaf node or scorer. Wired by
// the Library when scripted behaviors are enabled.
type ScriptLoader interface {
	Leaf(path string) (behavior.Node, error)
	Scorer(path string) (utility.Scorer, error)
}

// Registry maps definition names to implementation makers. The zero
// value is unusable; NewRegistry installs the builtin set.
type Registry struct {
	leaves  map[string]LeafMaker
	scorers map[string]ScorerMaker
	actions map[string]ActionMaker
	scripts ScriptLoader
	log     *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		leaves:  map[string]LeafMaker{},
		scorers: map[string]ScorerMaker{},
		actions: map[string]ActionMaker{},
		log:     logger,
	}
	r.registerBuiltins()
	return r
}

func (r *Registry) RegisterLeaf(name string, m LeafMaker) {
	r.leaves[name] = m
}

func (r *Registry) RegisterScorer(name string, m ScorerMaker) {
	r.scorers[name] = m
}

func (r *Registry) RegisterAction(name string, m ActionMaker) {
	r.actions[name] = m
}

// SetScriptLoader enables `script:` nodes and scorer references.
func (r *Registry) SetScriptLoader(l ScriptLoader) {
	r.scripts = l
}

func (r *Registry) registerBuiltins() {
	r.RegisterLeaf("always_succeed", func(any) (behavior.Node, error) {
		return behavior.AlwaysSucceed(), nil
	})
	r.RegisterLeaf("always_fail", func(any) (behavior.Node, error) {
		return behavior.AlwaysFail(), nil
	})
	r.RegisterLeaf("has_target", func(any) (behavior.Node, error) {
		return behavior.Func(func(e ecs.Entity, w *ecs.World) behavior.Status {
			if resolveTarget(e, w).Valid() {
				return behavior.Success
			}
			return behavior.Failure
		}), nil
	})
	r.RegisterLeaf("no_target", func(any) (behavior.Node, error) {
		return behavior.Func(func(e ecs.Entity, w *ecs.World) behavior.Status {
			if resolveTarget(e, w).Valid() {
				return behavior.Failure
			}
			return behavior.Success
		}), nil
	})
	r.RegisterLeaf("target_within", func(arg any) (behavior.Node, error) {
		within := asFloat(arg)
		if within <= 0 {
			return nil, fmt.Errorf("defs: target_within needs a positive distance, got %v", arg)
		}
		return behavior.Func(func(e ecs.Entity, w *ecs.World) behavior.Status {
			if d, ok := targetDistance(e, w); ok && d < within {
				return behavior.Success
			}
			return behavior.Failure
		}), nil
	})
	r.RegisterLeaf("wait", func(arg any) (behavior.Node, error) {
		ticks := int(asFloat(arg))
		if ticks <= 0 {
			return nil, fmt.Errorf("defs: wait needs a positive tick count, got %v", arg)
		}
		remaining := map[ecs.Entity]int{}
		return behavior.Func(func(e ecs.Entity, w *ecs.World) behavior.Status {
			left, started := remaining[e]
			if !started {
				left = ticks
			}
			left--
			if left <= 0 {
				delete(remaining, e)
				return behavior.Success
			}
			remaining[e] = left
			return behavior.Running
		}), nil
	})

	r.RegisterScorer("constant", func(arg any) (utility.Scorer, error) {
		v := asFloat(arg)
		return utility.ScorerFunc(func(ecs.Entity, *ecs.World) float64 { return v }), nil
	})
	r.RegisterScorer("target_proximity", func(arg any) (utility.Scorer, error) {
		rng := asFloat(arg)
		if rng <= 0 {
			return nil, fmt.Errorf("defs: target_proximity needs a positive range, got %v", arg)
		}
		return utility.ScorerFunc(func(e ecs.Entity, w *ecs.World) float64 {
			d, ok := targetDistance(e, w)
			if !ok || d >= rng {
				return 0
			}
			return 1 - d/rng
		}), nil
	})

	r.RegisterAction("clear_target", func(any) (utility.Action, error) {
		return utility.ActionFunc(func(e ecs.Entity, w *ecs.World) {
			if t, ok := ecs.Get(w, e, targeting.TargetComponent); ok {
				t.Entity = ecs.Entity{}
			}
		}), nil
	})
	log := r.log
	r.RegisterAction("log", func(arg any) (utility.Action, error) {
		msg := fmt.Sprint(arg)
		return utility.ActionFunc(func(e ecs.Entity, w *ecs.World) {
			log.Info(msg, zap.Stringer("entity", e))
		}), nil
	})
}

func resolveTarget(e ecs.Entity, w *ecs.World) ecs.Entity {
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

func targetDistance(e ecs.Entity, w *ecs.World) (float64, bool) {
	tgt := resolveTarget(e, w)
	if !tgt.Valid() {
		return 0, false
	}
	self, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return 0, false
	}
	other, ok := ecs.Get(w, tgt, component.TransformComponent)
	if !ok {
		return 0, false
	}
	return self.DistanceTo(*other), true
}
