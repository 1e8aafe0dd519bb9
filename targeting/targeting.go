// Package targeting resolves each seeing entity's nearest in-range target
// once per tick.
package targeting

import (
	"math"

	"github.com/milk9111/aitoolkit/ecs"
	"github.com/milk9111/aitoolkit/ecs/component"
)

// Vision holds per-entity perception parameters. FieldOfView is a cone
// angle in radians; by default the scan ignores it and is omni-directional
// (see System.Heading).
type Vision struct {
	Range       float64
	FieldOfView float64
}

// Target references another entity, recomputed every resolution pass. The
// reference is never ownership; the referenced entity may already be
// destroyed, which Resolve reports as no target.
type Target struct {
	Entity ecs.Entity
}

// Resolve returns the targeted entity, tolerating stale references.
func (t Target) Resolve(w *ecs.World) (ecs.Entity, bool) {
	if !t.Entity.Valid() || !w.IsAlive(t.Entity) {
		return ecs.Entity{}, false
	}
	return t.Entity, true
}

// Targetable marks an entity as eligible for selection as a target.
type Targetable struct{}

var (
	VisionComponent     = component.NewComponent[Vision]()
	TargetComponent     = component.NewComponent[Target]()
	TargetableComponent = component.NewComponent[Targetable]()
)

// System overwrites every Vision-holder's Target with its nearest
// Targetable candidate strictly inside vision range, or clears it when
// none qualifies. An entity never targets itself.
type System struct {
	// Heading, when set, gates candidates by the Vision field-of-view
	// cone around the returned heading angle (radians). When nil the
	// scan is omni-directional and FieldOfView is ignored.
	Heading func(e ecs.Entity, w *ecs.World) float64
}

func NewSystem() *System {
	return &System{}
}

func (s *System) Update(w *ecs.World) {
	ecs.ForEach3(w, VisionComponent, component.TransformComponent, TargetComponent,
		func(e ecs.Entity, vision *Vision, tr *component.Transform, target *Target) {
			var closest ecs.Entity
			closestDist := vision.Range

			ecs.ForEach2(w, TargetableComponent, component.TransformComponent,
				func(cand ecs.Entity, _ *Targetable, ctr *component.Transform) {
					if cand == e {
						return
					}
					if s.Heading != nil && !s.inCone(e, w, vision, tr, ctr) {
						return
					}
					if d := tr.DistanceTo(*ctr); d < closestDist {
						closestDist = d
						closest = cand
					}
				})

			target.Entity = closest
		})
}

func (s *System) inCone(e ecs.Entity, w *ecs.World, vision *Vision, tr, ctr *component.Transform) bool {
	if vision.FieldOfView <= 0 || vision.FieldOfView >= 2*math.Pi {
		return true
	}
	heading := s.Heading(e, w)
	angle := math.Atan2(ctr.Y-tr.Y, ctr.X-tr.X)
	diff := math.Abs(math.Remainder(angle-heading, 2*math.Pi))
	return diff <= vision.FieldOfView/2
}
