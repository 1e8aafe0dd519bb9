package behavior

import (
	"github.com/milk9111/aitoolkit/ecs"
	"github.com/milk9111/aitoolkit/ecs/component"
)

// Tree is the per-entity component owning one root node. Constructed once
// at attach time and destroyed with the entity.
type Tree struct {
	Root Node
}

// Tick evaluates the tree once. A tree with no root reports Failure, the
// normal "nothing to do" outcome.
func (t *Tree) Tick(e ecs.Entity, w *ecs.World) Status {
	if t.Root == nil {
		return Failure
	}
	return t.Root.Tick(e, w)
}

var TreeComponent = component.NewComponent[Tree]()

// System ticks every entity's behavior tree once per world update.
// Results are fire-and-forget; the host re-invokes next tick regardless
// of outcome.
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (s *System) Update(w *ecs.World) {
	ecs.ForEach(w, TreeComponent, func(e ecs.Entity, t *Tree) {
		t.Tick(e, w)
	})
}
