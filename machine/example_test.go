package machine_test

import (
	"fmt"

	"github.com/milk9111/aitoolkit/ecs"
	"github.com/milk9111/aitoolkit/ecs/component"
	"github.com/milk9111/aitoolkit/machine"
	"github.com/milk9111/aitoolkit/targeting"
)

type enemyState string

const (
	idle      enemyState = "idle"
	chasing   enemyState = "chasing"
	attacking enemyState = "attacking"
)

var enemyMachine = component.NewComponent[machine.Machine[enemyState]]()

// enemyStateSystem picks the enemy state from target distance. Which
// transitions are legal is this system's policy, not the machine's.
type enemyStateSystem struct{}

func (enemyStateSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, enemyMachine, targeting.TargetComponent,
		func(e ecs.Entity, m *machine.Machine[enemyState], t *targeting.Target) {
			tgt, ok := t.Resolve(w)
			if !ok {
				m.TransitionTo(idle)
				return
			}
			self, okSelf := ecs.Get(w, e, component.TransformComponent)
			other, okOther := ecs.Get(w, tgt, component.TransformComponent)
			if !okSelf || !okOther {
				m.TransitionTo(idle)
				return
			}
			if self.DistanceTo(*other) < 2.0 {
				m.TransitionTo(attacking)
			} else {
				m.TransitionTo(chasing)
			}
		})
}

func Example() {
	w := ecs.NewWorld()
	w.AddSystem(targeting.NewSystem())
	w.AddSystem(enemyStateSystem{})

	player := w.CreateEntity()
	_ = ecs.Add(w, player, component.TransformComponent, component.Transform{X: 0, Y: 0})
	_ = ecs.Add(w, player, targeting.TargetableComponent, targeting.Targetable{})

	enemy := w.CreateEntity()
	_ = ecs.Add(w, enemy, component.TransformComponent, component.Transform{X: 5, Y: 0})
	_ = ecs.Add(w, enemy, targeting.VisionComponent, targeting.Vision{Range: 10})
	_ = ecs.Add(w, enemy, targeting.TargetComponent, targeting.Target{})
	_ = ecs.Add(w, enemy, enemyMachine, machine.New(idle))

	report := func() {
		m, _ := ecs.Get(w, enemy, enemyMachine)
		fmt.Println(m.Current())
	}

	w.Update()
	report()

	tr, _ := ecs.Get(w, enemy, component.TransformComponent)
	tr.X = 1 // close the distance
	w.Update()
	report()

	w.DestroyEntity(player)
	w.Update()
	report()

	// Output:
	// chasing
	// attacking
	// idle
}
