// Package utility implements score-based action selection: each entity
// carries an ordered list of considerations, and the highest-scoring one
// wins. Ties keep the first-declared consideration.
package utility

import (
	"math"

	"github.com/milk9111/aitoolkit/ecs"
	"github.com/milk9111/aitoolkit/ecs/component"
)

// Scorer rates how desirable an action is for an entity right now.
// Scorers are total functions over (entity, world); they do not fail.
type Scorer interface {
	Score(e ecs.Entity, w *ecs.World) float64
}

// ScorerFunc adapts a function to a Scorer.
type ScorerFunc func(e ecs.Entity, w *ecs.World) float64

func (f ScorerFunc) Score(e ecs.Entity, w *ecs.World) float64 {
	return f(e, w)
}

// Action is the behavior executed when its consideration wins.
type Action interface {
	Execute(e ecs.Entity, w *ecs.World)
}

// ActionFunc adapts a function to an Action.
type ActionFunc func(e ecs.Entity, w *ecs.World)

func (f ActionFunc) Execute(e ecs.Entity, w *ecs.World) {
	f(e, w)
}

// Consideration pairs one scorer with one action. Immutable after attach.
type Consideration struct {
	Scorer Scorer
	Action Action
}

// AI is the per-entity component holding an ordered consideration list.
// Order matters only for tie-breaking.
type AI struct {
	Considerations []Consideration
}

// SelectBest scores every consideration in declared order and returns the
// action of the strictly highest score. An earlier consideration keeps a
// tie: a later equal score never displaces it. The second return is false
// only for an empty consideration list; otherwise an action is always
// returned, even when every score is at the sentinel floor.
func (ai *AI) SelectBest(e ecs.Entity, w *ecs.World) (Action, bool) {
	if len(ai.Considerations) == 0 {
		return nil, false
	}
	best := math.Inf(-1)
	bestIdx := -1
	for i := range ai.Considerations {
		score := ai.Considerations[i].Scorer.Score(e, w)
		if score > best {
			best = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		bestIdx = 0
	}
	return ai.Considerations[bestIdx].Action, true
}

var AIComponent = component.NewComponent[AI]()

// System selects and executes the best action for every entity with an AI
// component, once per world update.
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (s *System) Update(w *ecs.World) {
	ecs.ForEach(w, AIComponent, func(e ecs.Entity, ai *AI) {
		if action, ok := ai.SelectBest(e, w); ok {
			action.Execute(e, w)
		}
	})
}
