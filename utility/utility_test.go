package utility

import (
	"math"
	"testing"

	"github.com/milk9111/aitoolkit/ecs"
)

func constScorer(v float64) Scorer {
	return ScorerFunc(func(ecs.Entity, *ecs.World) float64 { return v })
}

func namedAction(name string, hits map[string]int) Action {
	return ActionFunc(func(ecs.Entity, *ecs.World) { hits[name]++ })
}

func considerations(hits map[string]int, scores ...float64) []Consideration {
	out := make([]Consideration, len(scores))
	for i, s := range scores {
		name := string(rune('a' + i))
		out[i] = Consideration{Scorer: constScorer(s), Action: namedAction(name, hits)}
	}
	return out
}

func TestSelectBest(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		want   string // action name by declaration index
	}{
		{"single", []float64{1.0}, "a"},
		{"highest_wins", []float64{1.0, 4.0, 2.0}, "b"},
		{"tie_keeps_first_declared", []float64{3.0, 5.0, 5.0, 2.0}, "b"},
		{"all_equal_keeps_first", []float64{2.0, 2.0, 2.0}, "a"},
		{"negative_scores", []float64{-3.0, -1.0, -2.0}, "b"},
		{"all_negative_infinity", []float64{math.Inf(-1), math.Inf(-1)}, "a"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := w.CreateEntity()
			hits := map[string]int{}
			ai := AI{Considerations: considerations(hits, c.scores...)}

			action, ok := ai.SelectBest(e, w)
			if !ok {
				t.Fatal("expected an action for a non-empty consideration list")
			}
			action.Execute(e, w)
			if hits[c.want] != 1 {
				t.Fatalf("expected action %q selected, hits=%v", c.want, hits)
			}
		})
	}
}

func TestSelectBestEmpty(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()

	ai := AI{}
	action, ok := ai.SelectBest(e, w)
	if ok || action != nil {
		t.Fatalf("empty considerations must select nothing, got %v ok=%v", action, ok)
	}
}

func TestSelectBestScoresEveryConsideration(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()

	calls := 0
	counting := ScorerFunc(func(ecs.Entity, *ecs.World) float64 {
		calls++
		return float64(calls)
	})
	ai := AI{Considerations: []Consideration{
		{Scorer: counting, Action: ActionFunc(func(ecs.Entity, *ecs.World) {})},
		{Scorer: counting, Action: ActionFunc(func(ecs.Entity, *ecs.World) {})},
		{Scorer: counting, Action: ActionFunc(func(ecs.Entity, *ecs.World) {})},
	}}

	if _, ok := ai.SelectBest(e, w); !ok {
		t.Fatal("expected an action")
	}
	if calls != 3 {
		t.Fatalf("expected all 3 scorers evaluated, got %d", calls)
	}
}

func TestSystemExecutesBestAction(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewSystem())

	hits := map[string]int{}
	e := w.CreateEntity()
	err := ecs.Add(w, e, AIComponent, AI{Considerations: []Consideration{
		{Scorer: constScorer(0.2), Action: namedAction("low", hits)},
		{Scorer: constScorer(0.9), Action: namedAction("high", hits)},
	}})
	if err != nil {
		t.Fatal(err)
	}

	// an entity without considerations must not wedge the pass
	e2 := w.CreateEntity()
	if err := ecs.Add(w, e2, AIComponent, AI{}); err != nil {
		t.Fatal(err)
	}

	w.Update()

	if hits["high"] != 1 || hits["low"] != 0 {
		t.Fatalf("expected only the high-scoring action executed, hits=%v", hits)
	}
}
