package defs

import (
	"fmt"
	"strings"

	"github.com/milk9111/aitoolkit/behavior"
	"github.com/milk9111/aitoolkit/utility"
)

// CompileTree turns a raw node into an executable behavior tree node.
// Unknown names fail here, at load time, never during a tick.
func (r *Registry) CompileTree(raw RawNode) (behavior.Node, error) {
	set := 0
	if len(raw.Selector) > 0 {
		set++
	}
	if len(raw.Sequence) > 0 {
		set++
	}
	if raw.Leaf != nil {
		set++
	}
	if raw.Script != "" {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("defs: node must have exactly one of selector, sequence, leaf, script")
	}

	switch {
	case len(raw.Selector) > 0:
		children, err := r.compileChildren(raw.Selector)
		if err != nil {
			return nil, err
		}
		return &behavior.Selector{Children: children}, nil
	case len(raw.Sequence) > 0:
		children, err := r.compileChildren(raw.Sequence)
		if err != nil {
			return nil, err
		}
		return &behavior.Sequence{Children: children}, nil
	case raw.Script != "":
		if r.scripts == nil {
			return nil, fmt.Errorf("defs: script node %q but no script loader configured", raw.Script)
		}
		return r.scripts.Leaf(raw.Script)
	default:
		maker, ok := r.leaves[raw.Leaf.Name]
		if !ok {
			return nil, fmt.Errorf("defs: unknown leaf %q", raw.Leaf.Name)
		}
		node, err := maker(raw.Leaf.Arg)
		if err != nil {
			return nil, fmt.Errorf("defs: leaf %q: %w", raw.Leaf.Name, err)
		}
		return node, nil
	}
}

func (r *Registry) compileChildren(raws []RawNode) ([]behavior.Node, error) {
	out := make([]behavior.Node, 0, len(raws))
	for i, c := range raws {
		n, err := r.CompileTree(c)
		if err != nil {
			return nil, fmt.Errorf("defs: child %d: %w", i, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// CompileConsiderations builds an ordered utility consideration list.
// Declaration order is preserved; it decides ties at selection time.
func (r *Registry) CompileConsiderations(raws []RawConsideration) (utility.AI, error) {
	ai := utility.AI{Considerations: make([]utility.Consideration, 0, len(raws))}
	for i, raw := range raws {
		scorer, err := r.compileScorer(raw.Scorer)
		if err != nil {
			return utility.AI{}, fmt.Errorf("defs: consideration %d: %w", i, err)
		}
		maker, ok := r.actions[raw.Action.Name]
		if !ok {
			return utility.AI{}, fmt.Errorf("defs: consideration %d: unknown action %q", i, raw.Action.Name)
		}
		action, err := maker(raw.Action.Arg)
		if err != nil {
			return utility.AI{}, fmt.Errorf("defs: consideration %d: action %q: %w", i, raw.Action.Name, err)
		}
		ai.Considerations = append(ai.Considerations, utility.Consideration{Scorer: scorer, Action: action})
	}
	return ai, nil
}

func (r *Registry) compileScorer(ref RawRef) (utility.Scorer, error) {
	if maker, ok := r.scorers[ref.Name]; ok {
		s, err := maker(ref.Arg)
		if err != nil {
			return nil, fmt.Errorf("scorer %q: %w", ref.Name, err)
		}
		return s, nil
	}
	// scorer names ending in .tengo resolve as script paths
	if strings.HasSuffix(ref.Name, ".tengo") {
		if r.scripts == nil {
			return nil, fmt.Errorf("script scorer %q but no script loader configured", ref.Name)
		}
		return r.scripts.Scorer(ref.Name)
	}
	return nil, fmt.Errorf("unknown scorer %q", ref.Name)
}
