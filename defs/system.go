package defs

import (
	"go.uber.org/zap"

	"github.com/milk9111/aitoolkit/ecs"
	"github.com/milk9111/aitoolkit/ecs/component"
)

// TreeRef attaches a library behavior tree to an entity by name. Entities
// pick up reloaded definitions on their next tick.
type TreeRef struct {
	Name string
}

// UtilityRef attaches a library consideration set to an entity by name.
type UtilityRef struct {
	Name string
}

var (
	TreeRefComponent    = component.NewComponent[TreeRef]()
	UtilityRefComponent = component.NewComponent[UtilityRef]()
)

// System ticks named library definitions for every entity referencing
// them. Unknown names are logged once and otherwise ignored; a rename in
// a definition file must not wedge the tick loop.
type System struct {
	lib    *Library
	log    *zap.Logger
	warned map[string]bool
}

func NewSystem(lib *Library, logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{
		lib:    lib,
		log:    logger,
		warned: map[string]bool{},
	}
}

func (s *System) Update(w *ecs.World) {
	ecs.ForEach(w, TreeRefComponent, func(e ecs.Entity, ref *TreeRef) {
		node, ok := s.lib.Tree(ref.Name)
		if !ok {
			s.warnOnce("tree", ref.Name)
			return
		}
		node.Tick(e, w)
	})
	ecs.ForEach(w, UtilityRefComponent, func(e ecs.Entity, ref *UtilityRef) {
		ai, ok := s.lib.Utility(ref.Name)
		if !ok {
			s.warnOnce("utility", ref.Name)
			return
		}
		if action, ok := ai.SelectBest(e, w); ok {
			action.Execute(e, w)
		}
	})
}

func (s *System) warnOnce(kind, name string) {
	key := kind + ":" + name
	if s.warned[key] {
		return
	}
	s.warned[key] = true
	s.log.Warn("unknown definition reference",
		zap.String("kind", kind),
		zap.String("name", name))
}
