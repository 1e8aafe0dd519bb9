package ecs

import "github.com/milk9111/aitoolkit/ecs/component"

// Query returns the live entities that have every given component kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if len(kinds) == 0 {
		return nil
	}
	// iterate the smallest store
	var base anyStore
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		if base == nil || len(s.ids()) < len(base.ids()) {
			base = s
		}
	}
	out := make([]Entity, 0, len(base.ids()))
scan:
	for _, id := range base.ids() {
		if !w.entities.isAliveID(id) {
			continue
		}
		for _, k := range kinds {
			if s := w.stores[k.ID()]; s != base && !s.has(id) {
				continue scan
			}
		}
		out = append(out, w.entities.handle(id))
	}
	return out
}
