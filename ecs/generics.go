package ecs

import "github.com/milk9111/aitoolkit/ecs/component"

func storeFor[T any](w *World, k component.ComponentKind[T], create bool) *store[T] {
	if s, ok := w.stores[k.ID()]; ok {
		return s.(*store[T])
	}
	if !create {
		return nil
	}
	s := &store[T]{}
	w.stores[k.ID()] = s
	return s
}

// Add attaches (or overwrites) a component on a live entity.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	if !handle.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, handle.Kind(), true).set(e.ID, value)
	return nil
}

// Remove detaches a component, reporting whether it was present.
func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	s := storeFor(w, handle.Kind(), false)
	if s == nil || !w.IsAlive(e) {
		return false
	}
	return s.remove(e.ID)
}

// Has reports whether a live entity carries the component.
func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	s := storeFor(w, handle.Kind(), false)
	return s != nil && w.IsAlive(e) && s.has(e.ID)
}

// Get returns a pointer to the entity's component. The pointer is
// invalidated by the next Add or Remove of the same component kind.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	s := storeFor(w, handle.Kind(), false)
	if s == nil || !w.IsAlive(e) {
		return nil, false
	}
	v := s.get(e.ID)
	if v == nil {
		return nil, false
	}
	return v, true
}

// First returns any one live entity carrying the component.
func First[T any](w *World, handle component.ComponentHandle[T]) (Entity, bool) {
	s := storeFor(w, handle.Kind(), false)
	if s == nil {
		return Entity{}, false
	}
	for _, id := range s.ids() {
		if w.entities.isAliveID(id) {
			return w.entities.handle(id), true
		}
	}
	return Entity{}, false
}

// ForEach visits every live entity carrying the component. The callback
// must not add or remove components of the same kind.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(e Entity, v *T)) {
	s := storeFor(w, handle.Kind(), false)
	if s == nil {
		return
	}
	for i, id := range s.denseIDs {
		if !w.entities.isAliveID(id) {
			continue
		}
		fn(w.entities.handle(id), &s.denseValues[i])
	}
}

// ForEach2 visits every live entity carrying both components.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(e Entity, a *A, b *B)) {
	sa := storeFor(w, ha.Kind(), false)
	sb := storeFor(w, hb.Kind(), false)
	if sa == nil || sb == nil {
		return
	}
	for i, id := range sa.denseIDs {
		if !w.entities.isAliveID(id) || !sb.has(id) {
			continue
		}
		fn(w.entities.handle(id), &sa.denseValues[i], sb.get(id))
	}
}

// ForEach3 visits every live entity carrying all three components.
func ForEach3[A, B, C any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], hc component.ComponentHandle[C], fn func(e Entity, a *A, b *B, c *C)) {
	sa := storeFor(w, ha.Kind(), false)
	sb := storeFor(w, hb.Kind(), false)
	sc := storeFor(w, hc.Kind(), false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for i, id := range sa.denseIDs {
		if !w.entities.isAliveID(id) || !sb.has(id) || !sc.has(id) {
			continue
		}
		fn(w.entities.handle(id), &sa.denseValues[i], sb.get(id), sc.get(id))
	}
}
