package ecs

import "github.com/milk9111/aitoolkit/ecs/component"

// System updates a world once per simulation tick.
type System interface {
	Update(w *World)
}

// World owns entities, component stores, and system order. A World is not
// safe for concurrent use; the host drives Update from a single goroutine
// per tick.
type World struct {
	entities entityStore
	systems  []System
	stores   map[component.ComponentID]anyStore
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]anyStore),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components. It reports
// whether the handle referred to a live entity.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.ID)
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns all live entities.
func (w *World) Entities() []Entity {
	return w.entities.all()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once, in registration order.
func (w *World) Update() {
	for _, s := range w.systems {
		s.Update(w)
	}
}
