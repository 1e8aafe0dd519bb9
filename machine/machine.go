// Package machine provides a minimal per-entity typed state holder.
//
// A Machine stores exactly one value of a caller-defined discrete-state
// type and overwrites it on demand. It deliberately keeps no transition
// table, history, or enter/exit hooks; which transitions are legal is the
// caller's policy, enforced by the systems driving it.
package machine

// Machine holds one discrete state value. It always holds the initial or a
// previously set state, never "no state". Attach one per entity with its
// own component handle, e.g.:
//
//	var EnemyMachine = component.NewComponent[machine.Machine[EnemyState]]()
type Machine[S any] struct {
	current S
}

// New creates a machine holding the initial state.
func New[S any](initial S) Machine[S] {
	return Machine[S]{current: initial}
}

// Current returns a copy of the current state. It cannot fail.
func (m *Machine[S]) Current() S {
	return m.current
}

// TransitionTo unconditionally overwrites the current state.
func (m *Machine[S]) TransitionTo(next S) {
	m.current = next
}
