// Package behavior implements tri-state behavior trees ticked once per
// simulation tick by the host.
package behavior

import "github.com/milk9111/aitoolkit/ecs"

// Status is the outcome of ticking a node. Failure is a normal outcome,
// not an error; there is no failing tick.
type Status int

const (
	Success Status = iota
	Failure
	Running
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Node is one node of a behavior tree. Trees must be acyclic; parents own
// their children exclusively. Tick receives the acting entity and the
// world explicitly and must be called at most once per entity per tick —
// throttling is the host's job.
type Node interface {
	Tick(e ecs.Entity, w *ecs.World) Status
}

// Func adapts a function to a leaf Node. Stateful leaves keep their state
// in the closure; it is opaque to the tree.
type Func func(e ecs.Entity, w *ecs.World) Status

func (f Func) Tick(e ecs.Entity, w *ecs.World) Status {
	return f(e, w)
}

// AlwaysSucceed is a leaf that returns Success.
func AlwaysSucceed() Node {
	return Func(func(ecs.Entity, *ecs.World) Status { return Success })
}

// AlwaysFail is a leaf that returns Failure.
func AlwaysFail() Node {
	return Func(func(ecs.Entity, *ecs.World) Status { return Failure })
}

// Selector ticks children in declared order and returns the first non-
// Failure result. All children failing fails the selector: "try
// alternatives until one works".
type Selector struct {
	Children []Node
}

func (s *Selector) Tick(e ecs.Entity, w *ecs.World) Status {
	for _, c := range s.Children {
		if st := c.Tick(e, w); st != Failure {
			return st
		}
	}
	return Failure
}

// Sequence ticks children in declared order and returns the first non-
// Success result. All children succeeding succeeds the sequence: "do all
// steps, abort on first non-success".
type Sequence struct {
	Children []Node
}

func (s *Sequence) Tick(e ecs.Entity, w *ecs.World) Status {
	for _, c := range s.Children {
		if st := c.Tick(e, w); st != Success {
			return st
		}
	}
	return Success
}
