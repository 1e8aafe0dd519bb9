package ecs

// anyStore is the untyped view of a component store, enough for entity
// teardown and variadic queries.
type anyStore interface {
	has(id int) bool
	remove(id int) bool
	ids() []int
}

// store is cache-friendly sparse-set storage for one component type,
// keyed by raw entity id.
type store[T any] struct {
	denseIDs    []int
	denseValues []T
	sparse      []int
}

func (s *store[T]) has(id int) bool {
	if s == nil || id <= 0 || id-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseIDs) && s.denseIDs[idx] == id
}

// get returns a pointer into dense storage. The pointer is invalidated by
// the next set or remove of the same component kind.
func (s *store[T]) get(id int) *T {
	if !s.has(id) {
		return nil
	}
	return &s.denseValues[s.sparse[id-1]]
}

func (s *store[T]) set(id int, v T) {
	if id <= 0 {
		return
	}
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.has(id) {
		s.denseValues[s.sparse[id-1]] = v
		return
	}
	s.denseIDs = append(s.denseIDs, id)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseIDs) - 1
}

func (s *store[T]) remove(id int) bool {
	if !s.has(id) {
		return false
	}
	idx := s.sparse[id-1]
	last := len(s.denseIDs) - 1
	lastID := s.denseIDs[last]

	s.denseIDs[idx] = s.denseIDs[last]
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastID-1] = idx

	s.denseIDs = s.denseIDs[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[id-1] = -1
	return true
}

func (s *store[T]) ids() []int {
	if s == nil {
		return nil
	}
	return s.denseIDs
}
