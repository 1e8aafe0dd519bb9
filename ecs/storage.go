package ecs

// entityStore tracks entity generations and free ids.
type entityStore struct {
	nextID int
	gen    []int
	alive  []bool
	free   []int
}

func (s *entityStore) create() Entity {
	var id int
	if len(s.free) > 0 {
		id = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		s.nextID++
		id = s.nextID
		s.gen = append(s.gen, 0)
		s.alive = append(s.alive, false)
	}
	s.alive[id-1] = true
	return Entity{ID: id, Gen: s.gen[id-1]}
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.ID - 1
	s.gen[idx]++
	s.alive[idx] = false
	s.free = append(s.free, e.ID)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if e.ID <= 0 || e.ID > len(s.gen) {
		return false
	}
	return s.alive[e.ID-1] && s.gen[e.ID-1] == e.Gen
}

// isAliveID reports liveness by raw id, ignoring generation.
func (s *entityStore) isAliveID(id int) bool {
	return id > 0 && id <= len(s.alive) && s.alive[id-1]
}

// handle returns the current Entity handle for a live raw id.
func (s *entityStore) handle(id int) Entity {
	if !s.isAliveID(id) {
		return Entity{}
	}
	return Entity{ID: id, Gen: s.gen[id-1]}
}

func (s *entityStore) all() []Entity {
	out := make([]Entity, 0, len(s.alive))
	for i, ok := range s.alive {
		if ok {
			out = append(out, Entity{ID: i + 1, Gen: s.gen[i]})
		}
	}
	return out
}
