package ecs

import "strconv"

// Entity is a generational handle. The zero value is never a live entity.
type Entity struct {
	ID  int
	Gen int
}

func (e Entity) Valid() bool {
	return e.ID > 0
}

func (e Entity) String() string {
	return strconv.Itoa(e.ID) + "v" + strconv.Itoa(e.Gen)
}
