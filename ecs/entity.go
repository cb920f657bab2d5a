package ecs

import (
	"github.com/kamstrup/intmap"
)

// EntityID is an opaque identifier for one simulated entity. IDs are never
// reused; the dense storage slot behind an ID is recycled through a free list
// once the entity is destroyed.
type EntityID uint64

// entityTable maps entity IDs to storage slots and recycles freed slots.
// It is the one structure with structural mutation, so all changes happen at
// frame boundaries, never while a batch is running.
type entityTable struct {
	slots    *intmap.Map[EntityID, uint32]
	occupied []bool
	owner    []EntityID
	free     []uint32
	next     EntityID
	live     int
	max      int
}

func newEntityTable(max int) *entityTable {
	return &entityTable{
		slots: intmap.New[EntityID, uint32](256),
		next:  1,
		max:   max,
	}
}

// create allocates a slot (reusing a freed one if available) and returns a
// fresh ID for it.
func (t *entityTable) create() (EntityID, int, error) {
	if t.live >= t.max {
		return 0, 0, CapacityError{Max: t.max}
	}

	var slot uint32
	if n := len(t.free); n > 0 {
		slot = t.free[n-1]
		t.free = t.free[:n-1]
		t.occupied[slot] = true
	} else {
		slot = uint32(len(t.occupied))
		t.occupied = append(t.occupied, true)
		t.owner = append(t.owner, 0)
	}

	id := t.next
	t.next++
	t.owner[slot] = id
	t.slots.Put(id, slot)
	t.live++
	return id, int(slot), nil
}

// destroy releases the slot behind an ID. The ID is invalid afterwards.
func (t *entityTable) destroy(id EntityID) (int, error) {
	slot, ok := t.slots.Get(id)
	if !ok {
		return 0, UnknownEntityError{Entity: id}
	}
	t.slots.Del(id)
	t.occupied[slot] = false
	t.owner[slot] = 0
	t.free = append(t.free, slot)
	t.live--
	return int(slot), nil
}

func (t *entityTable) slot(id EntityID) (int, error) {
	slot, ok := t.slots.Get(id)
	if !ok {
		return 0, UnknownEntityError{Entity: id}
	}
	return int(slot), nil
}

func (t *entityTable) alive(id EntityID) bool {
	_, ok := t.slots.Get(id)
	return ok
}

// slotCount is the high-water slot index; columns are sized to it and the
// value is stable for the duration of a frame.
func (t *entityTable) slotCount() int {
	return len(t.occupied)
}
