package ecs

// accessMask is a 256-bit set of component IDs. One bit per registered
// component type; conflict tests reduce to word-wise intersections.
type accessMask [4]uint64

func (m *accessMask) set(bit ComponentID) {
	m[bit>>6] |= uint64(1) << uint64(bit&63)
}

func (m accessMask) has(bit ComponentID) bool {
	return m[bit>>6]&(uint64(1)<<uint64(bit&63)) != 0
}

func (m accessMask) intersects(other accessMask) bool {
	return m[0]&other[0] != 0 ||
		m[1]&other[1] != 0 ||
		m[2]&other[2] != 0 ||
		m[3]&other[3] != 0
}

func (m accessMask) empty() bool {
	return m[0] == 0 && m[1] == 0 && m[2] == 0 && m[3] == 0
}

// Access declares which component columns a system reads and writes. The
// declaration is the sole input to conflict analysis: scheduling correctness
// is derived from it, never from inspecting the transform itself.
type Access struct {
	Reads  []ComponentID
	Writes []ComponentID
}

func (a Access) masks() (read, write accessMask) {
	for _, id := range a.Reads {
		read.set(id)
	}
	for _, id := range a.Writes {
		write.set(id)
	}
	return read, write
}

// validate checks every referenced component against the registry.
func (a Access) validate(system string, registered int) error {
	for _, id := range a.Reads {
		if int(id) >= registered {
			return AccessError{System: system, Component: id}
		}
	}
	for _, id := range a.Writes {
		if int(id) >= registered {
			return AccessError{System: system, Component: id}
		}
	}
	return nil
}
