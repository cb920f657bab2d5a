package ecs

// Range is a contiguous window of entity slots, [Start, End). The scheduler
// partitions the live slot range into chunks so one system's work can spread
// across the worker pool.
type Range struct {
	Start, End int
}

// Len returns the number of slots in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Transform is the unit of work a system performs over one slot range.
// Transforms must touch only the columns named in their declared access set
// and must not depend on the execution order of other systems in the same
// batch. Returning an error marks the frame as failed.
type Transform func(f *Frame, r Range) error

// systemEntry is one registered system: its declared access compiled into
// masks, plus the transform itself.
type systemEntry struct {
	name   string
	access Access
	read   accessMask
	write  accessMask
	fn     Transform
}

// SystemInfo describes a registered system for introspection and tooling.
type SystemInfo struct {
	Name   string
	Reads  []ComponentID
	Writes []ComponentID
}
