package ecs

import (
	"errors"
	"iter"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// DefaultMaxEntities bounds worlds that do not configure a capacity.
const DefaultMaxEntities = 1 << 20

// ErrRegistryBound is returned when a Registry is used to build more than one
// World. Columns are owned by the registry, so each World needs its own.
var ErrRegistryBound = errors.New("registry already bound to a world")

// Config carries startup configuration for a World.
type Config struct {
	// MaxEntities is the hard cap on live entities. Zero means
	// DefaultMaxEntities.
	MaxEntities int
}

// Option configures a World at construction time.
type Option func(*World)

// WithLogger attaches a structured logger. The default is a nop logger; the
// hot per-frame path never logs.
func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		w.log = log
	}
}

// World owns all mutable simulation state: the component columns and the
// entity table. It is constructed at startup and passed by reference into the
// Scheduler and the frame driver; there are no package-level globals.
//
// Component cells are the only shared mutable resource during a frame, and
// the schedule's batch ordering is the sole synchronization mechanism for
// them. The destroy queue is the one explicitly locked structure; it is
// drained at frame boundaries only.
type World struct {
	registry *Registry
	columns  []column
	table    *entityTable
	log      *zap.Logger

	frameActive atomic.Bool

	pendingMu sync.Mutex
	pending   map[EntityID]struct{}
}

// NewWorld builds a World over a finished component registry. The registry is
// closed to further component registration.
func NewWorld(registry *Registry, cfg Config, opts ...Option) (*World, error) {
	if registry.frozen {
		return nil, ErrRegistryBound
	}
	registry.frozen = true

	max := cfg.MaxEntities
	if max <= 0 {
		max = DefaultMaxEntities
	}

	w := &World{
		registry: registry,
		columns:  registry.columns,
		table:    newEntityTable(max),
		log:      zap.NewNop(),
		pending:  make(map[EntityID]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// CreateEntity allocates an entity with every component cell set to its
// registered default. Must not be called while a frame is running; systems
// spawn through Frame.Commands instead.
func (w *World) CreateEntity() (EntityID, error) {
	id, slot, err := w.table.create()
	if err != nil {
		return 0, err
	}
	n := w.table.slotCount()
	for _, c := range w.columns {
		c.grow(n)
		c.reset(slot)
	}
	return id, nil
}

// DestroyEntity releases an entity. Between frames the slot is freed
// immediately; while a frame is running the destroy is queued and applied at
// the frame boundary.
func (w *World) DestroyEntity(id EntityID) error {
	if !w.frameActive.Load() {
		_, err := w.table.destroy(id)
		return err
	}

	if !w.table.alive(id) {
		return UnknownEntityError{Entity: id}
	}
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if _, dup := w.pending[id]; dup {
		return UnknownEntityError{Entity: id}
	}
	w.pending[id] = struct{}{}
	return nil
}

// drainDestroys applies queued destroys in ID order so frame results stay
// deterministic regardless of queueing order.
func (w *World) drainDestroys() {
	w.pendingMu.Lock()
	ids := make([]EntityID, 0, len(w.pending))
	for id := range w.pending {
		ids = append(ids, id)
	}
	clear(w.pending)
	w.pendingMu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		_, _ = w.table.destroy(id)
	}
}

// Alive reports whether the entity currently exists.
func (w *World) Alive(id EntityID) bool {
	return w.table.alive(id)
}

// Slot resolves an entity to its storage slot, valid for the current frame.
func (w *World) Slot(id EntityID) (int, error) {
	return w.table.slot(id)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.table.live
}

// SlotCount returns the high-water slot index. Columns are sized to it.
func (w *World) SlotCount() int {
	return w.table.slotCount()
}

// Live reports whether the slot holds a live entity. Safe to call from
// transforms: occupancy never changes mid-frame.
func (w *World) Live(slot int) bool {
	return w.table.occupied[slot]
}

// Owner returns the entity occupying a slot, or 0 for a free slot.
func (w *World) Owner(slot int) EntityID {
	return w.table.owner[slot]
}

// LiveSlots iterates all occupied slots in slot order. Valid between frames
// for snapshot readers such as renderers.
func (w *World) LiveSlots() iter.Seq[int] {
	return func(yield func(int) bool) {
		for slot, ok := range w.table.occupied {
			if ok && !yield(slot) {
				return
			}
		}
	}
}

// ComponentName resolves a component ID to its registered name.
func (w *World) ComponentName(id ComponentID) string {
	return w.registry.Name(id)
}

// Components returns the number of registered component types.
func (w *World) Components() int {
	return len(w.columns)
}
