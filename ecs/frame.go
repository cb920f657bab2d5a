package ecs

import "go.uber.org/zap"

// Frame is handed to every transform invocation. Each work item receives its
// own Commands buffer, so transforms never contend on it.
type Frame struct {
	World     *World
	DeltaTime float64
	Tick      uint64
	Commands  *Commands
}

// Commands buffers structural operations issued during a frame. Structural
// changes are forbidden while batches run, so spawns and destroys are queued
// here and applied once the frame's last batch has completed.
type Commands struct {
	spawns   []func(w *World, id EntityID)
	destroys []EntityID
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn. The init function, if non-nil, runs with the
// fresh ID once the entity exists; use it to set initial component values.
func (c *Commands) Spawn(init func(w *World, id EntityID)) {
	c.spawns = append(c.spawns, init)
}

// Destroy queues an entity destroy.
func (c *Commands) Destroy(id EntityID) {
	c.destroys = append(c.destroys, id)
}

// Defer queues an arbitrary function to run at the frame boundary.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// merge appends another buffer's operations. The scheduler merges per-item
// buffers in deterministic item order before flushing.
func (c *Commands) merge(other *Commands) {
	c.spawns = append(c.spawns, other.spawns...)
	c.destroys = append(c.destroys, other.destroys...)
	c.defers = append(c.defers, other.defers...)
}

// flush applies destroys, then spawns, then deferred functions, resetting the
// buffer. Destroying an entity twice within one frame is harmless.
func (c *Commands) flush(w *World) {
	seen := make(map[EntityID]bool, len(c.destroys))
	for _, id := range c.destroys {
		if seen[id] {
			continue
		}
		seen[id] = true
		if err := w.DestroyEntity(id); err != nil {
			w.log.Debug("deferred destroy skipped", zap.Uint64("entity", uint64(id)), zap.Error(err))
		}
	}

	for _, init := range c.spawns {
		id, err := w.CreateEntity()
		if err != nil {
			w.log.Warn("deferred spawn failed", zap.Error(err))
			continue
		}
		if init != nil {
			init(w, id)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.destroys = c.destroys[:0]
	c.defers = c.defers[:0]
}
