package ecs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultWorkers is the worker pool size when none is configured.
	DefaultWorkers = 5

	// defaultMinChunk keeps chunks large enough that dispatch overhead stays
	// below the cost of the work itself.
	defaultMinChunk = 256
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	BatchCount      int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system. Durations
// are summed across the system's chunks, approximating CPU time per frame.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// SchedulerOption configures a Scheduler at construction time.
type SchedulerOption func(*Scheduler)

// WithWorkers sets the worker pool size. A pool of one worker produces
// results identical to any larger pool; correctness depends only on batch
// ordering.
func WithWorkers(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithChunkSize sets the minimum slots per work item.
func WithChunkSize(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.minChunk = n
		}
	}
}

// Scheduler executes registered systems against a World, one frame at a time.
// From each system's declared access set it derives a conflict graph and an
// ordered batch schedule; within a batch systems run concurrently across the
// worker pool, between batches execution is strictly sequential. That batch
// ordering is the only synchronization the component columns get, and the
// only one they need.
type Scheduler struct {
	world    *World
	systems  []*systemEntry
	names    map[string]struct{}
	stats    []*systemStatsInternal
	schedule *Schedule
	pool     *workerPool
	workers  int
	minChunk int
	started  bool
	closed   bool
	tick     uint64
	log      *zap.Logger
}

// NewScheduler creates a scheduler for the given world.
func NewScheduler(world *World, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		world:    world,
		names:    make(map[string]struct{}),
		workers:  DefaultWorkers,
		minChunk: defaultMinChunk,
		log:      world.log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a system with its declared component access. Registration is
// closed once the first frame runs.
func (s *Scheduler) Register(name string, access Access, fn Transform) error {
	if s.started {
		return StartedError{}
	}
	if _, dup := s.names[name]; dup {
		return DuplicateSystemError{Name: name}
	}
	if err := access.validate(name, len(s.world.columns)); err != nil {
		return err
	}

	read, write := access.masks()
	s.names[name] = struct{}{}
	s.systems = append(s.systems, &systemEntry{
		name:   name,
		access: access,
		read:   read,
		write:  write,
		fn:     fn,
	})
	s.stats = append(s.stats, &systemStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
	return nil
}

// Systems describes the registered systems in registration order.
func (s *Scheduler) Systems() []SystemInfo {
	out := make([]SystemInfo, len(s.systems))
	for i, sys := range s.systems {
		out[i] = SystemInfo{
			Name:   sys.name,
			Reads:  append([]ComponentID(nil), sys.access.Reads...),
			Writes: append([]ComponentID(nil), sys.access.Writes...),
		}
	}
	return out
}

// Schedule returns the batch schedule. Before the first frame it reflects the
// registrations so far; afterwards it is the fixed schedule in use.
func (s *Scheduler) Schedule() *Schedule {
	if s.schedule != nil {
		return s.schedule
	}
	return buildSchedule(s.systems)
}

// Workers returns the configured worker pool size.
func (s *Scheduler) Workers() int {
	return s.workers
}

func (s *Scheduler) start() {
	s.schedule = buildSchedule(s.systems)
	s.pool = newWorkerPool(s.workers)
	s.started = true
	s.log.Info("scheduler started",
		zap.Int("systems", len(s.systems)),
		zap.Int("batches", len(s.schedule.batches)),
		zap.Int("workers", s.workers),
		zap.Uint64("fingerprint", s.schedule.fingerprint),
	)
}

// workItem is one (system, chunk) unit dispatched to the pool.
type workItem struct {
	sys   *systemEntry
	stat  int
	frame Frame
	rng   Range
	err   error
	took  time.Duration
}

func (it *workItem) run() {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			it.err = fmt.Errorf("transform panic: %v", r)
		}
		it.took = time.Since(start)
	}()
	it.err = it.sys.fn(&it.frame, it.rng)
}

// RunFrame executes one full pass of the batch schedule and blocks until it
// completes; this is one simulation tick. On the first call the schedule is
// built, the pool is started, and registration closes.
//
// If a transform fails, the failing batch is still drained, later batches are
// skipped, queued structural commands are applied, and the first observed
// error (batch order, then registration order, then chunk order) is returned.
// The pool and schedule stay intact; the next RunFrame proceeds normally.
func (s *Scheduler) RunFrame(dt float64) error {
	if s.closed {
		return StartedError{}
	}
	if !s.started {
		s.start()
	}

	s.tick++
	w := s.world
	w.frameActive.Store(true)

	master := newCommands()
	n := w.SlotCount()
	var failed error

	for _, batch := range s.schedule.batches {
		items := make([]*workItem, 0, len(batch))
		for _, si := range batch {
			for _, rng := range chunkRange(n, s.workers, s.minChunk) {
				items = append(items, &workItem{
					sys:  s.systems[si],
					stat: si,
					rng:  rng,
					frame: Frame{
						World:     w,
						DeltaTime: dt,
						Tick:      s.tick,
						Commands:  newCommands(),
					},
				})
			}
		}

		var wg sync.WaitGroup
		wg.Add(len(items))
		for _, item := range items {
			s.pool.submit(func() {
				defer wg.Done()
				item.run()
			})
		}
		wg.Wait()

		// Items are ordered by registration order then chunk start, so the
		// merge and the error pick are deterministic.
		durations := make(map[int]time.Duration, len(batch))
		for _, item := range items {
			master.merge(item.frame.Commands)
			durations[item.stat] += item.took
			if item.err != nil && failed == nil {
				failed = TransformError{System: item.sys.name, Err: item.err}
			}
		}
		for _, si := range batch {
			s.recordStats(si, durations[si])
		}

		if failed != nil {
			break
		}
	}

	w.frameActive.Store(false)
	master.flush(w)
	w.drainDestroys()

	if failed != nil {
		s.log.Warn("frame failed", zap.Uint64("tick", s.tick), zap.Error(failed))
		return failed
	}
	return nil
}

func (s *Scheduler) recordStats(si int, took time.Duration) {
	stats := s.stats[si]
	stats.executionCount++
	stats.lastDuration = took
	stats.totalDuration += took
	if took < stats.minDuration {
		stats.minDuration = took
	}
	if took > stats.maxDuration {
		stats.maxDuration = took
	}
}

// Run executes frames repeatedly at the given interval until the context is
// cancelled. Frame failures are logged and the loop continues; retry policy
// beyond that belongs to the caller.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			_ = s.RunFrame(dt)
		}
	}
}

// Close shuts the worker pool down. The scheduler cannot run frames
// afterwards; call at process teardown.
func (s *Scheduler) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.pool == nil {
		return nil
	}
	return s.pool.close()
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		BatchCount:  len(s.Schedule().batches),
		Systems:     make([]SystemStats, len(s.stats)),
	}

	var totalExecs int64
	for i, internal := range s.stats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
