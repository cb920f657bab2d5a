package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridpool/swarm/ecs"
)

// buildWorld registers n int components named c0..cn-1 and returns the world
// plus a ready scheduler.
func buildWorld(t *testing.T, components int) (*ecs.World, *ecs.Scheduler, []ecs.ComponentID) {
	t.Helper()

	registry := ecs.NewRegistry()
	ids := make([]ecs.ComponentID, components)
	for i := range ids {
		h, err := ecs.RegisterComponent(registry, string(rune('a'+i)), 0)
		require.NoError(t, err)
		ids[i] = h.ID()
	}

	world, err := ecs.NewWorld(registry, ecs.Config{})
	require.NoError(t, err)
	return world, ecs.NewScheduler(world), ids
}

func noop(*ecs.Frame, ecs.Range) error { return nil }

func TestScheduleSeparatesWriteReadConflicts(t *testing.T) {
	// The minimal two-system scenario: velocity_update writes what
	// position_update reads, so they must land in different batches with
	// velocity_update first.
	_, scheduler, ids := buildWorld(t, 2)
	vel, pos := ids[0], ids[1]

	require.NoError(t, scheduler.Register("velocity_update", ecs.Access{
		Reads:  []ecs.ComponentID{vel},
		Writes: []ecs.ComponentID{vel},
	}, noop))
	require.NoError(t, scheduler.Register("position_update", ecs.Access{
		Reads:  []ecs.ComponentID{vel},
		Writes: []ecs.ComponentID{pos},
	}, noop))

	batches := scheduler.Schedule().Batches()
	require.Len(t, batches, 2)
	assert.Equal(t, []int{0}, batches[0])
	assert.Equal(t, []int{1}, batches[1])
}

func TestScheduleCoalescesIndependentSystems(t *testing.T) {
	_, scheduler, ids := buildWorld(t, 4)

	// Disjoint write sets, no read overlap with any write: one batch.
	for i, id := range ids {
		require.NoError(t, scheduler.Register(
			string(rune('w'))+string(rune('0'+i)),
			ecs.Access{Writes: []ecs.ComponentID{id}},
			noop,
		))
	}

	batches := scheduler.Schedule().Batches()
	require.Len(t, batches, 1)
	assert.Equal(t, []int{0, 1, 2, 3}, batches[0])
}

func TestScheduleIdenticalAccessSetsConflict(t *testing.T) {
	// Identical overlapping access sets always conflict, regardless of what
	// the transforms would actually do.
	_, scheduler, ids := buildWorld(t, 1)

	access := ecs.Access{Reads: ids, Writes: ids}
	require.NoError(t, scheduler.Register("first", access, noop))
	require.NoError(t, scheduler.Register("second", access, noop))

	batches := scheduler.Schedule().Batches()
	require.Len(t, batches, 2)
}

func TestScheduleEmptyAccessLandsInFirstBatch(t *testing.T) {
	_, scheduler, ids := buildWorld(t, 1)

	require.NoError(t, scheduler.Register("writer", ecs.Access{Writes: ids}, noop))
	require.NoError(t, scheduler.Register("reader", ecs.Access{Reads: ids}, noop))
	require.NoError(t, scheduler.Register("idle", ecs.Access{}, noop))

	batches := scheduler.Schedule().Batches()
	require.Len(t, batches, 2)
	// idle is compatible with everything, so first-fit puts it in batch 0.
	assert.Equal(t, []int{0, 2}, batches[0])
	assert.Equal(t, []int{1}, batches[1])
}

func TestScheduleWriteWriteConflict(t *testing.T) {
	_, scheduler, ids := buildWorld(t, 1)

	require.NoError(t, scheduler.Register("first", ecs.Access{Writes: ids}, noop))
	require.NoError(t, scheduler.Register("second", ecs.Access{Writes: ids}, noop))

	require.Len(t, scheduler.Schedule().Batches(), 2)
}

func TestScheduleReadersShareABatch(t *testing.T) {
	_, scheduler, ids := buildWorld(t, 1)

	require.NoError(t, scheduler.Register("first", ecs.Access{Reads: ids}, noop))
	require.NoError(t, scheduler.Register("second", ecs.Access{Reads: ids}, noop))

	batches := scheduler.Schedule().Batches()
	require.Len(t, batches, 1)
	assert.Equal(t, []int{0, 1}, batches[0])
}

func TestScheduleFingerprint(t *testing.T) {
	register := func(t *testing.T, names []string) uint64 {
		_, scheduler, ids := buildWorld(t, 2)
		for i, name := range names {
			require.NoError(t, scheduler.Register(name, ecs.Access{
				Writes: []ecs.ComponentID{ids[i%2]},
			}, noop))
		}
		return scheduler.Schedule().Fingerprint()
	}

	a := register(t, []string{"one", "two"})
	b := register(t, []string{"one", "two"})
	c := register(t, []string{"one", "three"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
