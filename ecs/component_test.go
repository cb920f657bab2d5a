package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridpool/swarm/ecs"
)

type position struct {
	X, Y float64
}

type velocity struct {
	DX, DY float64
}

func TestRegisterComponent(t *testing.T) {
	registry := ecs.NewRegistry()

	pos, err := ecs.RegisterComponent(registry, "position", position{})
	require.NoError(t, err)
	vel, err := ecs.RegisterComponent(registry, "velocity", velocity{})
	require.NoError(t, err)

	assert.Equal(t, ecs.ComponentID(0), pos.ID())
	assert.Equal(t, ecs.ComponentID(1), vel.ID())
	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, "position", registry.Name(pos.ID()))
	assert.Equal(t, "velocity", registry.Name(vel.ID()))

	_, err = ecs.RegisterComponent(registry, "position", position{})
	assert.ErrorIs(t, err, ecs.DuplicateComponentError{Name: "position"})
}

func TestComponentDefaults(t *testing.T) {
	registry := ecs.NewRegistry()
	health, err := ecs.RegisterComponent(registry, "health", 100)
	require.NoError(t, err)

	world, err := ecs.NewWorld(registry, ecs.Config{})
	require.NoError(t, err)

	id, err := world.CreateEntity()
	require.NoError(t, err)

	got, err := health.Get(world, id)
	require.NoError(t, err)
	assert.Equal(t, 100, *got)

	// Mutate, destroy, respawn into the same slot: the default comes back.
	*got = 7
	require.NoError(t, world.DestroyEntity(id))

	id2, err := world.CreateEntity()
	require.NoError(t, err)
	slot, err := world.Slot(id2)
	require.NoError(t, err)
	assert.Equal(t, 0, slot)

	got2, err := health.Get(world, id2)
	require.NoError(t, err)
	assert.Equal(t, 100, *got2)
}

func TestComponentData(t *testing.T) {
	registry := ecs.NewRegistry()
	pos, err := ecs.RegisterComponent(registry, "position", position{})
	require.NoError(t, err)

	world, err := ecs.NewWorld(registry, ecs.Config{})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := world.CreateEntity()
		require.NoError(t, err)
	}

	data := pos.Data(world)
	require.Len(t, data, 3)
	data[1] = position{X: 4, Y: 2}

	id1 := world.Owner(1)
	got, err := pos.Get(world, id1)
	require.NoError(t, err)
	assert.Equal(t, position{X: 4, Y: 2}, *got)
}

func TestComponentGetUnknownEntity(t *testing.T) {
	registry := ecs.NewRegistry()
	pos, err := ecs.RegisterComponent(registry, "position", position{})
	require.NoError(t, err)

	world, err := ecs.NewWorld(registry, ecs.Config{})
	require.NoError(t, err)

	_, err = pos.Get(world, ecs.EntityID(99))
	assert.ErrorIs(t, err, ecs.UnknownEntityError{Entity: 99})
}

func TestSameTypeDifferentNames(t *testing.T) {
	registry := ecs.NewRegistry()
	a, err := ecs.RegisterComponent(registry, "mass", 0.0)
	require.NoError(t, err)
	b, err := ecs.RegisterComponent(registry, "lifetime", 0.0)
	require.NoError(t, err)

	world, err := ecs.NewWorld(registry, ecs.Config{})
	require.NoError(t, err)

	id, err := world.CreateEntity()
	require.NoError(t, err)
	slot, err := world.Slot(id)
	require.NoError(t, err)

	a.Data(world)[slot] = 1.5
	assert.Equal(t, 0.0, b.Data(world)[slot])
}
