// Package sim is the particle simulation built on the ecs runtime: component
// definitions, the physics and health systems with their declared access
// sets, and the terminal canvas renderer that consumes the post-frame
// snapshot.
package sim

import (
	"github.com/gridpool/swarm/ecs"
)

// MaxHealth caps particle health; health is clamped to [0, MaxHealth].
const MaxHealth = 10

// Position is a particle's location on the canvas plane.
type Position struct {
	X, Y int
}

// Velocity is per-tick displacement.
type Velocity struct {
	DX, DY int
}

// Acceleration is per-tick velocity change, re-rolled randomly each frame.
type Acceleration struct {
	AX, AY int
}

// Health is the particle's current health, 0..MaxHealth.
type Health struct {
	Current int
}

// HealthChange is the pending per-tick health delta.
type HealthChange struct {
	Delta int
}

// Alive marks whether the particle still participates in the simulation.
type Alive struct {
	Is bool
}

// Tint is the render classification derived from health each frame.
type Tint struct {
	Status Status
}

// Components bundles the typed handles for every particle component.
type Components struct {
	Position     ecs.Handle[Position]
	Velocity     ecs.Handle[Velocity]
	Acceleration ecs.Handle[Acceleration]
	Health       ecs.Handle[Health]
	HealthChange ecs.Handle[HealthChange]
	Alive        ecs.Handle[Alive]
	Tint         ecs.Handle[Tint]
}

// RegisterComponents registers the seven particle components.
func RegisterComponents(r *ecs.Registry) (*Components, error) {
	c := &Components{}
	var err error

	if c.Position, err = ecs.RegisterComponent(r, "position", Position{}); err != nil {
		return nil, err
	}
	if c.Velocity, err = ecs.RegisterComponent(r, "velocity", Velocity{}); err != nil {
		return nil, err
	}
	if c.Acceleration, err = ecs.RegisterComponent(r, "acceleration", Acceleration{}); err != nil {
		return nil, err
	}
	if c.Health, err = ecs.RegisterComponent(r, "health", Health{Current: MaxHealth}); err != nil {
		return nil, err
	}
	if c.HealthChange, err = ecs.RegisterComponent(r, "health_change", HealthChange{}); err != nil {
		return nil, err
	}
	if c.Alive, err = ecs.RegisterComponent(r, "alive", Alive{Is: true}); err != nil {
		return nil, err
	}
	if c.Tint, err = ecs.RegisterComponent(r, "tint", Tint{}); err != nil {
		return nil, err
	}
	return c, nil
}
