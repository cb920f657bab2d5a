package sim

import (
	"github.com/gridpool/swarm/ecs"
)

// Salts keep the per-system noise streams independent.
const (
	saltAccelX = iota + 1
	saltAccelY
	saltHealthDelta
)

// Config carries simulation parameters shared by all systems.
type Config struct {
	// Seed drives all randomness; equal seeds produce equal runs.
	Seed uint64
	// Bounds is the canvas rectangle positions are clamped to. Zero value
	// means DefaultBounds.
	Bounds Bounds
}

// RegisterSystems registers the particle systems with their access
// declarations, in the order the schedule is built from.
func RegisterSystems(s *ecs.Scheduler, c *Components, cfg Config) error {
	if cfg.Bounds == (Bounds{}) {
		cfg.Bounds = DefaultBounds
	}
	bounds := cfg.Bounds
	seed := cfg.Seed

	positionUpdate := func(f *ecs.Frame, r ecs.Range) error {
		w := f.World
		positions := c.Position.Data(w)
		velocities := c.Velocity.Data(w)
		for slot := r.Start; slot < r.End; slot++ {
			if !w.Live(slot) {
				continue
			}
			p := &positions[slot]
			v := velocities[slot]
			p.X = clamp(p.X+v.DX, bounds.MinX, bounds.MaxX)
			p.Y = clamp(p.Y+v.DY, bounds.MinY, bounds.MaxY)
		}
		return nil
	}

	velocityUpdate := func(f *ecs.Frame, r ecs.Range) error {
		w := f.World
		velocities := c.Velocity.Data(w)
		accelerations := c.Acceleration.Data(w)
		for slot := r.Start; slot < r.End; slot++ {
			if !w.Live(slot) {
				continue
			}
			v := &velocities[slot]
			a := accelerations[slot]
			v.DX += a.AX
			v.DY += a.AY
		}
		return nil
	}

	tintUpdate := func(f *ecs.Frame, r ecs.Range) error {
		w := f.World
		tints := c.Tint.Data(w)
		healths := c.Health.Data(w)
		alives := c.Alive.Data(w)
		for slot := r.Start; slot < r.End; slot++ {
			if !w.Live(slot) {
				continue
			}
			if !alives[slot].Is {
				tints[slot].Status = StatusDead
				continue
			}
			tints[slot].Status = StatusForHealth(healths[slot].Current)
		}
		return nil
	}

	healthUpdate := func(f *ecs.Frame, r ecs.Range) error {
		w := f.World
		healths := c.Health.Data(w)
		changes := c.HealthChange.Data(w)
		for slot := r.Start; slot < r.End; slot++ {
			if !w.Live(slot) {
				continue
			}
			h := &healths[slot]
			h.Current = clamp(h.Current+changes[slot].Delta, 0, MaxHealth)
		}
		return nil
	}

	accelerationUpdate := func(f *ecs.Frame, r ecs.Range) error {
		w := f.World
		accelerations := c.Acceleration.Data(w)
		for slot := r.Start; slot < r.End; slot++ {
			if !w.Live(slot) {
				continue
			}
			a := &accelerations[slot]
			a.AX = step3(noise(seed, f.Tick, slot, saltAccelX))
			a.AY = step3(noise(seed, f.Tick, slot, saltAccelY))
		}
		return nil
	}

	aliveUpdate := func(f *ecs.Frame, r ecs.Range) error {
		w := f.World
		alives := c.Alive.Data(w)
		healths := c.Health.Data(w)
		for slot := r.Start; slot < r.End; slot++ {
			if !w.Live(slot) {
				continue
			}
			if healths[slot].Current == 0 {
				alives[slot].Is = false
			}
		}
		return nil
	}

	healthChangeUpdate := func(f *ecs.Frame, r ecs.Range) error {
		w := f.World
		changes := c.HealthChange.Data(w)
		for slot := r.Start; slot < r.End; slot++ {
			if !w.Live(slot) {
				continue
			}
			changes[slot].Delta = step3(noise(seed, f.Tick, slot, saltHealthDelta))
		}
		return nil
	}

	type registration struct {
		name   string
		access ecs.Access
		fn     ecs.Transform
	}

	regs := []registration{
		{
			name: "position_update",
			access: ecs.Access{
				Reads:  []ecs.ComponentID{c.Velocity.ID(), c.Position.ID()},
				Writes: []ecs.ComponentID{c.Position.ID()},
			},
			fn: positionUpdate,
		},
		{
			name: "velocity_update",
			access: ecs.Access{
				Reads:  []ecs.ComponentID{c.Acceleration.ID(), c.Velocity.ID()},
				Writes: []ecs.ComponentID{c.Velocity.ID()},
			},
			fn: velocityUpdate,
		},
		{
			name: "tint_update",
			access: ecs.Access{
				Reads:  []ecs.ComponentID{c.Health.ID(), c.Alive.ID()},
				Writes: []ecs.ComponentID{c.Tint.ID()},
			},
			fn: tintUpdate,
		},
		{
			name: "health_update",
			access: ecs.Access{
				Reads:  []ecs.ComponentID{c.HealthChange.ID(), c.Health.ID()},
				Writes: []ecs.ComponentID{c.Health.ID()},
			},
			fn: healthUpdate,
		},
		{
			name: "acceleration_update",
			access: ecs.Access{
				Writes: []ecs.ComponentID{c.Acceleration.ID()},
			},
			fn: accelerationUpdate,
		},
		{
			name: "alive_update",
			access: ecs.Access{
				Reads:  []ecs.ComponentID{c.Health.ID(), c.Alive.ID()},
				Writes: []ecs.ComponentID{c.Alive.ID()},
			},
			fn: aliveUpdate,
		},
		{
			name: "health_change_update",
			access: ecs.Access{
				Writes: []ecs.ComponentID{c.HealthChange.ID()},
			},
			fn: healthChangeUpdate,
		},
	}

	for _, reg := range regs {
		if err := s.Register(reg.name, reg.access, reg.fn); err != nil {
			return err
		}
	}
	return nil
}

// Populate spawns count particles with seeded random starting state, the way
// the driver boots a fresh world.
func Populate(w *ecs.World, c *Components, count int, seed uint64, bounds Bounds) error {
	if bounds == (Bounds{}) {
		bounds = DefaultBounds
	}

	for i := 0; i < count; i++ {
		id, err := w.CreateEntity()
		if err != nil {
			return err
		}
		slot, err := w.Slot(id)
		if err != nil {
			return err
		}

		// Column slices may be reallocated by CreateEntity, so fetch fresh.
		r := noise(seed, 0, slot, 0)
		c.Position.Data(w)[slot] = Position{
			X: bounds.MinX + int(r%uint64(bounds.Width())),
			Y: bounds.MinY + int((r>>16)%uint64(bounds.Height())),
		}
		c.Health.Data(w)[slot] = Health{Current: 1 + int((r>>32)%MaxHealth)}
	}
	return nil
}

// Living counts particles still marked alive.
func Living(w *ecs.World, c *Components) int {
	alives := c.Alive.Data(w)
	total := 0
	for slot := range w.LiveSlots() {
		if alives[slot].Is {
			total++
		}
	}
	return total
}
