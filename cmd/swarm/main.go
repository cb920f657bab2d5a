package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/gridpool/swarm/ecs"
	"github.com/gridpool/swarm/sim"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file.")
	entities := flag.Int("entities", 0, "Number of particles to spawn.")
	workers := flag.Int("workers", 0, "Worker pool size.")
	tick := flag.Duration("tick", 0, "Frame interval.")
	seed := flag.Uint64("seed", 0, "Simulation seed.")
	render := flag.Bool("render", true, "Render the canvas each frame.")
	logLiving := flag.Bool("log-living", false, "Dump living particles on exit.")
	profileMode := flag.String("profile", "", "Enable profiling: cpu or mem.")
	flag.Parse()

	log := zap.Must(zap.NewProduction())
	defer func() { _ = log.Sync() }()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "entities":
			cfg.Entities = *entities
		case "workers":
			cfg.Workers = *workers
		case "tick":
			cfg.Tick = *tick
		case "seed":
			cfg.Seed = *seed
		case "render":
			cfg.Render = *render
		case "log-living":
			cfg.LogLiving = *logLiving
		}
	})

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("run", zap.Error(err))
	}
}

func run(cfg config, log *zap.Logger) error {
	registry := ecs.NewRegistry()
	comps, err := sim.RegisterComponents(registry)
	if err != nil {
		return err
	}

	world, err := ecs.NewWorld(registry, ecs.Config{MaxEntities: cfg.MaxEntities}, ecs.WithLogger(log))
	if err != nil {
		return err
	}

	scheduler := ecs.NewScheduler(world, ecs.WithWorkers(cfg.Workers))
	defer func() { _ = scheduler.Close() }()

	simCfg := sim.Config{Seed: cfg.Seed}
	if err := sim.RegisterSystems(scheduler, comps, simCfg); err != nil {
		return err
	}
	if err := sim.Populate(world, comps, cfg.Entities, cfg.Seed, sim.DefaultBounds); err != nil {
		return err
	}

	log.Info("running world",
		zap.Int("entities", world.Len()),
		zap.Int("workers", cfg.Workers),
		zap.Uint64("seed", cfg.Seed),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	canvas := sim.NewCanvas(sim.DefaultBounds)
	ticker := time.NewTicker(cfg.Tick)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			if cfg.LogLiving {
				dumpLiving(world, comps)
			}
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now

			start := time.Now()
			if err := scheduler.RunFrame(dt); err != nil {
				log.Warn("frame", zap.Error(err))
				continue
			}

			if cfg.Render {
				canvas.Capture(world, comps)
				if err := canvas.Render(os.Stdout); err != nil {
					return err
				}
			}

			log.Info("frame",
				zap.Duration("took", time.Since(start)),
				zap.Int("living", sim.Living(world, comps)),
			)
		}
	}
}

func dumpLiving(world *ecs.World, comps *sim.Components) {
	positions := comps.Position.Data(world)
	velocities := comps.Velocity.Data(world)
	healths := comps.Health.Data(world)
	alives := comps.Alive.Data(world)

	for slot := range world.LiveSlots() {
		if !alives[slot].Is {
			continue
		}
		fmt.Printf("entity %d: position=%+v velocity=%+v health=%d\n",
			world.Owner(slot), positions[slot], velocities[slot], healths[slot].Current)
	}
}
