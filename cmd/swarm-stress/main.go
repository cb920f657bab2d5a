package main

import (
	"context"
	"flag"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/gridpool/swarm/ecs"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	workers := flag.Int("workers", ecs.DefaultWorkers, "Worker pool size.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting ECS stress test...")

	// 1. Setup registry, world, and scheduler
	registry := ecs.NewRegistry()
	comps, err := RegisterGeneratedComponents(registry)
	if err != nil {
		log.Fatal(err)
	}
	world, err := ecs.NewWorld(registry, ecs.Config{})
	if err != nil {
		log.Fatal(err)
	}
	scheduler := ecs.NewScheduler(world, ecs.WithWorkers(*workers))
	if err := RegisterGeneratedSystems(scheduler, comps); err != nil {
		log.Fatal(err)
	}

	// 2. Populate the world
	log.Printf("Populating world with %d entities...\n", *entityCount)
	for i := 0; i < *entityCount; i++ {
		if _, err := world.CreateEntity(); err != nil {
			log.Fatal(err)
		}
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     generatedComponents,
		Systems:        generatedSystems,
		Workers:        *workers,
		Batches:        len(scheduler.Schedule().Batches()),
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := scheduler.RunFrame(float64(deltaTime) / float64(time.Second)); err != nil {
				log.Fatal(err)
			}
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	runtime.ReadMemStats(&report.MemStatsEnd)

	report.TotalUpdates = totalUpdates
	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()

	if err := scheduler.Close(); err != nil {
		log.Fatal(err)
	}

	log.Println("Simulation complete. Generating report...")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal(err)
	}
}
