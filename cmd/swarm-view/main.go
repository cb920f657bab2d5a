package main

import (
	"flag"
	"image/color"
	"log"
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gridpool/swarm/ecs"
	"github.com/gridpool/swarm/ecs/debugui"
	debugui_ebiten "github.com/gridpool/swarm/ecs/debugui/ebiten"
	"github.com/gridpool/swarm/sim"
)

const (
	screenWidth  = 1200
	screenHeight = 660
)

var statusColors = map[sim.Status]color.RGBA{
	sim.StatusLow:    {R: 220, G: 60, B: 60, A: 255},
	sim.StatusMedium: {R: 230, G: 200, B: 60, A: 255},
	sim.StatusHigh:   {R: 80, G: 220, B: 100, A: 255},
}

// game drives the world at a fixed tick and draws the particle field with a
// debug overlay on top.
type game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	comps     *sim.Components

	backend  debugui_ebiten.ImguiBackend
	stats    *debugui.StatsPanel
	schedule *debugui.ScheduleViewer
	timer    *debugui.FrameTimer

	bounds   sim.Bounds
	lastTime time.Time
}

func (g *game) Update() error {
	g.backend.BeginFrame()

	now := time.Now()
	dt := now.Sub(g.lastTime).Seconds()
	g.lastTime = now

	err := g.scheduler.RunFrame(dt)

	delta := g.timer.GetDeltaTime()
	g.stats.Render(g.world, g.scheduler, delta)
	g.schedule.Render(g.world, g.scheduler)

	g.backend.EndFrame()
	return err
}

func (g *game) Draw(screen *ebiten.Image) {
	cellW := float32(screenWidth) / float32(g.bounds.Width())
	cellH := float32(screenHeight) / float32(g.bounds.Height())

	positions := g.comps.Position.Data(g.world)
	tints := g.comps.Tint.Data(g.world)

	for slot := range g.world.LiveSlots() {
		clr, ok := statusColors[tints[slot].Status]
		if !ok {
			continue
		}
		p := positions[slot]
		x := float32(p.X-g.bounds.MinX) * cellW
		y := float32(p.Y-g.bounds.MinY) * cellH
		vector.DrawFilledRect(screen, x, y, cellW, cellH, clr, false)
	}

	g.backend.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func main() {
	entities := flag.Int("entities", 5000, "Number of particles to spawn.")
	workers := flag.Int("workers", ecs.DefaultWorkers, "Worker pool size.")
	seed := flag.Uint64("seed", 1, "Simulation seed.")
	flag.Parse()

	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow("swarm", screenWidth, screenHeight)
	imgui.CurrentIO().SetIniFilename("")

	registry := ecs.NewRegistry()
	comps, err := sim.RegisterComponents(registry)
	if err != nil {
		log.Fatal(err)
	}

	world, err := ecs.NewWorld(registry, ecs.Config{})
	if err != nil {
		log.Fatal(err)
	}

	scheduler := ecs.NewScheduler(world, ecs.WithWorkers(*workers))
	if err := sim.RegisterSystems(scheduler, comps, sim.Config{Seed: *seed}); err != nil {
		log.Fatal(err)
	}
	if err := sim.Populate(world, comps, *entities, *seed, sim.DefaultBounds); err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("swarm")

	g := &game{
		world:     world,
		scheduler: scheduler,
		comps:     comps,
		backend:   debugui_ebiten.ImguiBackend{EbitenBackend: backend},
		stats:     debugui.NewStatsPanel(120),
		schedule:  debugui.NewScheduleViewer(),
		timer:     debugui.NewFrameTimer(),
		bounds:    sim.DefaultBounds,
		lastTime:  time.Now(),
	}

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	if err := scheduler.Close(); err != nil {
		log.Fatal(err)
	}
}
