package sim_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridpool/swarm/ecs"
	"github.com/gridpool/swarm/sim"
)

func TestStatusForHealth(t *testing.T) {
	tests := []struct {
		health int
		want   sim.Status
	}{
		{0, sim.StatusDead},
		{1, sim.StatusLow},
		{3, sim.StatusLow},
		{4, sim.StatusMedium},
		{6, sim.StatusMedium},
		{7, sim.StatusHigh},
		{10, sim.StatusHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sim.StatusForHealth(tt.health), "health %d", tt.health)
	}
}

func TestBoundsDimensions(t *testing.T) {
	assert.Equal(t, 200, sim.DefaultBounds.Width())
	assert.Equal(t, 11, sim.DefaultBounds.Height())
}

// canvasFixture builds a tiny world with hand-placed particles.
func canvasFixture(t *testing.T) (*ecs.World, *sim.Components) {
	t.Helper()

	registry := ecs.NewRegistry()
	comps, err := sim.RegisterComponents(registry)
	require.NoError(t, err)

	world, err := ecs.NewWorld(registry, ecs.Config{})
	require.NoError(t, err)
	return world, comps
}

func place(t *testing.T, w *ecs.World, c *sim.Components, x, y int, status sim.Status, alive bool) {
	t.Helper()

	id, err := w.CreateEntity()
	require.NoError(t, err)
	slot, err := w.Slot(id)
	require.NoError(t, err)

	c.Position.Data(w)[slot] = sim.Position{X: x, Y: y}
	c.Tint.Data(w)[slot] = sim.Tint{Status: status}
	c.Alive.Data(w)[slot] = sim.Alive{Is: alive}
}

func TestCanvasCapture(t *testing.T) {
	world, comps := canvasFixture(t)
	bounds := sim.Bounds{MinX: 0, MaxX: 9, MinY: 0, MaxY: 4}

	place(t, world, comps, 0, 0, sim.StatusHigh, true)
	place(t, world, comps, 9, 4, sim.StatusLow, true)
	place(t, world, comps, 5, 2, sim.StatusMedium, false) // dead, must not render

	canvas := sim.NewCanvas(bounds)
	canvas.Capture(world, comps)

	assert.Equal(t, sim.StatusHigh, canvas.At(0, 0))
	assert.Equal(t, sim.StatusLow, canvas.At(9, 4))
	assert.Equal(t, sim.StatusDead, canvas.At(5, 2))

	counts := canvas.Counts()
	assert.Equal(t, 48, counts[sim.StatusDead])
	assert.Equal(t, 1, counts[sim.StatusLow])
	assert.Equal(t, 1, counts[sim.StatusHigh])
}

func TestCanvasBrightestStatusWins(t *testing.T) {
	world, comps := canvasFixture(t)
	bounds := sim.Bounds{MinX: 0, MaxX: 3, MinY: 0, MaxY: 3}

	// Two particles on the same cell, registered in both orders relative to
	// brightness.
	place(t, world, comps, 1, 1, sim.StatusLow, true)
	place(t, world, comps, 1, 1, sim.StatusHigh, true)
	place(t, world, comps, 2, 2, sim.StatusHigh, true)
	place(t, world, comps, 2, 2, sim.StatusLow, true)

	canvas := sim.NewCanvas(bounds)
	canvas.Capture(world, comps)

	assert.Equal(t, sim.StatusHigh, canvas.At(1, 1))
	assert.Equal(t, sim.StatusHigh, canvas.At(2, 2))
}

func TestCanvasCaptureClampsStrays(t *testing.T) {
	world, comps := canvasFixture(t)
	bounds := sim.Bounds{MinX: 0, MaxX: 3, MinY: 0, MaxY: 3}

	// A particle outside the canvas rectangle lands on the nearest edge cell.
	place(t, world, comps, 99, -7, sim.StatusMedium, true)

	canvas := sim.NewCanvas(bounds)
	canvas.Capture(world, comps)

	assert.Equal(t, sim.StatusMedium, canvas.At(3, 0))
}

func TestCanvasRender(t *testing.T) {
	world, comps := canvasFixture(t)
	bounds := sim.Bounds{MinX: 0, MaxX: 2, MinY: 0, MaxY: 1}

	place(t, world, comps, 1, 0, sim.StatusHigh, true)

	canvas := sim.NewCanvas(bounds)
	canvas.Capture(world, comps)

	var buf bytes.Buffer
	require.NoError(t, canvas.Render(&buf))
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 1, strings.Count(out, "\x1b[32mX"), "one green cell")
	assert.Equal(t, 5, strings.Count(out, "\x1b[30m_"), "five empty cells")
}
