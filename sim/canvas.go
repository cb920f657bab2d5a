package sim

import (
	"fmt"
	"io"
	"strings"

	"github.com/gridpool/swarm/ecs"
)

// Bounds is the inclusive canvas rectangle particles move within.
type Bounds struct {
	MinX, MaxX int
	MinY, MaxY int
}

// DefaultBounds is the 200x11 terminal canvas.
var DefaultBounds = Bounds{MinX: -100, MaxX: 99, MinY: -5, MaxY: 5}

// Width returns the canvas width in cells.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the canvas height in cells.
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// Status classifies a particle for rendering.
type Status uint8

const (
	StatusDead Status = iota
	StatusLow
	StatusMedium
	StatusHigh
)

// StatusForHealth maps a health value onto its render classification.
func StatusForHealth(h int) Status {
	switch {
	case h >= 7:
		return StatusHigh
	case h >= 4:
		return StatusMedium
	case h >= 1:
		return StatusLow
	default:
		return StatusDead
	}
}

// Canvas rasterizes live particle positions into a status grid. It reads the
// component snapshot between frames and never runs inside one.
type Canvas struct {
	bounds Bounds
	width  int
	height int
	cells  []Status
}

// NewCanvas creates a canvas for the given bounds.
func NewCanvas(b Bounds) *Canvas {
	return &Canvas{
		bounds: b,
		width:  b.Width(),
		height: b.Height(),
		cells:  make([]Status, b.Width()*b.Height()),
	}
}

// Capture rebuilds the grid from the current component snapshot. When two
// particles share a cell the brighter status wins, keeping the result
// independent of slot order.
func (c *Canvas) Capture(w *ecs.World, comps *Components) {
	clear(c.cells)

	positions := comps.Position.Data(w)
	alives := comps.Alive.Data(w)
	tints := comps.Tint.Data(w)

	for slot := range w.LiveSlots() {
		if !alives[slot].Is {
			continue
		}
		p := positions[slot]
		x := clamp(p.X, c.bounds.MinX, c.bounds.MaxX) - c.bounds.MinX
		y := clamp(p.Y, c.bounds.MinY, c.bounds.MaxY) - c.bounds.MinY
		cell := &c.cells[y*c.width+x]
		if tints[slot].Status > *cell {
			*cell = tints[slot].Status
		}
	}
}

// At returns the status at canvas coordinates (0,0 is the top-left cell).
func (c *Canvas) At(x, y int) Status {
	return c.cells[y*c.width+x]
}

// Counts tallies cells per status.
func (c *Canvas) Counts() map[Status]int {
	counts := make(map[Status]int, 4)
	for _, s := range c.cells {
		counts[s]++
	}
	return counts
}

// ANSI escapes for the terminal palette.
const (
	ansiReset  = "\x1b[0m"
	ansiBlack  = "\x1b[30m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// Render writes the colored grid to out, one line per canvas row.
func (c *Canvas) Render(out io.Writer) error {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height*8)

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			switch c.At(x, y) {
			case StatusDead:
				sb.WriteString(ansiBlack + "_" + ansiReset)
			case StatusLow:
				sb.WriteString(ansiRed + "X" + ansiReset)
			case StatusMedium:
				sb.WriteString(ansiYellow + "X" + ansiReset)
			case StatusHigh:
				sb.WriteString(ansiGreen + "X" + ansiReset)
			}
		}
		sb.WriteByte('\n')
	}

	_, err := fmt.Fprint(out, sb.String())
	return err
}
