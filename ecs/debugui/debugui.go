// Package debugui provides Dear ImGui overlay windows for inspecting a
// running scheduler: per-system timing statistics and the batch schedule
// derived from the declared access sets.
package debugui

import (
	"time"
)

// FrameTimer tracks wall-clock delta time between overlay frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
