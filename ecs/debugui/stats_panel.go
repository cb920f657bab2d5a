package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/gridpool/swarm/ecs"
)

// StatsPanel renders a window with frame timings and per-system execution
// statistics pulled from the scheduler.
type StatsPanel struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewStatsPanel(historyFrames int) *StatsPanel {
	return &StatsPanel{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

func (sp *StatsPanel) Render(world *ecs.World, scheduler *ecs.Scheduler, deltaTime float32) {
	if !imgui.BeginV("Scheduler Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	sp.frameHistory[sp.frameIndex] = deltaTime * 1000.0
	sp.frameIndex = (sp.frameIndex + 1) % sp.historyFrames

	stats := scheduler.GetStats()

	imgui.Text(fmt.Sprintf("Live Entities: %d", world.Len()))
	imgui.Text(fmt.Sprintf("Systems: %d in %d batches", stats.SystemCount, stats.BatchCount))
	imgui.Text(fmt.Sprintf("Workers: %d", scheduler.Workers()))

	var avgFrameTime float32
	for _, ft := range sp.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(sp.historyFrames)

	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &sp.frameHistory[0], int32(len(sp.frameHistory)))

	if imgui.TreeNodeStr("System Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Executions")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
