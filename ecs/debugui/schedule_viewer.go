package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/gridpool/swarm/ecs"
)

// ScheduleViewer renders the batch schedule: which systems run concurrently
// and the declared access sets the batching was derived from.
type ScheduleViewer struct{}

func NewScheduleViewer() *ScheduleViewer {
	return &ScheduleViewer{}
}

func (sv *ScheduleViewer) Render(world *ecs.World, scheduler *ecs.Scheduler) {
	if !imgui.BeginV("Schedule", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	systems := scheduler.Systems()
	schedule := scheduler.Schedule()

	imgui.Text(fmt.Sprintf("Fingerprint: %016x", schedule.Fingerprint()))
	imgui.Separator()

	for bi, batch := range schedule.Batches() {
		if !imgui.TreeNodeStr(fmt.Sprintf("Batch %d (%d systems)", bi, len(batch))) {
			continue
		}

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV(fmt.Sprintf("BatchTable%d", bi), 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Reads")
			imgui.TableSetupColumn("Writes")
			imgui.TableHeadersRow()

			for _, si := range batch {
				info := systems[si]
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(info.Name)
				imgui.TableNextColumn()
				imgui.Text(componentNames(world, info.Reads))
				imgui.TableNextColumn()
				imgui.Text(componentNames(world, info.Writes))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func componentNames(world *ecs.World, ids []ecs.ComponentID) string {
	if len(ids) == 0 {
		return "-"
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = world.ComponentName(id)
	}
	return strings.Join(names, ", ")
}
