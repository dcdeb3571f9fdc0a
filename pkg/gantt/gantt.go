package gantt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/srand/shopsched/pkg/jobshop"
)

// Renders a schedule as a fixed width text grid, one row per machine
// and one column per time unit.
type Renderer struct {
	// Colorize occupied cells by job id.
	Color bool
}

// Number of rotating cell colors. Maps to the six standard
// ANSI foreground colors.
const numColors = 6

// Returns the style used for cells of the given job.
func cellStyle(job int) lipgloss.Style {
	color := strconv.Itoa(1 + job%numColors)
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
}

// Render the Gantt chart of a schedule.
// The header row lists time units; each machine row shows the id of
// the occupying job per time unit, or underscores when idle.
func (r *Renderer) Chart(schedule *jobshop.Schedule) string {
	var chart strings.Builder

	makespan := schedule.Makespan()
	jobs := len(schedule.Instance().Jobs)
	cellWidth := max(digits(makespan), digits(jobs))
	leftWidth := digits(schedule.Machines())
	idle := strings.Repeat("_", cellWidth) + "|"

	chart.WriteString("   " + strings.Repeat(" ", leftWidth))
	for t := 0; t < makespan; t++ {
		fmt.Fprintf(&chart, "%0*d ", cellWidth, t)
	}
	chart.WriteString("\n")

	for machine := 0; machine < schedule.Machines(); machine++ {
		fmt.Fprintf(&chart, "%0*d: |", leftWidth, machine)

		for _, job := range schedule.RowSnapshot(machine, makespan) {
			if job < 0 {
				chart.WriteString(idle)
				continue
			}

			cell := fmt.Sprintf("%0*d", cellWidth, job)
			if r.Color {
				cell = cellStyle(job).Render(cell)
			}
			chart.WriteString(cell + "|")
		}

		chart.WriteString("\n")
	}

	return chart.String()
}

// Render the summary block of a schedule: the makespan on its own
// line, then one line per job listing the start times of its
// operations in stage order.
func (r *Renderer) Summary(schedule *jobshop.Schedule) string {
	var summary strings.Builder

	fmt.Fprintf(&summary, "%d\n", schedule.Makespan())
	for _, times := range schedule.PerJobTimings() {
		for _, time := range times {
			fmt.Fprintf(&summary, "%d ", time)
		}
		summary.WriteString("\n")
	}

	return summary.String()
}

// Returns the number of decimal digits of n.
func digits(n int) int {
	if n < 10 {
		return 1
	}
	count := 0
	for ; n > 0; n /= 10 {
		count++
	}
	return count
}
