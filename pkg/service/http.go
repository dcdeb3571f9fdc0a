package service

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/srand/shopsched/pkg/gantt"
	"github.com/srand/shopsched/pkg/jobshop"
	"github.com/srand/shopsched/pkg/log"
)

// The JSON representation of a solved schedule.
type ScheduleResponse struct {
	Makespan int     `json:"makespan"`
	Machines int     `json:"machines"`
	Jobs     [][]int `json:"jobs"`
}

// Logs requests at trace level.
func HttpLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		log.Tracef("%4s %s %v", c.Request().Method, c.Request().URL, c.Response().Status)
		return err
	}
}

// Register HTTP routes exposing a solved schedule.
func NewHttpHandler(schedule *jobshop.Schedule, renderer *gantt.Renderer, r *echo.Echo) {
	r.GET("/schedule", func(c echo.Context) error {
		return c.JSON(http.StatusOK, &ScheduleResponse{
			Makespan: schedule.Makespan(),
			Machines: schedule.Machines(),
			Jobs:     schedule.PerJobTimings(),
		})
	})

	r.GET("/gantt", func(c echo.Context) error {
		return c.String(http.StatusOK, renderer.Chart(schedule)+"\n"+renderer.Summary(schedule))
	})

	r.GET("/metrics", func(c echo.Context) error {
		operations := 0
		for _, job := range schedule.Instance().Jobs {
			operations += len(job.Ops)
		}

		metrics := fmt.Sprintln("# TYPE shopsched_makespan gauge")
		metrics += fmt.Sprintln("# HELP shopsched_makespan The total length of the schedule.")
		metrics += fmt.Sprintf("shopsched_makespan %d\n", schedule.Makespan())

		metrics += fmt.Sprintln("# TYPE shopsched_machines gauge")
		metrics += fmt.Sprintln("# HELP shopsched_machines The number of machines in the instance.")
		metrics += fmt.Sprintf("shopsched_machines %d\n", schedule.Machines())

		metrics += fmt.Sprintln("# TYPE shopsched_jobs gauge")
		metrics += fmt.Sprintln("# HELP shopsched_jobs The number of jobs in the instance.")
		metrics += fmt.Sprintf("shopsched_jobs %d\n", len(schedule.Instance().Jobs))

		metrics += fmt.Sprintln("# TYPE shopsched_operations gauge")
		metrics += fmt.Sprintln("# HELP shopsched_operations The number of scheduled operations.")
		metrics += fmt.Sprintf("shopsched_operations %d\n", operations)

		c.String(http.StatusOK, metrics)
		return nil
	})
}
