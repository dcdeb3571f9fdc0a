package jobshop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srand/shopsched/pkg/utils"
)

// Build an instance from per-job sequences of machine/duration pairs.
func newTestInstance(machines int, seqs ...[][2]int) *Instance {
	inst := &Instance{Machines: machines}

	for id, seq := range seqs {
		job := &Job{ID: id}
		for stage, pair := range seq {
			job.Ops = append(job.Ops, Operation{
				Machine:       pair[0],
				Duration:      pair[1],
				Stage:         stage,
				ScheduledTime: -1,
			})
		}
		inst.Jobs = append(inst.Jobs, job)
	}

	return inst
}

// Two jobs contending for two machines.
// Job1's long first operation wins stage 0, Job0's longer second
// operation wins stage 1.
func contentionInstance() *Instance {
	return newTestInstance(2,
		[][2]int{{0, 3}, {1, 2}},
		[][2]int{{1, 4}, {0, 1}},
	)
}

// Three jobs on three machines, used for property checks.
func propertyInstance() *Instance {
	return newTestInstance(3,
		[][2]int{{0, 3}, {1, 2}, {2, 2}},
		[][2]int{{1, 4}, {2, 3}, {0, 1}},
		[][2]int{{2, 2}, {0, 2}, {1, 4}},
	)
}

func TestScheduleLongestFirst(t *testing.T) {
	schedule, err := New(contentionInstance())
	require.NoError(t, err)
	schedule.Verify = true

	require.NoError(t, schedule.RunLongestFirst())

	assert.Equal(t, 6, schedule.Makespan())
	assert.Equal(t, [][]int{{0, 4}, {0, 4}}, schedule.PerJobTimings())

	assert.Equal(t, []int{0, 0, 0, -1, 1, -1}, schedule.RowSnapshot(0, 6))
	assert.Equal(t, []int{1, 1, 1, 1, 0, 0}, schedule.RowSnapshot(1, 6))
}

func TestScheduleHeuristic(t *testing.T) {
	schedule, err := New(contentionInstance())
	require.NoError(t, err)
	schedule.Verify = true

	require.NoError(t, schedule.Run(LongestDuration))

	assert.Equal(t, 6, schedule.Makespan())
	assert.Equal(t, [][]int{{0, 4}, {0, 4}}, schedule.PerJobTimings())
}

func TestScheduleSingleMachineChain(t *testing.T) {
	inst := newTestInstance(1,
		[][2]int{{0, 1}, {0, 1}, {0, 1}},
	)

	schedule, err := New(inst)
	require.NoError(t, err)
	require.NoError(t, schedule.RunLongestFirst())

	assert.Equal(t, 3, schedule.Makespan())
	assert.Equal(t, [][]int{{0, 1, 2}}, schedule.PerJobTimings())

	// No contention: any heuristic yields the same result.
	schedule, err = New(newTestInstance(1,
		[][2]int{{0, 1}, {0, 1}, {0, 1}},
	))
	require.NoError(t, err)
	require.NoError(t, schedule.Run(ShortestDuration))

	assert.Equal(t, 3, schedule.Makespan())
	assert.Equal(t, [][]int{{0, 1, 2}}, schedule.PerJobTimings())
}

func TestScheduleMalformedInstance(t *testing.T) {
	// Stage count mismatch
	_, err := New(newTestInstance(2,
		[][2]int{{0, 3}, {1, 2}},
		[][2]int{{1, 4}},
	))
	assert.ErrorIs(t, err, utils.ErrMalformedInstance)

	// Non-positive duration
	_, err = New(newTestInstance(2,
		[][2]int{{0, 0}},
		[][2]int{{1, 4}},
	))
	assert.ErrorIs(t, err, utils.ErrMalformedInstance)

	// Machine id out of range
	_, err = New(newTestInstance(2,
		[][2]int{{2, 3}},
		[][2]int{{1, 4}},
	))
	assert.ErrorIs(t, err, utils.ErrMalformedInstance)

	// No machines
	_, err = New(&Instance{Machines: 0})
	assert.ErrorIs(t, err, utils.ErrMalformedInstance)
}

func TestScheduleDeterminism(t *testing.T) {
	first, err := New(propertyInstance())
	require.NoError(t, err)
	require.NoError(t, first.RunLongestFirst())

	second, err := New(propertyInstance())
	require.NoError(t, err)
	require.NoError(t, second.RunLongestFirst())

	assert.Equal(t, first.PerJobTimings(), second.PerJobTimings())
	assert.Equal(t, first.Makespan(), second.Makespan())
}

// Verify the partition, no-overlap, precedence, totality and lower
// bound properties after a complete run.
func checkScheduleProperties(t *testing.T, schedule *Schedule) {
	t.Helper()

	inst := schedule.Instance()

	for machine := 0; machine < inst.Machines; machine++ {
		assert.NoError(t, schedule.Timeline(machine).Check())
	}

	type placed struct {
		start, end int
	}
	byMachine := make([][]placed, inst.Machines)

	jobBound := 0
	machineWork := make([]int, inst.Machines)

	for _, job := range inst.Jobs {
		for k, op := range job.Ops {
			// Totality
			require.GreaterOrEqual(t, op.ScheduledTime, 0)

			// Precedence
			if k > 0 {
				prev := job.Ops[k-1]
				assert.GreaterOrEqual(t, op.ScheduledTime, prev.ScheduledTime+prev.Duration)
			}

			byMachine[op.Machine] = append(byMachine[op.Machine], placed{
				start: op.ScheduledTime,
				end:   op.ScheduledTime + op.Duration - 1,
			})
			machineWork[op.Machine] += op.Duration
		}

		jobBound = max(jobBound, job.TotalWork())
	}

	// No overlap on any machine
	for _, ops := range byMachine {
		for i := 0; i < len(ops); i++ {
			for j := i + 1; j < len(ops); j++ {
				disjoint := ops[i].end < ops[j].start || ops[j].end < ops[i].start
				assert.True(t, disjoint, "operations overlap: %v %v", ops[i], ops[j])
			}
		}
	}

	// Makespan lower bounds
	assert.GreaterOrEqual(t, schedule.Makespan(), jobBound)
	for _, work := range machineWork {
		assert.GreaterOrEqual(t, schedule.Makespan(), work)
	}
}

func TestScheduleInvariantsLongestFirst(t *testing.T) {
	schedule, err := New(propertyInstance())
	require.NoError(t, err)
	schedule.Verify = true

	require.NoError(t, schedule.RunLongestFirst())
	checkScheduleProperties(t, schedule)
}

func TestScheduleInvariantsHeuristics(t *testing.T) {
	for _, name := range HeuristicNames() {
		heuristic, err := HeuristicByName(name)
		require.NoError(t, err)

		schedule, err := New(propertyInstance())
		require.NoError(t, err)
		schedule.Verify = true

		require.NoError(t, schedule.Run(heuristic))
		checkScheduleProperties(t, schedule)
	}
}

func TestScheduleReusePlacementState(t *testing.T) {
	// New resets job readiness and operation start times, so an
	// instance can be scheduled again from scratch.
	inst := propertyInstance()

	schedule, err := New(inst)
	require.NoError(t, err)
	require.NoError(t, schedule.RunLongestFirst())
	timings := schedule.PerJobTimings()

	schedule, err = New(inst)
	require.NoError(t, err)
	require.NoError(t, schedule.RunLongestFirst())

	assert.Equal(t, timings, schedule.PerJobTimings())
}
