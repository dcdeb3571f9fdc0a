package jobshop

import (
	"fmt"
	"slices"
	"sort"

	"github.com/srand/shopsched/pkg/log"
	"github.com/srand/shopsched/pkg/utils"
)

// Compares the priority of two jobs at the given stage.
// Returns true if job a should be placed before job b.
type Heuristic func(a, b *Job, stage int) bool

// The mutable state of a scheduling run: one timeline per machine
// plus the instance being scheduled. All mutation of timelines and
// job readiness happens through methods on this type.
type Schedule struct {
	// The instance being scheduled.
	inst *Instance

	// One timeline per machine, indexed by machine id.
	table []*Timeline

	// Verify timeline invariants after every placement.
	Verify bool
}

// Create a schedule for the given instance.
// The instance is validated before any state is built.
func New(inst *Instance) (*Schedule, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	table := make([]*Timeline, inst.Machines)
	for i := range table {
		table[i] = NewTimeline()
	}

	for _, job := range inst.Jobs {
		job.ReadyTime = 0
		for i := range job.Ops {
			job.Ops[i].ScheduledTime = -1
		}
	}

	return &Schedule{
		inst:  inst,
		table: table,
	}, nil
}

// Returns the instance being scheduled.
func (s *Schedule) Instance() *Instance {
	return s.inst
}

// Returns the number of machines.
func (s *Schedule) Machines() int {
	return s.inst.Machines
}

// Returns the timeline of the given machine.
func (s *Schedule) Timeline(machine int) *Timeline {
	return s.table[machine]
}

// Schedule all jobs stage by stage with the given job order heuristic.
// At each stage, jobs are sorted from a fresh ascending id order by the
// heuristic and their operations placed in the resulting order.
// The sort is not stable; jobs of equal priority may be placed in
// either order.
func (s *Schedule) Run(heuristic Heuristic) error {
	for stage := 0; stage < s.inst.Stages(); stage++ {
		order := slices.Clone(s.inst.Jobs)
		sort.Slice(order, func(i, j int) bool {
			return heuristic(order[i], order[j], stage)
		})

		log.Debugf("run - stage - index: %d, jobs: %d", stage, len(order))

		for _, job := range order {
			if err := s.place(job, stage); err != nil {
				return err
			}
		}
	}

	return s.checkComplete()
}

// Schedule all jobs stage by stage, longest operation first.
// At each stage, jobs are stable sorted by descending duration of their
// operation at that stage; ties keep the order left by the previous
// stage. Placing long operations early keeps them from being forced to
// the end of a machine's schedule.
func (s *Schedule) RunLongestFirst() error {
	order := slices.Clone(s.inst.Jobs)

	for stage := 0; stage < s.inst.Stages(); stage++ {
		sort.SliceStable(order, func(i, j int) bool {
			return order[i].Ops[stage].Duration > order[j].Ops[stage].Duration
		})

		log.Debugf("run - stage - index: %d, jobs: %d", stage, len(order))

		for _, job := range order {
			if err := s.place(job, stage); err != nil {
				return err
			}
		}
	}

	return s.checkComplete()
}

// Place a job's operation at the given stage into the first free
// interval on its machine that can hold it, no earlier than the job's
// ready time. The chosen interval is bound to the job and narrowed to
// the operation's exact bounds; leftover time on either side becomes
// new free intervals.
func (s *Schedule) place(job *Job, stage int) error {
	op := &job.Ops[stage]
	tl := s.table[op.Machine]

	index := tl.IntervalAt(job.ReadyTime)
	if index < 0 {
		return fmt.Errorf("%w: no interval at time %d on machine %d",
			utils.ErrInvariantViolation, job.ReadyTime, op.Machine)
	}

	// The unbounded tail guarantees termination.
	for tl.intervals[index].Occupied() || !tl.intervals[index].Fits(job.ReadyTime, op.Duration) {
		index++
	}

	ivStart := tl.intervals[index].Start
	ivEnd := tl.intervals[index].End
	ivOpen := tl.intervals[index].Open

	start := max(ivStart, job.ReadyTime)
	end := start + op.Duration - 1

	tl.intervals[index] = Interval{Start: start, End: end, Job: job.ID}

	if start > ivStart {
		tl.insertBefore(index, freeInterval(ivStart, start-1))
		index++
	}

	if ivOpen {
		tl.insertAfter(index, openInterval(end+1))
	} else if end < ivEnd {
		tl.insertAfter(index, freeInterval(end+1, ivEnd))
	}

	op.ScheduledTime = start
	job.ReadyTime = end + 1

	log.Tracef("put - task - job: %d, stage: %d, machine: %d, start: %d, end: %d",
		job.ID, stage, op.Machine, start, end)

	if s.Verify {
		if err := tl.Check(); err != nil {
			return err
		}
	}

	return nil
}

// Verify that every operation has been placed.
func (s *Schedule) checkComplete() error {
	if !s.Verify {
		return nil
	}

	for _, job := range s.inst.Jobs {
		for i := range job.Ops {
			if job.Ops[i].ScheduledTime < 0 {
				return fmt.Errorf("%w: job %d, stage %d left unplaced",
					utils.ErrInvariantViolation, job.ID, i)
			}
		}
	}

	return nil
}

// Returns the total length of the schedule, i.e. the time at which the
// last machine becomes permanently idle.
func (s *Schedule) Makespan() int {
	makespan := 0
	for _, tl := range s.table {
		makespan = max(makespan, tl.Length())
	}
	return makespan
}

// Returns the id of the job occupying the given machine at each time
// unit from 0 up to, but not including, limit. Idle units are -1.
func (s *Schedule) RowSnapshot(machine, limit int) []int {
	return s.table[machine].RowSnapshot(limit)
}

// Returns the scheduled start times of every job's operations, in
// stage order, jobs in ascending id order.
func (s *Schedule) PerJobTimings() [][]int {
	timings := make([][]int, len(s.inst.Jobs))
	for i, job := range s.inst.Jobs {
		times := make([]int, len(job.Ops))
		for k := range job.Ops {
			times[k] = job.Ops[k].ScheduledTime
		}
		timings[i] = times
	}
	return timings
}
