package jobshop

import (
	"fmt"

	"github.com/srand/shopsched/pkg/utils"
)

// A single unit of work within a job.
// Bound to one machine for a fixed duration.
type Operation struct {
	// The machine that must execute the operation.
	Machine int

	// Processing time on the machine. Always positive.
	Duration int

	// Position of the operation within its job's sequence.
	Stage int

	// Start time assigned by the scheduler, or -1 while unplaced.
	ScheduledTime int
}

// An ordered sequence of operations, executed one after another.
type Job struct {
	// The identity of the job.
	ID int

	// The operations of the job, in execution order.
	Ops []Operation

	// Completion time of the most recently placed operation.
	ReadyTime int
}

// Returns the total processing time of the job's operations from
// the given stage to the end of its sequence.
func (j *Job) RemainingWork(stage int) int {
	work := 0
	for _, op := range j.Ops[stage:] {
		work += op.Duration
	}
	return work
}

// Returns the total processing time of all operations of the job.
func (j *Job) TotalWork() int {
	return j.RemainingWork(0)
}

// A job shop problem instance.
type Instance struct {
	// Number of machines. Machine ids range from 0 to Machines-1.
	Machines int

	// The jobs to be scheduled, ordered by id.
	Jobs []*Job
}

// Returns the number of stages, i.e. the length of every job's
// operation sequence.
func (in *Instance) Stages() int {
	if len(in.Jobs) == 0 {
		return 0
	}
	return len(in.Jobs[0].Ops)
}

// Verify that the instance is well formed:
// all jobs have the same number of operations, all durations are
// positive and all machine ids are in range.
func (in *Instance) Validate() error {
	if in.Machines < 1 {
		return fmt.Errorf("%w: machine count %d", utils.ErrMalformedInstance, in.Machines)
	}

	stages := in.Stages()

	for _, job := range in.Jobs {
		if len(job.Ops) != stages {
			return fmt.Errorf("%w: job %d has %d operations, expected %d",
				utils.ErrMalformedInstance, job.ID, len(job.Ops), stages)
		}

		for _, op := range job.Ops {
			if op.Duration <= 0 {
				return fmt.Errorf("%w: job %d, stage %d: duration %d",
					utils.ErrMalformedInstance, job.ID, op.Stage, op.Duration)
			}
			if op.Machine < 0 || op.Machine >= in.Machines {
				return fmt.Errorf("%w: job %d, stage %d: machine %d",
					utils.ErrMalformedInstance, job.ID, op.Stage, op.Machine)
			}
		}
	}

	return nil
}
