package jobshop

import (
	"fmt"
	"slices"

	"github.com/srand/shopsched/pkg/utils"
)

// The schedule of a single machine: an ordered sequence of intervals
// partitioning the time axis from zero to infinity.
//
// Invariants: intervals are sorted by start time, pairwise
// non-overlapping and gap free. The last interval is always free and
// open ended. Adjacent free intervals are not merged after splitting.
type Timeline struct {
	intervals []Interval
}

// Create an empty timeline consisting of a single unbounded free interval.
func NewTimeline() *Timeline {
	return &Timeline{
		intervals: []Interval{openInterval(0)},
	}
}

// Returns the index of the interval covering the given point in time.
// Intervals are visited in time order, so the first match is the only one.
func (tl *Timeline) IntervalAt(time int) int {
	for i := range tl.intervals {
		if tl.intervals[i].Includes(time) {
			return i
		}
	}
	return -1
}

// Returns the time at which the machine becomes permanently idle,
// i.e. the total length of the committed schedule.
func (tl *Timeline) Length() int {
	last := &tl.intervals[len(tl.intervals)-1]
	if last.Occupied() {
		return last.End + 1
	}
	return last.Start
}

// Returns the number of intervals in the timeline.
func (tl *Timeline) NumIntervals() int {
	return len(tl.intervals)
}

// Insert an interval immediately before the interval at the given index.
func (tl *Timeline) insertBefore(index int, iv Interval) {
	tl.intervals = slices.Insert(tl.intervals, index, iv)
}

// Insert an interval immediately after the interval at the given index.
func (tl *Timeline) insertAfter(index int, iv Interval) {
	tl.intervals = slices.Insert(tl.intervals, index+1, iv)
}

// Returns the id of the job occupying the machine at each time unit
// from 0 up to, but not including, limit. Idle units are -1.
func (tl *Timeline) RowSnapshot(limit int) []int {
	row := make([]int, 0, limit)
	for i := range tl.intervals {
		iv := &tl.intervals[i]
		for t := iv.Start; t < limit && iv.Includes(t); t++ {
			row = append(row, iv.Job)
		}
		if len(row) >= limit {
			break
		}
	}
	return row
}

// Verify the timeline invariants: coverage starts at zero, intervals
// are contiguous and in order, and only the tail is open ended.
func (tl *Timeline) Check() error {
	if len(tl.intervals) == 0 {
		return fmt.Errorf("%w: empty timeline", utils.ErrInvariantViolation)
	}

	if tl.intervals[0].Start != 0 {
		return fmt.Errorf("%w: coverage starts at %d", utils.ErrInvariantViolation, tl.intervals[0].Start)
	}

	for i := range tl.intervals {
		iv := &tl.intervals[i]
		last := i == len(tl.intervals)-1

		if iv.Open != last {
			return fmt.Errorf("%w: open interval at index %d of %d",
				utils.ErrInvariantViolation, i, len(tl.intervals))
		}
		if iv.Open && iv.Occupied() {
			return fmt.Errorf("%w: occupied tail interval", utils.ErrInvariantViolation)
		}
		if !iv.Open {
			if iv.End < iv.Start {
				return fmt.Errorf("%w: interval [%d, %d]", utils.ErrInvariantViolation, iv.Start, iv.End)
			}
			if tl.intervals[i+1].Start != iv.End+1 {
				return fmt.Errorf("%w: gap or overlap after time %d", utils.ErrInvariantViolation, iv.End)
			}
		}
	}

	return nil
}
