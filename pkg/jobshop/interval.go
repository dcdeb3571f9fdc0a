package jobshop

// A contiguous time range on one machine, either free or occupied
// by the operation of a single job. Bounds are inclusive.
// The tail interval of every timeline is open ended.
type Interval struct {
	// First time unit covered by the interval.
	Start int

	// Last time unit covered by the interval. Ignored when Open.
	End int

	// True for the unbounded tail interval.
	Open bool

	// Id of the occupying job, or -1 when the interval is free.
	Job int
}

// Create a free interval with the given inclusive bounds.
func freeInterval(start, end int) Interval {
	return Interval{Start: start, End: end, Job: -1}
}

// Create the unbounded free tail interval.
func openInterval(start int) Interval {
	return Interval{Start: start, Open: true, Job: -1}
}

// Returns true if the interval is bound to an operation.
func (iv *Interval) Occupied() bool {
	return iv.Job >= 0
}

// Returns true if the interval covers the given point in time.
func (iv *Interval) Includes(time int) bool {
	return iv.Start <= time && (iv.Open || time <= iv.End)
}

// Returns true if an operation of the given duration, starting no
// earlier than from, would still end within the interval.
func (iv *Interval) Fits(from, duration int) bool {
	if iv.Open {
		return true
	}
	return max(iv.Start, from)+duration-1 <= iv.End
}
