package jobshop

import (
	"fmt"
	"sort"

	"github.com/srand/shopsched/pkg/utils"
)

// Favor the job with the longest operation at the current stage (LPT).
func LongestDuration(a, b *Job, stage int) bool {
	return a.Ops[stage].Duration > b.Ops[stage].Duration
}

// Favor the job with the shortest operation at the current stage (SPT).
func ShortestDuration(a, b *Job, stage int) bool {
	return a.Ops[stage].Duration < b.Ops[stage].Duration
}

// Favor the job with the most processing time left from the current
// stage to the end of its sequence (MWR).
func MostWorkRemaining(a, b *Job, stage int) bool {
	return a.RemainingWork(stage) > b.RemainingWork(stage)
}

var heuristics = map[string]Heuristic{
	"longest":   LongestDuration,
	"shortest":  ShortestDuration,
	"most-work": MostWorkRemaining,
}

// Returns the heuristic registered under the given name.
func HeuristicByName(name string) (Heuristic, error) {
	heuristic, ok := heuristics[name]
	if !ok {
		return nil, fmt.Errorf("%w: no such heuristic: %s", utils.ErrNotFound, name)
	}
	return heuristic, nil
}

// Returns the names of all registered heuristics, sorted.
func HeuristicNames() []string {
	names := make([]string, 0, len(heuristics))
	for name := range heuristics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
