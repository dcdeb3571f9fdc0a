package jobshop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srand/shopsched/pkg/utils"
)

func TestHeuristicByName(t *testing.T) {
	for _, name := range HeuristicNames() {
		heuristic, err := HeuristicByName(name)
		assert.NoError(t, err)
		assert.NotNil(t, heuristic)
	}

	_, err := HeuristicByName("fifo")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestHeuristicNames(t *testing.T) {
	assert.Equal(t, []string{"longest", "most-work", "shortest"}, HeuristicNames())
}

func TestHeuristicOrdering(t *testing.T) {
	inst := newTestInstance(2,
		[][2]int{{0, 3}, {1, 2}},
		[][2]int{{1, 4}, {0, 1}},
	)
	require.Len(t, inst.Jobs, 2)

	a, b := inst.Jobs[0], inst.Jobs[1]

	assert.False(t, LongestDuration(a, b, 0))
	assert.True(t, LongestDuration(b, a, 0))
	assert.True(t, LongestDuration(a, b, 1))

	assert.True(t, ShortestDuration(a, b, 0))
	assert.False(t, ShortestDuration(a, b, 1))

	// Remaining work: job0 5 vs job1 5 at stage 0, 2 vs 1 at stage 1.
	assert.False(t, MostWorkRemaining(a, b, 0))
	assert.False(t, MostWorkRemaining(b, a, 0))
	assert.True(t, MostWorkRemaining(a, b, 1))
}
