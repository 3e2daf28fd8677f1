package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlkiviadisAleiferis/hyperpack/model"
)

func farDeadline() Control {
	return Control{Deadline: time.Now().Add(time.Hour)}
}

func TestLocalSearch_FindsImprovingSwap(t *testing.T) {
	// the given order wastes a cell; swapping the first two items fills the
	// 4x1 container exactly
	r := &Runner{
		Containers: []model.Container{{ID: "c1", W: 4, L: 1}},
		Items: []model.Item{
			{ID: "b", W: 2, L: 1},
			{ID: "a", W: 3, L: 1},
			{ID: "c", W: 1, L: 1},
		},
		Strategy: DefaultStrategy(),
		Rotation: false,
	}

	// sanity: the initial order is suboptimal
	r.Solve(nil)
	require.Less(t, r.Objective(), 1.0)

	solution, utils := r.LocalSearch(false, farDeadline())

	assert.InDelta(t, 1.0, utils["c1"], 1e-9)
	assert.Len(t, solution["c1"], 2)
	assert.Contains(t, solution["c1"], "a")
	assert.Contains(t, solution["c1"], "c")
}

func TestLocalSearch_NeverWorsens(t *testing.T) {
	items := []model.Item{
		{ID: "i1", W: 3, L: 2}, {ID: "i2", W: 2, L: 4}, {ID: "i3", W: 4, L: 1},
		{ID: "i4", W: 1, L: 3}, {ID: "i5", W: 2, L: 2},
	}
	for _, throttle := range []bool{true, false} {
		r := binRunner([]model.Container{{ID: "c1", W: 6, L: 5}}, items)
		r.Solve(nil)
		initObj := r.Objective()

		r.LocalSearch(throttle, farDeadline())

		assert.GreaterOrEqual(t, r.Objective(), initObj, "throttle=%v", throttle)
	}
}

func TestLocalSearch_SingleItemTerminates(t *testing.T) {
	r := binRunner(
		[]model.Container{{ID: "c1", W: 3, L: 3}},
		[]model.Item{{ID: "a", W: 2, L: 2}},
	)

	_, utils := r.LocalSearch(true, farDeadline())
	assert.InDelta(t, 4.0/9.0, utils["c1"], 1e-9)
}

func TestLocalSearch_ExpiredDeadlineReturnsInitSolution(t *testing.T) {
	r := binRunner(
		[]model.Container{{ID: "c1", W: 4, L: 1}},
		[]model.Item{
			{ID: "b", W: 2, L: 1},
			{ID: "a", W: 3, L: 1},
			{ID: "c", W: 1, L: 1},
		},
	)
	ctl := Control{Deadline: time.Now().Add(-time.Second)}

	solution, utils := r.LocalSearch(false, ctl)

	// deadline already passed: the search stops after the first neighbor
	// without losing the construction solution
	require.NotNil(t, solution["c1"])
	assert.Greater(t, utils["c1"], 0.0)
}

// bottomRowStrategy drains B points before A points, so placements spread
// along the strip bottom before stacking up.
func bottomRowStrategy() Strategy {
	return Strategy{
		ClassB, ClassA, ClassC, ClassD,
		ClassBPrime, ClassAPrime, ClassBDouble, ClassADouble,
		ClassE, ClassF,
	}
}

func TestLocalSearch_StripPackTightensHeight(t *testing.T) {
	// four unit squares plus a full-width bar pack into height 2
	r := &Runner{
		Containers: []model.Container{{ID: StripPackContainerID, W: 4, L: 40}},
		Items: []model.Item{
			{ID: "u1", W: 1, L: 1}, {ID: "u2", W: 1, L: 1},
			{ID: "u3", W: 1, L: 1}, {ID: "u4", W: 1, L: 1},
			{ID: "bar", W: 4, L: 1},
		},
		Strategy:        bottomRowStrategy(),
		Rotation:        true,
		StripPack:       true,
		ContainerHeight: 40,
	}

	solution, _ := r.LocalSearch(false, farDeadline())

	assert.Len(t, solution[StripPackContainerID], 5)
	assert.Equal(t, 2, solution[StripPackContainerID].MaxHeight())
	assert.Equal(t, 2, r.ContainerHeight)
}

func TestLocalSearch_StripPackRespectsMinHeight(t *testing.T) {
	r := &Runner{
		Containers: []model.Container{{ID: StripPackContainerID, W: 4, L: 40}},
		Items: []model.Item{
			{ID: "u1", W: 1, L: 1}, {ID: "u2", W: 1, L: 1},
			{ID: "u3", W: 1, L: 1}, {ID: "u4", W: 1, L: 1},
			{ID: "bar", W: 4, L: 1},
		},
		Strategy:           bottomRowStrategy(),
		Rotation:           true,
		StripPack:          true,
		ContainerHeight:    40,
		ContainerMinHeight: 3,
	}

	r.LocalSearch(false, farDeadline())

	assert.GreaterOrEqual(t, r.ContainerHeight, 3)
}

func TestNeighborhood_SizeAndOrder(t *testing.T) {
	pairs := neighborhood(4)
	require.Len(t, pairs, 6)
	assert.Equal(t, []swapPair{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, pairs)
}
