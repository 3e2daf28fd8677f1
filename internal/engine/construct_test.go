package engine

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlkiviadisAleiferis/hyperpack/model"
)

// overlaps reports whether two placements share any cell.
func overlaps(a, b model.Placement) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.L && a.Y+a.L > b.Y
}

// assertFeasible checks the universal placement invariants for one container.
func assertFeasible(t *testing.T, w, l int, placements model.ContainerSolution) {
	t.Helper()
	ids := make([]string, 0, len(placements))
	for id := range placements {
		ids = append(ids, id)
	}
	for _, id := range ids {
		p := placements[id]
		assert.GreaterOrEqual(t, p.X, 0)
		assert.GreaterOrEqual(t, p.Y, 0)
		assert.LessOrEqual(t, p.X+p.W, w, "item %s exceeds container width", id)
		assert.LessOrEqual(t, p.Y+p.L, l, "item %s exceeds container length", id)
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			assert.False(t, overlaps(placements[ids[i]], placements[ids[j]]),
				"items %s and %s overlap", ids[i], ids[j])
		}
	}
}

func TestConstruct_ExactFill(t *testing.T) {
	items := []model.Item{
		{ID: "a", W: 2, L: 2},
		{ID: "b", W: 2, L: 2},
		{ID: "c", W: 2, L: 2},
		{ID: "d", W: 2, L: 2},
	}

	placements, remaining, util := construct(4, 4, items, DefaultStrategy(), true, false)

	require.Empty(t, remaining)
	assert.InDelta(t, 1.0, util, 1e-9)
	assertFeasible(t, 4, 4, placements)

	got := map[[2]int]bool{}
	for _, p := range placements {
		got[[2]int{p.X, p.Y}] = true
	}
	assert.Equal(t, map[[2]int]bool{{0, 0}: true, {2, 0}: true, {0, 2}: true, {2, 2}: true}, got)
}

func TestConstruct_RotationRequired(t *testing.T) {
	items := []model.Item{{ID: "a", W: 5, L: 1}}

	placements, remaining, util := construct(1, 5, items, DefaultStrategy(), true, false)
	require.Empty(t, remaining)
	assert.Equal(t, model.Placement{X: 0, Y: 0, W: 1, L: 5}, placements["a"])
	assert.InDelta(t, 1.0, util, 1e-9)
}

func TestConstruct_RotationDisabled(t *testing.T) {
	items := []model.Item{{ID: "a", W: 5, L: 1}}

	placements, remaining, util := construct(1, 5, items, DefaultStrategy(), false, false)
	assert.Empty(t, placements)
	assert.Len(t, remaining, 1)
	assert.Zero(t, util)
}

func TestConstruct_UnplaceableResidue(t *testing.T) {
	items := []model.Item{
		{ID: "a", W: 3, L: 3},
		{ID: "b", W: 1, L: 1},
	}

	placements, remaining, util := construct(3, 3, items, DefaultStrategy(), true, false)

	assert.Equal(t, model.Placement{X: 0, Y: 0, W: 3, L: 3}, placements["a"])
	require.Len(t, remaining, 1)
	assert.Equal(t, "b", remaining[0].ID)
	assert.InDelta(t, 1.0, util, 1e-9)
}

func TestConstruct_PlacedDimsAreStoredOrSwapped(t *testing.T) {
	items := []model.Item{
		{ID: "a", W: 4, L: 1},
		{ID: "b", W: 2, L: 3},
		{ID: "c", W: 1, L: 1},
	}

	placements, _, _ := construct(5, 5, items, DefaultStrategy(), true, false)

	byID := map[string]model.Item{}
	for _, it := range items {
		byID[it.ID] = it
	}
	for id, p := range placements {
		it := byID[id]
		stored := p.W == it.W && p.L == it.L
		swapped := p.W == it.L && p.L == it.W
		assert.True(t, stored || swapped, "item %s placed as %dx%d", id, p.W, p.L)
	}
}

func TestConstruct_Deterministic(t *testing.T) {
	items := []model.Item{
		{ID: "a", W: 3, L: 2},
		{ID: "b", W: 2, L: 2},
		{ID: "c", W: 4, L: 1},
		{ID: "d", W: 1, L: 5},
		{ID: "e", W: 2, L: 3},
	}

	p1, r1, u1 := construct(6, 6, items, DefaultStrategy(), true, false)
	p2, r2, u2 := construct(6, 6, items, DefaultStrategy(), true, false)

	assert.True(t, reflect.DeepEqual(p1, p2))
	assert.Equal(t, r1, r2)
	assert.Equal(t, u1, u2)
}

func TestConstruct_InputItemsUntouched(t *testing.T) {
	items := []model.Item{
		{ID: "a", W: 3, L: 2},
		{ID: "b", W: 2, L: 2},
	}
	orig := model.CopyItems(items)

	construct(6, 6, items, DefaultStrategy(), true, false)

	assert.Equal(t, orig, items)
}

func TestConstruct_FeasibleOnDenseInstance(t *testing.T) {
	// a messy instance exercises the projection classes; every produced
	// placement must stay feasible regardless
	items := []model.Item{
		{ID: "i1", W: 5, L: 3}, {ID: "i2", W: 2, L: 7}, {ID: "i3", W: 4, L: 4},
		{ID: "i4", W: 1, L: 2}, {ID: "i5", W: 6, L: 1}, {ID: "i6", W: 3, L: 3},
		{ID: "i7", W: 2, L: 2}, {ID: "i8", W: 1, L: 1}, {ID: "i9", W: 7, L: 2},
		{ID: "i10", W: 3, L: 5},
	}

	for _, strategy := range []Strategy{DefaultStrategy(), Strategies()[123], Strategies()[700]} {
		placements, remaining, util := construct(10, 10, items, strategy, true, false)
		assertFeasible(t, 10, 10, placements)
		assert.GreaterOrEqual(t, util, 0.0)
		assert.LessOrEqual(t, util, 1.0)
		assert.Len(t, remaining, len(items)-len(placements))
	}
}
