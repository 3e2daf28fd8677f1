package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{ID: "a", W: 2, L: 5},
		{ID: "b", W: 4, L: 3},
		{ID: "c", W: 3, L: 3},
		{ID: "d", W: 6, L: 1},
	}
}

func TestOrientItems_Wide(t *testing.T) {
	items := testItems()
	OrientItems(items, OrientWide)

	for _, it := range items {
		assert.GreaterOrEqual(t, it.W, it.L, "item %s", it.ID)
	}
}

func TestOrientItems_Idempotent(t *testing.T) {
	once := testItems()
	OrientItems(once, OrientWide)
	twice := append([]Item(nil), once...)
	OrientItems(twice, OrientWide)
	assert.Equal(t, once, twice)
}

func TestOrientItems_LongAfterWideNormalizesToLong(t *testing.T) {
	items := testItems()
	OrientItems(items, OrientWide)
	OrientItems(items, OrientLong)

	for _, it := range items {
		assert.LessOrEqual(t, it.W, it.L, "item %s", it.ID)
	}
}

func TestSortItems_AreaDescending(t *testing.T) {
	items := testItems()
	SortItems(items, SortBy{Key: SortByArea, Reverse: true})

	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].Area(), items[i].Area())
	}
}

func TestSortItems_PerimeterAscending(t *testing.T) {
	items := testItems()
	SortItems(items, SortBy{Key: SortByPerimeter})

	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i-1].Perimeter(), items[i].Perimeter())
	}
}

func TestSortItems_SideRatio(t *testing.T) {
	items := testItems()
	SortItems(items, SortBy{Key: SortBySideRatio})

	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i-1].SideRatio(), items[i].SideRatio())
	}
}

func TestSortItems_EqualKeysFallBackToID(t *testing.T) {
	items := []Item{
		{ID: "z", W: 2, L: 2},
		{ID: "a", W: 4, L: 1},
		{ID: "m", W: 1, L: 4},
	}
	// all areas equal: id order decides
	SortItems(items, SortBy{Key: SortByArea})
	require.Equal(t, "a", items[0].ID)
	require.Equal(t, "m", items[1].ID)
	require.Equal(t, "z", items[2].ID)
}

func TestSortItems_Deterministic(t *testing.T) {
	a, b := testItems(), testItems()
	SortItems(a, SortBy{Key: SortByArea, Reverse: true})
	SortItems(b, SortBy{Key: SortByArea, Reverse: true})
	assert.Equal(t, a, b)
}
