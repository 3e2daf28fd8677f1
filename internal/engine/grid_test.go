package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_FreeRectEmpty(t *testing.T) {
	g := NewGrid(10, 5)

	assert.True(t, g.FreeRect(0, 0, 10, 5))
	assert.True(t, g.FreeRect(3, 2, 4, 2))
}

func TestGrid_FreeRectOutOfBounds(t *testing.T) {
	g := NewGrid(10, 5)

	assert.False(t, g.FreeRect(0, 0, 11, 1))
	assert.False(t, g.FreeRect(0, 0, 1, 6))
	assert.False(t, g.FreeRect(9, 4, 2, 2))
	assert.False(t, g.FreeRect(-1, 0, 2, 2))
}

func TestGrid_MarkBlocksOverlap(t *testing.T) {
	g := NewGrid(10, 10)
	g.Mark(2, 3, 4, 2)

	// any rectangle touching the marked cells is rejected
	assert.False(t, g.FreeRect(2, 3, 4, 2))
	assert.False(t, g.FreeRect(0, 0, 3, 4))
	assert.False(t, g.FreeRect(5, 4, 3, 3))

	// disjoint rectangles still fit
	assert.True(t, g.FreeRect(0, 0, 2, 10))
	assert.True(t, g.FreeRect(6, 0, 4, 3))
	assert.True(t, g.FreeRect(0, 5, 10, 5))
}

func TestGrid_WideRowsCrossWordBoundary(t *testing.T) {
	// widths beyond 64 span several words per row
	g := NewGrid(200, 3)
	require.True(t, g.FreeRect(0, 0, 200, 3))

	g.Mark(60, 1, 10, 1)

	assert.False(t, g.FreeRect(0, 0, 200, 3))
	assert.False(t, g.FreeRect(63, 1, 2, 1))
	assert.True(t, g.FreeRect(0, 0, 60, 3))
	assert.True(t, g.FreeRect(70, 0, 130, 3))
	assert.True(t, g.FreeRect(0, 2, 200, 1))
}

func TestGrid_Reset(t *testing.T) {
	g := NewGrid(8, 8)
	g.Mark(0, 0, 8, 8)
	require.False(t, g.FreeRect(0, 0, 1, 1))

	g.Reset()
	assert.True(t, g.FreeRect(0, 0, 8, 8))
}
