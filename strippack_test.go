package hyperpack

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlkiviadisAleiferis/hyperpack/model"
)

func stripItems() []model.Item {
	return []model.Item{
		{ID: "u1", W: 1, L: 1}, {ID: "u2", W: 1, L: 1},
		{ID: "u3", W: 1, L: 1}, {ID: "u4", W: 1, L: 1},
		{ID: "bar", W: 4, L: 1},
	}
}

func TestNewStripPack(t *testing.T) {
	s, err := NewStripPack(4, stripItems(), nil)
	require.NoError(t, err)

	assert.True(t, s.StripPack())
	assert.Equal(t, 40, s.ContainerHeight(), "seed height is 10x the strip width")
	conts := s.Containers()
	require.Len(t, conts, 1)
	assert.Equal(t, StripPackContainerID, conts[0].ID)

	_, err = NewStripPack(0, stripItems(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrDimensions))
}

func TestStripPack_ContainersLocked(t *testing.T) {
	s, err := NewStripPack(4, stripItems(), nil)
	require.NoError(t, err)

	err = s.SetContainers([]model.Container{{ID: "c", W: 5, L: 5}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrContainers))
}

func TestStripPack_HyperSearchTightensHeight(t *testing.T) {
	s, err := NewStripPack(4, stripItems(), nil)
	require.NoError(t, err)

	err = s.HyperSearch(model.OrientWide, model.SortBy{Key: model.SortByArea, Reverse: true}, true)
	require.NoError(t, err)

	solution := s.Solution()
	require.Len(t, solution[StripPackContainerID], 5, "all items placed")
	assert.Equal(t, 2, solution[StripPackContainerID].MaxHeight())
	assert.Equal(t, 2, s.ContainerHeight(), "single worker run retains the tightened height")
}

func TestStripPack_MultiWorkerLeavesHeightUntouched(t *testing.T) {
	cfg := model.DefaultSettings()
	cfg.WorkersNum = 2

	s, err := NewStripPack(4, stripItems(), &cfg)
	require.NoError(t, err)

	err = s.HyperSearch(model.OrientWide, model.SortBy{Key: model.SortByArea, Reverse: true}, true)
	require.NoError(t, err)

	require.Len(t, s.Solution()[StripPackContainerID], 5)
	assert.Equal(t, 40, s.ContainerHeight(), "workers operate on copies")
}

func TestStripPack_HeightAccessors(t *testing.T) {
	s, err := NewStripPack(4, stripItems(), nil)
	require.NoError(t, err)

	err = s.SetContainerMinHeight(50)
	require.Error(t, err, "min height above the current height")

	require.NoError(t, s.SetContainerMinHeight(3))
	assert.Equal(t, 3, s.ContainerMinHeight())

	err = s.SetContainerHeight(2)
	require.Error(t, err, "height below the minimum")
	require.NoError(t, s.SetContainerHeight(10))
	assert.Equal(t, 10, s.ContainerHeight())

	s.ResetContainerHeight()
	assert.Equal(t, 40, s.ContainerHeight())
	assert.Zero(t, s.ContainerMinHeight())
}

func TestStripPack_MinHeightFloorsTightening(t *testing.T) {
	s, err := NewStripPack(4, stripItems(), nil)
	require.NoError(t, err)
	require.NoError(t, s.SetContainerMinHeight(3))

	err = s.HyperSearch(model.OrientWide, model.SortBy{Key: model.SortByArea, Reverse: true}, true)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, s.ContainerHeight(), 3)
}
