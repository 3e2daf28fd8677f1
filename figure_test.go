package hyperpack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlkiviadisAleiferis/hyperpack/model"
)

func figureSolver(t *testing.T, dir, format string) *Solver {
	t.Helper()
	cfg := model.DefaultSettings()
	cfg.Figure = &model.FigureSettings{
		Export: &model.FigureExport{Path: dir, Format: format, FileName: "TestFigure"},
	}
	s, err := New([]model.Container{{ID: "cont", W: 4, L: 4}}, fourSquares(), &cfg)
	require.NoError(t, err)
	return s
}

func TestCreateFigure_SVG(t *testing.T) {
	dir := t.TempDir()
	s := figureSolver(t, dir, "svg")

	// without a solution the figure operation warns and does nothing
	require.NoError(t, s.CreateFigure())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	s.Solve()
	require.NoError(t, s.CreateFigure())

	data, err := os.ReadFile(filepath.Join(dir, "TestFigure__cont.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestCreateFigure_AllFormats(t *testing.T) {
	for _, format := range model.AcceptedExportFormats {
		dir := t.TempDir()
		s := figureSolver(t, dir, format)
		s.Solve()

		require.NoError(t, s.CreateFigure(), "format %s", format)
		_, err := os.Stat(filepath.Join(dir, "TestFigure__cont."+format))
		assert.NoError(t, err, "format %s", format)
	}
}

func TestCreateFigure_MissingExportPath(t *testing.T) {
	s := figureSolver(t, filepath.Join(t.TempDir(), "nope"), "svg")
	s.Solve()

	err := s.CreateFigure()
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrSettings))
}

func TestExportLabels_Facade(t *testing.T) {
	dir := t.TempDir()
	s, err := New([]model.Container{{ID: "cont", W: 4, L: 4}}, fourSquares(), nil)
	require.NoError(t, err)
	s.Solve()

	path := filepath.Join(dir, "labels.pdf")
	require.NoError(t, s.ExportLabels(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
