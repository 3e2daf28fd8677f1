package hyperpack

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/AlkiviadisAleiferis/hyperpack/internal/export"
	"github.com/AlkiviadisAleiferis/hyperpack/model"
)

// layouts converts the latest solution into render inputs, one per container,
// in container order.
func (s *Solver) layouts() []export.Layout {
	var out []export.Layout
	for _, cont := range s.containers {
		placements := map[string][4]int{}
		for id, p := range s.solution[cont.ID] {
			placements[id] = [4]int{p.X, p.Y, p.W, p.L}
		}
		out = append(out, export.NewLayout(
			cont.ID, cont.W, s.containerHeightFor(cont), placements, s.utils[cont.ID],
		))
	}
	return out
}

// CreateFigure renders the latest solution according to the figure settings:
// one file per container, named <file_name>__<container id>.<format>, in the
// configured export directory. Without a solution or without an export
// configuration it warns and does nothing.
func (s *Solver) CreateFigure() error {
	if len(s.solution) == 0 {
		Logger.Warn("can't create figure if a solution hasn't been found")
		return nil
	}
	fig := s.settings.Figure
	if fig == nil || fig.Export == nil {
		Logger.Warn("figure operation without an export configuration is obsolete")
		return nil
	}
	exp := fig.Export

	info, err := os.Stat(exp.Path)
	if err != nil {
		return errors.Wrapf(model.ErrSettings, "figure export path %q doesn't exist", exp.Path)
	}
	if !info.IsDir() {
		return errors.Wrapf(model.ErrSettings, "figure export path %q must be a directory", exp.Path)
	}

	for _, layout := range s.layouts() {
		name := fmt.Sprintf("%s__%s.%s", exp.FileName, layout.ContainerID, exp.Format)
		path := filepath.Join(exp.Path, name)

		switch exp.Format {
		case "svg":
			err = export.ExportSVG(path, layout, exp.Width, exp.Height)
		case "html":
			err = export.ExportHTML(path, layout, exp.Width, exp.Height)
		case "pdf":
			err = export.ExportPDF(path, layout)
		case "dxf":
			err = export.ExportDXF(path, layout)
		case "xlsx":
			err = export.ExportXLSX(path, layout)
		default:
			err = errors.Wrapf(model.ErrSettings, "unknown figure export format %q", exp.Format)
		}
		if err != nil {
			return errors.Wrapf(model.ErrFigureExport, "error at figure exportation: %v", err)
		}
		Logger.Infof("exported figure %s", path)
	}
	return nil
}

// ExportLabels writes a PDF of QR-coded labels for every placement of the
// latest solution.
func (s *Solver) ExportLabels(path string) error {
	if len(s.solution) == 0 {
		Logger.Warn("can't export labels if a solution hasn't been found")
		return nil
	}
	if err := export.ExportLabels(path, s.layouts()); err != nil {
		return errors.Wrapf(model.ErrFigureExport, "error at label exportation: %v", err)
	}
	Logger.Infof("exported labels %s", path)
	return nil
}
