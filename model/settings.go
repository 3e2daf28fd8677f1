package model

import (
	"regexp"
	"runtime"

	"github.com/pkg/errors"
)

// Defaults applied by DefaultSettings.
const (
	DefaultMaxTimeInSeconds = 60
	DefaultWorkersNum       = 1
	DefaultRotation         = true
	DefaultFigureFileName   = "HyperpackFigure"
)

// Figure export formats the native renderers support.
var AcceptedExportFormats = []string{"svg", "html", "pdf", "dxf", "xlsx"}

var figureFileNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,45}$`)

// Settings holds solver configuration.
type Settings struct {
	// MaxTimeInSeconds is the wall clock budget for a search run.
	MaxTimeInSeconds int `json:"max_time_in_seconds"`
	// WorkersNum is the number of hyper-search workers.
	WorkersNum int `json:"workers_num"`
	// Rotation allows 90 degree rotation of items during placement.
	Rotation bool `json:"rotation"`
	// Figure configures solution rendering; nil disables it.
	Figure *FigureSettings `json:"figure,omitempty"`
}

// FigureSettings configures the solution figure operation.
type FigureSettings struct {
	Show   bool          `json:"show"`
	Export *FigureExport `json:"export,omitempty"`
}

// FigureExport configures figure file exportation. One file is written per
// container, named <FileName>__<container id>.<format>.
type FigureExport struct {
	Path     string `json:"path"`
	Format   string `json:"format"`
	FileName string `json:"file_name,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// DefaultSettings returns the settings used when none are provided.
func DefaultSettings() Settings {
	return Settings{
		MaxTimeInSeconds: DefaultMaxTimeInSeconds,
		WorkersNum:       DefaultWorkersNum,
		Rotation:         DefaultRotation,
	}
}

// Validate checks the settings and fills in figure defaults. A warning string
// is returned for non-fatal conditions (more workers than CPU threads).
func (s *Settings) Validate() (warning string, err error) {
	if s.MaxTimeInSeconds < 1 {
		return "", errors.Wrap(ErrSettings, "max_time_in_seconds: value must be a positive integer")
	}
	if s.WorkersNum < 1 {
		return "", errors.Wrap(ErrSettings, "workers_num: value must be a positive integer")
	}
	if s.WorkersNum > runtime.NumCPU() {
		warning = "workers_num exceeds the machine's cpu threads"
	}
	if s.Figure != nil && s.Figure.Export != nil {
		if err := s.Figure.Export.validate(); err != nil {
			return warning, err
		}
	}
	return warning, nil
}

func (e *FigureExport) validate() error {
	if e.Path == "" {
		return errors.Wrap(ErrSettings, "figure export: path wasn't provided")
	}
	if e.Format == "" {
		return errors.Wrap(ErrSettings, "figure export: format wasn't provided")
	}
	ok := false
	for _, f := range AcceptedExportFormats {
		if e.Format == f {
			ok = true
			break
		}
	}
	if !ok {
		return errors.Wrapf(ErrSettings, "figure export: format %q not in (svg, html, pdf, dxf, xlsx)", e.Format)
	}
	if e.FileName == "" {
		e.FileName = DefaultFigureFileName
	} else if !figureFileNameRe.MatchString(e.FileName) {
		return errors.Wrap(ErrSettings, "figure export: file_name has improper characters")
	}
	if e.Width < 0 || e.Height < 0 {
		return errors.Wrap(ErrSettings, "figure export: width and height must be positive integers")
	}
	return nil
}
