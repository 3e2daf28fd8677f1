package model

import "errors"

// Boundary error kinds. Callers classify failures with errors.Is; messages
// carry the specifics.
var (
	ErrContainers      = errors.New("containers error")
	ErrItems           = errors.New("items error")
	ErrDimensions      = errors.New("dimensions error")
	ErrSettings        = errors.New("settings error")
	ErrPotentialPoints = errors.New("potential points error")
	ErrMultiProcess    = errors.New("multi process error")
	ErrFigureExport    = errors.New("figure export error")
)
