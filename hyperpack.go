// Package hyperpack solves 2D rectangular bin packing and strip packing
// problems with a three layer heuristic stack: a point generation
// construction heuristic, a 2-opt hill climbing local search over item
// sequences, and a hyper-search enumerating potential-points strategies,
// optionally spread across workers sharing a best-utilization cell.
package hyperpack

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/AlkiviadisAleiferis/hyperpack/internal/engine"
	"github.com/AlkiviadisAleiferis/hyperpack/model"
)

// StripPackContainerID is the id of the imaginary container used in strip
// packing mode.
const StripPackContainerID = engine.StripPackContainerID

// DefaultPotentialPointsStrategy is the pool-drain order used until the
// caller sets another one.
var DefaultPotentialPointsStrategy = engine.DefaultStrategy().Tags()

// Solver is the problem instance: items, containers and settings, plus the
// latest solution. Mutating items, containers or the strategy resets the
// solution; mutating settings does not.
type Solver struct {
	items      []model.Item
	containers []model.Container
	settings   model.Settings
	strategy   engine.Strategy

	stripPack          bool
	containerHeight    int
	containerMinHeight int // 0 = unset

	solution     model.Solution
	utils        map[string]float64
	bestStrategy engine.Strategy
}

// New creates a bin packing solver. A nil settings pointer applies defaults.
func New(containers []model.Container, items []model.Item, settings *model.Settings) (*Solver, error) {
	s := &Solver{strategy: engine.DefaultStrategy()}
	if err := s.applySettings(settings); err != nil {
		return nil, err
	}
	if err := s.SetContainers(containers); err != nil {
		return nil, err
	}
	if err := s.SetItems(items); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStripPack creates a strip packing solver: a single container of the
// given width whose imaginary height starts at MaxWLRatio times the width
// and is tightened as better solutions are found.
func NewStripPack(stripWidth int, items []model.Item, settings *model.Settings) (*Solver, error) {
	if stripWidth <= 0 {
		return nil, errors.Wrap(model.ErrDimensions, "strip pack width must be a positive integer")
	}
	s := &Solver{
		strategy:        engine.DefaultStrategy(),
		stripPack:       true,
		containerHeight: stripWidth * engine.MaxWLRatio,
	}
	if err := s.applySettings(settings); err != nil {
		return nil, err
	}
	s.containers = []model.Container{
		{ID: StripPackContainerID, W: stripWidth, L: s.containerHeight},
	}
	if err := s.SetItems(items); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Solver) applySettings(settings *model.Settings) error {
	if settings == nil {
		s.settings = model.DefaultSettings()
		return nil
	}
	cfg := *settings
	warning, err := cfg.Validate()
	if err != nil {
		return err
	}
	if warning != "" {
		Logger.Warn(warning)
	}
	s.settings = cfg
	return nil
}

func (s *Solver) resetSolution() {
	s.solution = nil
	s.utils = nil
	s.bestStrategy = nil
}

// Items returns the current item sequence.
func (s *Solver) Items() []model.Item { return model.CopyItems(s.items) }

// Containers returns the container sequence.
func (s *Solver) Containers() []model.Container {
	return append([]model.Container(nil), s.containers...)
}

// Settings returns the active settings.
func (s *Solver) Settings() model.Settings { return s.settings }

// StripPack reports whether the solver runs in strip packing mode.
func (s *Solver) StripPack() bool { return s.stripPack }

// SetItems replaces the item set after validation and resets the solution.
func (s *Solver) SetItems(items []model.Item) error {
	if err := model.ValidateItems(items); err != nil {
		return err
	}
	s.items = model.CopyItems(items)
	s.resetSolution()
	return nil
}

// SetContainers replaces the container set after validation and resets the
// solution. Containers cannot be reassigned in strip packing mode.
func (s *Solver) SetContainers(containers []model.Container) error {
	if s.stripPack {
		return errors.Wrap(model.ErrContainers, "can't assign containers when solving strip packing")
	}
	if err := model.ValidateContainers(containers); err != nil {
		return err
	}
	s.containers = append([]model.Container(nil), containers...)
	s.resetSolution()
	return nil
}

// SetSettings replaces the settings after validation. The solution is kept.
func (s *Solver) SetSettings(settings model.Settings) error {
	return s.applySettings(&settings)
}

// PotentialPointsStrategy returns the active strategy's class tags.
func (s *Solver) PotentialPointsStrategy() []string { return s.strategy.Tags() }

// SetPotentialPointsStrategy replaces the strategy and resets the solution.
// Tags must name every known class exactly once.
func (s *Solver) SetPotentialPointsStrategy(tags ...string) error {
	strategy, err := engine.ParseStrategy(tags)
	if err != nil {
		return err
	}
	s.strategy = strategy
	s.resetSolution()
	return nil
}

// OrientItems flips every item into the requested uniform shape. Skipped
// with a warning when rotation is disabled or the orientation is unknown.
// Resets the solution.
func (s *Solver) OrientItems(orientation model.Orientation) {
	if !s.settings.Rotation {
		Logger.Warn("can't orient items, rotation is disabled")
		return
	}
	if !orientation.Valid() {
		Logger.Warnf("orientation parameter %q not valid, orientation skipped", orientation)
		return
	}
	model.OrientItems(s.items, orientation)
	s.resetSolution()
}

// SortItems reorders the item sequence by the given key. Resets the solution.
func (s *Solver) SortItems(by model.SortBy) error {
	if !by.Valid() {
		return errors.Wrapf(model.ErrItems, "unknown sorting key %q", by.Key)
	}
	model.SortItems(s.items, by)
	s.resetSolution()
	return nil
}

// runner builds a fresh engine state from the solver's configuration.
func (s *Solver) runner() *engine.Runner {
	return &engine.Runner{
		Containers:         append([]model.Container(nil), s.containers...),
		Items:              model.CopyItems(s.items),
		Strategy:           s.strategy.Copy(),
		Rotation:           s.settings.Rotation,
		StripPack:          s.stripPack,
		ContainerHeight:    s.containerHeight,
		ContainerMinHeight: s.containerMinHeight,
	}
}

func (s *Solver) deadline(start time.Time) time.Time {
	return start.Add(time.Duration(s.settings.MaxTimeInSeconds) * time.Second)
}

// Solve runs the construction heuristic once over all containers with the
// current item sequence and strategy.
func (s *Solver) Solve() model.Solution {
	r := s.runner()
	solution, utils := r.Solve(nil)
	s.solution = solution
	s.utils = utils
	return solution.Copy()
}

// LocalSearch hill climbs over item sequences starting from the current
// order, keeping the best solution found. In strip packing mode the
// imaginary container height tightened during the search is retained.
func (s *Solver) LocalSearch(throttle bool) model.Solution {
	r := s.runner()
	ctl := engine.Control{Deadline: s.deadline(time.Now()), Log: Logger}
	solution, utils := r.LocalSearch(throttle, ctl)
	s.solution = solution
	s.utils = utils
	if s.stripPack {
		s.containerHeight = r.ContainerHeight
	}
	return solution.Copy()
}

// HyperSearch sorts and orients the items, then runs a local search per
// potential-points strategy across the configured number of workers. The
// strategies searched are every ordering of the six primary classes followed
// by the fixed suffix A'' B'' F E (720 in all); other orderings of those four
// classes are not tried. A zero orientation or sort key skips that
// preprocessor.
//
// With one worker the search runs in place, so in strip packing mode the
// tightened container height is retained; with several workers the workers
// operate on copies and the solver's height is left unchanged.
func (s *Solver) HyperSearch(orientation model.Orientation, sortBy model.SortBy, throttle bool) error {
	if sortBy.Key != "" {
		if err := s.SortItems(sortBy); err != nil {
			return err
		}
	}
	if orientation != "" {
		s.OrientItems(orientation)
	}

	start := time.Now()
	Logger.Info("initiating hypersearch")

	r := s.runner()
	result, err := r.HyperSearch(throttle, s.settings.WorkersNum, s.deadline(start), Logger)
	if err != nil {
		return err
	}

	s.solution = result.Solution
	s.utils = result.Utils
	s.bestStrategy = result.Strategy
	if s.stripPack && s.settings.WorkersNum <= 1 {
		s.containerHeight = r.ContainerHeight
	}

	Logger.Info("hypersearch terminated")
	Logger.Debugf("execution time: %v", time.Since(start))
	return nil
}

// Solution returns the latest solution, nil before any solve.
func (s *Solver) Solution() model.Solution { return s.solution.Copy() }

// Utilization returns the per-container utilization of the latest solution.
func (s *Solver) Utilization() map[string]float64 {
	out := make(map[string]float64, len(s.utils))
	for k, v := range s.utils {
		out[k] = v
	}
	return out
}

// BestStrategy returns the strategy the hyper-search settled on, nil before
// a hyper-search ran.
func (s *Solver) BestStrategy() []string {
	if s.bestStrategy == nil {
		return nil
	}
	return s.bestStrategy.Tags()
}

// ContainerHeight returns the imaginary container height of a strip packing
// solver. Zero outside strip packing mode.
func (s *Solver) ContainerHeight() int { return s.containerHeight }

// SetContainerHeight overrides the imaginary container height. It may not
// drop below the configured minimum height.
func (s *Solver) SetContainerHeight(height int) error {
	if height < 1 {
		return errors.Wrap(model.ErrDimensions, "container height must be a positive integer")
	}
	if s.containerMinHeight > 0 && height < s.containerMinHeight {
		return errors.Wrap(model.ErrContainers, "min container height must be less or equal to actual height")
	}
	s.containerHeight = height
	return nil
}

// ContainerMinHeight returns the height floor, zero when unset.
func (s *Solver) ContainerMinHeight() int { return s.containerMinHeight }

// SetContainerMinHeight sets the floor below which the strip packing search
// may not tighten the container height.
func (s *Solver) SetContainerMinHeight(height int) error {
	if height < 1 {
		return errors.Wrap(model.ErrDimensions, "container min height must be a positive integer")
	}
	if height > s.containerHeight {
		return errors.Wrap(model.ErrContainers, "min container height must be less or equal to actual height")
	}
	s.containerMinHeight = height
	return nil
}

// ResetContainerHeight restores the seed height and clears the minimum.
// No-op outside strip packing mode.
func (s *Solver) ResetContainerHeight() {
	if !s.stripPack {
		return
	}
	s.containerHeight = s.containers[0].W * engine.MaxWLRatio
	s.containerMinHeight = 0
}

// containerHeightFor returns the height figure rendering and solution logging
// should display for a container: the stored length for bin packing, the
// solution stack height (floored by the minimum) for strip packing.
func (s *Solver) containerHeightFor(cont model.Container) int {
	if !s.stripPack {
		return cont.L
	}
	if len(s.solution) == 0 {
		return cont.W * engine.MaxWLRatio
	}
	h := s.solution[cont.ID].MaxHeight()
	if s.containerMinHeight > 0 && h < s.containerMinHeight {
		h = s.containerMinHeight
	}
	return h
}

// LogSolution renders a summary of the latest solution and logs it at info
// level: percentage of items stored, per-container utilization, strip
// packing stack height and the leftover items.
func (s *Solver) LogSolution() string {
	if len(s.solution) == 0 {
		Logger.Warn("no solving operation has been concluded")
		return ""
	}

	var b strings.Builder
	b.WriteString("\nSolution Log:\n")
	placed := s.solution.PlacedCount()
	fmt.Fprintf(&b, "Percent total items stored : %.4f%%\n", float64(placed)*100/float64(len(s.items)))

	for _, cont := range s.containers {
		height := s.containerHeightFor(cont)
		fmt.Fprintf(&b, "Container: %s %dx%d\n", cont.ID, cont.W, height)
		area := 0
		for _, p := range s.solution[cont.ID] {
			area += p.W * p.L
		}
		fmt.Fprintf(&b, "\t[util%%] : %.4f%%\n", float64(area)*100/float64(cont.W*height))
		if s.stripPack {
			fmt.Fprintf(&b, "\t[max height] : %d\n", s.solution[cont.ID].MaxHeight())
		}
	}

	var remaining []string
	for _, it := range s.items {
		found := false
		for _, cs := range s.solution {
			if _, ok := cs[it.ID]; ok {
				found = true
				break
			}
		}
		if !found {
			remaining = append(remaining, it.ID)
		}
	}
	sort.Strings(remaining)
	fmt.Fprintf(&b, "\nRemaining items : %v", remaining)

	out := b.String()
	Logger.Info(out)
	return out
}
