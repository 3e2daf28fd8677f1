package engine

import (
	"math"

	"github.com/AlkiviadisAleiferis/hyperpack/model"
)

// StripPackContainerID names the single imaginary container of a strip
// packing run.
const StripPackContainerID = "strip-pack-container"

// MaxWLRatio seeds the imaginary container's height as a multiple of the
// strip width.
const MaxWLRatio = 10

// lastContainerDamping biases multi-container objectives toward filling the
// earlier containers completely rather than spreading items.
const lastContainerDamping = 0.7

// Runner owns the state of one search run: the problem instance, the active
// strategy and the last produced solution. One Runner is single-threaded;
// hyper-search workers each clone their own.
type Runner struct {
	Containers []model.Container
	Items      []model.Item
	Strategy   Strategy
	Rotation   bool

	StripPack          bool
	ContainerHeight    int // imaginary height, strip packing only
	ContainerMinHeight int // floor for height tightening; 0 = unset

	// outputs of the latest Solve
	Solution model.Solution
	Utils    map[string]float64

	heightsHistory []int
}

// Clone returns an independent runner with deep copies of the mutable state.
func (r *Runner) Clone() *Runner {
	c := *r
	c.Items = model.CopyItems(r.Items)
	c.Containers = append([]model.Container(nil), r.Containers...)
	c.Strategy = r.Strategy.Copy()
	c.Solution = r.Solution.Copy()
	c.Utils = copyUtils(r.Utils)
	c.heightsHistory = append([]int(nil), r.heightsHistory...)
	return &c
}

func copyUtils(utils map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(utils))
	for k, v := range utils {
		out[k] = v
	}
	return out
}

// effectiveHeight returns the container length construct should use.
func (r *Runner) effectiveHeight(c model.Container) int {
	if r.StripPack {
		return r.ContainerHeight
	}
	return c.L
}

// Solve runs the construction heuristic over every container in order,
// consuming the sequence of items. A nil sequence solves for the runner's
// items. The solution and per-container utilizations are stored on the
// runner and returned.
func (r *Runner) Solve(sequence []model.Item) (model.Solution, map[string]float64) {
	if sequence == nil {
		sequence = r.Items
	}
	remaining := model.CopyItems(sequence)

	solution := make(model.Solution, len(r.Containers))
	utils := make(map[string]float64, len(r.Containers))

	for _, cont := range r.Containers {
		solution[cont.ID] = model.ContainerSolution{}
		utils[cont.ID] = 0
		if len(remaining) == 0 {
			continue
		}
		var placements model.ContainerSolution
		var util float64
		placements, remaining, util = construct(
			cont.W, r.effectiveHeight(cont), remaining, r.Strategy, r.Rotation, r.StripPack,
		)
		solution[cont.ID] = placements
		utils[cont.ID] = util
	}

	r.Solution = solution
	r.Utils = utils
	return solution, utils
}

// Objective folds the per-container utilizations into the scalar the search
// layers compare. A single container scores its utilization; with several
// containers the last one is damped so the search concentrates fill in the
// earlier ones.
func (r *Runner) Objective() float64 {
	if len(r.Containers) == 1 {
		return r.Utils[r.Containers[0].ID]
	}
	total := 0.0
	last := len(r.Containers) - 1
	for i, cont := range r.Containers {
		if i == last {
			total += lastContainerDamping * r.Utils[cont.ID]
		} else {
			total += r.Utils[cont.ID]
		}
	}
	return total
}

// OptimumObjective is the objective of a solution with every container at
// full utilization. Strip packing has no finite optimum: the height keeps
// shrinking.
func (r *Runner) OptimumObjective() float64 {
	if r.StripPack {
		return math.Inf(1)
	}
	if len(r.Containers) == 1 {
		return 1
	}
	return float64(len(r.Containers)-1) + lastContainerDamping
}

// updateContainerHeight tightens the imaginary container height to the
// current solution's stack height, floored by the configured minimum.
// No-op outside strip packing.
func (r *Runner) updateContainerHeight() {
	if !r.StripPack {
		return
	}
	cs, ok := r.Solution[StripPackContainerID]
	if !ok || len(r.Solution) == 0 {
		r.ContainerHeight = r.Containers[0].W * MaxWLRatio
		return
	}
	height := cs.MaxHeight()
	if r.ContainerMinHeight > 0 && height < r.ContainerMinHeight {
		height = r.ContainerMinHeight
	}
	r.ContainerHeight = height
}
