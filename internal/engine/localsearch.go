package engine

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AlkiviadisAleiferis/hyperpack/model"
)

// MaxNeighborsThrottle caps the neighbors evaluated per node when throttling
// is on. 2500 corresponds to a ~71 item instance's full 2-opt neighborhood.
const MaxNeighborsThrottle = 2500

// Control carries the cross-cutting stop signals into a search: the wall
// clock deadline and, under hyper-search, the cell shared between workers.
// The zero value imposes no limits.
type Control struct {
	Deadline time.Time
	Shared   *SharedBest
	Worker   int
	Log      *logrus.Logger
}

func (ctl Control) expired() bool {
	return !ctl.Deadline.IsZero() && !time.Now().Before(ctl.Deadline)
}

// sharedOptimum reports whether any worker has broadcast an objective at or
// above optimum through the shared cell.
func (ctl Control) sharedOptimum(optimum float64) bool {
	return ctl.Shared != nil && ctl.Shared.Max() >= optimum
}

// swapPair is one 2-opt neighbor: the sequence with positions I and J
// exchanged.
type swapPair struct {
	I, J int
}

// neighborhood returns every position pair (i, j), i < j, in lexicographic
// order. This is the canonical neighbor evaluation order.
func neighborhood(n int) []swapPair {
	pairs := make([]swapPair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, swapPair{i, j})
		}
	}
	return pairs
}

// acceptNode decides whether a neighbor's solution becomes the new node. In
// strip packing mode with no explicit minimum height, only solutions holding
// every item may be accepted, since the imaginary height tightens from them.
func (r *Runner) acceptNode(newObj, bestObj float64) bool {
	if newObj <= bestObj {
		return false
	}
	if !r.StripPack || r.ContainerMinHeight > 0 {
		return true
	}
	return len(r.Solution[StripPackContainerID]) == len(r.Items)
}

// LocalSearch hill-climbs over item sequences with the 2-opt neighborhood,
// re-running the construction dispatcher per neighbor, until no neighbor
// improves the objective, the optimum is reached, or a stop signal fires.
//
// Un-throttled, each node moves to the best improving neighbor after a full
// neighborhood scan. Throttled, the node moves to the first improving
// neighbor and at most MaxNeighborsThrottle neighbors are evaluated per node.
//
// The best solution found is retained on the runner and returned together
// with its per-container utilizations.
func (r *Runner) LocalSearch(throttle bool, ctl Control) (model.Solution, map[string]float64) {
	r.Solve(nil)
	bestObj := r.Objective()
	optimum := r.OptimumObjective()

	retainedSolution := r.Solution.Copy()
	retainedUtils := copyUtils(r.Utils)

	if r.StripPack {
		// the initial node tightens the imaginary height too, under the
		// same condition accepted nodes do
		if r.ContainerMinHeight > 0 || len(r.Solution[StripPackContainerID]) == len(r.Items) {
			r.updateContainerHeight()
		}
		r.heightsHistory = []int{r.ContainerHeight}
	}

	node := model.CopyItems(r.Items)
	pairs := neighborhood(len(node))

	for bestObj < optimum {
		var (
			neighborFound bool
			outOfTime     bool
			globalOptima  bool
			processed     int

			bestSwap swapPair
			bestVal  float64
		)

		for _, sw := range pairs {
			seq := model.CopyItems(node)
			seq[sw.I], seq[sw.J] = seq[sw.J], seq[sw.I]

			r.Solve(seq)
			newObj := r.Objective()
			processed++

			if r.acceptNode(newObj, bestObj) {
				if throttle {
					// first improvement: move immediately
					node = seq
					bestObj = newObj
					retainedSolution = r.Solution.Copy()
					retainedUtils = copyUtils(r.Utils)
					r.updateContainerHeight()
					if r.StripPack {
						r.heightsHistory = append(r.heightsHistory, r.ContainerHeight)
					}
					neighborFound = true
					globalOptima = bestObj >= optimum
				} else if !neighborFound || newObj > bestVal {
					neighborFound = true
					bestSwap = sw
					bestVal = newObj
				}
			}

			outOfTime = ctl.expired()
			if outOfTime || globalOptima || (throttle && (neighborFound || processed >= MaxNeighborsThrottle)) {
				break
			}
		}

		if !throttle && neighborFound && !outOfTime {
			// best improvement: re-evaluate the winner to take its solution
			node[bestSwap.I], node[bestSwap.J] = node[bestSwap.J], node[bestSwap.I]
			r.Solve(node)
			bestObj = r.Objective()
			retainedSolution = r.Solution.Copy()
			retainedUtils = copyUtils(r.Utils)
			r.updateContainerHeight()
			if r.StripPack {
				r.heightsHistory = append(r.heightsHistory, r.ContainerHeight)
			}
			globalOptima = bestObj >= optimum
		}

		if ctl.Log != nil {
			ctl.Log.WithFields(logrus.Fields{
				"best_obj":  bestObj,
				"neighbors": processed,
			}).Debug("local search node")
		}

		if !neighborFound || outOfTime || globalOptima || ctl.sharedOptimum(optimum) {
			break
		}
	}

	r.Solution = retainedSolution
	r.Utils = retainedUtils
	return retainedSolution, retainedUtils
}
