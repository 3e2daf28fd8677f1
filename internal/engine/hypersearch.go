package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/AlkiviadisAleiferis/hyperpack/model"
)

// workerFailed marks a worker's slot in the shared cell after a fault.
const workerFailed = -1

// SharedBest is the single piece of cross-worker state: one objective slot
// per worker, guarded by a mutex. Workers publish strictly better objectives
// into their slot and poll Max between strategies and local search nodes.
type SharedBest struct {
	mu   sync.Mutex
	vals []float64
}

// NewSharedBest returns a cell with n zeroed slots.
func NewSharedBest(n int) *SharedBest {
	return &SharedBest{vals: make([]float64, n)}
}

// Set stores v into slot i.
func (s *SharedBest) Set(i int, v float64) {
	s.mu.Lock()
	s.vals[i] = v
	s.mu.Unlock()
}

// Max returns the highest slot value.
func (s *SharedBest) Max() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	best := s.vals[0]
	for _, v := range s.vals[1:] {
		if v > best {
			best = v
		}
	}
	return best
}

// snapshot copies the slots for post-run inspection.
func (s *SharedBest) snapshot() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64(nil), s.vals...)
}

// HyperResult is the outcome of a hyper-search: the best solution found, its
// utilizations and objective, and the strategy that produced it.
type HyperResult struct {
	Solution  model.Solution
	Utils     map[string]float64
	Strategy  Strategy
	Objective float64
}

// hyperWorker iterates one chunk of the strategy enumeration, running a local
// search per strategy and keeping the chunk's best outcome. It publishes
// improvements into the shared cell and exits early when any worker reaches
// the optimum or the deadline passes.
func (r *Runner) hyperWorker(strategies []Strategy, throttle bool, ctl Control) HyperResult {
	r.Solve(nil)
	best := HyperResult{
		Solution:  r.Solution.Copy(),
		Utils:     copyUtils(r.Utils),
		Strategy:  r.Strategy.Copy(),
		Objective: r.Objective(),
	}
	optimum := r.OptimumObjective()

	if ctl.Shared != nil {
		ctl.Shared.Set(ctl.Worker, best.Objective)
	}
	if best.Objective >= optimum {
		return best
	}

	for _, strategy := range strategies {
		r.Strategy = strategy
		r.LocalSearch(throttle, ctl)
		newObj := r.Objective()

		if newObj > best.Objective {
			best = HyperResult{
				Solution:  r.Solution.Copy(),
				Utils:     copyUtils(r.Utils),
				Strategy:  strategy.Copy(),
				Objective: newObj,
			}
			if ctl.Shared != nil {
				ctl.Shared.Set(ctl.Worker, newObj)
			}
			if ctl.Log != nil {
				ctl.Log.WithFields(logrus.Fields{
					"worker":  ctl.Worker,
					"obj_val": newObj,
				}).Debug("new best solution")
			}
			if newObj >= optimum {
				break
			}
		}
		if ctl.expired() || ctl.sharedOptimum(optimum) {
			break
		}
	}
	return best
}

// HyperSearch runs a local search for each strategy of Strategies (the 720
// orderings of the six primary classes, each followed by the fixed suffix;
// other orderings of the four suffix classes are not tried), across workers
// goroutines. Each worker owns a full clone of the
// runner; the only shared state is the best-objective cell. Worker faults are
// contained and logged; if every worker faults the aggregate error is
// ErrMultiProcess.
//
// With a single worker the search runs on the receiver itself, so strip
// packing height tightening persists on it; with several workers the receiver
// is left untouched and only the winning clone's artifacts are returned.
func (r *Runner) HyperSearch(throttle bool, workers int, deadline time.Time, log *logrus.Logger) (HyperResult, error) {
	strategies := Strategies()

	if workers <= 1 {
		ctl := Control{Deadline: deadline, Log: log}
		return r.hyperWorker(strategies, throttle, ctl), nil
	}

	chunks := chunkStrategies(strategies, workers)
	shared := NewSharedBest(len(chunks))
	results := make([]*HyperResult, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []Strategy) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					if log != nil {
						log.WithField("worker", i).Errorf("hypersearch worker failed: %v", rec)
					}
					shared.Set(i, workerFailed)
					results[i] = nil
				}
			}()
			clone := r.Clone()
			ctl := Control{Deadline: deadline, Shared: shared, Worker: i, Log: log}
			out := clone.hyperWorker(chunk, throttle, ctl)
			results[i] = &out
		}(i, chunk)
	}
	wg.Wait()

	slots := shared.snapshot()
	allFailed := true
	anyFailed := false
	for _, v := range slots {
		if v == workerFailed {
			anyFailed = true
		} else {
			allFailed = false
		}
	}
	if allFailed {
		return HyperResult{}, errors.Wrap(model.ErrMultiProcess, "all hypersearch workers failed")
	}
	if anyFailed && log != nil {
		log.Error("some hypersearch workers failed, please check logs")
	}

	var best *HyperResult
	for _, out := range results {
		if out == nil {
			continue
		}
		if best == nil || out.Objective > best.Objective {
			best = out
		}
	}
	if best == nil {
		return HyperResult{}, errors.Wrap(model.ErrMultiProcess, "no hypersearch worker produced a result")
	}
	if log != nil {
		log.Debug(fmt.Sprintf("winning worker objective = %v strategy = %v", best.Objective, best.Strategy.Tags()))
	}
	return *best, nil
}
