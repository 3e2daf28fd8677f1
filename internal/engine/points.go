package engine

import (
	"github.com/pkg/errors"

	"github.com/AlkiviadisAleiferis/hyperpack/model"
)

// Class identifies one of the ten potential-point classes of the point
// generation heuristic.
type Class uint8

const (
	ClassA Class = iota
	ClassB
	ClassC
	ClassD
	ClassAPrime  // A'
	ClassBPrime  // B'
	ClassADouble // A''
	ClassBDouble // B''
	ClassE
	ClassF
	NumClasses
)

var classNames = [NumClasses]string{"A", "B", "C", "D", "A_", "B_", "A__", "B__", "E", "F"}

func (c Class) String() string {
	if c < NumClasses {
		return classNames[c]
	}
	return "?"
}

// ParseClass converts a class tag back into a Class.
func ParseClass(tag string) (Class, error) {
	for c, name := range classNames {
		if tag == name {
			return Class(c), nil
		}
	}
	return 0, errors.Wrapf(model.ErrPotentialPoints, "unknown potential point %q", tag)
}

// Strategy is the pool-drain order of the ten classes: a permutation holding
// each class exactly once.
type Strategy []Class

// DefaultStrategy is the drain order used when the caller sets none.
func DefaultStrategy() Strategy {
	return Strategy{
		ClassA, ClassB, ClassC, ClassD,
		ClassAPrime, ClassBPrime, ClassBDouble, ClassADouble,
		ClassE, ClassF,
	}
}

// ParseStrategy converts class tags into a Strategy, enforcing that each tag
// is a known class and that every class appears exactly once.
func ParseStrategy(tags []string) (Strategy, error) {
	s := make(Strategy, 0, len(tags))
	var seen [NumClasses]bool
	for _, tag := range tags {
		c, err := ParseClass(tag)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			return nil, errors.Wrapf(model.ErrPotentialPoints, "duplicate potential point %q", tag)
		}
		seen[c] = true
		s = append(s, c)
	}
	if len(s) != int(NumClasses) {
		return nil, errors.Wrapf(model.ErrPotentialPoints, "strategy must hold all %d potential points, got %d", NumClasses, len(s))
	}
	return s, nil
}

// Tags returns the strategy as class tags.
func (s Strategy) Tags() []string {
	tags := make([]string, len(s))
	for i, c := range s {
		tags[i] = c.String()
	}
	return tags
}

// Copy returns an independent copy of the strategy.
func (s Strategy) Copy() Strategy {
	out := make(Strategy, len(s))
	copy(out, s)
	return out
}

// Point is a candidate placement origin.
type Point struct {
	X, Y int
}

// pointPool holds the per-class FIFO queues of potential points.
type pointPool struct {
	queues [NumClasses][]Point
}

// Seed inserts the container origin into class A.
func (p *pointPool) Seed() {
	p.Push(ClassA, Point{0, 0})
}

// Push appends the point to its class queue unless the class already holds it.
func (p *pointPool) Push(c Class, pt Point) {
	for _, q := range p.queues[c] {
		if q == pt {
			return
		}
	}
	p.queues[c] = append(p.queues[c], pt)
}

// PopNext walks the classes in strategy order and removes the front of the
// first non-empty queue. Returns false when every queue is empty.
func (p *pointPool) PopNext(strategy Strategy) (Point, Class, bool) {
	for _, c := range strategy {
		if len(p.queues[c]) > 0 {
			pt := p.queues[c][0]
			p.queues[c] = p.queues[c][1:]
			return pt, c, true
		}
	}
	return Point{}, 0, false
}

// Remove deletes the point from the class queue if present.
func (p *pointPool) Remove(c Class, pt Point) {
	for i, q := range p.queues[c] {
		if q == pt {
			p.queues[c] = append(p.queues[c][:i], p.queues[c][i+1:]...)
			return
		}
	}
}

// Clear empties every queue.
func (p *pointPool) Clear() {
	for c := range p.queues {
		p.queues[c] = nil
	}
}
