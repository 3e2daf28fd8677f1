// Package model defines the data structures shared by the hyperpack solver:
// items, containers, placements, solutions and solver settings.
package model

import (
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MaxIDLength bounds item and container identifiers.
const MaxIDLength = 64

// Item represents a rectangular piece to be placed. Rotation during placement
// is recorded on the placement, not on the item; only the OrientItems
// preprocessor swaps an item's stored dimensions.
type Item struct {
	ID string `json:"id"`
	W  int    `json:"w"` // width
	L  int    `json:"l"` // length
}

// NewItem creates an item with a generated id.
func NewItem(w, l int) Item {
	return Item{ID: uuid.New().String()[:8], W: w, L: l}
}

// Area returns w*l.
func (it Item) Area() int { return it.W * it.L }

// Perimeter returns 2*(w+l).
func (it Item) Perimeter() int { return 2 * (it.W + it.L) }

// SideRatio returns max(w,l)/min(w,l).
func (it Item) SideRatio() float64 {
	if it.W >= it.L {
		return float64(it.W) / float64(it.L)
	}
	return float64(it.L) / float64(it.W)
}

// Container represents a rectangular region items are packed into.
type Container struct {
	ID string `json:"id"`
	W  int    `json:"W"` // width
	L  int    `json:"L"` // length
}

// NewContainer creates a container with a generated id.
func NewContainer(w, l int) Container {
	return Container{ID: uuid.New().String()[:8], W: w, L: l}
}

// Area returns W*L.
func (c Container) Area() int { return c.W * c.L }

// Dimensions is the boundary representation of a width/length pair, used
// when items or containers are supplied as id keyed mappings.
type Dimensions struct {
	W int `json:"w"`
	L int `json:"l"`
}

// Placement records where an item ended up inside a container. W and L are
// the dimensions as placed, so a rotated item carries its stored dimensions
// swapped.
type Placement struct {
	X int `json:"Xo"`
	Y int `json:"Yo"`
	W int `json:"w"`
	L int `json:"l"`
}

// Rotated reports whether the placement swapped the item's stored dimensions.
func (p Placement) Rotated(it Item) bool {
	return !(p.W == it.W && p.L == it.L)
}

// ContainerSolution maps item id to its placement inside one container.
type ContainerSolution map[string]Placement

// MaxHeight returns the highest occupied y coordinate, i.e. the height of the
// stack of placements. Zero for an empty solution.
func (cs ContainerSolution) MaxHeight() int {
	h := 0
	for _, p := range cs {
		if top := p.Y + p.L; top > h {
			h = top
		}
	}
	return h
}

// Solution maps container id to that container's placements.
type Solution map[string]ContainerSolution

// PlacedCount returns the total number of placements across containers.
func (s Solution) PlacedCount() int {
	n := 0
	for _, cs := range s {
		n += len(cs)
	}
	return n
}

// Copy returns a deep copy of the solution.
func (s Solution) Copy() Solution {
	out := make(Solution, len(s))
	for contID, cs := range s {
		dst := make(ContainerSolution, len(cs))
		for itemID, p := range cs {
			dst[itemID] = p
		}
		out[contID] = dst
	}
	return out
}

// CopyItems returns a copy of an item slice, preserving order.
func CopyItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// ItemsFromMap converts an id keyed mapping into an item slice ordered by id.
// Mapping iteration order is not meaningful in Go, so the lexicographic id
// order is the canonical initial sequence.
func ItemsFromMap(m map[string]Dimensions) ([]Item, error) {
	items := make([]Item, 0, len(m))
	for id, d := range m {
		items = append(items, Item{ID: id, W: d.W, L: d.L})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, ValidateItems(items)
}

// ContainersFromMap converts an id keyed mapping into a container slice
// ordered by id.
func ContainersFromMap(m map[string]Dimensions) ([]Container, error) {
	conts := make([]Container, 0, len(m))
	for id, d := range m {
		conts = append(conts, Container{ID: id, W: d.W, L: d.L})
	}
	sort.Slice(conts, func(i, j int) bool { return conts[i].ID < conts[j].ID })
	return conts, ValidateContainers(conts)
}

// ValidateItems checks ids and dimensions of the whole item set.
func ValidateItems(items []Item) error {
	if len(items) == 0 {
		return errors.Wrap(ErrItems, "items missing")
	}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.ID == "" || len(it.ID) > MaxIDLength {
			return errors.Wrapf(ErrItems, "item id %q must be a non-empty string of at most %d characters", it.ID, MaxIDLength)
		}
		if _, ok := seen[it.ID]; ok {
			return errors.Wrapf(ErrItems, "duplicate item id %q", it.ID)
		}
		seen[it.ID] = struct{}{}
		if it.W <= 0 || it.L <= 0 {
			return errors.Wrapf(ErrDimensions, "item %q: width and length must be positive integers", it.ID)
		}
	}
	return nil
}

// ValidateContainers checks ids and dimensions of the whole container set.
func ValidateContainers(containers []Container) error {
	if len(containers) == 0 {
		return errors.Wrap(ErrContainers, "containers missing")
	}
	seen := make(map[string]struct{}, len(containers))
	for _, c := range containers {
		if c.ID == "" || len(c.ID) > MaxIDLength {
			return errors.Wrapf(ErrContainers, "container id %q must be a non-empty string of at most %d characters", c.ID, MaxIDLength)
		}
		if _, ok := seen[c.ID]; ok {
			return errors.Wrapf(ErrContainers, "duplicate container id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
		if c.W <= 0 || c.L <= 0 {
			return errors.Wrapf(ErrDimensions, "container %q: width and length must be positive integers", c.ID)
		}
	}
	return nil
}
