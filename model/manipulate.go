package model

import "sort"

// Orientation is the uniform shape items are flipped into before a search.
type Orientation string

const (
	OrientWide Orientation = "wide" // w >= l
	OrientLong Orientation = "long" // w <= l
)

// Valid reports whether the orientation is a known value.
func (o Orientation) Valid() bool { return o == OrientWide || o == OrientLong }

// SortKey selects the item attribute items are ordered by before a search.
type SortKey string

const (
	SortByArea      SortKey = "area"
	SortByPerimeter SortKey = "perimeter"
	SortBySideRatio SortKey = "longest_side_ratio"
)

// SortBy pairs a sort key with a direction.
type SortBy struct {
	Key     SortKey `json:"key"`
	Reverse bool    `json:"reverse"`
}

// Valid reports whether the sort key is a known value.
func (s SortBy) Valid() bool {
	switch s.Key {
	case SortByArea, SortByPerimeter, SortBySideRatio:
		return true
	}
	return false
}

// OrientItems flips each item into the requested uniform shape by swapping
// dimensions in place. Applying the same orientation twice is a no-op.
func OrientItems(items []Item, orientation Orientation) {
	for i := range items {
		w, l := items[i].W, items[i].L
		switch {
		case orientation == OrientWide && l > w:
			items[i].W, items[i].L = l, w
		case orientation == OrientLong && l < w:
			items[i].W, items[i].L = l, w
		}
	}
}

// SortItems orders items by the given key in place. The sort is stable and
// falls back to id order for equal keys, so equal inputs always produce the
// same sequence.
func SortItems(items []Item, by SortBy) {
	less := func(a, b Item) bool {
		switch by.Key {
		case SortByPerimeter:
			if a.Perimeter() != b.Perimeter() {
				return a.Perimeter() < b.Perimeter()
			}
		case SortBySideRatio:
			if a.SideRatio() != b.SideRatio() {
				return a.SideRatio() < b.SideRatio()
			}
		default: // area
			if a.Area() != b.Area() {
				return a.Area() < b.Area()
			}
		}
		return a.ID < b.ID
	}
	sort.SliceStable(items, func(i, j int) bool {
		if by.Reverse {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
