// Package export renders packing solutions to files: SVG and HTML figures,
// PDF cut sheets, DXF layouts, XLSX reports and QR-coded placement labels.
package export

import "sort"

// Placed is one rendered placement.
type Placed struct {
	ItemID     string
	X, Y, W, L int
}

// Layout is the render input for one container: its dimensions and the
// placements inside it, ordered by item id.
type Layout struct {
	ContainerID string
	W, H        int
	Placements  []Placed
	Utilization float64
}

// NewLayout assembles a layout from a placements mapping, ordering the
// placements by item id so rendering is deterministic.
func NewLayout(containerID string, w, h int, placements map[string][4]int, utilization float64) Layout {
	l := Layout{ContainerID: containerID, W: w, H: h, Utilization: utilization}
	for id, p := range placements {
		l.Placements = append(l.Placements, Placed{ItemID: id, X: p[0], Y: p[1], W: p[2], L: p[3]})
	}
	sort.Slice(l.Placements, func(i, j int) bool {
		return l.Placements[i].ItemID < l.Placements[j].ItemID
	})
	return l
}

// UsedArea is the summed area of the layout's placements.
func (l Layout) UsedArea() int {
	area := 0
	for _, p := range l.Placements {
		area += p.W * p.L
	}
	return area
}

// itemColor is an RGB color assigned to a placement.
type itemColor struct {
	R, G, B int
}

// itemColors is the rotating palette placements are painted with.
var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

func colorFor(index int) itemColor {
	return itemColors[index%len(itemColors)]
}
