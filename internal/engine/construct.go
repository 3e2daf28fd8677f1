package engine

import "github.com/AlkiviadisAleiferis/hyperpack/model"

// construct runs the point generation construction heuristic for a single
// container: pop potential points in strategy order, place the first fitting
// item of the sequence at each point, spawn new points from every placement.
//
// items is the ordered sequence of still unplaced items; the returned
// remainder preserves that order. The returned utilization is the placed item
// area over the container area (for strip packing, over width times the
// height of the produced stack).
//
// The output is a pure function of (container dims, item sequence, strategy,
// rotation, strip packing flag).
func construct(w, l int, items []model.Item, strategy Strategy, rotation, stripPack bool) (model.ContainerSolution, []model.Item, float64) {
	p := newPlacer(w, l)
	placements := model.ContainerSolution{}

	remaining := model.CopyItems(items)
	totalSurface := float64(w * l)
	objValue := 0.0
	itemsArea := 0

	pt, _, ok := p.pool.PopNext(strategy)
	for ok && len(remaining) > 0 && objValue < 1 {
		Xo, Yo := pt.X, pt.Y

		for i, item := range remaining {
			iw, il := item.W, item.L
			fits := p.grid.FreeRect(Xo, Yo, iw, il)
			if !fits && rotation && iw != il {
				iw, il = il, iw
				fits = p.grid.FreeRect(Xo, Yo, iw, il)
			}
			if !fits {
				continue
			}

			p.grid.Mark(Xo, Yo, iw, il)
			placements[item.ID] = model.Placement{X: Xo, Y: Yo, W: iw, L: il}
			remaining = append(remaining[:i], remaining[i+1:]...)

			itemsArea += iw * il
			objValue += float64(iw*il) / totalSurface

			p.spawn(Xo, Yo, iw, il)
			p.appendSegments(Xo, Yo, iw, il)
			break
		}

		pt, _, ok = p.pool.PopNext(strategy)
	}

	if stripPack {
		height := p.hors.maxLevel()
		if height == 0 {
			height = 1
		}
		objValue = float64(itemsArea) / float64(w*height)
	}

	return placements, remaining, objValue
}
