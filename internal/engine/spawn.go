package engine

// placer holds the per-container state of one construction run: the occupancy
// grid, the potential-points pool and the edge registry the spawning rule
// queries.
type placer struct {
	W, L  int // container width and effective length
	grid  *Grid
	pool  pointPool
	hors  segTable // horizontal edges by y level
	verts segTable // vertical edges by x level
}

func newPlacer(w, l int) *placer {
	p := &placer{
		W:     w,
		L:     l,
		grid:  NewGrid(w, l),
		hors:  segTable{},
		verts: segTable{},
	}
	// container walls
	p.hors.add(0, segment{0, 0, w, 0})
	p.verts.add(0, segment{0, 0, 0, l})
	p.verts.add(w, segment{w, 0, w, l})
	p.pool.Seed()
	return p
}

// spawn computes the new potential points arising from the placement of the
// rectangle (Xo, Yo, w, l), classifies each into one of the ten classes and
// pushes it into the pool. Corner points A and B project onto neighbouring
// edges to form the primed, double-primed and auxiliary classes; whether a
// projection lands as A'/B' or degrades to E/F depends on how many edges it
// crosses on the way.
func (p *placer) spawn(Xo, Yo, w, l int) {
	Ay, Bx := Yo+l, Xo+w
	A := Point{Xo, Ay}
	B := Point{Bx, Yo}

	verts := p.verts.sortedLevels()
	hors := p.hors.sortedLevels()

	aGen := false
	appendADouble := true
	prohibitAPrimeAndE := false

	// A point on the container wall.
	if Ay < p.L && Xo == 0 {
		aGen = true
		p.pool.Push(ClassA, A)
	} else if Ay < p.L {
		// A point away from the wall: valid only while a vertical edge on
		// Xo still runs through it.
		appendA := false
		for _, seg := range p.verts[Xo] {
			if seg.y1 == Ay || seg.y2 == Ay {
				// a vertical edge ends exactly at A, so the projection
				// classes are blocked too
				prohibitAPrimeAndE = true
			}
			if seg.y1 <= Ay && seg.y2 > Ay {
				appendA = true
				break
			}
		}
		// a horizontal edge running through A voids it entirely
		for _, seg := range p.hors[Ay] {
			if seg.x1 <= Xo && seg.x2 > Xo {
				appendA = false
				appendADouble = false
				break
			}
		}
		if appendA {
			p.pool.Push(ClassA, A)
			aGen = true
		}
	}

	// A' or E point: project A leftwards onto the nearest vertical edge
	// that still covers the Ay level.
	if !aGen && !prohibitAPrimeAndE {
		num := 0
		stop, found := false, false
		for i := len(verts) - 1; i >= 0 && !stop && !found; i-- {
			vertX := verts[i]
			if vertX >= Xo {
				continue
			}
			increasedNum := false
			segs := p.verts[vertX]
			sortSegments(segs)
			for si, seg := range segs {
				// edges on this level start above the landing point
				if seg.y1 > Ay {
					break
				}
				if seg.y2 == Ay {
					// edge ends at the landing level: unless another edge
					// continues from that corner, the projection is cut off
					cont := false
					for _, sub := range segs[si+1:] {
						if sub.y1 == Ay {
							cont = true
							break
						}
					}
					if !cont {
						stop = true
						break
					}
				}
				if !increasedNum && seg.y2 > Yo && seg.y2 < Ay {
					num++
					increasedNum = true
				}
				if seg.y1 <= Ay && seg.y2 > Ay {
					pt := Point{seg.x1, Ay}
					if num <= 1 || (num <= 2 && increasedNum) {
						p.pool.Push(ClassAPrime, pt)
					} else {
						p.pool.Push(ClassE, pt)
					}
					found = true
				}
			}
		}
	}

	// A'' point: the raw corner, kept as a fallback class.
	if !aGen && Ay < p.L && appendADouble {
		p.pool.Push(ClassADouble, A)
	}

	bGen := false
	appendBDouble := true
	prohibitBPrimeAndF := false

	// B point on the container bottom.
	if Bx < p.W && Yo == 0 {
		bGen = true
		p.pool.Push(ClassB, B)
	} else if Bx < p.W {
		appendB := false
		for _, seg := range p.hors[Yo] {
			if seg.x1 == Bx || seg.x2 == Bx {
				prohibitBPrimeAndF = true
			}
			if seg.x1 <= Bx && seg.x2 > Bx {
				appendB = true
				break
			}
		}
		for _, seg := range p.verts[Bx] {
			if seg.y1 <= Yo && seg.y2 > Yo {
				appendB = false
				appendBDouble = false
				break
			}
		}
		if appendB {
			bGen = true
			p.pool.Push(ClassB, B)
		}
	}

	// B' or F point: project B downwards onto the nearest horizontal edge
	// that still covers the Bx level.
	if !bGen && !prohibitBPrimeAndF {
		num := 0
		stop, found := false, false
		for i := len(hors) - 1; i >= 0 && !stop && !found; i-- {
			horY := hors[i]
			if horY >= Yo {
				continue
			}
			increasedNum := false
			segs := p.hors[horY]
			sortSegments(segs)
			for si, seg := range segs {
				if seg.x1 > Bx {
					break
				}
				if seg.x2 == Bx {
					cont := false
					for _, sub := range segs[si+1:] {
						if sub.x1 == Bx {
							cont = true
							break
						}
					}
					if !cont {
						stop = true
						break
					}
				}
				if !increasedNum && seg.x2 > Xo && seg.x2 < Bx {
					num++
					increasedNum = true
				}
				if seg.x1 <= Bx && seg.x2 > Bx {
					pt := Point{Bx, seg.y1}
					if num <= 1 || (num <= 2 && increasedNum) {
						p.pool.Push(ClassBPrime, pt)
					} else {
						p.pool.Push(ClassF, pt)
					}
					found = true
					break
				}
			}
		}
	}

	// B'' point, the marginal B.
	if !bGen && Bx < p.W && appendBDouble {
		p.pool.Push(ClassBDouble, B)
	}

	// C point: where a horizontal edge underneath the top side of the
	// placed rectangle ends, a step corner forms. A C point supersedes a
	// B'' at the same coordinate.
	if segs, ok := p.hors[Ay]; ok {
		appendC := false
		cEnd, haveC := 0, false
		sortSegments(segs)
		for _, seg := range segs {
			if haveC && seg.x1 == cEnd {
				appendC = false
				break
			}
			if seg.x2 > Xo && seg.x2 < Bx {
				appendC = true
				cEnd, haveC = seg.x2, true
			}
		}
		if appendC {
			pt := Point{cEnd, Ay}
			p.pool.Push(ClassC, pt)
			p.pool.Remove(ClassBDouble, pt)
		}
	}

	// D point: the symmetric step corner on the right side of the placed
	// rectangle. A D point supersedes an A'' at the same coordinate.
	if segs, ok := p.verts[Bx]; ok {
		appendD := false
		dEnd := 0
		for _, seg := range segs {
			if seg.y2 > Yo && seg.y2 < Ay {
				appendD = true
				dEnd = seg.y2
			}
			if seg.y1 < Ay && seg.y2 > Ay {
				appendD = false
				break
			}
		}
		if appendD {
			pt := Point{Bx, dEnd}
			p.pool.Push(ClassD, pt)
			p.pool.Remove(ClassADouble, pt)
		}
	}
}

// appendSegments registers the four edges of a placed rectangle.
func (p *placer) appendSegments(Xo, Yo, w, l int) {
	Ay, Bx := Yo+l, Xo+w
	p.verts.add(Xo, segment{Xo, Yo, Xo, Ay})
	p.verts.add(Bx, segment{Bx, Yo, Bx, Ay})
	p.hors.add(Yo, segment{Xo, Yo, Bx, Yo})
	p.hors.add(Ay, segment{Xo, Ay, Bx, Ay})
}
