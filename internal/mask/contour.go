package mask

import "math"

// Polygon is one closed boundary ring as a flat sequence of alternating
// x,y coordinates. A valid polygon has an even length of at least 6 and
// only non-negative values.
type Polygon []float64

// contourPoint is a sub-pixel contour coordinate in (row, col) order,
// the order the tracer works in before the final swap to (x, y).
type contourPoint struct {
	r, c float64
}

// Polygons traces the foreground/background boundaries of a mask and
// returns one polygon per closed boundary ring. A shape with a hole yields
// two rings, outer and inner.
//
// Tolerance is the maximum perpendicular deviation allowed when dropping
// vertices during Douglas-Peucker simplification; 0 returns the raw traced
// contours.
//
// # Algorithm
//
//  1. Pad the grid with one ring of background so shapes touching the
//     border still produce closed contours.
//  2. March the 0.5 iso-level of the padded binary field; crossings land
//     on half-integer lattice coordinates.
//  3. Shift coordinates by -1 to undo the padding, close each ring, and
//     simplify with the given tolerance.
//  4. Drop rings left with fewer than 3 points, swap (row,col) to (x,y),
//     flatten, and clamp the -0.5 artifacts of the padding shift to 0.
//
// An all-background mask yields an empty list.
func Polygons(m *Mask, tolerance float64) []Polygon {
	var polys []Polygon
	for _, ring := range traceContours(m) {
		for i := range ring {
			ring[i].r--
			ring[i].c--
		}
		pts := approximatePolygon(ring, tolerance)
		if len(pts) < 3 {
			continue
		}
		poly := make(Polygon, 0, len(pts)*2)
		for _, p := range pts {
			poly = append(poly, clampZero(p.c), clampZero(p.r))
		}
		polys = append(polys, poly)
	}
	return polys
}

// clampZero zeroes negative coordinates. Only negatives are touched;
// other values pass through unrounded.
func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// edgeKey identifies a contour crossing point by its doubled lattice
// coordinates, so half-integer positions hash exactly.
type edgeKey struct {
	r2, c2 int
}

func (k edgeKey) point() contourPoint {
	return contourPoint{r: float64(k.r2) / 2, c: float64(k.c2) / 2}
}

// contourSegment is one marching-squares crossing inside a single cell.
// Not named "segment": that identifier belongs to the bild/segment import
// elsewhere in this package.
type contourSegment struct {
	a, b edgeKey
}

// traceContours runs marching squares over the padded binary field at the
// 0.5 iso-level and links the crossing segments into closed rings.
// Each returned ring repeats its first point as its last.
//
// Saddle cells (two diagonal foreground corners) are resolved with the
// cell center treated as background, so diagonally touching pixels get
// separate rings.
func traceContours(m *Mask) [][]contourPoint {
	// padded lattice value; pixel (x=c-1, y=r-1) of the mask
	at := func(r, c int) bool {
		if r < 1 || c < 1 || r > m.height || c > m.width {
			return false
		}
		return m.At(c-1, r-1)
	}

	var segs []contourSegment
	adj := make(map[edgeKey][2]int) // crossing point -> the two segments meeting there
	degree := make(map[edgeKey]int)

	addSeg := func(a, b edgeKey) {
		idx := len(segs)
		segs = append(segs, contourSegment{a, b})
		for _, k := range []edgeKey{a, b} {
			d := degree[k]
			ends := adj[k]
			if d < 2 {
				ends[d] = idx
			}
			adj[k] = ends
			degree[k] = d + 1
		}
	}

	// one cell per 2x2 lattice neighborhood of the padded field
	for r := 0; r <= m.height; r++ {
		for c := 0; c <= m.width; c++ {
			idx := 0
			if at(r, c) {
				idx |= 8 // top-left
			}
			if at(r, c+1) {
				idx |= 4 // top-right
			}
			if at(r+1, c+1) {
				idx |= 2 // bottom-right
			}
			if at(r+1, c) {
				idx |= 1 // bottom-left
			}

			top := edgeKey{2 * r, 2*c + 1}
			right := edgeKey{2*r + 1, 2*c + 2}
			bottom := edgeKey{2*r + 2, 2*c + 1}
			left := edgeKey{2*r + 1, 2 * c}

			switch idx {
			case 0, 15:
				// uniform cell, no crossing
			case 1, 14:
				addSeg(left, bottom)
			case 2, 13:
				addSeg(bottom, right)
			case 3, 12:
				addSeg(left, right)
			case 4, 11:
				addSeg(top, right)
			case 6, 9:
				addSeg(top, bottom)
			case 7, 8:
				addSeg(top, left)
			case 5:
				addSeg(top, right)
				addSeg(left, bottom)
			case 10:
				addSeg(top, left)
				addSeg(bottom, right)
			}
		}
	}

	used := make([]bool, len(segs))
	var rings [][]contourPoint

	for start := range segs {
		if used[start] {
			continue
		}
		var ring []contourPoint
		cur := start
		entry := segs[start].a
		for {
			used[cur] = true
			ring = append(ring, entry.point())
			exit := segs[cur].b
			if exit == entry {
				exit = segs[cur].a
			}

			ends := adj[exit]
			next := ends[0]
			if next == cur {
				next = ends[1]
			}
			if used[next] {
				// back at the start; repeat the first point to close
				ring = append(ring, exit.point())
				break
			}
			cur = next
			entry = exit
		}
		rings = append(rings, ring)
	}
	return rings
}

// approximatePolygon simplifies a polyline with the Douglas-Peucker
// algorithm, keeping the two endpoints and every vertex whose
// perpendicular deviation from the simplified chain exceeds tolerance.
// A tolerance of 0 (or less) returns the input unchanged.
func approximatePolygon(pts []contourPoint, tolerance float64) []contourPoint {
	if tolerance <= 0 || len(pts) <= 2 {
		return pts
	}

	keep := make([]bool, len(pts))
	keep[0] = true
	keep[len(pts)-1] = true

	type span struct{ lo, hi int }
	stack := []span{{0, len(pts) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		maxDist := -1.0
		maxIdx := -1
		for i := s.lo + 1; i < s.hi; i++ {
			d := deviation(pts[i], pts[s.lo], pts[s.hi])
			if d > maxDist {
				maxDist = d
				maxIdx = i
			}
		}
		if maxIdx >= 0 && maxDist > tolerance {
			keep[maxIdx] = true
			stack = append(stack, span{s.lo, maxIdx}, span{maxIdx, s.hi})
		}
	}

	var out []contourPoint
	for i, k := range keep {
		if k {
			out = append(out, pts[i])
		}
	}
	return out
}

// deviation is the perpendicular distance from p to the line through a and
// b. When a and b coincide (the shared endpoint of a closed ring) it
// degrades to the plain distance to that point.
func deviation(p, a, b contourPoint) float64 {
	dr := b.r - a.r
	dc := b.c - a.c
	length := math.Hypot(dr, dc)
	if length == 0 {
		return math.Hypot(p.r-a.r, p.c-a.c)
	}
	return math.Abs(dr*(p.c-a.c)-dc*(p.r-a.r)) / length
}
