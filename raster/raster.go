// seehuhn.de/go/lightning - procedural lightning strokes
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package raster computes anti-aliased pixel coverage for stroked and
// filled paths.
//
// Coverage is reported one scanline at a time through an emit callback,
// so that callers can composite directly into their own pixel buffers.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one scanline.  Coverage values lie in
// [0, 1], coverage[i] belongs to pixel (xMin+i, y).  The slice is only
// valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// Rasteriser converts paths to pixel coverage.
//
// A Rasteriser keeps its scratch buffers between calls, so reusing one
// instance avoids allocations.  It is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space.  Must be non-singular.
	CTM matrix.Matrix

	// Clip restricts output to this device-space rectangle, which must
	// have integer coordinates.
	Clip rect.Rect

	// Flatness is the maximum distance, in device pixels, between a curve
	// or arc and the polygon which replaces it.
	Flatness float64

	// Width is the stroke width in user space.
	Width float64

	// Cap is the shape of open stroke ends.
	Cap graphics.LineCapStyle

	// areaLimit is the bounding box area (in pixels) up to which a path is
	// rasterised in a single 2D pass.  Larger paths use a scanline sweep.
	areaLimit int

	edges []edge
	bbox  edgeBox

	cover  []float32
	area   []float32
	active []int
	rowHit []bool

	lines []line     // flattened stroke input
	runs  []int      // start of each polyline in lines
	shut  []bool     // whether each polyline is closed
	dots  []vec.Vec2 // polylines without extent
	poly  []vec.Vec2 // stroke outline vertices
	polys []int      // start of each polygon in poly
}

// NewRasteriser returns a Rasteriser for the given clip rectangle, with an
// identity CTM, unit stroke width and butt caps.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:       matrix.Identity,
		Clip:      clip,
		Flatness:  defaultFlatness,
		Width:     1,
		Cap:       graphics.LineCapButt,
		areaLimit: defaultAreaLimit,
	}
}

// Reset prepares the rasteriser for a new clip rectangle and restores the
// default parameters.  Buffers are kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
}

// FillNonZero fills p using the nonzero winding rule.
func (r *Rasteriser) FillNonZero(p *path.Data, emit EmitFunc) {
	r.startEdges()

	var cur, first vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if cur != first {
				r.addEdge(cur, first)
			}
			cur = p.Coords[k]
			first = cur
			k++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuad(cur, p.Coords[k], p.Coords[k+1], r.addEdge)
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCube(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addEdge)
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != first {
				r.addEdge(cur, first)
			}
			cur = first
		}
	}
	// fills close open subpaths implicitly
	if cur != first {
		r.addEdge(cur, first)
	}

	r.sweep(emit)
}

// edge is a non-horizontal line in device space.
type edge struct {
	x0, y0, x1, y1 float64
	dxdy           float64
}

func (e *edge) top() float64    { return min(e.y0, e.y1) }
func (e *edge) bottom() float64 { return max(e.y0, e.y1) }
func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

type edgeBox struct {
	empty                  bool
	xMin, xMax, yMin, yMax float64
}

func (b *edgeBox) add(x0, y0, x1, y1 float64) {
	if b.empty {
		b.xMin, b.xMax = min(x0, x1), max(x0, x1)
		b.yMin, b.yMax = min(y0, y1), max(y0, y1)
		b.empty = false
		return
	}
	b.xMin = min(b.xMin, x0, x1)
	b.xMax = max(b.xMax, x0, x1)
	b.yMin = min(b.yMin, y0, y1)
	b.yMax = max(b.yMax, y0, y1)
}

func (r *Rasteriser) startEdges() {
	r.edges = r.edges[:0]
	r.bbox = edgeBox{empty: true}
}

// addEdge transforms the user-space line a-b to device space and records
// it.  Horizontal lines do not contribute to coverage and are dropped.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	m := r.CTM
	x0 := m[0]*a.X + m[2]*a.Y + m[4]
	y0 := m[1]*a.X + m[3]*a.Y + m[5]
	x1 := m[0]*b.X + m[2]*b.Y + m[4]
	y1 := m[1]*b.X + m[3]*b.Y + m[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEpsilon {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})
	r.bbox.add(x0, y0, x1, y1)
}

// deviceLen returns the device-space length of the user-space vector v.
func (r *Rasteriser) deviceLen(v vec.Vec2) float64 {
	m := r.CTM
	return vec.Vec2{X: m[0]*v.X + m[2]*v.Y, Y: m[1]*v.X + m[3]*v.Y}.Length()
}

// sweep integrates the collected edges and emits the covered pixels.
func (r *Rasteriser) sweep(emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}
	xMin := max(int(math.Floor(r.bbox.xMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bbox.xMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.bbox.yMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.bbox.yMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	if (xMax-xMin)*(yMax-yMin) <= r.areaLimit {
		r.sweepBlock(xMin, xMax, yMin, yMax, emit)
	} else {
		r.sweepRows(xMin, xMax, yMin, yMax, emit)
	}
}

// sweepBlock accumulates all edges into a 2D buffer covering the bounding
// box, then integrates row by row.
func (r *Rasteriser) sweepBlock(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	w, h := xMax-xMin, yMax-yMin
	r.cover = grow(r.cover, w*h)
	r.area = grow(r.area, w*h)
	r.rowHit = grow(r.rowHit, h)

	for i := range r.edges {
		e := &r.edges[i]
		y0 := max(int(math.Floor(e.top())), yMin)
		y1 := min(int(math.Floor(e.bottom()))+1, yMax)
		for y := y0; y < y1; y++ {
			k := (y - yMin) * w
			accumulate(e, y, r.cover[k:k+w], r.area[k:k+w], xMin, xMax)
			r.rowHit[y-yMin] = true
		}
	}

	for row := range h {
		if !r.rowHit[row] {
			continue
		}
		k := row * w
		cov := r.cover[k : k+w]
		integrate(cov, r.area[k:k+w])
		if lo, hi := nonZero(cov); lo < hi {
			emit(yMin+row, xMin+lo, cov[lo:hi])
		}
	}
}

// sweepRows walks the scanlines top to bottom, keeping a list of the edges
// which cross the current row.
func (r *Rasteriser) sweepRows(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	w := xMax - xMin
	r.cover = grow(r.cover, w)
	r.area = grow(r.area, w)

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.top(), b.top())
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yTop, yBot := float64(y), float64(y+1)

		for next < len(r.edges) && r.edges[next].top() < yBot {
			r.active = append(r.active, next)
			next++
		}

		hit := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.bottom() <= yTop {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			if !hit {
				clear(r.cover)
				clear(r.area)
				hit = true
			}
			accumulate(e, y, r.cover, r.area, xMin, xMax)
			i++
		}
		if !hit {
			continue
		}

		integrate(r.cover, r.area)
		if lo, hi := nonZero(r.cover); lo < hi {
			emit(y, xMin+lo, r.cover[lo:hi])
		}
	}
}

// accumulate adds the part of e inside scanline y to the cover and area
// buffers, which are indexed by x-xMin.
//
// For each pixel, cover holds the signed height of the edge pieces inside
// the pixel column and area holds that height weighted by the fraction of
// the pixel which lies to the right of the edge.  Pieces left of xMin are
// folded into the first pixel, pieces right of xMax cannot affect any
// visible pixel.
func accumulate(e *edge, y int, cover, area []float32, xMin, xMax int) {
	yTop := max(float64(y), e.top())
	yBot := min(float64(y+1), e.bottom())
	if yBot <= yTop {
		return
	}

	dir := float32(1)
	if e.y1 < e.y0 {
		dir = -1
	}

	xa, xb := e.xAt(yTop), e.xAt(yBot)
	if xa > xb {
		xa, xb = xb, xa
	}
	pa, pb := int(math.Floor(xa)), int(math.Floor(xb))

	add := func(px int, y0, y1 float64) {
		c := dir * float32(y1-y0)
		switch {
		case px < xMin:
			cover[0] += c
			area[0] += c
		case px < xMax:
			frac := e.xAt((y0+y1)/2) - float64(px)
			cover[px-xMin] += c
			area[px-xMin] += c * float32(1-frac)
		}
	}

	if pb < xMin || pa == pb {
		add(pa, yTop, yBot)
		return
	}
	if pa >= xMax {
		return
	}

	dydx := 1 / e.dxdy
	for px := pa; px <= pb && px < xMax; px++ {
		ya := e.y0 + dydx*(float64(px)-e.x0)
		yb := e.y0 + dydx*(float64(px+1)-e.x0)
		y0 := max(min(ya, yb), yTop)
		y1 := min(max(ya, yb), yBot)
		if y1 > y0 {
			add(px, y0, y1)
		}
	}
}

// integrate turns accumulated cover and area values into coverage, using
// the nonzero winding rule.  The result is stored in cover.
func integrate(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// nonZero returns the smallest range lo:hi which contains all non-zero
// entries of cov.
func nonZero(cov []float32) (lo, hi int) {
	hi = len(cov)
	for lo < hi && cov[lo] == 0 {
		lo++
	}
	for hi > lo && cov[hi-1] == 0 {
		hi--
	}
	return lo, hi
}

// grow returns buf resized to n elements, all zero.
func grow[T any](buf []T, n int) []T {
	buf = slices.Grow(buf[:0], n)[:n]
	clear(buf)
	return buf
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	defaultAreaLimit = 1 << 16

	horizontalEpsilon = 1e-10
	lengthEpsilon     = 1e-10
)
