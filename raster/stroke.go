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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// line is a piece of a flattened polyline, in user space.
type line struct {
	a, b vec.Vec2
	t    vec.Vec2 // unit tangent
	n    vec.Vec2 // unit normal, t turned by 90°
}

// Stroke paints the outline of p using Width and Cap.
//
// Every line piece is stroked as a rectangle.  Open ends get the
// configured cap, corners are always joined by a disc of diameter Width.
// All outline polygons are filled together, so overlapping parts are
// painted once.
func (r *Rasteriser) Stroke(p *path.Data, emit EmitFunc) {
	r.flatten(p)

	r.poly = r.poly[:0]
	r.polys = r.polys[:0]
	d := r.Width / 2

	for _, pt := range r.dots {
		switch r.Cap {
		case graphics.LineCapRound:
			r.beginPoly()
			r.addArc(pt, d, vec.Vec2{X: 0, Y: 1}, -2*math.Pi)
		case graphics.LineCapSquare:
			r.beginPoly()
			r.addSquare(pt, d)
		}
	}

	for i, start := range r.runs {
		end := len(r.lines)
		if i+1 < len(r.runs) {
			end = r.runs[i+1]
		}
		r.strokeRun(r.lines[start:end], r.shut[i], d)
	}

	r.startEdges()
	for i, start := range r.polys {
		end := len(r.poly)
		if i+1 < len(r.polys) {
			end = r.polys[i+1]
		}
		pts := r.poly[start:end]
		if len(pts) < 3 {
			continue
		}
		for j := range pts {
			r.addEdge(pts[j], pts[(j+1)%len(pts)])
		}
	}
	r.sweep(emit)
}

// flatten splits p into polylines.  Curves are replaced by line pieces,
// zero-length pieces are dropped.  Subpaths which contain drawing
// operations but have no extent are collected in r.dots.
func (r *Rasteriser) flatten(p *path.Data) {
	r.lines = r.lines[:0]
	r.runs = r.runs[:0]
	r.shut = r.shut[:0]
	r.dots = r.dots[:0]

	var cur, first vec.Vec2
	open, drawn := false, false
	start := 0

	finish := func(closed bool) {
		switch {
		case !open || !drawn:
		case len(r.lines) > start:
			r.runs = append(r.runs, start)
			r.shut = append(r.shut, closed)
		default:
			r.dots = append(r.dots, first)
		}
		open, drawn = false, false
		start = len(r.lines)
	}
	begin := func() {
		if !open {
			first = cur
			start = len(r.lines)
			open = true
		}
		drawn = true
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			cur = p.Coords[k]
			first = cur
			open = true
			k++
		case path.CmdLineTo:
			begin()
			r.addLine(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			begin()
			r.flattenQuad(cur, p.Coords[k], p.Coords[k+1], r.addLine)
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			begin()
			r.flattenCube(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addLine)
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if !open {
				continue
			}
			drawn = true
			r.addLine(cur, first)
			finish(true)
			cur = first
		}
	}
	finish(false)
}

func (r *Rasteriser) addLine(a, b vec.Vec2) {
	v := b.Sub(a)
	l := v.Length()
	if l < lengthEpsilon {
		return
	}
	t := v.Mul(1 / l)
	r.lines = append(r.lines, line{a: a, b: b, t: t, n: vec.Vec2{X: -t.Y, Y: t.X}})
}

// strokeRun adds the outline polygons for one polyline.
//
// All polygons are traversed with the same orientation as the discs
// produced by addArc with negative sweep, so that overlaps add up instead
// of cancelling under the nonzero rule.
func (r *Rasteriser) strokeRun(lines []line, closed bool, d float64) {
	for i := range lines {
		l := &lines[i]
		side := l.n.Mul(d)

		r.beginPoly()
		if i == 0 && !closed {
			r.addCap(l.a, l.t.Mul(-1), d)
		}
		r.poly = append(r.poly, l.a.Add(side), l.b.Add(side))
		if i == len(lines)-1 && !closed {
			r.addCap(l.b, l.t, d)
		}
		r.poly = append(r.poly, l.b.Sub(side), l.a.Sub(side))

		var next *line
		switch {
		case i+1 < len(lines):
			next = &lines[i+1]
		case closed && len(lines) > 1:
			next = &lines[0]
		}
		if next != nil && bends(l.t, next.t) {
			r.beginPoly()
			r.addArc(l.b, d, l.n, -2*math.Pi)
		}
	}
}

// bends reports whether the direction changes from t1 to t2.
func bends(t1, t2 vec.Vec2) bool {
	cross := t1.X*t2.Y - t1.Y*t2.X
	return math.Abs(cross) > collinearEpsilon || t1.Dot(t2) < 0
}

// addCap adds the cap at the end point p of a line, where t points away
// from the line.  The cap runs from the -n side of the outward direction
// to the +n side, where n is t turned by 90°.
func (r *Rasteriser) addCap(p, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := p.Add(t.Mul(d))
		r.poly = append(r.poly, ext.Add(n.Mul(d)), ext.Sub(n.Mul(d)))
	case graphics.LineCapRound:
		r.addArc(p, d, n, -math.Pi)
	}
}

// addSquare adds an axis-aligned square of side 2d centred at p.
func (r *Rasteriser) addSquare(p vec.Vec2, d float64) {
	r.poly = append(r.poly,
		vec.Vec2{X: p.X + d, Y: p.Y + d},
		vec.Vec2{X: p.X + d, Y: p.Y - d},
		vec.Vec2{X: p.X - d, Y: p.Y - d},
		vec.Vec2{X: p.X - d, Y: p.Y + d},
	)
}

// addArc adds points on the circle of the given radius around c, starting
// in direction from (a unit vector) and turning by sweep radians.
func (r *Rasteriser) addArc(c vec.Vec2, radius float64, from vec.Vec2, sweep float64) {
	dev := max(r.deviceLen(vec.Vec2{X: radius}), r.deviceLen(vec.Vec2{Y: radius}))

	// at least one piece per quarter turn
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if dev > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/dev)
		n = max(n, int(math.Ceil(math.Abs(sweep)/step)))
	}

	for i := 0; i <= n; i++ {
		sin, cos := math.Sincos(sweep * float64(i) / float64(n))
		dir := vec.Vec2{
			X: from.X*cos - from.Y*sin,
			Y: from.X*sin + from.Y*cos,
		}
		r.poly = append(r.poly, c.Add(dir.Mul(radius)))
	}
}

func (r *Rasteriser) beginPoly() {
	r.polys = append(r.polys, len(r.poly))
}

// flattenQuad replaces the quadratic Bézier curve p0, p1, p2 by line
// pieces.
func (r *Rasteriser) flattenQuad(p0, p1, p2 vec.Vec2, emit func(a, b vec.Vec2)) {
	dev := r.deviceLen(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCube replaces the cubic Bézier curve p0, ..., p3 by line pieces.
// The number of pieces follows Wang's formula.
func (r *Rasteriser) flattenCube(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	dev := max(
		r.deviceLen(p0.Sub(p1.Mul(2)).Add(p2)),
		r.deviceLen(p1.Sub(p2.Mul(2)).Add(p3)))
	n := 1
	if m := math.Sqrt(3 * dev / (4 * r.Flatness)); m > 1 {
		n = int(math.Ceil(m))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

const collinearEpsilon = 1e-6
