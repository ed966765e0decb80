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

package lightning

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

const epsilon = 1e-9

func TestNormalize(t *testing.T) {
	vectors := []Vector{
		{X: 1, Y: 0},
		{X: 0, Y: -7},
		{X: 3, Y: 4},
		{X: 1e-6, Y: 2e-6},
		{X: -1e8, Y: 5e7},
	}
	for _, v := range vectors {
		orig := v
		if err := v.Normalize(); err != nil {
			t.Fatalf("%v: unexpected error %v", orig, err)
		}
		if l := v.Length(); math.Abs(l-1) > epsilon {
			t.Errorf("%v: expected length 1, got %g", orig, l)
		}
		// direction must be preserved
		if cross := orig.X*v.Y - orig.Y*v.X; math.Abs(cross) > epsilon*orig.Length() {
			t.Errorf("%v: direction changed to %v", orig, v)
		}
	}
}

func TestNormalizeDegenerate(t *testing.T) {
	for _, v := range []Vector{{}, {X: math.NaN(), Y: 1}, {X: math.Inf(1), Y: 0}} {
		orig := v
		err := v.Normalize()
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%v: expected ErrInvalidParameter, got %v", orig, err)
		}
		if !sameFloat(v.X, orig.X) || !sameFloat(v.Y, orig.Y) {
			t.Errorf("%v: vector modified to %v", orig, v)
		}
	}
}

func sameFloat(a, b float64) bool {
	return a == b || math.IsNaN(a) && math.IsNaN(b)
}

func TestRotateInverse(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		v := Vector{X: rng.Float64()*200 - 100, Y: rng.Float64()*200 - 100}
		theta := rng.Float64()*4*math.Pi - 2*math.Pi

		w := v.Copy()
		w.Rotate(theta)
		w.Rotate(-theta)
		if math.Abs(w.X-v.X) > epsilon || math.Abs(w.Y-v.Y) > epsilon {
			t.Errorf("rotate %g and back: expected %v, got %v", theta, v, w)
		}
	}
}

func TestRotate(t *testing.T) {
	cases := []struct {
		in    Vector
		angle float64
		out   Vector
	}{
		{Vector{X: 1, Y: 0}, math.Pi / 2, Vector{X: 0, Y: 1}},
		{Vector{X: 0, Y: 1}, math.Pi / 2, Vector{X: -1, Y: 0}},
		{Vector{X: 2, Y: 0}, math.Pi, Vector{X: -2, Y: 0}},
		{Vector{X: 1, Y: 1}, 0, Vector{X: 1, Y: 1}},
		{Vector{X: 1, Y: 0}, math.Pi / 6, Vector{X: math.Sqrt(3) / 2, Y: 0.5}},
	}
	for _, c := range cases {
		v := c.in
		v.Rotate(c.angle)
		if math.Abs(v.X-c.out.X) > epsilon || math.Abs(v.Y-c.out.Y) > epsilon {
			t.Errorf("%v rotated by %g: expected %v, got %v", c.in, c.angle, c.out, v)
		}
		if math.Abs(v.Length()-c.in.Length()) > epsilon {
			t.Errorf("%v rotated by %g: length changed", c.in, c.angle)
		}
	}
}

func TestRandomRotate(t *testing.T) {
	// r=0 gives -maxAngle, r=0.5 gives no rotation
	cases := []struct {
		r    float64
		want Vector
	}{
		{0, Vector{X: 0, Y: -1}},
		{0.5, Vector{X: 1, Y: 0}},
		{0.75, Vector{X: math.Sqrt(0.5), Y: math.Sqrt(0.5)}},
	}
	for _, c := range cases {
		rng := &scriptedRand{vals: []float64{c.r}}
		v := Vector{X: 1, Y: 0}
		v.RandomRotate(rng, math.Pi/2)
		if math.Abs(v.X-c.want.X) > epsilon || math.Abs(v.Y-c.want.Y) > epsilon {
			t.Errorf("r=%g: expected %v, got %v", c.r, c.want, v)
		}
		if rng.calls != 1 {
			t.Errorf("r=%g: expected 1 random number, got %d", c.r, rng.calls)
		}
	}
}

func TestScaleAndCopy(t *testing.T) {
	v := Vector{X: 3, Y: -4}
	w := v.Copy()
	w.Scale(2.5)
	if w != (Vector{X: 7.5, Y: -10}) {
		t.Errorf("expected (7.5, -10), got %v", w)
	}
	if v != (Vector{X: 3, Y: -4}) {
		t.Errorf("copy is not independent: original changed to %v", v)
	}
	if FromVec2(v.Vec2()) != v {
		t.Errorf("Vec2 round trip changed %v", v)
	}
}
