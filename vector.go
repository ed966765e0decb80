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
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
)

// Rand is the source of randomness used by an Animation.
// *math/rand/v2.Rand implements this interface.
type Rand interface {
	// Float64 returns a pseudo-random number in [0, 1).
	Float64() float64
}

// Vector is a direction and magnitude in the drawing plane.
// The mutating methods act on the receiver.
type Vector struct {
	X, Y float64
}

// FromVec2 converts a geometry vector.
func FromVec2(v vec.Vec2) Vector {
	return Vector{X: v.X, Y: v.Y}
}

// Vec2 converts v to a geometry vector.
func (v Vector) Vec2() vec.Vec2 {
	return vec.Vec2{X: v.X, Y: v.Y}
}

// Length returns the Euclidean norm of v.
func (v Vector) Length() float64 {
	return v.Vec2().Length()
}

// Rotate rotates v counterclockwise by angle radians.
func (v *Vector) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)
	x, y := v.X, v.Y
	v.X = x*cos - y*sin
	v.Y = x*sin + y*cos
}

// RandomRotate rotates v by an angle drawn uniformly from
// [-maxAngle, maxAngle].  Exactly one number is taken from rng.
func (v *Vector) RandomRotate(rng Rand, maxAngle float64) {
	angle := rng.Float64()*2*maxAngle - maxAngle
	v.Rotate(angle)
}

// Normalize scales v to unit length.  If v has length zero, or its length
// is not finite, v is left unchanged and ErrInvalidParameter is returned.
func (v *Vector) Normalize() error {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return fmt.Errorf("normalize (%g, %g): %w", v.X, v.Y, ErrInvalidParameter)
	}
	*v = FromVec2(v.Vec2().Mul(1 / l))
	return nil
}

// Scale multiplies both components of v by k.
func (v *Vector) Scale(k float64) {
	*v = FromVec2(v.Vec2().Mul(k))
}

// Copy returns an independent copy of v.
func (v Vector) Copy() Vector {
	return v
}
