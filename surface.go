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
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"
)

// Surface is the drawing target of an Animation.
//
// Coordinates are in pixels, with the origin in the top-left corner and
// the y-axis pointing down.
type Surface interface {
	// Size returns the current dimensions of the surface.  The Animation
	// reads the size on every frame, so it may change between frames.
	Size() (width, height float64)

	// Clear erases the whole surface.
	Clear()

	// SetStyle sets the parameters for subsequent calls to Stroke.
	SetStyle(Style)

	// Stroke draws the outline of p using the current style.
	Stroke(p *path.Data) error
}

// Style describes how segments are drawn.
type Style struct {
	// LineWidth is the stroke width in pixels.
	LineWidth float64

	// Blur is the radius of the glow drawn around each stroke, in pixels.
	// Zero disables the glow.
	Blur float64

	// Color is the stroke color.
	Color color.Color

	// GlowColor is the color of the glow.
	GlowColor color.Color

	// Cap is the style used for the ends of each stroke.
	Cap graphics.LineCapStyle
}

// DefaultStyle returns a three pixel wide purple stroke with a purple glow.
func DefaultStyle() Style {
	purple := color.NRGBA{R: 0x80, G: 0x00, B: 0x80, A: 0xFF}
	return Style{
		LineWidth: 3,
		Blur:      10,
		Color:     purple,
		GlowColor: purple,
		Cap:       graphics.LineCapButt,
	}
}
