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

// Package canvas implements a [lightning.Surface] which renders into an
// in-memory RGBA image.
//
// Strokes are collected in a coverage mask.  When the style changes, or
// when the image is requested, the mask is blurred to produce the glow,
// and glow and strokes are composited onto the image.
package canvas

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/lightning"
	"seehuhn.de/go/lightning/raster"
)

// Canvas is a software rendered drawing surface.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	img        *image.RGBA
	background color.Color

	r     *raster.Rasteriser
	style lightning.Style

	mask  []float32 // stroke coverage since the last flush
	dirty image.Rectangle
	blur  blurrer
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithBackground sets the color used by Clear.  The default is opaque
// black.
func WithBackground(c color.Color) Option {
	return func(cv *Canvas) {
		cv.background = c
	}
}

// New allocates a width×height canvas.
func New(width, height int, opts ...Option) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas %dx%d: %w", width, height, lightning.ErrInvalidSurface)
	}
	c := &Canvas{
		background: color.Black,
		style:      lightning.DefaultStyle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.alloc(width, height)
	c.Clear()
	return c, nil
}

func (c *Canvas) alloc(width, height int) {
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.mask = make([]float32, width*height)
	c.dirty = image.Rectangle{}
	clip := rect.Rect{URx: float64(width), URy: float64(height)}
	if c.r == nil {
		c.r = raster.NewRasteriser(clip)
	} else {
		c.r.Clip = clip
	}
}

// Size returns the canvas dimensions in pixels.
func (c *Canvas) Size() (width, height float64) {
	b := c.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Resize changes the canvas dimensions.  The contents are discarded.
func (c *Canvas) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize to %dx%d: %w", width, height, lightning.ErrInvalidSurface)
	}
	if b := c.img.Bounds(); b.Dx() == width && b.Dy() == height {
		return nil
	}
	c.alloc(width, height)
	c.Clear()
	return nil
}

// Clear fills the canvas with the background color and discards pending
// strokes.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
	c.clearMask()
}

// SetStyle sets the style for subsequent strokes.  Strokes made with the
// previous style are composited first.
func (c *Canvas) SetStyle(s lightning.Style) {
	if sameStyle(s, c.style) {
		return
	}
	c.flush()
	c.style = s
}

// Stroke adds the outline of p to the canvas.
func (c *Canvas) Stroke(p *path.Data) error {
	if p == nil {
		return fmt.Errorf("stroke: nil path: %w", lightning.ErrInvalidGeometry)
	}

	c.r.Width = c.style.LineWidth
	c.r.Cap = c.style.Cap

	w := c.img.Bounds().Dx()
	c.r.Stroke(p, func(y, xMin int, coverage []float32) {
		row := c.mask[y*w+xMin:]
		for i, v := range coverage {
			row[i] = max(row[i], v)
		}
		c.dirty = c.dirty.Union(image.Rect(xMin, y, xMin+len(coverage), y+1))
	})
	return nil
}

// Image composites all pending strokes and returns the canvas image.  The
// image is owned by the canvas and changes on the next drawing operation.
func (c *Canvas) Image() *image.RGBA {
	c.flush()
	return c.img
}

// flush composites the glow and the strokes collected in the mask, and
// clears the mask.
func (c *Canvas) flush() {
	if c.dirty.Empty() {
		return
	}

	if c.style.Blur > 0 && c.style.GlowColor != nil {
		sigma := c.style.Blur / 2
		area := c.dirty.Inset(-kernelReach(sigma)).Intersect(c.img.Bounds())
		glow := c.blur.apply(c.mask, c.img.Bounds().Dx(), area, sigma)
		c.composite(glow, area, area, c.style.GlowColor)
	}
	if c.style.Color != nil {
		c.composite(c.mask, c.img.Bounds(), c.dirty, c.style.Color)
	}
	c.clearMask()
}

// composite blends col onto the pixels in span, using the coverage values
// in cov as alpha.  cov is laid out row by row for the rectangle area,
// which must contain span.
func (c *Canvas) composite(cov []float32, area, span image.Rectangle, col color.Color) {
	sr, sg, sb, sa := col.RGBA()
	if sa == 0 {
		return
	}

	aw := area.Dx()
	for y := span.Min.Y; y < span.Max.Y; y++ {
		covRow := cov[(y-area.Min.Y)*aw:]
		pix := c.img.Pix[c.img.PixOffset(span.Min.X, y):]
		for x := span.Min.X; x < span.Max.X; x++ {
			a := covRow[x-area.Min.X]
			if a <= 0 {
				pix = pix[4:]
				continue
			}

			// source-over with premultiplied colors
			f := min(a, 1) * (0xff / float32(0xffff))
			srcA := float32(sa) * f
			keep := 1 - srcA/0xff
			pix[0] = uint8(float32(sr)*f + float32(pix[0])*keep + 0.5)
			pix[1] = uint8(float32(sg)*f + float32(pix[1])*keep + 0.5)
			pix[2] = uint8(float32(sb)*f + float32(pix[2])*keep + 0.5)
			pix[3] = uint8(srcA + float32(pix[3])*keep + 0.5)
			pix = pix[4:]
		}
	}
}

func sameStyle(a, b lightning.Style) bool {
	return a.LineWidth == b.LineWidth &&
		a.Blur == b.Blur &&
		a.Cap == b.Cap &&
		sameColor(a.Color, b.Color) &&
		sameColor(a.GlowColor, b.GlowColor)
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func (c *Canvas) clearMask() {
	clear(c.mask)
	c.dirty = image.Rectangle{}
}
