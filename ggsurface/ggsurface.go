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

// Package ggsurface draws lightning animations with the gg 2D graphics
// library.
//
// The glow is approximated by a few wide, translucent strokes underneath
// each segment.
package ggsurface

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gg"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/lightning"
)

// DefaultHaloSteps is the number of glow strokes drawn per segment.
const DefaultHaloSteps = 4

// Surface adapts a gg.Context to the lightning.Surface interface.
type Surface struct {
	ctx        *gg.Context
	background gg.RGBA
	style      lightning.Style
	haloSteps  int
}

// Option configures a Surface.
type Option func(*Surface)

// WithBackground sets the color used by Clear.
func WithBackground(c color.Color) Option {
	return func(s *Surface) {
		s.background = gg.FromColor(c)
	}
}

// WithHaloSteps sets the number of glow strokes per segment.  Zero
// disables the glow.
func WithHaloSteps(n int) Option {
	return func(s *Surface) {
		s.haloSteps = max(n, 0)
	}
}

// New returns a Surface which draws onto ctx.
func New(ctx *gg.Context, opts ...Option) (*Surface, error) {
	if ctx == nil || ctx.Width() <= 0 || ctx.Height() <= 0 {
		return nil, fmt.Errorf("gg surface: %w", lightning.ErrInvalidSurface)
	}
	s := &Surface{
		ctx:        ctx,
		background: gg.Black,
		haloSteps:  DefaultHaloSteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.SetStyle(lightning.DefaultStyle())
	return s, nil
}

// Context returns the underlying drawing context.
func (s *Surface) Context() *gg.Context {
	return s.ctx
}

func (s *Surface) Size() (width, height float64) {
	return float64(s.ctx.Width()), float64(s.ctx.Height())
}

func (s *Surface) Clear() {
	s.ctx.ClearWithColor(s.background)
}

func (s *Surface) SetStyle(st lightning.Style) {
	s.style = st
	s.ctx.SetLineCap(lineCap(st.Cap))
	s.ctx.SetLineJoin(gg.LineJoinRound)
}

// Stroke draws the glow strokes, widest first, and then p itself.
func (s *Surface) Stroke(p *path.Data) error {
	if p == nil {
		return fmt.Errorf("stroke: nil path: %w", lightning.ErrInvalidGeometry)
	}
	st := s.style

	if st.Blur > 0 && st.GlowColor != nil && s.haloSteps > 0 {
		glow := gg.FromColor(st.GlowColor)
		glow.A /= float64(s.haloSteps + 1)
		for i := s.haloSteps; i >= 1; i-- {
			s.ctx.SetColor(glow.Color())
			s.ctx.SetLineWidth(st.LineWidth + 2*st.Blur*float64(i)/float64(s.haloSteps))
			s.replay(p)
			if err := s.ctx.Stroke(); err != nil {
				return err
			}
		}
	}

	if st.Color == nil {
		return nil
	}
	s.ctx.SetColor(st.Color)
	s.ctx.SetLineWidth(st.LineWidth)
	s.replay(p)
	return s.ctx.Stroke()
}

// replay sets p as the current path of the context.
func (s *Surface) replay(p *path.Data) {
	s.ctx.ClearPath()
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			s.ctx.MoveTo(p.Coords[k].X, p.Coords[k].Y)
			k++
		case path.CmdLineTo:
			s.ctx.LineTo(p.Coords[k].X, p.Coords[k].Y)
			k++
		case path.CmdQuadTo:
			c, q := p.Coords[k], p.Coords[k+1]
			s.ctx.QuadraticTo(c.X, c.Y, q.X, q.Y)
			k += 2
		case path.CmdCubeTo:
			c1, c2, q := p.Coords[k], p.Coords[k+1], p.Coords[k+2]
			s.ctx.CubicTo(c1.X, c1.Y, c2.X, c2.Y, q.X, q.Y)
			k += 3
		case path.CmdClose:
			s.ctx.ClosePath()
		}
	}
}

func lineCap(c graphics.LineCapStyle) gg.LineCap {
	switch c {
	case graphics.LineCapRound:
		return gg.LineCapRound
	case graphics.LineCapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}
