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

package record

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/lightning"
)

// glowGray is the gray level of the glow drawn under each stroke.
const glowGray = 0.3

// WritePDF writes f as a single page PDF file of the given size, with one
// PDF unit per pixel.
//
// The output is monochrome: Style.Color and Style.GlowColor are ignored.
// Strokes are drawn in white on a black background, glows as wider gray
// strokes underneath.  Width, blur and line cap are taken from each
// stroke's style.
func WritePDF(fname string, f Frame, width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return fmt.Errorf("page %gx%g: %w", width, height, lightning.ErrInvalidSurface)
	}

	paper := &pdf.Rectangle{URx: width, URy: height}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, width, height)
	page.Fill()

	// PDF has the origin in the bottom-left corner
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, height})
	page.SetLineJoin(graphics.LineJoinRound)

	for _, s := range f.Strokes {
		if s.Style.Blur > 0 {
			page.SetStrokeColor(color.DeviceGray(glowGray))
			page.SetLineWidth(s.Style.LineWidth + s.Style.Blur)
			page.SetLineCap(graphics.LineCapRound)
			drawPath(page, s.Path)
			page.Stroke()
		}

		page.SetStrokeColor(color.DeviceGray(1))
		page.SetLineWidth(s.Style.LineWidth)
		page.SetLineCap(s.Style.Cap)
		drawPath(page, s.Path)
		page.Stroke()
	}

	return page.Close()
}

func drawPath(page *document.Page, p *path.Data) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			page.ClosePath()
		}
	}
}
