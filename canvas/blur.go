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

package canvas

import (
	"image"
	"math"
	"slices"
)

// blurrer applies a separable Gaussian blur to a coverage mask.  The
// kernel and the scratch buffers are kept between calls.
type blurrer struct {
	sigma  float64
	kernel []float32

	tmp []float32
	out []float32
}

// kernelReach returns the half width of the kernel for sigma.  The kernel
// covers three standard deviations on each side.
func kernelReach(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	return int(math.Ceil(3 * sigma))
}

// gaussianKernel returns the normalised 1D kernel for sigma.
func gaussianKernel(sigma float64) []float32 {
	h := kernelReach(sigma)
	if h == 0 {
		return []float32{1}
	}
	k := make([]float32, 2*h+1)
	var sum float64
	for i := range k {
		x := float64(i - h)
		v := math.Exp(-x * x / (2 * sigma * sigma))
		k[i] = float32(v)
		sum += v
	}
	for i := range k {
		k[i] = float32(float64(k[i]) / sum)
	}
	return k
}

// apply blurs the part of mask inside area.  mask holds one value per
// pixel, stride values per row, and is zero outside area.  The result is
// laid out row by row for area and is valid until the next call.
func (b *blurrer) apply(mask []float32, stride int, area image.Rectangle, sigma float64) []float32 {
	if b.kernel == nil || b.sigma != sigma {
		b.kernel = gaussianKernel(sigma)
		b.sigma = sigma
	}
	k := b.kernel
	h := len(k) / 2

	aw, ah := area.Dx(), area.Dy()
	b.tmp = slices.Grow(b.tmp[:0], aw*ah)[:aw*ah]
	b.out = slices.Grow(b.out[:0], aw*ah)[:aw*ah]

	// horizontal pass, mask -> tmp
	for y := range ah {
		src := mask[(area.Min.Y+y)*stride:]
		dst := b.tmp[y*aw : (y+1)*aw]
		for x := range aw {
			sx := area.Min.X + x
			lo := max(sx-h, area.Min.X)
			hi := min(sx+h, area.Max.X-1)
			var v float32
			for i := lo; i <= hi; i++ {
				v += src[i] * k[i-sx+h]
			}
			dst[x] = v
		}
	}

	// vertical pass, tmp -> out
	for y := range ah {
		lo := max(y-h, 0)
		hi := min(y+h, ah-1)
		dst := b.out[y*aw : (y+1)*aw]
		clear(dst)
		for i := lo; i <= hi; i++ {
			w := k[i-y+h]
			row := b.tmp[i*aw : (i+1)*aw]
			for x, v := range row {
				dst[x] += v * w
			}
		}
	}

	return b.out
}
