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

// Package record provides a [lightning.Surface] which stores the drawn
// strokes instead of rendering them.  Recorded frames can be inspected,
// compared and written out as PDF.
package record

import (
	"fmt"
	"slices"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/lightning"
)

// Stroke is a single recorded stroke.
type Stroke struct {
	Path  *path.Data
	Style lightning.Style
}

// Frame holds the strokes drawn between two calls to Clear.
type Frame struct {
	Strokes []Stroke
}

// Recorder is a Surface which records frames.
type Recorder struct {
	width, height float64
	style         lightning.Style

	frames    []Frame
	maxFrames int
	started   bool
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithMaxFrames limits the number of frames kept.  Older frames are
// dropped first.  Zero means no limit.
func WithMaxFrames(n int) Option {
	return func(r *Recorder) {
		r.maxFrames = max(n, 0)
	}
}

// New returns a Recorder for a surface of the given size.
func New(width, height float64, opts ...Option) (*Recorder, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("recorder %gx%g: %w", width, height, lightning.ErrInvalidSurface)
	}
	r := &Recorder{
		width:  width,
		height: height,
		style:  lightning.DefaultStyle(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Recorder) Size() (width, height float64) {
	return r.width, r.height
}

// Resize changes the reported surface size.  Recorded frames are kept.
func (r *Recorder) Resize(width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return fmt.Errorf("resize to %gx%g: %w", width, height, lightning.ErrInvalidSurface)
	}
	r.width, r.height = width, height
	return nil
}

// Clear starts a new frame.
func (r *Recorder) Clear() {
	r.frames = append(r.frames, Frame{})
	if r.maxFrames > 0 && len(r.frames) > r.maxFrames {
		r.frames = slices.Delete(r.frames, 0, len(r.frames)-r.maxFrames)
	}
	r.started = true
}

func (r *Recorder) SetStyle(s lightning.Style) {
	r.style = s
}

// Stroke records a copy of p.  Strokes drawn before the first call to
// Clear start the first frame.
func (r *Recorder) Stroke(p *path.Data) error {
	if p == nil {
		return fmt.Errorf("stroke: nil path: %w", lightning.ErrInvalidGeometry)
	}
	if !r.started {
		r.Clear()
	}
	cp := &path.Data{
		Cmds:   slices.Clone(p.Cmds),
		Coords: slices.Clone(p.Coords),
	}
	f := &r.frames[len(r.frames)-1]
	f.Strokes = append(f.Strokes, Stroke{Path: cp, Style: r.style})
	return nil
}

// Frames returns the recorded frames, oldest first.
func (r *Recorder) Frames() []Frame {
	return slices.Clone(r.frames)
}

// Last returns the most recent frame.
func (r *Recorder) Last() (Frame, bool) {
	if len(r.frames) == 0 {
		return Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

// Reset discards all recorded frames.
func (r *Recorder) Reset() {
	r.frames = r.frames[:0]
	r.started = false
}
