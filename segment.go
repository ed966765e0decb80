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
	"time"

	"seehuhn.de/go/geom/vec"
)

// Default segment parameters.
const (
	// DefaultDecay is the decay factor of segments spawned at the border.
	DefaultDecay = 1.0

	// DefaultSegmentDuration is the time a segment takes to grow, and
	// again to erase.
	DefaultSegmentDuration = 500 * time.Millisecond
)

// State is the animation phase of a segment.
type State int

const (
	Growing State = iota
	Erasing
	Done
)

func (s State) String() string {
	switch s {
	case Growing:
		return "growing"
	case Erasing:
		return "erasing"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Segment is a single animated stroke.  It first grows from start to end,
// then reverses and shrinks towards its far end.
//
// Segments are owned by an Animation, which updates them once per frame.
type Segment struct {
	start, end vec.Vec2
	tip        vec.Vec2 // currently rendered end point

	progress float64 // fraction of the current phase, nominally in [0, 1]
	rate     float64 // progress per millisecond
	decay    float64

	erasing  bool
	branched bool

	// startTime is the animation time at which the current phase began.
	// It is stamped by the Animation on the first frame which observes the
	// segment, and again when erasing begins.
	startTime    time.Duration
	hasStartTime bool
}

// NewSegment returns a growing segment from start to end.
// The decay factor must be at least 1, and d is the duration of each of
// the grow and erase phases.
func NewSegment(start, end vec.Vec2, decay float64, d time.Duration) (*Segment, error) {
	for _, x := range []float64{start.X, start.Y, end.X, end.Y} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("segment %v-%v: %w", start, end, ErrInvalidGeometry)
		}
	}
	if !(decay >= 1) || math.IsInf(decay, 0) {
		return nil, fmt.Errorf("decay factor %g: %w", decay, ErrInvalidParameter)
	}
	if d <= 0 {
		return nil, fmt.Errorf("segment duration %s: %w", d, ErrInvalidParameter)
	}

	s := &Segment{
		start: start,
		end:   end,
		tip:   start,
		rate:  1 / durationMillis(d),
		decay: decay,
	}
	return s, nil
}

// Reverse swaps the start and end points of the segment.
func (s *Segment) Reverse() {
	s.start, s.end = s.end, s.start
}

// Erase reverses the segment and switches it to the erasing phase.
// Progress and start time are left alone; resetting the start time is up
// to the caller.
func (s *Segment) Erase() {
	s.Reverse()
	s.erasing = true
}

// Direction returns the direction in which the segment originally grew.
func (s *Segment) Direction() Vector {
	if s.erasing {
		return FromVec2(s.start.Sub(s.end))
	}
	return FromVec2(s.end.Sub(s.start))
}

// Start returns the current start point.  While erasing, this is the point
// where growth ended.
func (s *Segment) Start() vec.Vec2 { return s.start }

// End returns the current end point.
func (s *Segment) End() vec.Vec2 { return s.end }

// Tip returns the point to which the segment is currently drawn.
func (s *Segment) Tip() vec.Vec2 { return s.tip }

// Progress returns the fraction of the current phase which is complete.
func (s *Segment) Progress() float64 { return s.progress }

// Decay returns the decay factor.
func (s *Segment) Decay() float64 { return s.decay }

// Erasing reports whether the segment is in its erasing phase.
func (s *Segment) Erasing() bool { return s.erasing }

// Branched reports whether the segment has made its branching decision.
func (s *Segment) Branched() bool { return s.branched }

// State returns the current phase.
func (s *Segment) State() State {
	switch {
	case s.erasing && s.progress < 0:
		return Done
	case s.erasing:
		return Erasing
	default:
		return Growing
	}
}

// origin returns the point from which branches sprout.
func (s *Segment) origin() vec.Vec2 {
	if s.erasing {
		return s.start
	}
	return s.end
}

// seek sets the progress and moves the tip accordingly.
func (s *Segment) seek(progress float64) {
	s.progress = progress
	s.tip = lerp(s.start, s.end, progress)
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return b.Sub(a).Mul(t).Add(a)
}

func durationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
