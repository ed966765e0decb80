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

// Package lightning animates branching, lightning-like strokes.
//
// Segments spawn at the border of a [Surface], grow towards its center,
// erase themselves backwards and, shortly before they vanish, may sprout
// two shorter branches from their far end.  Every branch generation is less
// likely to branch again, so the number of active segments stays bounded.
//
// An [Animation] is driven by calling [Animation.Tick] once per displayed
// frame, or by [Animation.Run] for a self-timed loop.
package lightning

import (
	"fmt"
	"math"
	"slices"
	"sync/atomic"
	"time"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Animation owns a set of active segments and advances them frame by frame.
//
// Apart from Stop, the methods of an Animation must be called from a
// single goroutine.
type Animation struct {
	surface Surface
	opt     options

	segments []*Segment
	now      time.Duration // time of the most recent frame

	running       bool
	nextSpawn     time.Duration
	stopRequested atomic.Bool

	stats Stats
}

// New returns an Animation which draws onto s.
func New(s Surface, opts ...Option) (*Animation, error) {
	opt := defaultOptions()
	for _, o := range opts {
		o(&opt)
	}

	if opt.rng == nil {
		return nil, fmt.Errorf("missing random source: %w", ErrInvalidParameter)
	}
	if opt.spawnInterval <= 0 {
		return nil, fmt.Errorf("spawn interval %s: %w", opt.spawnInterval, ErrInvalidParameter)
	}
	if opt.segmentDuration <= 0 {
		return nil, fmt.Errorf("segment duration %s: %w", opt.segmentDuration, ErrInvalidParameter)
	}
	if !(opt.style.LineWidth > 0) || opt.style.Blur < 0 {
		return nil, fmt.Errorf("style (width %g, blur %g): %w",
			opt.style.LineWidth, opt.style.Blur, ErrInvalidParameter)
	}

	a := &Animation{
		surface: s,
		opt:     opt,
	}
	return a, nil
}

// Start begins spawning segments.  The first segment is spawned one spawn
// interval after now, further segments follow at the same interval.
func (a *Animation) Start(now time.Duration) error {
	if _, _, err := a.size(); err != nil {
		return err
	}
	a.stopRequested.Store(false)
	if a.running {
		return nil
	}
	a.running = true
	a.nextSpawn = now + a.opt.spawnInterval

	Logger().Info("animation started", "interval", a.opt.spawnInterval)
	return nil
}

// Stop stops spawning new segments.  Segments which are already on screen
// run to completion as long as frames are rendered; see [Animation.Done].
//
// Stop may be called from any goroutine.  It takes effect at the next
// call to Tick.
func (a *Animation) Stop() {
	a.stopRequested.Store(true)
}

// Done reports whether the animation is stopped and all segments have
// finished.
func (a *Animation) Done() bool {
	return !a.running && len(a.segments) == 0
}

// Tick advances the animation to time now: it spawns a border segment if
// one is due, and then renders a frame.
//
// Tick is meant to be called from the display refresh callback.  Times
// passed to successive calls must not decrease.
func (a *Animation) Tick(now time.Duration) error {
	if a.stopRequested.Swap(false) && a.running {
		a.running = false
		Logger().Info("animation stopped", "active", len(a.segments))
	}

	if a.running && now >= a.nextSpawn {
		a.now = now
		if _, err := a.SpawnInitialSegment(); err != nil {
			return err
		}
		a.nextSpawn += a.opt.spawnInterval
		if a.nextSpawn <= now {
			// skip missed spawns instead of emitting a burst
			a.nextSpawn = now + a.opt.spawnInterval
		}
	}

	return a.RenderFrame(now)
}

// RenderFrame clears the surface, draws every active segment and advances
// its state to time now.
//
// Segments added while the frame is drawn are first visited in the next
// frame.  Segments which finish erasing are removed once all segments
// have been visited.
func (a *Animation) RenderFrame(now time.Duration) error {
	if _, _, err := a.size(); err != nil {
		return err
	}
	a.now = now

	a.surface.Clear()
	a.surface.SetStyle(a.opt.style)

	var done []*Segment
	for _, s := range slices.Clone(a.segments) {
		if !s.hasStartTime {
			s.startTime = now
			s.hasStartTime = true
		}
		elapsed := durationMillis(now - s.startTime)

		stroke := (&path.Data{}).MoveTo(s.start).LineTo(s.tip)
		if err := a.surface.Stroke(stroke); err != nil {
			return err
		}

		switch {
		case s.erasing && s.progress < branchThreshold && !s.branched:
			if err := a.Branch(s); err != nil {
				return err
			}
		case s.erasing && s.progress < 0:
			done = append(done, s)
		case s.erasing:
			s.seek(1 - s.rate*elapsed)
		case s.progress >= 1:
			s.startTime = now
			s.Erase()
			Logger().Debug("erase", "x", s.start.X, "y", s.start.Y)
			a.emit(Event{Kind: EventErase, Segment: s})
		default:
			s.seek(s.rate * elapsed)
		}
	}

	for _, s := range done {
		if err := a.RemoveSegment(s); err != nil {
			return err
		}
	}
	return nil
}

// SpawnInitialSegment adds a segment which starts at a random point on the
// border of the surface and points roughly towards the surface center.
func (a *Animation) SpawnInitialSegment() (*Segment, error) {
	w, h, err := a.size()
	if err != nil {
		return nil, err
	}

	p := borderPoint(a.opt.rng.Float64()*(2*w+2*h), w, h)

	v := FromVec2(vec.Vec2{X: w / 2, Y: h / 2}.Sub(p))
	v.Rotate(a.opt.skew)
	if err := v.Normalize(); err != nil {
		return nil, fmt.Errorf("spawn at %v: %w", p, err)
	}
	v.Scale(a.randomLength())

	s, err := NewSegment(p, p.Add(v.Vec2()), DefaultDecay, a.opt.segmentDuration)
	if err != nil {
		return nil, err
	}
	a.segments = append(a.segments, s)
	a.stats.Spawned++

	Logger().Debug("spawn",
		"x0", s.start.X, "y0", s.start.Y,
		"x1", s.end.X, "y1", s.end.Y,
		"active", len(a.segments))
	a.emit(Event{Kind: EventSpawn, Segment: s})
	return s, nil
}

// Branch makes the branching decision for s.  With probability
// min(1, 0.9/decay) two branches are created at the far end of s, each
// turned by a random angle from the direction of s.  A branch is dropped
// if its start has a negative coordinate, or if its end lies at or beyond
// the right or bottom edge of the surface.
//
// Afterwards s is marked as branched, whatever the outcome.
func (a *Animation) Branch(s *Segment) error {
	w, h, err := a.size()
	if err != nil {
		return err
	}

	dir := s.Direction()
	origin := s.origin()
	s.branched = true

	if a.opt.rng.Float64() >= min(1, branchProbability/s.decay) {
		Logger().Debug("branch", "decay", s.decay, "children", 0)
		a.emit(Event{Kind: EventBranch, Segment: s})
		return nil
	}
	a.stats.Branches++

	// floor(r+2) equals 2 for every r in [0, 1), so the fan-out is fixed.
	// A random fan-out of 2 or 3 may have been intended here.
	n := int(math.Floor(a.opt.rng.Float64() + 2))

	added := 0
	for range n {
		v := dir.Copy()
		v.RandomRotate(a.opt.rng, a.opt.spread)
		if err := v.Normalize(); err != nil {
			return fmt.Errorf("branch at %v: %w", origin, err)
		}
		v.Scale(a.randomLength())

		end := origin.Add(v.Vec2())
		if !onSurface(origin, end, w, h) {
			a.stats.Discarded++
			continue
		}

		child, err := NewSegment(origin, end, s.decay+decayStep, a.opt.segmentDuration)
		if err != nil {
			return err
		}
		a.segments = append(a.segments, child)
		added++
	}
	a.stats.Children += added

	Logger().Debug("branch", "decay", s.decay, "children", added, "active", len(a.segments))
	a.emit(Event{Kind: EventBranch, Segment: s, Children: added})
	return nil
}

// RemoveSegment removes s from the active set.
// If s is not in the active set, ErrSegmentNotFound is returned.
func (a *Animation) RemoveSegment(s *Segment) error {
	i := slices.Index(a.segments, s)
	if i < 0 {
		return fmt.Errorf("remove %p: %w", s, ErrSegmentNotFound)
	}
	a.segments = slices.Delete(a.segments, i, i+1)
	a.stats.Removed++

	Logger().Debug("remove", "active", len(a.segments))
	a.emit(Event{Kind: EventRemove, Segment: s})
	return nil
}

// Segments returns the active segments.  The slice is a copy, the segments
// are not.
func (a *Animation) Segments() []*Segment {
	return slices.Clone(a.segments)
}

// Len returns the number of active segments.
func (a *Animation) Len() int {
	return len(a.segments)
}

// Stats returns the animation counters.
func (a *Animation) Stats() Stats {
	st := a.stats
	st.Active = len(a.segments)
	return st
}

func (a *Animation) size() (w, h float64, err error) {
	w, h = a.surface.Size()
	if !validDim(w) || !validDim(h) {
		return 0, 0, fmt.Errorf("%gx%g: %w", w, h, ErrInvalidSurface)
	}
	return w, h, nil
}

func (a *Animation) randomLength() float64 {
	return minSegmentLength + a.opt.rng.Float64()*segmentLengthRange
}

func (a *Animation) emit(ev Event) {
	if a.opt.onEvent == nil {
		return
	}
	ev.Time = a.now
	a.opt.onEvent(ev)
}

// borderPoint maps u in [0, 2w+2h) onto the border of a w×h rectangle,
// visiting the top, right, bottom and left edges in this order.
func borderPoint(u, w, h float64) vec.Vec2 {
	switch {
	case u < w:
		return vec.Vec2{X: u, Y: 0}
	case u < w+h:
		return vec.Vec2{X: w, Y: u - w}
	case u < 2*w+h:
		return vec.Vec2{X: u - (w + h), Y: h}
	default:
		return vec.Vec2{X: 0, Y: u - (2*w + h)}
	}
}

// onSurface reports whether a branch from start to end may be kept.  Only
// the lower bound is checked on start and only the upper bound on end.
func onSurface(start, end vec.Vec2, w, h float64) bool {
	return start.X >= 0 && start.Y >= 0 && end.X < w && end.Y < h
}

func validDim(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}
