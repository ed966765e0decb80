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

// Package scenario defines reproducible lightning animations.
//
// A scenario fixes the surface size, the random seed and the frame
// timing, so that playing it twice draws exactly the same frames.
package scenario

import (
	"time"

	"seehuhn.de/go/lightning"
)

// Scenario describes a deterministic animation run.
type Scenario struct {
	Name     string        // lowercase a-z, 0-9 and _ only
	Width    int           // surface width in pixels
	Height   int           // surface height in pixels
	Seed     uint64        // seed for the random source
	Frame    time.Duration // time between two frames
	Duration time.Duration // total animation time

	SpawnInterval   time.Duration    // zero means the default
	SegmentDuration time.Duration    // zero means the default
	Style           *lightning.Style // nil means the default
}

// Options returns the animation options for s.
func (s Scenario) Options() []lightning.Option {
	opts := []lightning.Option{lightning.WithSeed(s.Seed)}
	if s.SpawnInterval > 0 {
		opts = append(opts, lightning.WithSpawnInterval(s.SpawnInterval))
	}
	if s.SegmentDuration > 0 {
		opts = append(opts, lightning.WithSegmentDuration(s.SegmentDuration))
	}
	if s.Style != nil {
		opts = append(opts, lightning.WithStyle(*s.Style))
	}
	return opts
}

// Frames returns the number of frames in the scenario.  The first frame
// is drawn at time zero, the last one at or before Duration.
func (s Scenario) Frames() int {
	if s.Frame <= 0 {
		return 0
	}
	return int(s.Duration/s.Frame) + 1
}

// Play runs the scenario on surf, using a simulated clock.  After each
// frame, fn (if non-nil) is called with the frame number and time.
// Extra options are applied after the scenario's own options.
func (s Scenario) Play(surf lightning.Surface, fn func(frame int, now time.Duration) error, extra ...lightning.Option) (*lightning.Animation, error) {
	a, err := lightning.New(surf, append(s.Options(), extra...)...)
	if err != nil {
		return nil, err
	}
	if err := a.Start(0); err != nil {
		return nil, err
	}

	for i := range s.Frames() {
		now := time.Duration(i) * s.Frame
		if err := a.Tick(now); err != nil {
			return a, err
		}
		if fn != nil {
			if err := fn(i, now); err != nil {
				return a, err
			}
		}
	}
	return a, nil
}
