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

package scenario

import (
	"image/color"
	"strings"
	"time"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/lightning"
)

// All contains all scenarios, organized by category.
var All = map[string][]Scenario{
	"basic":  basic,
	"branch": branch,
	"style":  style,
}

var basic = []Scenario{
	{
		Name:     "default",
		Width:    800,
		Height:   600,
		Seed:     1,
		Frame:    16 * time.Millisecond,
		Duration: 12 * time.Second,
	},
	{
		Name:     "small",
		Width:    200,
		Height:   150,
		Seed:     2,
		Frame:    16 * time.Millisecond,
		Duration: 9 * time.Second,
	},
	{
		Name:     "wide",
		Width:    1920,
		Height:   300,
		Seed:     3,
		Frame:    33 * time.Millisecond,
		Duration: 9 * time.Second,
	},
}

var branch = []Scenario{
	{
		Name:          "storm",
		Width:         800,
		Height:        600,
		Seed:          4,
		Frame:         16 * time.Millisecond,
		Duration:      6 * time.Second,
		SpawnInterval: 250 * time.Millisecond,
	},
	{
		// most branches leave the surface and are dropped
		Name:          "tiny",
		Width:         60,
		Height:        40,
		Seed:          5,
		Frame:         16 * time.Millisecond,
		Duration:      6 * time.Second,
		SpawnInterval: 300 * time.Millisecond,
	},
	{
		Name:            "quick",
		Width:           640,
		Height:          480,
		Seed:            6,
		Frame:           10 * time.Millisecond,
		Duration:        3 * time.Second,
		SpawnInterval:   200 * time.Millisecond,
		SegmentDuration: 120 * time.Millisecond,
	},
}

var style = []Scenario{
	{
		Name:     "round_caps",
		Width:    400,
		Height:   300,
		Seed:     7,
		Frame:    16 * time.Millisecond,
		Duration: 5 * time.Second,
		Style: &lightning.Style{
			LineWidth: 5,
			Blur:      6,
			Color:     color.NRGBA{R: 0xc0, G: 0xd0, B: 0xff, A: 0xff},
			GlowColor: color.NRGBA{R: 0x40, G: 0x60, B: 0xff, A: 0xff},
			Cap:       graphics.LineCapRound,
		},
		SpawnInterval: time.Second,
	},
	{
		Name:     "no_glow",
		Width:    400,
		Height:   300,
		Seed:     8,
		Frame:    16 * time.Millisecond,
		Duration: 5 * time.Second,
		Style: &lightning.Style{
			LineWidth: 1,
			Color:     color.White,
			Cap:       graphics.LineCapSquare,
		},
		SpawnInterval: time.Second,
	},
}

// Find returns the scenario with the given full name, "category_name".
func Find(fullName string) (Scenario, bool) {
	for category, list := range All {
		name, ok := strings.CutPrefix(fullName, category+"_")
		if !ok {
			continue
		}
		for _, s := range list {
			if s.Name == name {
				return s, true
			}
		}
	}
	return Scenario{}, false
}
