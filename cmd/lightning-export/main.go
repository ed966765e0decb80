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

// Command lightning-export plays the built-in scenarios and writes the
// results to disk.
//
// For every scenario it writes PNG frames, a JSON file with the segment
// geometry of the busiest frame, and a PDF snapshot of that frame.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/lightning"
	"seehuhn.de/go/lightning/canvas"
	"seehuhn.de/go/lightning/record"
	"seehuhn.de/go/lightning/scenario"
)

func main() {
	outDir := flag.String("o", "out", "output directory")
	every := flag.Int("every", 10, "write every n-th frame as PNG, 0 for none")
	only := flag.String("run", "", "only export scenarios whose name contains this string")
	verbose := flag.Bool("v", false, "log animation events")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	lightning.SetLogger(logger)

	for _, category := range slices.Sorted(maps.Keys(scenario.All)) {
		for _, s := range scenario.All[category] {
			name := category + "_" + s.Name
			if !strings.Contains(name, *only) {
				continue
			}
			start := time.Now()
			if err := export(*outDir, name, s, *every); err != nil {
				logger.Error("export failed", "scenario", name, "err", err)
				os.Exit(1)
			}
			logger.Info("exported", "scenario", name, "took", time.Since(start))
		}
	}
}

func export(outDir, name string, s scenario.Scenario, every int) error {
	frameDir := filepath.Join(outDir, name)
	if err := os.MkdirAll(frameDir, 0755); err != nil {
		return err
	}

	c, err := canvas.New(s.Width, s.Height)
	if err != nil {
		return err
	}
	rec, err := record.New(float64(s.Width), float64(s.Height), record.WithMaxFrames(1))
	if err != nil {
		return err
	}

	var busiest record.Frame
	var busiestTime time.Duration
	a, err := s.Play(tee{c, rec}, func(frame int, now time.Duration) error {
		if f, ok := rec.Last(); ok && len(f.Strokes) > len(busiest.Strokes) {
			busiest, busiestTime = f, now
		}
		if every <= 0 || frame%every != 0 {
			return nil
		}
		return writePNG(filepath.Join(frameDir, fmt.Sprintf("frame_%05d.png", frame)), c)
	})
	if err != nil {
		return err
	}

	out := jsonScenario{
		Name:     name,
		Width:    s.Width,
		Height:   s.Height,
		Seed:     s.Seed,
		Frames:   s.Frames(),
		Time:     busiestTime.Seconds(),
		Stats:    a.Stats(),
		Segments: frameToJSON(busiest),
	}
	if err := writeJSON(filepath.Join(outDir, name+".json"), out); err != nil {
		return err
	}

	if len(busiest.Strokes) == 0 {
		return nil
	}
	return record.WritePDF(filepath.Join(outDir, name+".pdf"), busiest, float64(s.Width), float64(s.Height))
}

// tee draws onto several surfaces at once.  The size is taken from the
// first surface.
type tee []lightning.Surface

func (t tee) Size() (width, height float64) {
	return t[0].Size()
}

func (t tee) Clear() {
	for _, s := range t {
		s.Clear()
	}
}

func (t tee) SetStyle(st lightning.Style) {
	for _, s := range t {
		s.SetStyle(st)
	}
}

func (t tee) Stroke(p *path.Data) error {
	for _, s := range t {
		if err := s.Stroke(p); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(fname string, c *canvas.Canvas) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := png.Encode(f, c.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(fname string, v any) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type jsonScenario struct {
	Name     string          `json:"name"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Seed     uint64          `json:"seed"`
	Frames   int             `json:"frames"`
	Time     float64         `json:"time"`
	Stats    lightning.Stats `json:"stats"`
	Segments []jsonStroke    `json:"segments"`
}

type jsonStroke struct {
	Path      []jsonSegment `json:"path"`
	LineWidth float64       `json:"line_width"`
	Blur      float64       `json:"blur,omitempty"`
	LineCap   string        `json:"line_cap"`
}

type jsonSegment struct {
	Cmd string      `json:"cmd"`
	Pts [][]float64 `json:"pts"`
}

func frameToJSON(f record.Frame) []jsonStroke {
	res := make([]jsonStroke, len(f.Strokes))
	for i, st := range f.Strokes {
		res[i] = jsonStroke{
			Path:      pathToJSON(st.Path),
			LineWidth: st.Style.LineWidth,
			Blur:      st.Style.Blur,
			LineCap:   st.Style.Cap.String(),
		}
	}
	return res
}

func pathToJSON(p *path.Data) []jsonSegment {
	var segs []jsonSegment
	for cmd, pts := range p.Iter() {
		seg := jsonSegment{Pts: make([][]float64, len(pts))}
		switch cmd {
		case path.CmdMoveTo:
			seg.Cmd = "M"
		case path.CmdLineTo:
			seg.Cmd = "L"
		case path.CmdQuadTo:
			seg.Cmd = "Q"
		case path.CmdCubeTo:
			seg.Cmd = "C"
		case path.CmdClose:
			seg.Cmd = "Z"
		}
		for i, pt := range pts {
			seg.Pts[i] = []float64{pt.X, pt.Y}
		}
		segs = append(segs, seg)
	}
	return segs
}
