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

// Command lightning-term shows the lightning animation in a terminal.
//
// The animation is rendered at a multiple of the terminal resolution and
// scaled down, two pixels per character cell.  Branches can be made
// audible with -sound.  Press q or Escape to quit, space to stop or
// restart spawning.
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"golang.org/x/image/draw"

	"seehuhn.de/go/lightning"
	"seehuhn.de/go/lightning/canvas"
)

const sampleRate = beep.SampleRate(44100)

func main() {
	scale := flag.Int("scale", 4, "canvas pixels per terminal pixel")
	interval := flag.Duration("interval", lightning.DefaultSpawnInterval, "time between border segments")
	fps := flag.Int("fps", 30, "frames per second")
	sound := flag.Bool("sound", false, "play a tone for every branch")
	logFile := flag.String("log", "", "write log messages to this file")
	verbose := flag.Bool("v", false, "log animation events")
	flag.Parse()

	if err := run(*scale, *interval, *fps, *sound, *logFile, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "lightning-term:", err)
		os.Exit(1)
	}
}

func run(scale int, interval time.Duration, fps int, sound bool, logFile string, verbose bool) error {
	if scale < 1 || fps < 1 {
		return fmt.Errorf("invalid scale %d or fps %d", scale, fps)
	}

	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		lightning.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	t := &term{screen: screen}
	cols, rows := screen.Size()
	t.c, err = canvas.New(max(cols, 1)*scale, max(rows, 1)*2*scale)
	if err != nil {
		return err
	}

	opts := []lightning.Option{lightning.WithSpawnInterval(interval)}
	if sound {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			lightning.Logger().Warn("no sound", "err", err)
		} else {
			defer speaker.Close()
			opts = append(opts, lightning.WithEventHandler(playBranch))
		}
	}

	a, err := lightning.New(t.c, opts...)
	if err != nil {
		return err
	}
	start := time.Now()
	if err := a.Start(0); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	events := pollEvents(screen.PollEvent, done)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	stopped := false
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
					if stopped {
						if err := a.Start(time.Since(start)); err != nil {
							return err
						}
					} else {
						a.Stop()
					}
					stopped = !stopped
				}
			case *tcell.EventResize:
				cols, rows := ev.Size()
				if err := t.c.Resize(max(cols, 1)*scale, max(rows, 1)*2*scale); err != nil {
					return err
				}
				screen.Sync()
			}

		case <-ticker.C:
			if err := a.Tick(time.Since(start)); err != nil {
				return err
			}
			t.draw()
		}
	}
}

// pollEvents forwards the events returned by poll.  The returned channel
// is closed once poll returns nil or done is closed.
func pollEvents(poll func() tcell.Event, done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event)
	go func() {
		defer close(events)
		for {
			ev := poll()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

type term struct {
	screen tcell.Screen
	c      *canvas.Canvas
	small  *image.RGBA
}

// draw shows the canvas on the screen.  Each cell shows two pixels, the
// upper one as foreground of a half block and the lower one as background.
func (t *term) draw() {
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	r := image.Rect(0, 0, cols, 2*rows)
	if t.small == nil || t.small.Rect != r {
		t.small = image.NewRGBA(r)
	}
	src := t.c.Image()
	draw.ApproxBiLinear.Scale(t.small, r, src, src.Bounds(), draw.Src, nil)

	for y := range rows {
		for x := range cols {
			top := t.small.RGBAAt(x, 2*y)
			bot := t.small.RGBAAt(x, 2*y+1)
			st := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			t.screen.SetContent(x, y, '▀', nil, st)
		}
	}
	t.screen.Show()
}

// playBranch plays a short tone for each branching segment.  Deeper
// branches sound higher.
func playBranch(ev lightning.Event) {
	if ev.Kind != lightning.EventBranch || ev.Children == 0 {
		return
	}
	freq := min(220*ev.Segment.Decay(), 4000)
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(40*time.Millisecond), tone))
}
