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

// Command lightning-window shows the lightning animation in a desktop
// window.
//
// Space stops or restarts spawning, Escape quits.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"seehuhn.de/go/lightning"
	"seehuhn.de/go/lightning/canvas"
)

func main() {
	width := flag.Int("width", 800, "initial window width")
	height := flag.Int("height", 600, "initial window height")
	interval := flag.Duration("interval", lightning.DefaultSpawnInterval, "time between border segments")
	seed := flag.Uint64("seed", 0, "random seed, 0 for a time based seed")
	verbose := flag.Bool("v", false, "log animation events")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	lightning.SetLogger(logger)

	g, err := newGame(*width, *height, *interval, *seed)
	if err != nil {
		logger.Error("cannot start", "err", err)
		os.Exit(1)
	}

	ebiten.SetWindowTitle("Lightning")
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	err = ebiten.RunGame(g)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("window closed", "err", err)
		os.Exit(1)
	}
}

type game struct {
	c     *canvas.Canvas
	anim  *lightning.Animation
	img   *ebiten.Image
	start time.Time

	stopped bool
}

func newGame(width, height int, interval time.Duration, seed uint64) (*game, error) {
	c, err := canvas.New(width, height)
	if err != nil {
		return nil, err
	}

	opts := []lightning.Option{lightning.WithSpawnInterval(interval)}
	if seed != 0 {
		opts = append(opts, lightning.WithSeed(seed))
	}
	a, err := lightning.New(c, opts...)
	if err != nil {
		return nil, err
	}
	if err := a.Start(0); err != nil {
		return nil, err
	}

	g := &game{
		c:     c,
		anim:  a,
		start: time.Now(),
	}
	return g, nil
}

func (g *game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if g.stopped {
			if err := g.anim.Start(time.Since(g.start)); err != nil {
				return err
			}
		} else {
			g.anim.Stop()
		}
		g.stopped = !g.stopped
	}
	return g.anim.Tick(time.Since(g.start))
}

func (g *game) Draw(screen *ebiten.Image) {
	img := g.c.Image()
	b := img.Bounds()
	if g.img == nil || g.img.Bounds().Dx() != b.Dx() || g.img.Bounds().Dy() != b.Dy() {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.img.WritePixels(img.Pix)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.c.Size()
	if outsideWidth > 0 && outsideHeight > 0 && (int(w) != outsideWidth || int(h) != outsideHeight) {
		if err := g.c.Resize(outsideWidth, outsideHeight); err != nil {
			lightning.Logger().Warn("resize failed", "err", err)
		}
	}
	return outsideWidth, outsideHeight
}
