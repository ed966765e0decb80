package ggsurface

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/gogpu/gg"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/lightning"
)

func rgbaAt(ctx *gg.Context, x, y int) color.RGBA {
	return color.RGBAModel.Convert(ctx.Image().At(x, y)).(color.RGBA)
}

func TestClear(t *testing.T) {
	ctx := gg.NewContext(16, 16)
	s, err := New(ctx, WithBackground(color.NRGBA{R: 0, G: 0, B: 255, A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	s.Clear()
	if got := rgbaAt(ctx, 3, 7); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("expected blue background, got %v", got)
	}
	if w, h := s.Size(); w != 16 || h != 16 {
		t.Errorf("expected size 16x16, got %gx%g", w, h)
	}
}

func TestStroke(t *testing.T) {
	ctx := gg.NewContext(60, 60)
	s, err := New(ctx)
	if err != nil {
		t.Fatal(err)
	}
	s.Clear()
	s.SetStyle(lightning.Style{
		LineWidth: 4,
		Blur:      10,
		Color:     color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		GlowColor: color.NRGBA{R: 255, A: 255},
		Cap:       graphics.LineCapRound,
	})

	p := (&path.Data{}).MoveTo(vec.Vec2{X: 10, Y: 30}).LineTo(vec.Vec2{X: 50, Y: 30})
	if err := s.Stroke(p); err != nil {
		t.Fatal(err)
	}

	if got := rgbaAt(ctx, 30, 30); got.G < 200 {
		t.Errorf("stroke centre: expected nearly white, got %v", got)
	}
	glow := rgbaAt(ctx, 30, 36)
	if glow.R == 0 || glow.G > glow.R {
		t.Errorf("next to the stroke: expected red glow, got %v", glow)
	}
	if got := rgbaAt(ctx, 30, 55); got != (color.RGBA{A: 255}) {
		t.Errorf("far from the stroke: expected background, got %v", got)
	}
}

func TestNoHalo(t *testing.T) {
	ctx := gg.NewContext(60, 60)
	s, err := New(ctx, WithHaloSteps(0))
	if err != nil {
		t.Fatal(err)
	}
	s.Clear()
	st := lightning.DefaultStyle()
	st.LineWidth = 4
	s.SetStyle(st)

	p := (&path.Data{}).MoveTo(vec.Vec2{X: 10, Y: 30}).LineTo(vec.Vec2{X: 50, Y: 30})
	if err := s.Stroke(p); err != nil {
		t.Fatal(err)
	}
	if got := rgbaAt(ctx, 30, 36); got != (color.RGBA{A: 255}) {
		t.Errorf("expected no glow, got %v", got)
	}
}

func TestInvalid(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, lightning.ErrInvalidSurface) {
		t.Errorf("expected ErrInvalidSurface, got %v", err)
	}

	s, err := New(gg.NewContext(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stroke(nil); !errors.Is(err, lightning.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestLineCap(t *testing.T) {
	cases := map[graphics.LineCapStyle]gg.LineCap{
		graphics.LineCapButt:   gg.LineCapButt,
		graphics.LineCapRound:  gg.LineCapRound,
		graphics.LineCapSquare: gg.LineCapSquare,
	}
	for in, want := range cases {
		if got := lineCap(in); got != want {
			t.Errorf("%d: expected %d, got %d", in, want, got)
		}
	}
}

func TestAnimation(t *testing.T) {
	ctx := gg.NewContext(200, 150)
	s, err := New(ctx)
	if err != nil {
		t.Fatal(err)
	}
	a, err := lightning.New(s, lightning.WithSeed(11))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.SpawnInitialSegment(); err != nil {
		t.Fatal(err)
	}
	for i := range 10 {
		if err := a.RenderFrame(time.Duration(i) * 20 * time.Millisecond); err != nil {
			t.Fatal(err)
		}
	}
	if a.Len() != 1 {
		t.Errorf("expected 1 segment, got %d", a.Len())
	}
}
