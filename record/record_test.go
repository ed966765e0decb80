package record

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/lightning"
)

func seg(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).MoveTo(vec.Vec2{X: x0, Y: y0}).LineTo(vec.Vec2{X: x1, Y: y1})
}

func TestRecorder(t *testing.T) {
	r, err := New(100, 50)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := r.Size(); w != 100 || h != 50 {
		t.Errorf("expected 100x50, got %gx%g", w, h)
	}

	p := seg(1, 2, 3, 4)
	r.Clear()
	if err := r.Stroke(p); err != nil {
		t.Fatal(err)
	}
	st := lightning.DefaultStyle()
	st.LineWidth = 7
	r.SetStyle(st)
	if err := r.Stroke(seg(5, 6, 7, 8)); err != nil {
		t.Fatal(err)
	}
	r.Clear()

	frames := r.Frames()
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if n := len(frames[0].Strokes); n != 2 {
		t.Fatalf("expected 2 strokes in the first frame, got %d", n)
	}
	if len(frames[1].Strokes) != 0 {
		t.Errorf("second frame should be empty")
	}
	if w := frames[0].Strokes[1].Style.LineWidth; w != 7 {
		t.Errorf("expected recorded width 7, got %g", w)
	}

	// the recording must not alias the caller's path
	p.Coords[0] = vec.Vec2{X: -1, Y: -1}
	if got := frames[0].Strokes[0].Path.Coords[0]; got != (vec.Vec2{X: 1, Y: 2}) {
		t.Errorf("recorded path changed to %v", got)
	}
}

func TestRecorderMaxFrames(t *testing.T) {
	r, err := New(10, 10, WithMaxFrames(3))
	if err != nil {
		t.Fatal(err)
	}
	for i := range 5 {
		r.Clear()
		if err := r.Stroke(seg(0, 0, float64(i), 1)); err != nil {
			t.Fatal(err)
		}
	}
	frames := r.Frames()
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if x := frames[0].Strokes[0].Path.Coords[1].X; x != 2 {
		t.Errorf("expected oldest kept frame to be frame 2, got frame %g", x)
	}
	last, ok := r.Last()
	if !ok || last.Strokes[0].Path.Coords[1].X != 4 {
		t.Errorf("unexpected last frame %v", last)
	}

	r.Reset()
	if _, ok := r.Last(); ok {
		t.Error("frames left after Reset")
	}
}

func TestRecorderStrokeBeforeClear(t *testing.T) {
	r, err := New(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Stroke(seg(0, 0, 1, 1)); err != nil {
		t.Fatal(err)
	}
	if f, ok := r.Last(); !ok || len(f.Strokes) != 1 {
		t.Errorf("stroke before Clear was not recorded")
	}
}

func TestRecorderInvalid(t *testing.T) {
	if _, err := New(0, 10); !errors.Is(err, lightning.ErrInvalidSurface) {
		t.Errorf("expected ErrInvalidSurface, got %v", err)
	}
	r, err := New(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Resize(10, -1); !errors.Is(err, lightning.ErrInvalidSurface) {
		t.Errorf("expected ErrInvalidSurface, got %v", err)
	}
	if err := r.Stroke(nil); !errors.Is(err, lightning.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}

// TestDeterministic checks that two animations with the same seed draw
// the same strokes.
func TestDeterministic(t *testing.T) {
	run := func() []Frame {
		r, err := New(640, 480)
		if err != nil {
			t.Fatal(err)
		}
		a, err := lightning.New(r, lightning.WithSeed(42), lightning.WithSpawnInterval(300*time.Millisecond))
		if err != nil {
			t.Fatal(err)
		}
		if err := a.Start(0); err != nil {
			t.Fatal(err)
		}
		for i := range 200 {
			if err := a.Tick(time.Duration(i) * 16 * time.Millisecond); err != nil {
				t.Fatal(err)
			}
		}
		return r.Frames()
	}

	f1, f2 := run(), run()
	if len(f1) != len(f2) {
		t.Fatalf("frame counts differ: %d vs %d", len(f1), len(f2))
	}
	strokes := 0
	for i := range f1 {
		if len(f1[i].Strokes) != len(f2[i].Strokes) {
			t.Fatalf("frame %d: stroke counts differ", i)
		}
		for j := range f1[i].Strokes {
			c1, c2 := f1[i].Strokes[j].Path.Coords, f2[i].Strokes[j].Path.Coords
			for k := range c1 {
				if c1[k] != c2[k] {
					t.Fatalf("frame %d, stroke %d: %v vs %v", i, j, c1, c2)
				}
			}
			strokes++
		}
	}
	if strokes == 0 {
		t.Error("nothing was drawn")
	}
}

func TestWritePDF(t *testing.T) {
	st := lightning.DefaultStyle()
	f := Frame{Strokes: []Stroke{
		{Path: seg(10, 10, 90, 40), Style: st},
		{Path: seg(50, 5, 50, 45), Style: lightning.Style{LineWidth: 2}},
		{Path: seg(5, 45, 95, 5), Style: lightning.Style{
			LineWidth: 1,
			Blur:      4,
			Color:     color.NRGBA{R: 0xff, A: 0xff},
			GlowColor: color.NRGBA{B: 0xff, A: 0x80},
			Cap:       graphics.LineCapSquare,
		}},
	}}

	fname := filepath.Join(t.TempDir(), "frame.pdf")
	if err := WritePDF(fname, f, 100, 50); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not look like a PDF file")
	}

	if err := WritePDF(fname, f, 0, 50); !errors.Is(err, lightning.ErrInvalidSurface) {
		t.Errorf("expected ErrInvalidSurface, got %v", err)
	}
}
