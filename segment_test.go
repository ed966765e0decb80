package lightning

import (
	"errors"
	"math"
	"testing"
	"time"

	"seehuhn.de/go/geom/vec"
)

func TestNewSegment(t *testing.T) {
	cases := []struct {
		start, end vec.Vec2
	}{
		{vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 10}},
		{vec.Vec2{X: -5, Y: 3.5}, vec.Vec2{X: 1e6, Y: -1e6}},
		{vec.Vec2{X: 7, Y: 7}, vec.Vec2{X: 7, Y: 7}},
	}
	for _, c := range cases {
		s, err := NewSegment(c.start, c.end, DefaultDecay, DefaultSegmentDuration)
		if err != nil {
			t.Fatalf("%v-%v: unexpected error %v", c.start, c.end, err)
		}
		if s.Progress() != 0 || s.Erasing() || s.Branched() {
			t.Errorf("%v-%v: bad initial state progress=%g erasing=%t branched=%t",
				c.start, c.end, s.Progress(), s.Erasing(), s.Branched())
		}
		if s.Start() != c.start || s.End() != c.end || s.Tip() != c.start {
			t.Errorf("%v-%v: geometry not stored", c.start, c.end)
		}
		if s.State() != Growing {
			t.Errorf("%v-%v: expected state growing, got %s", c.start, c.end, s.State())
		}
		if math.Abs(s.rate-1.0/500) > epsilon {
			t.Errorf("expected rate 1/500 per ms, got %g", s.rate)
		}
	}
}

func TestNewSegmentInvalidGeometry(t *testing.T) {
	bad := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, x := range bad {
		for pos := range 4 {
			coords := [4]float64{1, 2, 3, 4}
			coords[pos] = x
			_, err := NewSegment(
				vec.Vec2{X: coords[0], Y: coords[1]},
				vec.Vec2{X: coords[2], Y: coords[3]},
				DefaultDecay, DefaultSegmentDuration)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("%v: expected ErrInvalidGeometry, got %v", coords, err)
			}
		}
	}
}

func TestNewSegmentInvalidParameter(t *testing.T) {
	cases := []struct {
		name  string
		decay float64
		d     time.Duration
	}{
		{"decay_small", 0.5, time.Second},
		{"decay_nan", math.NaN(), time.Second},
		{"zero_duration", 1, 0},
		{"negative_duration", 1, -time.Millisecond},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewSegment(vec.Vec2{}, vec.Vec2{X: 1}, c.decay, c.d)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestReverseTwice(t *testing.T) {
	s, err := NewSegment(vec.Vec2{X: 1, Y: 2}, vec.Vec2{X: 3, Y: 4}, 1, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	s.Reverse()
	if s.Start() != (vec.Vec2{X: 3, Y: 4}) || s.End() != (vec.Vec2{X: 1, Y: 2}) {
		t.Errorf("reverse: got %v-%v", s.Start(), s.End())
	}
	s.Reverse()
	if s.Start() != (vec.Vec2{X: 1, Y: 2}) || s.End() != (vec.Vec2{X: 3, Y: 4}) {
		t.Errorf("reverse twice: got %v-%v", s.Start(), s.End())
	}
}

func TestErase(t *testing.T) {
	start, end := vec.Vec2{X: 10, Y: 20}, vec.Vec2{X: 50, Y: 5}
	s, err := NewSegment(start, end, 1, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	s.seek(1)
	growDir := s.Direction()

	s.Erase()
	if !s.Erasing() {
		t.Error("expected erasing after Erase")
	}
	if s.Start() != end || s.End() != start {
		t.Errorf("expected %v-%v, got %v-%v", end, start, s.Start(), s.End())
	}
	if s.Progress() != 1 {
		t.Errorf("Erase changed progress to %g", s.Progress())
	}
	if s.State() != Erasing {
		t.Errorf("expected state erasing, got %s", s.State())
	}

	// the direction of growth survives the reversal
	if dir := s.Direction(); dir != growDir {
		t.Errorf("direction changed from %v to %v", growDir, dir)
	}
	if s.origin() != end {
		t.Errorf("expected branch origin %v, got %v", end, s.origin())
	}

	s.seek(-0.01)
	if s.State() != Done {
		t.Errorf("expected state done, got %s", s.State())
	}
}

func TestSeek(t *testing.T) {
	s, err := NewSegment(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 100, Y: -40}, 1, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	s.seek(0.25)
	if want := (vec.Vec2{X: 25, Y: -10}); s.Tip() != want {
		t.Errorf("expected tip %v, got %v", want, s.Tip())
	}
}
