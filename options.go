package lightning

import (
	"math"
	"math/rand/v2"
	"time"
)

// Default animation parameters.
const (
	// DefaultSpawnInterval is the time between two segments spawned at the
	// border of the surface.
	DefaultSpawnInterval = 4000 * time.Millisecond

	// DefaultSkew is the angle by which border segments are turned away
	// from the direction of the surface center.
	DefaultSkew = math.Pi / 6

	// DefaultBranchSpread is the maximum angle between a branch and the
	// segment it sprouts from.
	DefaultBranchSpread = math.Pi / 3
)

// Branching and segment length constants.
const (
	branchThreshold   = 0.1 // erase progress below which a segment branches
	branchProbability = 0.9 // branch probability for decay factor 1
	decayStep         = 3.0 // decay increase per branch generation

	minSegmentLength   = 50.0
	segmentLengthRange = 100.0
)

type options struct {
	rng             Rand
	style           Style
	spawnInterval   time.Duration
	segmentDuration time.Duration
	skew            float64
	spread          float64
	onEvent         func(Event)
}

func defaultOptions() options {
	seed := uint64(time.Now().UnixNano())
	return options{
		rng:             rand.New(rand.NewPCG(seed, seed>>17)),
		style:           DefaultStyle(),
		spawnInterval:   DefaultSpawnInterval,
		segmentDuration: DefaultSegmentDuration,
		skew:            DefaultSkew,
		spread:          DefaultBranchSpread,
	}
}

// Option configures an Animation.
type Option func(*options)

// WithRand sets the source of randomness.
func WithRand(rng Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithSeed makes the animation deterministic, using a PCG generator seeded
// with seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewPCG(seed, 0))
	}
}

// WithStyle sets the stroke style.
func WithStyle(s Style) Option {
	return func(o *options) {
		o.style = s
	}
}

// WithSpawnInterval sets the time between two border segments.
func WithSpawnInterval(d time.Duration) Option {
	return func(o *options) {
		o.spawnInterval = d
	}
}

// WithSegmentDuration sets the grow and erase duration of new segments.
func WithSegmentDuration(d time.Duration) Option {
	return func(o *options) {
		o.segmentDuration = d
	}
}

// WithSkew sets the rotation applied to border segments, in radians.
func WithSkew(angle float64) Option {
	return func(o *options) {
		o.skew = angle
	}
}

// WithBranchSpread sets the maximum branch rotation, in radians.
func WithBranchSpread(angle float64) Option {
	return func(o *options) {
		o.spread = angle
	}
}

// WithEventHandler registers a function which is called synchronously for
// every Event.  The handler must not call back into the Animation.
func WithEventHandler(fn func(Event)) Option {
	return func(o *options) {
		o.onEvent = fn
	}
}
