package nebula

import (
	"image/color"
	"math/rand/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default star and glyph color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the opaque fill used for the planet mask and the event horizon.
var ColorBlack = Color{0, 0, 0, 1}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Range is a general-purpose min/max range used for randomized spawn values.
type Range struct {
	Min, Max float64
}

// Sample returns a random float64 in [Min, Max) drawn from rng.
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Effect selects the particle motion used while a transition is in flight.
type Effect uint8

const (
	EffectWarp   Effect = iota // radial streaks along depth
	EffectSlide                // helix sweep
	EffectTwist                // rotation about the viewport center
	EffectAscend               // calm forward drift, no reversal
)

// String returns the effect's class name, e.g. "warp".
func (e Effect) String() string {
	switch e {
	case EffectWarp:
		return "warp"
	case EffectSlide:
		return "slide"
	case EffectTwist:
		return "twist"
	case EffectAscend:
		return "ascend"
	default:
		return "unknown"
	}
}

// EffectForSection returns the effect used when navigating to section index.
func EffectForSection(index int) Effect {
	switch {
	case index == 2:
		return EffectSlide
	case index == 3:
		return EffectTwist
	case index == 4:
		return EffectAscend
	default:
		return EffectWarp
	}
}

// Direction is the travel direction of a transition: +1 forward, -1 backward.
type Direction int8

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// BodyType selects which celestial body the celestial layer renders.
type BodyType uint8

const (
	BodyNone      BodyType = iota // nothing rendered
	BodyPlanet                    // deformed sphere mesh
	BodyBlackHole                 // accretion disk and event horizon
)

// String returns a lowercase name for the body type.
func (b BodyType) String() string {
	switch b {
	case BodyPlanet:
		return "planet"
	case BodyBlackHole:
		return "blackhole"
	default:
		return "none"
	}
}

// BodyForSection returns the body shown while section index is active.
func BodyForSection(index int) BodyType {
	switch index {
	case 1:
		return BodyPlanet
	case 3:
		return BodyBlackHole
	default:
		return BodyNone
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
