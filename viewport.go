package nebula

import "math"

// Viewport is the drawing surface size in pixels.
type Viewport struct {
	Width, Height float64
}

// Center returns the viewport midpoint.
func (v Viewport) Center() Vec2 {
	return Vec2{v.Width / 2, v.Height / 2}
}

// Min returns the shorter side.
func (v Viewport) Min() float64 {
	return math.Min(v.Width, v.Height)
}

// Place maps a box given in viewport fractions to pixels.
func (v Viewport) Place(frac Rect) Rect {
	return Rect{
		X:      frac.X * v.Width,
		Y:      frac.Y * v.Height,
		Width:  frac.Width * v.Width,
		Height: frac.Height * v.Height,
	}
}

// TargetParticleCount returns the constellation size for a viewport:
// one particle per areaPerParticle px², never fewer than minCount.
func TargetParticleCount(width, height, areaPerParticle float64, minCount int) int {
	if areaPerParticle <= 0 {
		return minCount
	}
	n := int(math.Floor(width * height / areaPerParticle))
	return max(minCount, n)
}
