package nebula

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	nearFadeDepth  = 0.8
	warpTrailScale = 50
	twistLagBase   = 0.1
	twistLagWarp   = 0.2
	twistStretch   = 1.1
	twistStretchW  = 0.8
)

// depthAlpha returns a particle's opacity at depth z: linear falloff with
// distance plus a fade when crossing the near plane.
func depthAlpha(z float64) float64 {
	alpha := 1 - z/depthFar
	if z < nearFadeDepth {
		alpha *= z / nearFadeDepth
	}
	return clamp01(alpha)
}

// drawParticle emits one constellation particle. Perspective affects trail
// length only; dot size stays fixed regardless of depth.
func drawParticle(buf *CommandBuffer, p *Particle, a Ambient, minDot float64) {
	pos := p.Resolve(a)
	size := math.Max(minDot, p.Size)
	col := ColorWhite.WithAlpha(depthAlpha(pos.Z))

	if a.Warp <= trailThreshold {
		buf.Dot(pos.X, pos.Y, size, col)
		return
	}

	dir := float64(a.Direction)
	c := a.center()
	at := r2.Vec{X: pos.X, Y: pos.Y}

	switch a.Effect {
	case EffectWarp:
		length := a.Warp * warpTrailScale / pos.Z
		off := r2.Sub(at, c)
		angle := math.Atan2(off.Y, off.X)
		tx := pos.X - math.Cos(angle)*length*dir
		ty := pos.Y - math.Sin(angle)*length*dir
		buf.Line(pos.X, pos.Y, tx, ty, size, col)
	case EffectTwist:
		off := r2.Sub(at, c)
		angle := math.Atan2(off.Y, off.X) - (twistLagBase+a.Warp*twistLagWarp)*dir
		dist := r2.Norm(off) * (twistStretch + a.Warp*twistStretchW)
		buf.Line(pos.X, pos.Y, c.X+math.Cos(angle)*dist, c.Y+math.Sin(angle)*dist, size, col)
	default:
		// Slide and ascend draw plain dots.
		buf.Dot(pos.X, pos.Y, size, col)
	}
}

// DrawField emits every particle of f into buf in slice order.
func DrawField(buf *CommandBuffer, f *Field, a Ambient) {
	for i := range f.particles {
		drawParticle(buf, &f.particles[i], a, f.cfg.MinDotSize)
	}
}
