package nebula

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
)

// Depth and speed constants of the constellation model. Depth is a
// distance-from-viewer proxy in (0, 3]; lower is nearer.
const (
	idleThreshold  = 0.05 // warp below this drives committed idle drift
	trailThreshold = 0.1  // warp above this draws trails

	depthFar       = 3.0
	depthNearWrap  = 0.1 // crossing this moves a particle back to depthFarReset
	depthFarReset  = 2.8
	depthNearReset = 0.2 // crossing depthFar moves a particle to this

	idleDepthDrift = 0.002
	warpDepthRate  = 0.01
	activeBoost    = 20 // speed multiplier slope for committed effect motion
	overlayBoost   = 15 // speed multiplier slope for visual-only motion
	twistSpin      = 0.02
	slideAmplitude = 3
)

// Position is a committed particle location: viewport x/y plus depth z.
type Position struct {
	X, Y, Z float64
}

// Ambient is the per-tick context every particle reads. It is a value so an
// update is a pure function of (particle, ambient).
type Ambient struct {
	Width, Height float64
	Warp          float64
	Effect        Effect
	Direction     Direction
	Transitioning bool
	NowMs         float64
}

// overlaying reports whether particles should run visual-only motion.
func (a Ambient) overlaying() bool {
	return a.Transitioning && a.Warp > idleThreshold
}

func (a Ambient) center() r2.Vec {
	return r2.Vec{X: a.Width / 2, Y: a.Height / 2}
}

// overlay is transition scratch state. It never touches the committed
// position; Resolve folds it in for drawing.
type overlay struct {
	z, angle       float64
	hasZ, hasAngle bool
}

// snapshot is the at-rest state saved every idle tick.
type snapshot struct {
	pos    Position
	vx, vy float64
}

// Particle is one constellation point-mass.
type Particle struct {
	Position
	VX, VY float64
	Size   float64

	saved   snapshot
	overlay overlay
}

// newParticle spawns a particle uniformly over the viewport with a
// randomized depth, drift speed, and size.
func newParticle(rng *rand.Rand, vp Viewport, cfg ConstellationConfig) Particle {
	speed := cfg.Speed.Sample(rng)
	p := Particle{
		Position: Position{
			X: rng.Float64() * vp.Width,
			Y: rng.Float64() * vp.Height,
			Z: cfg.Depth.Sample(rng),
		},
		VX:   speed,
		VY:   speed,
		Size: cfg.Size.Sample(rng),
	}
	p.Save()
	return p
}

// Save records the current state as the restoration snapshot.
func (p *Particle) Save() {
	p.saved = snapshot{pos: p.Position, vx: p.VX, vy: p.VY}
}

// Restore resets the particle to its last snapshot.
func (p *Particle) Restore() {
	p.Position = p.saved.pos
	p.VX = p.saved.vx
	p.VY = p.saved.vy
}

// Saved returns the last snapshot position.
func (p *Particle) Saved() Position {
	return p.saved.pos
}

// ClearOverlay drops any transition scratch state.
func (p *Particle) ClearOverlay() {
	p.overlay = overlay{}
}

// OverlayZ returns the visual-only depth and whether it is set.
func (p *Particle) OverlayZ() (float64, bool) {
	return p.overlay.z, p.overlay.hasZ
}

// OverlayAngle returns the visual-only rotation and whether it is set.
func (p *Particle) OverlayAngle() (float64, bool) {
	return p.overlay.angle, p.overlay.hasAngle
}

// Update advances the particle by one tick.
func (p *Particle) Update(a Ambient) {
	if a.overlaying() {
		p.updateOverlay(a)
		return
	}

	if a.Warp < idleThreshold {
		p.drift()
		p.wrapEdges(a.Width, a.Height)
		p.Save()
		return
	}

	mult := 1 + a.Warp*activeBoost
	dir := float64(a.Direction)

	switch a.Effect {
	case EffectWarp:
		p.Z = wrapDepth(p.Z - warpDepthRate*mult*dir)
		p.X += p.VX * p.Z * mult * dir
		p.Y += p.VY * p.Z * mult * dir
	case EffectSlide:
		p.Z -= warpDepthRate * mult * dir
		phase := p.Z*12 + a.NowMs*0.005
		p.X += math.Cos(phase) * slideAmplitude * mult * dir
		p.Y += math.Sin(phase) * slideAmplitude * mult * dir
		p.Z = wrapDepth(p.Z)
	case EffectTwist:
		c := a.center()
		pos := r2.Vec{X: p.X, Y: p.Y}
		dist := r2.Norm(r2.Sub(pos, c))
		spin := twistSpin * mult * (1 + 100/math.Max(dist, 50)) * dir
		pos = r2.Rotate(pos, spin, c)
		p.X, p.Y = pos.X, pos.Y
	case EffectAscend:
		p.drift()
	}

	p.wrapEdges(a.Width, a.Height)
}

// updateOverlay runs visual-only motion while a transition is in flight.
func (p *Particle) updateOverlay(a Ambient) {
	mult := 1 + a.Warp*overlayBoost
	dir := float64(a.Direction)

	switch a.Effect {
	case EffectWarp, EffectSlide:
		p.setOverlayZ(wrapDepth(p.overlayBase() - warpDepthRate*mult*dir))
	case EffectTwist:
		p.overlay.angle += twistSpin * mult * dir
		p.overlay.hasAngle = true
	case EffectAscend:
		z := p.overlayBase() - idleDepthDrift
		if z <= depthNearWrap {
			z = depthFarReset
		}
		p.setOverlayZ(z)
	}
}

// overlayBase is the depth overlay motion starts from: the overlay itself
// once set, otherwise the committed depth.
func (p *Particle) overlayBase() float64 {
	if p.overlay.hasZ && p.overlay.z != 0 {
		return p.overlay.z
	}
	return p.Z
}

func (p *Particle) setOverlayZ(z float64) {
	p.overlay.z = z
	p.overlay.hasZ = true
}

// drift is the calm forward motion with depth parallax.
func (p *Particle) drift() {
	p.Z -= idleDepthDrift
	if p.Z <= depthNearWrap {
		p.Z = depthFarReset
	}
	p.X += p.VX * p.Z
	p.Y += p.VY * p.Z
}

// wrapEdges moves a particle that crossed a viewport edge to the opposite edge.
func (p *Particle) wrapEdges(w, h float64) {
	if p.X < 0 {
		p.X = w
	}
	if p.X > w {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = h
	}
	if p.Y > h {
		p.Y = 0
	}
}

// wrapDepth applies both depth wraparounds used by directional effects.
func wrapDepth(z float64) float64 {
	if z <= depthNearWrap {
		z = depthFarReset
	}
	if z >= depthFar {
		z = depthNearReset
	}
	return z
}

// Resolve returns the position renderers should use this tick: the committed
// position, or the transition overlay folded over it while one is in flight.
func (p *Particle) Resolve(a Ambient) Position {
	pos := p.Position
	if !a.overlaying() {
		return pos
	}

	if a.Effect == EffectTwist && p.overlay.hasAngle && p.overlay.angle != 0 {
		// Suction toward the center accelerates with the square of warp.
		c := a.center()
		suction := math.Max(0.01, 1-a.Warp*a.Warp*1.2)
		rotated := r2.Rotate(r2.Vec{X: pos.X, Y: pos.Y}, p.overlay.angle, c)
		v := r2.Add(c, r2.Scale(suction, r2.Sub(rotated, c)))
		pos.X, pos.Y = v.X, v.Y
	}
	if p.overlay.hasZ && p.overlay.z != 0 {
		pos.Z = p.overlay.z
	}
	return pos
}
