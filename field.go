package nebula

import "math/rand/v2"

// Field is the constellation: the particle set sized to the viewport.
type Field struct {
	cfg       ConstellationConfig
	rng       *rand.Rand
	vp        Viewport
	particles []Particle
}

// NewField creates an empty field. Call Resize to populate it.
func NewField(cfg ConstellationConfig, rng *rand.Rand) *Field {
	return &Field{cfg: cfg, rng: rng}
}

// Resize adopts a new viewport and patches the particle count toward the
// target: new particles are appended, surplus ones truncated from the end.
// Existing particles are never reset, so the constellation does not pop.
func (f *Field) Resize(vp Viewport) {
	f.vp = vp
	target := TargetParticleCount(vp.Width, vp.Height, f.cfg.AreaPerParticle, f.cfg.MinParticles)
	switch {
	case len(f.particles) < target:
		for len(f.particles) < target {
			f.particles = append(f.particles, newParticle(f.rng, vp, f.cfg))
		}
	case len(f.particles) > target:
		clear(f.particles[target:])
		f.particles = f.particles[:target]
	}
}

// Viewport returns the viewport the field was last sized to.
func (f *Field) Viewport() Viewport {
	return f.vp
}

// Len returns the particle count.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns the particle slice. Callers may read it; the order is
// stable between ticks.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Update steps every particle once.
func (f *Field) Update(a Ambient) {
	for i := range f.particles {
		f.particles[i].Update(a)
	}
}

// ClearOverlays drops transition scratch state on every particle.
func (f *Field) ClearOverlays() {
	for i := range f.particles {
		f.particles[i].ClearOverlay()
	}
}
