package nebula

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween/ease"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	glyphDotSize     = 1.5
	narrowParentW    = 600
	narrowFontScale  = 0.6
	leftTextInset    = 20
	waveStart        = -100
	waveReachFactor  = 1.5
	wavePush         = 1.5
	waveSizeBoost    = 2
	sizeDecay        = 0.9
	glyphJitter      = 0.05
	textFadeInSecond = 0.5
)

// TextParticle is one glyph particle. It belongs to exactly one TextField.
type TextParticle struct {
	X, Y             float64
	OriginX, OriginY float64
	VX, VY           float64
	Size, BaseSize   float64
}

// TextField dissolves a string into particles that spring back to their
// glyph anchors. Only the active field steps and draws; a paused field's
// buffer keeps its last frame.
type TextField struct {
	cfg   TextFieldConfig
	align Alignment
	rng   *rand.Rand

	canvas  Rect // padded canvas in viewport px
	parentW float64
	parentH float64

	particles []TextParticle
	anchors   []Vec2

	waveRadius float64
	waveTimer  int

	active bool
	tint   Color
	fade   *TweenGroup
	buf    *CommandBuffer
}

// NewTextField creates an unlaid field. Zero options take their defaults.
func NewTextField(cfg TextFieldConfig, rng *rand.Rand) *TextField {
	cfg.applyDefaults()
	return &TextField{
		cfg:        cfg,
		align:      ParseAlignment(cfg.Alignment),
		rng:        rng,
		waveRadius: waveStart,
		tint:       *cfg.Color,
		buf:        NewCommandBuffer(),
	}
}

// Config returns the field's options with defaults applied.
func (f *TextField) Config() TextFieldConfig { return f.cfg }

// Section returns the section index the field belongs to.
func (f *TextField) Section() int { return f.cfg.Section }

// Active reports whether the field is stepping.
func (f *TextField) Active() bool { return f.active }

// Canvas returns the padded canvas rectangle in viewport px.
func (f *TextField) Canvas() Rect { return f.canvas }

// Particles returns the glyph particles.
func (f *TextField) Particles() []TextParticle { return f.particles }

// Anchors returns the anchor points from the last rasterization, in canvas px.
func (f *TextField) Anchors() []Vec2 { return f.anchors }

// Buffer returns the field's command buffer, in canvas-local px.
func (f *TextField) Buffer() *CommandBuffer { return f.buf }

// WaveRadius returns the current wave ring radius.
func (f *TextField) WaveRadius() float64 { return f.waveRadius }

// MaxWaveRadius returns the radius past which the wave waits to restart.
func (f *TextField) MaxWaveRadius() float64 {
	return math.Hypot(f.canvas.Width, f.canvas.Height) * waveReachFactor
}

// Layout sizes the canvas around parent, re-rasterizes the text and rebuilds
// the particle set from scratch. On error the field is left with no
// particles.
func (f *TextField) Layout(parent Rect) error {
	pad := f.cfg.Padding
	f.parentW, f.parentH = parent.Width, parent.Height
	f.canvas = Rect{
		X:      parent.X - pad,
		Y:      parent.Y - pad,
		Width:  math.Round(parent.Width + pad*2),
		Height: math.Round(parent.Height + pad*2),
	}
	f.particles = f.particles[:0]
	f.anchors = nil
	f.buf.Reset()

	size := f.cfg.FontSize
	if f.parentW < narrowParentW {
		size *= narrowFontScale
	}
	x := pad + f.parentW/2
	if f.align == AlignLeft {
		x = pad + leftTextInset
	}
	img, err := RasterizeText(f.cfg.Text, RasterOptions{
		Width:  int(f.canvas.Width),
		Height: int(f.canvas.Height),
		Size:   size,
		Weight: f.cfg.FontWeight,
		X:      x,
		Y:      pad + f.parentH/2,
		Align:  f.align,
	})
	if err != nil {
		return err
	}

	f.anchors = SampleAnchors(img, f.cfg.Density)
	for _, a := range f.anchors {
		f.particles = append(f.particles, TextParticle{
			X:        f.rng.Float64() * f.canvas.Width,
			Y:        f.rng.Float64() * f.canvas.Height,
			OriginX:  a.X,
			OriginY:  a.Y,
			Size:     glyphDotSize,
			BaseSize: glyphDotSize,
		})
	}
	return nil
}

// SetActive starts or pauses the field. Activation fades the glyph color in.
func (f *TextField) SetActive(active bool) {
	if active == f.active {
		return
	}
	f.active = active
	if active {
		f.tint = f.cfg.Color.WithAlpha(0)
		f.fade = TweenColor(&f.tint, *f.cfg.Color, textFadeInSecond, ease.OutQuad)
	}
}

// wave advances the ring and restarts it after the idle delay.
func (f *TextField) wave() {
	f.waveRadius += f.cfg.WaveSpeed
	if f.waveRadius > f.MaxWaveRadius() {
		f.waveTimer++
		if f.waveTimer > f.cfg.WaveDelay {
			f.waveRadius = waveStart
			f.waveTimer = 0
		}
	}
}

// Update steps the field once if it is active. ptr is the pointer in
// viewport px, or nil when it is outside the viewport.
func (f *TextField) Update(ptr *Vec2, dtMs float64) {
	if !f.active {
		return
	}
	if f.fade != nil {
		f.fade.Update(float32(dtMs / 1000))
		if f.fade.Done {
			f.fade = nil
		}
	}

	f.wave()

	center := r2.Vec{X: f.cfg.Padding + f.parentW/2, Y: f.cfg.Padding + f.parentH/2}
	var local *r2.Vec
	if ptr != nil {
		local = &r2.Vec{X: ptr.X - f.canvas.X, Y: ptr.Y - f.canvas.Y}
	}

	for i := range f.particles {
		f.step(&f.particles[i], center, local)
	}
}

// step applies the spring, pointer, wave, and jitter terms to one particle.
func (f *TextField) step(p *TextParticle, center r2.Vec, ptr *r2.Vec) {
	p.VX += (p.OriginX - p.X) * f.cfg.ReturnEase
	p.VY += (p.OriginY - p.Y) * f.cfg.ReturnEase

	pos := r2.Vec{X: p.X, Y: p.Y}
	if ptr != nil {
		toPtr := r2.Sub(*ptr, pos)
		d := r2.Norm(toPtr)
		if d < f.cfg.MouseRadius {
			push := (f.cfg.MouseRadius - d) / f.cfg.MouseRadius * f.cfg.MouseForce
			away := r2.Scale(-push, unitOr(toPtr, r2.Vec{X: 1}))
			p.VX += away.X
			p.VY += away.Y
		}
	}

	out := r2.Sub(pos, center)
	gap := math.Abs(r2.Norm(out) - f.waveRadius)
	if gap < f.cfg.WaveWidth {
		force := (f.cfg.WaveWidth - gap) / f.cfg.WaveWidth
		push := r2.Scale(force*wavePush, unitOr(out, r2.Vec{X: 1}))
		p.VX += push.X
		p.VY += push.Y
		p.Size = p.BaseSize + force*waveSizeBoost
	} else {
		p.Size = math.Max(p.BaseSize, p.Size*sizeDecay)
	}

	p.VX += (f.rng.Float64() - 0.5) * glyphJitter
	p.VY += (f.rng.Float64() - 0.5) * glyphJitter

	p.VX *= f.cfg.Friction
	p.VY *= f.cfg.Friction
	p.X += p.VX
	p.Y += p.VY
}

// unitOr returns v normalized, or fallback when v has zero length.
func unitOr(v, fallback r2.Vec) r2.Vec {
	if v.X == 0 && v.Y == 0 {
		return fallback
	}
	return r2.Unit(v)
}

// Draw re-emits the field's particles if it is active. A paused field's
// buffer is left untouched.
func (f *TextField) Draw() {
	if !f.active {
		return
	}
	f.buf.Reset()
	for i := range f.particles {
		p := &f.particles[i]
		f.buf.Dot(p.X, p.Y, p.Size, f.tint)
	}
}
