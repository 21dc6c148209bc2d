package nebula

import (
	"math"

	"github.com/tanema/gween/ease"
)

const (
	rotationStep = 0.002

	planetOffsetX     = 0.75
	planetRadiusRatio = 0.28
	planetTimeScale   = 0.0008
	pointerOffsetGain = 0.001
	pointerSmoothing  = 0.05
	stippleSize       = 1.5
	minStippleAlpha   = 0.1

	holeRadiusRatio = 0.15
	diskRadiusRatio = 2.5
	diskSquash      = 0.3
	diskRings       = 10
	ringSpacing     = 5
	ringWidth       = 2
	dashOn          = 20
	dashOff         = 15
	dashSpeed       = 1500
	rimAlpha        = 0.8
	glowSteps       = 6
	arcStep         = 4.0 // px of arc length between polyline samples
)

// Celestial renders the planet or black hole behind the constellation.
type Celestial struct {
	cfg     CelestialConfig
	body    BodyType
	visible bool

	rotation float64
	pointer  Vec2 // smoothed pointer offset in unit-sphere space

	opacity float64
	fade    *TweenGroup

	mesh *PlanetMesh
	arc  []Vec2
}

// NewCelestial creates a hidden celestial layer with no body.
func NewCelestial(cfg CelestialConfig) *Celestial {
	return &Celestial{
		cfg:  cfg,
		mesh: NewPlanetMesh(cfg.LatSteps, cfg.LonSteps),
	}
}

// Body returns the body currently selected.
func (c *Celestial) Body() BodyType { return c.body }

// SetBody selects the body to render.
func (c *Celestial) SetBody(b BodyType) { c.body = b }

// Visible reports whether the layer is shown.
func (c *Celestial) Visible() bool { return c.visible }

// Rotation returns the rotation accumulator.
func (c *Celestial) Rotation() float64 { return c.rotation }

// SmoothedPointer returns the lerp-filtered pointer offset.
func (c *Celestial) SmoothedPointer() Vec2 { return c.pointer }

// Opacity returns the layer opacity in [0, 1].
func (c *Celestial) Opacity() float64 { return c.opacity }

// SetVisible shows or hides the layer. Showing a hidden layer fades it in;
// hiding drops the opacity to zero at once.
func (c *Celestial) SetVisible(v bool) {
	if v == c.visible {
		return
	}
	c.visible = v
	if !v {
		c.opacity = 0
		c.fade = nil
		return
	}
	c.fade = TweenValue(&c.opacity, 1, float32(c.cfg.FadeInMs/1000), ease.OutQuad)
}

// planetCenter returns the planet's screen position.
func planetCenter(vp Viewport) Vec2 {
	return Vec2{vp.Width * planetOffsetX, vp.Height / 2}
}

// Update advances the rotation and the pointer smoothing by one tick.
// ptr is nil when the pointer has left the viewport.
func (c *Celestial) Update(vp Viewport, ptr *Vec2, dtMs float64) {
	if c.fade != nil {
		c.fade.Update(float32(dtMs / 1000))
		if c.fade.Done {
			c.fade = nil
		}
	}
	if !c.visible {
		return
	}
	c.rotation += rotationStep

	if c.body != BodyPlanet {
		return
	}
	var target Vec2
	if ptr != nil {
		ctr := planetCenter(vp)
		target = Vec2{(ptr.X - ctr.X) * pointerOffsetGain, (ptr.Y - ctr.Y) * pointerOffsetGain}
	}
	c.pointer.X = lerp(c.pointer.X, target.X, pointerSmoothing)
	c.pointer.Y = lerp(c.pointer.Y, target.Y, pointerSmoothing)
}

// Draw emits the layer into buf. A hidden layer emits nothing.
func (c *Celestial) Draw(buf *CommandBuffer, vp Viewport, nowMs float64) {
	buf.Reset()
	if !c.visible {
		return
	}
	switch c.body {
	case BodyPlanet:
		c.drawPlanet(buf, vp, nowMs)
	case BodyBlackHole:
		c.drawBlackHole(buf, vp, nowMs)
	}
}

func (c *Celestial) drawPlanet(buf *CommandBuffer, vp Viewport, nowMs float64) {
	base := vp.Min() * planetRadiusRatio
	quads := c.mesh.Build(PlanetFrame{
		Center:     planetCenter(vp),
		BaseRadius: base,
		Time:       nowMs * planetTimeScale,
		Rotation:   c.rotation,
		Bump:       c.pointer,
	})

	var poly [4]Vec2
	for i := range quads {
		q := &quads[i]
		for k, p := range q.P {
			poly[k] = Vec2{p.X, p.Y}
		}
		buf.Polygon(poly[:], ColorBlack)
		alpha := clamp01(math.Max(minStippleAlpha, (q.Z+base)/(2*base)))
		buf.Rect(q.P[0].X, q.P[0].Y, stippleSize, stippleSize, ColorWhite.WithAlpha(alpha))
	}
}

// diskFrame is the accretion disk transform: translate, rotate by tilt, then
// squash vertically.
type diskFrame struct {
	center   Vec2
	cos, sin float64
}

func (d diskFrame) apply(x, y float64) Vec2 {
	y *= diskSquash
	return Vec2{
		X: d.center.X + x*d.cos - y*d.sin,
		Y: d.center.Y + x*d.sin + y*d.cos,
	}
}

func (c *Celestial) drawBlackHole(buf *CommandBuffer, vp Viewport, nowMs float64) {
	ctr := vp.Center()
	radius := vp.Min() * holeRadiusRatio
	disk := radius * diskRadiusRatio
	tilt := math.Pi/6 + math.Sin(nowMs*0.001)*0.1
	frame := diskFrame{center: ctr, cos: math.Cos(tilt), sin: math.Sin(tilt)}

	c.drawDisk(buf, frame, disk, math.Pi, 2*math.Pi)

	pulse := math.Sin(nowMs*0.002) * 2
	horizon := radius + pulse
	buf.Dot(ctr.X, ctr.Y, horizon, ColorBlack)
	buf.Ring(ctr.X, ctr.Y, horizon, ringWidth, ColorWhite.WithAlpha(rimAlpha))
	// Glow: stacked rings fading outward across the blur radius.
	blur := 20 + math.Abs(pulse*2)
	step := blur / 2 / glowSteps
	for i := 1; i <= glowSteps; i++ {
		a := 0.25 * (1 - float64(i)/float64(glowSteps+1))
		buf.Ring(ctr.X, ctr.Y, horizon+float64(i)*step, step, ColorWhite.WithAlpha(a))
	}

	c.drawDisk(buf, frame, disk, 0, math.Pi)
}

// drawDisk emits the dashed half-disk between angles from and to.
func (c *Celestial) drawDisk(buf *CommandBuffer, frame diskFrame, disk, from, to float64) {
	for i := 0; i < diskRings; i++ {
		r := disk - float64(i)*ringSpacing
		if r <= 0 {
			continue
		}
		col := ColorWhite.WithAlpha(0.1 + float64(i)*0.05)
		offset := -c.rotation * dashSpeed * (2 + float64(i)*0.5)
		for _, d := range dashSpans(r*(to-from), offset) {
			c.arc = c.arc[:0]
			a0 := from + d[0]/r
			a1 := from + d[1]/r
			n := max(1, int(math.Ceil((d[1]-d[0])/arcStep)))
			for k := 0; k <= n; k++ {
				a := a0 + (a1-a0)*float64(k)/float64(n)
				c.arc = append(c.arc, frame.apply(r*math.Cos(a), r*math.Sin(a)))
			}
			buf.Polyline(c.arc, ringWidth, col)
		}
	}
}

// dashSpans returns the "on" intervals of a [dashOn, dashOff] pattern along
// a path of the given length, with the pattern shifted by offset.
func dashSpans(length, offset float64) [][2]float64 {
	const period = dashOn + dashOff
	phase := math.Mod(offset, period)
	if phase < 0 {
		phase += period
	}
	var spans [][2]float64
	// s is the path position where the current pattern period starts.
	for s := -phase; s < length; s += period {
		start := math.Max(s, 0)
		end := math.Min(s+dashOn, length)
		if end > start {
			spans = append(spans, [2]float64{start, end})
		}
	}
	return spans
}
