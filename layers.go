package nebula

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Layer is a persistent offscreen canvas standing in for one page canvas.
// It is NOT cleared between frames unless its owner redraws it, so a paused
// layer keeps showing its last frame.
type Layer struct {
	image *ebiten.Image
	w, h  int
}

// NewLayer creates an offscreen canvas of the given size.
func NewLayer(w, h int) *Layer {
	w, h = max(w, 1), max(h, 1)
	return &Layer{image: ebiten.NewImage(w, h), w: w, h: h}
}

// Image returns the underlying *ebiten.Image.
func (l *Layer) Image() *ebiten.Image { return l.image }

// Width returns the layer width in pixels.
func (l *Layer) Width() int { return l.w }

// Height returns the layer height in pixels.
func (l *Layer) Height() int { return l.h }

// Clear fills the layer with transparent black.
func (l *Layer) Clear() {
	l.image.Clear()
}

// Resize deallocates the old image and creates a new one when the size
// changed. It reports whether a new image was allocated.
func (l *Layer) Resize(w, h int) bool {
	w, h = max(w, 1), max(h, 1)
	if w == l.w && h == l.h && l.image != nil {
		return false
	}
	if l.image != nil {
		l.image.Deallocate()
	}
	l.image = ebiten.NewImage(w, h)
	l.w, l.h = w, h
	return true
}

// DrawTo composites the layer onto dst at (x, y) with the given opacity.
func (l *Layer) DrawTo(dst *ebiten.Image, x, y, alpha float64) {
	if alpha <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x, y)
	a := float32(clamp01(alpha))
	op.ColorScale.Scale(a, a, a, a)
	dst.DrawImage(l.image, &op)
}

// Dispose deallocates the underlying image.
func (l *Layer) Dispose() {
	if l.image != nil {
		l.image.Deallocate()
		l.image = nil
	}
}

// Compositor draws an Engine's layers in page order: constellation, then
// the celestial canvas, then the visible text canvas.
type Compositor struct {
	renderer *Renderer
	sky      *Layer
	texts    []*Layer
}

// NewCompositor creates a compositor with empty layers.
func NewCompositor() *Compositor {
	return &Compositor{renderer: NewRenderer()}
}

// sync sizes the layers to the engine's viewport and text canvases.
func (c *Compositor) sync(e *Engine) {
	vp := e.Viewport()
	if c.sky == nil {
		c.sky = NewLayer(int(vp.Width), int(vp.Height))
	} else {
		c.sky.Resize(int(vp.Width), int(vp.Height))
	}
	fields := e.TextFields()
	for len(c.texts) < len(fields) {
		c.texts = append(c.texts, nil)
	}
	for i, tf := range fields {
		r := tf.Canvas()
		if c.texts[i] == nil {
			c.texts[i] = NewLayer(int(r.Width), int(r.Height))
			tf.Buffer().Dirty = true
		} else if c.texts[i].Resize(int(r.Width), int(r.Height)) {
			tf.Buffer().Dirty = true
		}
	}
}

// Render submits the engine's command buffers and composites them onto screen.
func (c *Compositor) Render(screen *ebiten.Image, e *Engine) {
	c.sync(e)

	c.renderer.Submit(screen, e.StarBuffer(), 0, 0)

	c.sky.Clear()
	cel := e.Celestial()
	if cel.Visible() {
		c.renderer.Submit(c.sky.Image(), e.CelestialBuffer(), 0, 0)
		c.sky.DrawTo(screen, 0, 0, cel.Opacity())
	}

	cur := e.Navigator().Current()
	for i, tf := range e.TextFields() {
		layer := c.texts[i]
		if buf := tf.Buffer(); buf.Dirty {
			layer.Clear()
			c.renderer.Submit(layer.Image(), buf, 0, 0)
			buf.Dirty = false
		}
		if tf.Section() == cur {
			r := tf.Canvas()
			layer.DrawTo(screen, r.X, r.Y, 1)
		}
	}
}

// Dispose releases every layer.
func (c *Compositor) Dispose() {
	if c.sky != nil {
		c.sky.Dispose()
	}
	for _, l := range c.texts {
		if l != nil {
			l.Dispose()
		}
	}
	c.renderer.Dispose()
}
