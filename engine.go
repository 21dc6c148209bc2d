package nebula

import (
	"log/slog"
	"math/rand/v2"
	"time"
)

// Engine is the simulation context. It owns every piece of animation state;
// nothing in the package is global. All methods must be called from one
// goroutine, with inputs applied strictly between Update calls.
type Engine struct {
	cfg   *Config
	rng   *rand.Rand
	clock *Clock
	vp    Viewport

	field     *Field
	ctrl      *Controller
	celestial *Celestial
	graph     *Graph
	nav       *Navigator
	texts     []*TextField

	pointer       Vec2
	pointerActive bool

	stars *CommandBuffer
	sky   *CommandBuffer
	tick  uint64
}

// NewEngine builds an engine from cfg. Call Resize before the first Update.
// A nil cfg uses the embedded defaults.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	e := &Engine{
		cfg:   cfg,
		rng:   rng,
		clock: &Clock{},
		stars: NewCommandBuffer(),
		sky:   NewCommandBuffer(),
	}
	e.field = NewField(cfg.Constellation, rng)
	e.ctrl = NewController(cfg.Transition, e.clock, e.field)
	e.celestial = NewCelestial(cfg.Celestial)
	e.graph = NewGraph(cfg.Connections)
	e.nav = NewNavigator(cfg.Navigation, cfg.Transition.BodyClearMs, e.clock, e.ctrl, e.celestial)
	for _, tc := range cfg.TextFields {
		e.texts = append(e.texts, NewTextField(tc, rng))
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config { return e.cfg }

// Clock returns the virtual clock.
func (e *Engine) Clock() *Clock { return e.clock }

// Viewport returns the current viewport.
func (e *Engine) Viewport() Viewport { return e.vp }

// Field returns the constellation.
func (e *Engine) Field() *Field { return e.field }

// Controller returns the transition controller.
func (e *Engine) Controller() *Controller { return e.ctrl }

// Celestial returns the celestial layer.
func (e *Engine) Celestial() *Celestial { return e.celestial }

// Graph returns the connection graph.
func (e *Engine) Graph() *Graph { return e.graph }

// Navigator returns the section navigator.
func (e *Engine) Navigator() *Navigator { return e.nav }

// TextFields returns every particle-text field in config order.
func (e *Engine) TextFields() []*TextField { return e.texts }

// StarBuffer returns the constellation layer's commands.
func (e *Engine) StarBuffer() *CommandBuffer { return e.stars }

// CelestialBuffer returns the celestial layer's commands.
func (e *Engine) CelestialBuffer() *CommandBuffer { return e.sky }

// Tick returns the number of completed Update calls.
func (e *Engine) Tick() uint64 { return e.tick }

// PointerMove records the pointer position in viewport px.
func (e *Engine) PointerMove(x, y float64) {
	e.pointer = Vec2{x, y}
	e.pointerActive = true
}

// PointerLeave marks the pointer as outside the viewport.
func (e *Engine) PointerLeave() {
	e.pointerActive = false
}

// Pointer returns the pointer position and whether it is inside the viewport.
func (e *Engine) Pointer() (Vec2, bool) {
	return e.pointer, e.pointerActive
}

func (e *Engine) pointerRef() *Vec2 {
	if !e.pointerActive {
		return nil
	}
	p := e.pointer
	return &p
}

// Resize adopts a new viewport. The constellation is patched in place; every
// text field is re-rasterized from its layout box and starts over.
func (e *Engine) Resize(width, height float64) {
	e.vp = Viewport{Width: width, Height: height}
	e.field.Resize(e.vp)
	e.nav.Resize(e.vp)
	for _, tf := range e.texts {
		if err := tf.Layout(e.vp.Place(tf.cfg.Box)); err != nil {
			slog.Warn("text field disabled", "text", tf.cfg.Text, "err", err)
		}
	}
	slog.Debug("viewport resized", "width", width, "height", height, "particles", e.field.Len())
}

// Ambient returns the per-tick context particles read.
func (e *Engine) Ambient() Ambient {
	return Ambient{
		Width:         e.vp.Width,
		Height:        e.vp.Height,
		Warp:          e.ctrl.Warp(),
		Effect:        e.ctrl.Effect(),
		Direction:     e.ctrl.Direction(),
		Transitioning: e.ctrl.Phase() == PhaseTransitioning,
		NowMs:         e.clock.Now(),
	}
}

// Update advances the simulation by dtMs of virtual time.
func (e *Engine) Update(dtMs float64) {
	e.clock.Advance(dtMs)
	e.ctrl.Smooth()

	e.field.Update(e.Ambient())

	ptr := e.pointerRef()
	e.celestial.Update(e.vp, ptr, dtMs)
	e.graph.Build(e.field.Particles(), GraphInput{
		Warp:          e.ctrl.Warp(),
		Effect:        e.ctrl.Effect(),
		Section:       e.nav.Current(),
		Locked:        e.ctrl.Locked(),
		Pointer:       e.pointer,
		PointerActive: e.pointerActive,
	})

	// Text fields run as an independent loop keyed on the active section.
	cur := e.nav.Current()
	for _, tf := range e.texts {
		tf.SetActive(tf.Section() == cur)
		tf.Update(ptr, dtMs)
	}
	e.tick++
}

// Draw refills every layer's command buffer from the current state.
func (e *Engine) Draw() {
	e.stars.Reset()
	DrawField(e.stars, e.field, e.Ambient())
	e.graph.Draw(e.stars)
	e.celestial.Draw(e.sky, e.vp, e.clock.Now())
	for _, tf := range e.texts {
		tf.Draw()
	}
}
