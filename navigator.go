package nebula

import (
	"log/slog"
	"math"
)

// NavKey is a navigation key press.
type NavKey uint8

const (
	KeyDown NavKey = iota // ArrowDown or PageDown
	KeyUp                 // ArrowUp or PageUp
)

// ScrollState is a section's inner scroll container.
type ScrollState struct {
	Top    float64 // scroll offset
	Height float64 // content height
	Client float64 // visible height
}

// Scrollable reports whether the content overflows the visible height.
func (s ScrollState) Scrollable() bool {
	return s.Height > s.Client
}

// AtTop reports whether the offset is within tol of the start.
func (s ScrollState) AtTop(tol float64) bool {
	return s.Top <= tol
}

// AtBottom reports whether the offset is within tol of the end.
func (s ScrollState) AtBottom(tol float64) bool {
	return s.Top+s.Client >= s.Height-tol
}

// scrollBy applies a native scroll, clamped to the content.
func (s *ScrollState) scrollBy(dy float64) {
	s.Top = math.Max(0, math.Min(s.Top+dy, s.Height-s.Client))
}

// Section is one navigable page region.
type Section struct {
	ID     string
	Active bool
	Past   bool
	Scroll ScrollState
}

// Navigator maps wheel, key, and link input to section changes and drives
// the transition controller and the celestial layer from them.
type Navigator struct {
	cfg       NavigationConfig
	bodyClear float64
	clock     *Clock
	ctrl      *Controller
	celestial *Celestial

	sections []Section
	current  int

	buffer     float64
	resetTimer TimerID
	bodyTimer  TimerID
}

// NewNavigator creates a navigator positioned on the first section.
func NewNavigator(cfg NavigationConfig, bodyClearMs float64, clock *Clock, ctrl *Controller, cel *Celestial) *Navigator {
	n := &Navigator{
		cfg:       cfg,
		bodyClear: bodyClearMs,
		clock:     clock,
		ctrl:      ctrl,
		celestial: cel,
		sections:  make([]Section, len(cfg.Sections)),
	}
	for i, sc := range cfg.Sections {
		n.sections[i] = Section{ID: sc.ID, Scroll: ScrollState{Height: sc.ContentHeight}}
	}
	if len(n.sections) > 0 {
		n.sections[0].Active = true
	}
	return n
}

// Current returns the active section index.
func (n *Navigator) Current() int { return n.current }

// Len returns the section count.
func (n *Navigator) Len() int { return len(n.sections) }

// Sections returns the section list. Callers must not modify it.
func (n *Navigator) Sections() []Section { return n.sections }

// Section returns section i.
func (n *Navigator) Section(i int) Section { return n.sections[i] }

// Buffer returns the accumulated wheel delta.
func (n *Navigator) Buffer() float64 { return n.buffer }

// EffectClass returns the body class naming the current effect, e.g. "fx-warp".
func (n *Navigator) EffectClass() string {
	return "fx-" + n.ctrl.Effect().String()
}

// Resize sets every section's visible height.
func (n *Navigator) Resize(vp Viewport) {
	for i := range n.sections {
		s := &n.sections[i].Scroll
		s.Client = vp.Height
		if s.Height > 0 {
			s.scrollBy(0)
		}
	}
}

// GoTo navigates to section index. It reports false and changes nothing
// when index is out of range or a transition holds the lock.
func (n *Navigator) GoTo(index int) bool {
	if index < 0 || index >= len(n.sections) {
		return false
	}
	from := n.current
	t, ok := n.ctrl.Begin(from, index)
	if !ok {
		slog.Debug("navigation rejected", "from", from, "to", index)
		return false
	}

	n.applyBody(BodyForSection(index))

	cur, next := &n.sections[from], &n.sections[index]
	cur.Active = false
	if t.Direction == Forward {
		cur.Past = true
	}
	next.Past = false
	next.Active = true
	n.current = index
	return true
}

// applyBody shows the body for the new section, or hides the layer and
// clears the body after a delay unless one is shown again meanwhile.
func (n *Navigator) applyBody(body BodyType) {
	n.clock.Cancel(n.bodyTimer)
	n.bodyTimer = 0
	if n.celestial == nil {
		return
	}
	if body != BodyNone {
		n.celestial.SetBody(body)
		n.celestial.SetVisible(true)
		return
	}
	n.celestial.SetVisible(false)
	n.bodyTimer = n.clock.After(n.bodyClear, func() {
		n.bodyTimer = 0
		if !n.celestial.Visible() {
			n.celestial.SetBody(BodyNone)
		}
	})
}

// GoToID navigates to the section with the given id, marking the sections
// in between as passed or unvisited. Unknown ids and the current section
// are ignored.
func (n *Navigator) GoToID(id string) bool {
	if n.ctrl.Locked() {
		return false
	}
	target := -1
	for i := range n.sections {
		if n.sections[i].ID == id {
			target = i
		}
	}
	if target < 0 || target == n.current {
		return false
	}
	if target > n.current {
		for i := n.current; i < target; i++ {
			n.sections[i].Past = true
			n.sections[i].Active = false
		}
	} else {
		for i := target + 1; i <= n.current; i++ {
			n.sections[i].Past = false
			n.sections[i].Active = false
		}
	}
	return n.GoTo(target)
}

// Key steps one section forward or back.
func (n *Navigator) Key(k NavKey) bool {
	switch k {
	case KeyDown:
		return n.GoTo(n.current + 1)
	case KeyUp:
		return n.GoTo(n.current - 1)
	}
	return false
}

// Wheel feeds one wheel event. Inside scrollable content the event scrolls
// natively until the content edge is reached; after that deltas accumulate
// and crossing the threshold steps one section. It reports whether a
// navigation happened.
func (n *Navigator) Wheel(deltaY float64) bool {
	if len(n.sections) == 0 || n.ctrl.Locked() {
		return false
	}

	n.clock.Cancel(n.resetTimer)
	n.resetTimer = n.clock.After(n.cfg.ScrollResetMs, func() {
		n.buffer = 0
		n.resetTimer = 0
	})

	sc := &n.sections[n.current].Scroll
	threshold := n.cfg.ScrollThreshold
	if sc.Scrollable() {
		threshold = n.cfg.ScrollableThreshold
		atEdge := sc.AtTop(n.cfg.EdgeTolerance)
		if deltaY > 0 {
			atEdge = sc.AtBottom(n.cfg.EdgeTolerance)
		}
		if !atEdge {
			n.buffer = 0
			sc.scrollBy(deltaY)
			return false
		}
	}
	n.buffer += deltaY

	switch {
	case n.buffer > threshold:
		n.buffer = 0
		return n.GoTo(n.current + 1)
	case n.buffer < -threshold:
		n.buffer = 0
		return n.GoTo(n.current - 1)
	}
	return false
}
