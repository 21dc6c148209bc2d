package nebula

import "testing"

type navFixture struct {
	nav   *Navigator
	clock *Clock
	ctrl  *Controller
	cel   *Celestial
}

func newNavFixture(t *testing.T) navFixture {
	t.Helper()
	cfg := DefaultConfig()
	clock := &Clock{}
	ctrl := NewController(cfg.Transition, clock, nil)
	cel := NewCelestial(cfg.Celestial)
	nav := NewNavigator(cfg.Navigation, cfg.Transition.BodyClearMs, clock, ctrl, cel)
	nav.Resize(Viewport{1280, 720})
	return navFixture{nav: nav, clock: clock, ctrl: ctrl, cel: cel}
}

// unlock advances past the navigation lock.
func (f navFixture) unlock() {
	f.clock.Advance(1300)
}

// --- Scroll state ---

func TestScrollState(t *testing.T) {
	s := ScrollState{Top: 0, Height: 1800, Client: 720}
	if !s.Scrollable() || !s.AtTop(5) || s.AtBottom(5) {
		t.Errorf("top state wrong: %+v", s)
	}
	s.scrollBy(5000)
	if s.Top != 1080 || !s.AtBottom(5) {
		t.Errorf("Top = %v, want clamped to 1080", s.Top)
	}
	s.scrollBy(-5000)
	if s.Top != 0 {
		t.Errorf("Top = %v, want 0", s.Top)
	}
	if (ScrollState{Height: 0, Client: 720}).Scrollable() {
		t.Error("empty content should not be scrollable")
	}
}

// --- GoTo ---

func TestNavigatorInitialState(t *testing.T) {
	f := newNavFixture(t)
	if f.nav.Len() != 5 || f.nav.Current() != 0 {
		t.Fatalf("Len/Current = %d/%d", f.nav.Len(), f.nav.Current())
	}
	if !f.nav.Section(0).Active || f.nav.Section(1).Active {
		t.Error("only the first section should start active")
	}
	if f.nav.EffectClass() != "fx-warp" {
		t.Errorf("EffectClass = %q", f.nav.EffectClass())
	}
	if s := f.nav.Section(1).Scroll; s.Client != 720 || s.Height != 1800 {
		t.Errorf("experience scroll = %+v", s)
	}
}

func TestNavigatorGoToFlags(t *testing.T) {
	f := newNavFixture(t)
	if !f.nav.GoTo(1) {
		t.Fatal("GoTo(1) rejected")
	}
	s0, s1 := f.nav.Section(0), f.nav.Section(1)
	if s0.Active || !s0.Past || !s1.Active || s1.Past {
		t.Errorf("after forward: s0 %+v s1 %+v", s0, s1)
	}
	f.unlock()
	f.nav.GoTo(0)
	s0, s1 = f.nav.Section(0), f.nav.Section(1)
	if !s0.Active || s0.Past || s1.Active || s1.Past {
		t.Errorf("after backward: s0 %+v s1 %+v", s0, s1)
	}
}

func TestNavigatorLock(t *testing.T) {
	f := newNavFixture(t)
	f.nav.GoTo(1)
	if f.nav.GoTo(2) {
		t.Fatal("GoTo accepted while locked")
	}
	if f.nav.Current() != 1 {
		t.Errorf("Current = %d, want 1", f.nav.Current())
	}
	f.clock.Advance(1199)
	if f.nav.GoTo(2) {
		t.Fatal("GoTo accepted before 1200ms")
	}
	f.clock.Advance(2)
	if !f.nav.GoTo(2) {
		t.Fatal("GoTo rejected after unlock")
	}
	if f.nav.EffectClass() != "fx-slide" {
		t.Errorf("EffectClass = %q, want fx-slide", f.nav.EffectClass())
	}
}

func TestNavigatorOutOfRange(t *testing.T) {
	f := newNavFixture(t)
	if f.nav.GoTo(-1) || f.nav.GoTo(5) {
		t.Error("out of range GoTo accepted")
	}
	if f.ctrl.Locked() {
		t.Error("rejected GoTo started a transition")
	}
	if f.nav.Key(KeyUp) {
		t.Error("KeyUp on the first section should do nothing")
	}
}

func TestNavigatorKeys(t *testing.T) {
	f := newNavFixture(t)
	if !f.nav.Key(KeyDown) || f.nav.Current() != 1 {
		t.Fatalf("KeyDown: Current = %d", f.nav.Current())
	}
	f.unlock()
	if !f.nav.Key(KeyUp) || f.nav.Current() != 0 {
		t.Fatalf("KeyUp: Current = %d", f.nav.Current())
	}
}

// --- Links ---

func TestNavigatorGoToID(t *testing.T) {
	f := newNavFixture(t)
	if f.nav.GoToID("nope") || f.nav.GoToID("hero") {
		t.Fatal("unknown or current id accepted")
	}
	if !f.nav.GoToID("skills") {
		t.Fatal("GoToID(skills) rejected")
	}
	for i := range 3 {
		if s := f.nav.Section(i); !s.Past || s.Active {
			t.Errorf("section %d = %+v, want passed", i, s)
		}
	}
	if s := f.nav.Section(3); !s.Active || s.Past {
		t.Errorf("section 3 = %+v, want active", s)
	}

	f.unlock()
	if !f.nav.GoToID("hero") {
		t.Fatal("GoToID(hero) rejected")
	}
	for i := 1; i <= 3; i++ {
		if s := f.nav.Section(i); s.Past || s.Active {
			t.Errorf("section %d = %+v, want unvisited", i, s)
		}
	}
	if s := f.nav.Section(0); !s.Active || s.Past {
		t.Errorf("section 0 = %+v, want active", s)
	}
}

// --- Wheel ---

func TestNavigatorWheelThreshold(t *testing.T) {
	f := newNavFixture(t)
	if f.nav.Wheel(100) || f.nav.Wheel(100) {
		t.Fatal("navigated before exceeding the threshold")
	}
	if f.nav.Buffer() != 200 {
		t.Errorf("Buffer = %v, want 200", f.nav.Buffer())
	}
	if !f.nav.Wheel(100) {
		t.Fatal("third event should exceed 200")
	}
	if f.nav.Current() != 1 || f.nav.Buffer() != 0 {
		t.Errorf("Current/Buffer = %d/%v", f.nav.Current(), f.nav.Buffer())
	}
}

func TestNavigatorWheelResetsAfterPause(t *testing.T) {
	f := newNavFixture(t)
	f.nav.Wheel(150)
	f.clock.Advance(151)
	if f.nav.Buffer() != 0 {
		t.Fatalf("Buffer = %v after pause, want reset", f.nav.Buffer())
	}
	if f.nav.Wheel(150) {
		t.Error("navigated with a reset buffer")
	}
}

func TestNavigatorWheelIgnoredWhileLocked(t *testing.T) {
	f := newNavFixture(t)
	f.nav.GoTo(2)
	for range 5 {
		if f.nav.Wheel(100) {
			t.Fatal("wheel navigated while locked")
		}
	}
	if f.nav.Buffer() != 0 {
		t.Errorf("Buffer = %v, locked wheel events must not accumulate", f.nav.Buffer())
	}
}

func TestNavigatorWheelScrollableSection(t *testing.T) {
	f := newNavFixture(t)
	f.nav.GoTo(1)
	f.unlock()

	// Native scroll until the bottom edge.
	for range 11 {
		if f.nav.Wheel(100) {
			t.Fatal("navigated while content could still scroll")
		}
	}
	if top := f.nav.Section(1).Scroll.Top; top != 1080 {
		t.Fatalf("Top = %v, want 1080", top)
	}
	if f.nav.Buffer() != 0 {
		t.Fatalf("Buffer = %v while scrolling, want 0", f.nav.Buffer())
	}

	for i := range 8 {
		if f.nav.Wheel(100) {
			t.Fatalf("navigated on event %d, threshold is 800", i+1)
		}
	}
	if !f.nav.Wheel(100) {
		t.Fatal("ninth event at the edge should navigate")
	}
	if f.nav.Current() != 2 {
		t.Errorf("Current = %d, want 2", f.nav.Current())
	}
}

func TestNavigatorWheelUpFromScrolledSection(t *testing.T) {
	f := newNavFixture(t)
	f.nav.GoTo(1)
	f.unlock()
	f.nav.sections[1].Scroll.Top = 300

	f.nav.Wheel(-100)
	if top := f.nav.Section(1).Scroll.Top; top != 200 {
		t.Errorf("Top = %v, want 200", top)
	}
	if f.nav.Buffer() != 0 {
		t.Errorf("Buffer = %v, want 0 away from the edge", f.nav.Buffer())
	}
}

// --- Celestial body ---

func TestNavigatorShowsSectionBody(t *testing.T) {
	f := newNavFixture(t)
	f.nav.GoTo(1)
	if f.cel.Body() != BodyPlanet || !f.cel.Visible() {
		t.Fatalf("body = %v visible = %v, want planet shown", f.cel.Body(), f.cel.Visible())
	}
	f.unlock()
	f.nav.GoTo(2)
	if f.cel.Visible() {
		t.Error("layer should hide on a section without a body")
	}
	if f.cel.Body() != BodyPlanet {
		t.Error("body should stay until the clear delay elapses")
	}
	f.clock.Advance(1501)
	if f.cel.Body() != BodyNone {
		t.Errorf("body = %v, want none after the delay", f.cel.Body())
	}
}

func TestNavigatorBodyClearCancelled(t *testing.T) {
	f := newNavFixture(t)
	f.nav.GoTo(1)
	f.unlock()
	f.nav.GoTo(2)
	f.unlock() // 1300ms into the 1500ms clear delay
	f.nav.GoTo(3)
	if f.cel.Body() != BodyBlackHole || !f.cel.Visible() {
		t.Fatalf("body = %v visible = %v, want black hole", f.cel.Body(), f.cel.Visible())
	}
	f.clock.Advance(500)
	if f.cel.Body() != BodyBlackHole {
		t.Errorf("body = %v, the superseded clear must not fire", f.cel.Body())
	}
}
