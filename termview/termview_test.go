package termview

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/nebula"
)

func newTestEngine(t *testing.T) *nebula.Engine {
	t.Helper()
	cfg := nebula.DefaultConfig()
	cfg.Seed = 42
	e := nebula.NewEngine(cfg)
	e.Resize(640, 480)
	return e
}

// --- Canvas ---

func TestCanvasSize(t *testing.T) {
	c := NewCanvas(80, 30, 8, 16)
	cols, rows := c.Size()
	if cols != 80 || rows != 30 {
		t.Errorf("Size = %dx%d", cols, rows)
	}
	if w, h := c.Pixels(); w != 640 || h != 480 {
		t.Errorf("Pixels = %vx%v, want 640x480", w, h)
	}
	c.Resize(-1, 5)
	if cols, _ := c.Size(); cols != 0 {
		t.Errorf("negative cols = %d, want 0", cols)
	}
}

func TestCanvasRamp(t *testing.T) {
	c := NewCanvas(2, 1, 8, 16)
	if c.Rune(0, 0) != ' ' {
		t.Errorf("dark cell = %q", c.Rune(0, 0))
	}
	c.plot(1, 1, 1)
	if c.Rune(0, 0) != '@' {
		t.Errorf("bright cell = %q, want @", c.Rune(0, 0))
	}
	if c.Lum(5, 5) != 0 {
		t.Error("out of range Lum should be 0")
	}
	c.Clear()
	if c.Lum(0, 0) != 0 {
		t.Error("Clear left brightness")
	}
}

func TestCanvasSubmitShapes(t *testing.T) {
	c := NewCanvas(10, 10, 10, 10)
	buf := nebula.NewCommandBuffer()
	buf.Dot(15, 15, 1, nebula.ColorWhite)
	buf.Line(0, 55, 99, 55, 1, nebula.ColorWhite.WithAlpha(0.5))
	c.Submit(buf, 0, 0, 1)

	if c.Lum(1, 1) != 1 {
		t.Errorf("dot cell = %v, want 1", c.Lum(1, 1))
	}
	for col := range 10 {
		if c.Lum(col, 5) != 0.5 {
			t.Fatalf("line cell %d = %v, want 0.5", col, c.Lum(col, 5))
		}
	}
	if c.Lum(0, 0) != 0 {
		t.Error("untouched cell lit")
	}
}

func TestCanvasSubmitOffsetAndOpacity(t *testing.T) {
	c := NewCanvas(10, 10, 10, 10)
	buf := nebula.NewCommandBuffer()
	buf.Dot(5, 5, 1, nebula.ColorWhite)
	c.Submit(buf, 30, 40, 0.4)
	if got := c.Lum(3, 4); got < 0.399 || got > 0.401 {
		t.Errorf("offset dot = %v, want 0.4", got)
	}
}

func TestCanvasBlackPolygonOccludes(t *testing.T) {
	c := NewCanvas(10, 10, 10, 10)
	buf := nebula.NewCommandBuffer()
	buf.Line(0, 55, 99, 55, 1, nebula.ColorWhite)
	buf.Polygon([]nebula.Vec2{{X: 20, Y: 20}, {X: 80, Y: 20}, {X: 80, Y: 80}, {X: 20, Y: 80}}, nebula.ColorBlack)
	c.Submit(buf, 0, 0, 1)
	if c.Lum(5, 5) != 0 {
		t.Errorf("covered cell = %v, want occluded", c.Lum(5, 5))
	}
	if c.Lum(0, 5) != 1 {
		t.Errorf("uncovered cell = %v, want lit", c.Lum(0, 5))
	}
}

func TestInsidePolygon(t *testing.T) {
	tri := []nebula.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	if !insidePolygon(tri, 2, 2) {
		t.Error("(2,2) should be inside")
	}
	if insidePolygon(tri, 8, 8) {
		t.Error("(8,8) should be outside")
	}
}

func TestCompose(t *testing.T) {
	e := newTestEngine(t)
	e.Update(1000.0 / 30)
	e.Draw()
	c := NewCanvas(80, 30, 8, 16)
	c.Compose(e)
	lit := 0
	for row := range 30 {
		for col := range 80 {
			if c.Lum(col, row) > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("composed frame is dark")
	}
}

// --- Events ---

func TestHandleEventKeys(t *testing.T) {
	e := newTestEngine(t)
	c := NewCanvas(80, 30, 8, 16)
	if !handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), e, c, 100) {
		t.Fatal("KeyDown should not quit")
	}
	if e.Navigator().Current() != 1 {
		t.Errorf("Current = %d, want 1", e.Navigator().Current())
	}
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
	} {
		if handleEvent(ev, e, c, 100) {
			t.Errorf("%v should quit", ev.Name())
		}
	}
}

func TestHandleEventResize(t *testing.T) {
	e := newTestEngine(t)
	c := NewCanvas(80, 30, 8, 16)
	handleEvent(tcell.NewEventResize(100, 50), e, c, 100)
	if cols, rows := c.Size(); cols != 100 || rows != 50 {
		t.Errorf("canvas = %dx%d", cols, rows)
	}
	if e.Viewport() != (nebula.Viewport{Width: 800, Height: 800}) {
		t.Errorf("viewport = %+v", e.Viewport())
	}
}

func TestHandleEventMouse(t *testing.T) {
	e := newTestEngine(t)
	c := NewCanvas(80, 30, 8, 16)
	handleEvent(tcell.NewEventMouse(10, 5, tcell.WheelDown, tcell.ModNone), e, c, 100)
	p, ok := e.Pointer()
	if !ok || p != (nebula.Vec2{X: 84, Y: 88}) {
		t.Errorf("Pointer = %v, %v; want cell center (84, 88)", p, ok)
	}
	if e.Navigator().Buffer() != 100 {
		t.Errorf("wheel buffer = %v, want 100", e.Navigator().Buffer())
	}
	handleEvent(tcell.NewEventFocus(false), e, c, 100)
	if _, ok := e.Pointer(); ok {
		t.Error("focus loss should clear the pointer")
	}
}
