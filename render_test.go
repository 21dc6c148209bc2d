package nebula

import "testing"

func TestCommandBufferEmission(t *testing.T) {
	b := NewCommandBuffer()
	b.Dot(1, 2, 3, ColorWhite)
	b.Rect(0, 0, 4, 4, ColorBlack)
	b.Line(0, 0, 10, 10, 1, ColorWhite.WithAlpha(0.5))
	b.Ring(5, 5, 2, 1, ColorWhite)
	b.Polygon([]Vec2{{0, 0}, {1, 0}, {0, 1}}, ColorBlack)
	b.Polyline([]Vec2{{0, 0}, {1, 1}}, 1, ColorWhite)

	want := []CommandType{CommandDot, CommandRect, CommandLine, CommandRing, CommandPolygon, CommandPolyline}
	if b.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", b.Len(), len(want))
	}
	for i, cmd := range b.Commands() {
		if cmd.Type != want[i] {
			t.Errorf("command %d = %v, want %v", i, cmd.Type, want[i])
		}
	}
	if got := b.Commands()[2].Alpha(); got != 0.5 {
		t.Errorf("line alpha = %v, want 0.5", got)
	}
	if b.Count(CommandDot) != 1 || b.Count(CommandLine) != 1 {
		t.Errorf("Count dot/line = %d/%d", b.Count(CommandDot), b.Count(CommandLine))
	}
}

func TestCommandBufferDegenerateShapesIgnored(t *testing.T) {
	b := NewCommandBuffer()
	b.Polygon([]Vec2{{0, 0}, {1, 1}}, ColorBlack)
	b.Polyline([]Vec2{{0, 0}}, 1, ColorWhite)
	if b.Len() != 0 {
		t.Errorf("Len = %d, want 0", b.Len())
	}
}

func TestCommandBufferCopiesPoints(t *testing.T) {
	b := NewCommandBuffer()
	pts := []Vec2{{0, 0}, {10, 0}, {0, 10}}
	b.Polygon(pts, ColorBlack)
	pts[0] = Vec2{99, 99}
	if got := b.Commands()[0].Points[0]; got != (Vec2{0, 0}) {
		t.Errorf("stored point = %v, caller mutation leaked", got)
	}

	b.Polyline([]Vec2{{1, 1}, {2, 2}}, 1, ColorWhite)
	first := b.Commands()[0].Points
	if len(first) != 3 || cap(first) != 3 {
		t.Errorf("first view len/cap = %d/%d, want 3/3", len(first), cap(first))
	}
}

func TestCommandBufferReset(t *testing.T) {
	b := NewCommandBuffer()
	b.Dot(0, 0, 1, ColorWhite)
	b.Dirty = false
	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Len after Reset = %d", b.Len())
	}
	if !b.Dirty {
		t.Error("Reset should mark the buffer dirty")
	}
}

func TestCommandTypeString(t *testing.T) {
	tests := map[CommandType]string{
		CommandDot: "dot", CommandRect: "rect", CommandLine: "line",
		CommandPolygon: "polygon", CommandPolyline: "polyline", CommandRing: "ring",
		CommandType(99): "unknown",
	}
	for ct, want := range tests {
		if got := ct.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", ct, got, want)
		}
	}
}
