package nebula

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenValueReachesTarget(t *testing.T) {
	v := 0.0
	g := TweenValue(&v, 1, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	if math.Abs(v-0.5) > 0.01 {
		t.Errorf("midway = %f, want ~0.5", v)
	}
	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(v-1) > 0.001 {
		t.Errorf("value = %f, want 1", v)
	}
}

func TestTweenColorReachesTarget(t *testing.T) {
	c := Color{1, 1, 1, 0}
	g := TweenColor(&c, Color{0.5, 0.25, 0, 1}, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)
	if !g.Done {
		t.Fatal("expected Done")
	}
	if math.Abs(c.R-0.5) > 0.001 || math.Abs(c.G-0.25) > 0.001 || math.Abs(c.B) > 0.001 || math.Abs(c.A-1) > 0.001 {
		t.Errorf("color = %+v", c)
	}
}

func TestTweenGroupDoneStopsWriting(t *testing.T) {
	v := 0.0
	g := TweenValue(&v, 1, 0.1, ease.Linear)
	g.Update(0.2)
	v = 42
	g.Update(0.1)
	if v != 42 {
		t.Errorf("finished tween wrote %f", v)
	}
}

func TestTweenGroupNilSafe(t *testing.T) {
	var g *TweenGroup
	g.Update(1) // must not panic
}
