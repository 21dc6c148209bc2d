package nebula

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewPlanetMeshMinimumSteps(t *testing.T) {
	lat, lon := NewPlanetMesh(0, 1).Steps()
	if lat != 2 || lon != 3 {
		t.Errorf("Steps = %d×%d, want 2×3", lat, lon)
	}
}

func TestPlanetMeshBuildSortedBackToFront(t *testing.T) {
	m := NewPlanetMesh(16, 24)
	quads := m.Build(PlanetFrame{Center: Vec2{400, 300}, BaseRadius: 100, Time: 1.3, Rotation: 0.8})
	if len(quads) != 16*24 {
		t.Fatalf("quads = %d, want %d", len(quads), 16*24)
	}
	for i := 1; i < len(quads); i++ {
		if quads[i].Z < quads[i-1].Z {
			t.Fatalf("quad %d depth %v before %v, want ascending", i, quads[i].Z, quads[i-1].Z)
		}
	}
	for i, q := range quads {
		want := (q.P[0].Z + q.P[1].Z + q.P[2].Z + q.P[3].Z) / 4
		if !approxEqual(q.Z, want, 1e-9) {
			t.Fatalf("quad %d Z = %v, want average %v", i, q.Z, want)
		}
	}
}

func TestPlanetMeshWithinDeformationBounds(t *testing.T) {
	m := NewPlanetMesh(12, 18)
	const base = 100.0
	// Largest radial push: every noise octave plus the full pointer bump.
	maxR := base * (1 + (0.2+0.2+0.1+0.1+0.05+bumpMagnitude)*noiseAmplitude)
	limit := maxR * projectionDistance / (projectionDistance - maxR)
	for _, bump := range []Vec2{{}, {0.3, -0.2}} {
		quads := m.Build(PlanetFrame{Center: Vec2{400, 300}, BaseRadius: base, Time: 2.1, Bump: bump})
		for _, q := range quads {
			for _, p := range q.P {
				d := math.Hypot(p.X-400, p.Y-300)
				if d > limit+1e-9 {
					t.Fatalf("vertex %v px from center, limit %v", d, limit)
				}
			}
		}
	}
}

func TestPlanetMeshReusesStorage(t *testing.T) {
	m := NewPlanetMesh(8, 8)
	first := m.Build(PlanetFrame{BaseRadius: 50})
	second := m.Build(PlanetFrame{BaseRadius: 50, Time: 1})
	if len(first) != len(second) || &first[0] != &second[0] {
		t.Error("Build should reuse the quad slice")
	}
}

func TestPointerBump(t *testing.T) {
	tests := []struct {
		name string
		u    r3.Vec
		bump Vec2
		want float64
	}{
		{"at bump", r3.Vec{X: 0.2, Y: 0.1}, Vec2{0.2, 0.1}, bumpMagnitude},
		{"half radius", r3.Vec{X: 0.5}, Vec2{0, 0}, 0.5 * bumpMagnitude},
		{"outside", r3.Vec{X: 1}, Vec2{0, 0}, 0},
	}
	for _, tt := range tests {
		if got := pointerBump(tt.u, tt.bump); !approxEqual(got, tt.want, 1e-12) {
			t.Errorf("%s: pointerBump = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSurfaceNoiseAmplitude(t *testing.T) {
	for i := range 200 {
		a := float64(i) * 0.37
		u := r3.Vec{X: math.Cos(a), Y: math.Sin(a * 0.5), Z: math.Sin(a)}
		if n := surfaceNoise(u, a); math.Abs(n) > 0.65 {
			t.Fatalf("surfaceNoise = %v, exceeds octave sum", n)
		}
	}
}
