package nebula

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	projectionDistance = 1000
	noiseAmplitude     = 0.4
	bumpRadius         = 1.0
	bumpMagnitude      = 0.6
	meshSpin           = 0.15
)

// MeshPoint is a projected sphere vertex: screen x/y plus camera-space depth.
// Larger Z is nearer the viewer.
type MeshPoint struct {
	X, Y, Z float64
}

// Quad is one mesh face with its average depth.
type Quad struct {
	P [4]MeshPoint
	Z float64
}

// PlanetFrame holds the per-frame inputs of the planet deformation.
type PlanetFrame struct {
	Center     Vec2
	BaseRadius float64
	Time       float64 // noise phase, already scaled
	Rotation   float64 // global rotation accumulator
	Bump       Vec2    // smoothed pointer offset in unit-sphere space
}

// PlanetMesh is a latitude/longitude grid over a deformed unit sphere. The
// grid and quad slices are reused across frames.
type PlanetMesh struct {
	lat, lon int
	points   []MeshPoint
	quads    []Quad
}

// NewPlanetMesh creates a mesh with lat × lon faces.
func NewPlanetMesh(lat, lon int) *PlanetMesh {
	lat = max(lat, 2)
	lon = max(lon, 3)
	return &PlanetMesh{
		lat:    lat,
		lon:    lon,
		points: make([]MeshPoint, (lat+1)*(lon+1)),
		quads:  make([]Quad, 0, lat*lon),
	}
}

// Steps returns the latitude and longitude face counts.
func (m *PlanetMesh) Steps() (lat, lon int) {
	return m.lat, m.lon
}

func (m *PlanetMesh) at(i, j int) MeshPoint {
	return m.points[i*(m.lon+1)+j]
}

// surfaceNoise is the three-octave radial deformation at unit-sphere point u.
func surfaceNoise(u r3.Vec, t float64) float64 {
	n := math.Sin(u.X*2+t)*0.2 + math.Cos(u.Y*2+t)*0.2
	n += math.Sin(u.X*6+t*1.5)*0.1 + math.Cos(u.Z*6+t*1.5)*0.1
	n += math.Sin(u.X*15+u.Y*15+t*2) * 0.05
	return n
}

// pointerBump is the linear-falloff push toward the pointer offset.
func pointerBump(u r3.Vec, bump Vec2) float64 {
	d := r2.Norm(r2.Sub(r2.Vec{X: u.X, Y: u.Y}, r2.Vec{X: bump.X, Y: bump.Y}))
	if d >= bumpRadius {
		return 0
	}
	return (bumpRadius - d) * bumpMagnitude
}

// Build regenerates the mesh for one frame and returns its quads sorted by
// average depth ascending, so drawing in order paints back to front.
func (m *PlanetMesh) Build(f PlanetFrame) []Quad {
	spin := f.Rotation * meshSpin
	for i := 0; i <= m.lat; i++ {
		lat := float64(i)/float64(m.lat)*math.Pi - math.Pi/2
		cosLat, sinLat := math.Cos(lat), math.Sin(lat)
		for j := 0; j <= m.lon; j++ {
			lon := float64(j) / float64(m.lon) * 2 * math.Pi
			u := r3.Vec{X: cosLat * math.Cos(lon), Y: sinLat, Z: cosLat * math.Sin(lon)}

			noise := surfaceNoise(u, f.Time) + pointerBump(u, f.Bump)
			r := f.BaseRadius * (1 + noise*noiseAmplitude)

			rot := lon + spin
			v := r3.Scale(r, r3.Vec{X: cosLat * math.Cos(rot), Y: sinLat, Z: cosLat * math.Sin(rot)})
			scale := projectionDistance / (projectionDistance - v.Z)
			m.points[i*(m.lon+1)+j] = MeshPoint{
				X: f.Center.X + v.X*scale,
				Y: f.Center.Y + v.Y*scale,
				Z: v.Z,
			}
		}
	}

	m.quads = m.quads[:0]
	for i := 0; i < m.lat; i++ {
		for j := 0; j < m.lon; j++ {
			q := Quad{P: [4]MeshPoint{m.at(i, j), m.at(i+1, j), m.at(i+1, j+1), m.at(i, j+1)}}
			q.Z = (q.P[0].Z + q.P[1].Z + q.P[2].Z + q.P[3].Z) / 4
			m.quads = append(m.quads, q)
		}
	}
	slices.SortStableFunc(m.quads, func(a, b Quad) int {
		return cmp.Compare(a.Z, b.Z)
	})
	return m.quads
}
