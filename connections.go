package nebula

import (
	"cmp"
	"math"
	"slices"
)

const (
	warpConnectionLimit = 0.5
	pointerDepthLimit   = 2.0
	pairDepthLimit      = 2.5
	pairDepthBucket     = 0.5
	pairAlphaScale      = 0.2
	twistQuietWarp      = 0.01

	pointerLineWidth = 0.5
	pairLineWidth    = 0.2
)

// Edge is one connection line. A is the particle index; B is the second
// particle index, or -1 for a pointer edge.
type Edge struct {
	A, B     int
	Pointer  bool
	From, To Vec2
	Alpha    float64
	Distance float64
}

// GraphInput is the per-tick state the graph builder reads.
type GraphInput struct {
	Warp          float64
	Effect        Effect
	Section       int
	Locked        bool
	Pointer       Vec2
	PointerActive bool
}

// Graph is the connection graph, rebuilt every tick into reused storage.
// No particle owns its edges.
type Graph struct {
	cfg    ConnectionConfig
	edges  []Edge
	nearby []Edge
}

// NewGraph creates an empty graph.
func NewGraph(cfg ConnectionConfig) *Graph {
	return &Graph{cfg: cfg}
}

// Edges returns the edges from the last Build, pointer edges first.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Len returns the edge count from the last Build.
func (g *Graph) Len() int {
	return len(g.edges)
}

// enabled reports whether connections are drawn at all this tick.
func (g *Graph) enabled(in GraphInput) bool {
	return in.Warp < warpConnectionLimit && in.Section != g.cfg.SuppressSection && !in.Locked
}

// Build recomputes the graph from the committed particle positions.
func (g *Graph) Build(particles []Particle, in GraphInput) {
	g.edges = g.edges[:0]
	if !g.enabled(in) {
		return
	}
	if in.PointerActive {
		g.buildPointer(particles, in.Pointer)
	}
	if in.Effect != EffectTwist || in.Warp < twistQuietWarp {
		g.buildPairs(particles)
	}
}

// buildPointer links the pointer to its nearest foreground particles.
func (g *Graph) buildPointer(particles []Particle, ptr Vec2) {
	limit := g.cfg.MouseDistance
	g.nearby = g.nearby[:0]
	for i := range particles {
		p := &particles[i]
		if p.Z > pointerDepthLimit {
			continue
		}
		dx := p.X - ptr.X
		dy := p.Y - ptr.Y
		if math.Abs(dx) > limit || math.Abs(dy) > limit {
			continue
		}
		d := math.Hypot(dx, dy)
		if d >= limit {
			continue
		}
		g.nearby = append(g.nearby, Edge{
			A:        i,
			B:        -1,
			Pointer:  true,
			From:     Vec2{p.X, p.Y},
			To:       ptr,
			Alpha:    (1 - d/limit) * (1 - p.Z/depthFar),
			Distance: d,
		})
	}
	slices.SortStableFunc(g.nearby, func(a, b Edge) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	n := min(len(g.nearby), g.cfg.MaxMouseConnections)
	g.edges = append(g.edges, g.nearby[:n]...)
}

// buildPairs links every near pair within one depth bucket.
func (g *Graph) buildPairs(particles []Particle) {
	limit := g.cfg.ConnectionDistance
	for i := range particles {
		p1 := &particles[i]
		if p1.Z > pairDepthLimit {
			continue
		}
		for j := i + 1; j < len(particles); j++ {
			p2 := &particles[j]
			if math.Abs(p1.Z-p2.Z) > pairDepthBucket {
				continue
			}
			dx := p1.X - p2.X
			dy := p1.Y - p2.Y
			if math.Abs(dx) > limit || math.Abs(dy) > limit {
				continue
			}
			d := math.Hypot(dx, dy)
			if d >= limit {
				continue
			}
			g.edges = append(g.edges, Edge{
				A:        i,
				B:        j,
				From:     Vec2{p1.X, p1.Y},
				To:       Vec2{p2.X, p2.Y},
				Alpha:    (1 - d/limit) * pairAlphaScale,
				Distance: d,
			})
		}
	}
}

// Draw emits the edges as lines, pointer edges first.
func (g *Graph) Draw(buf *CommandBuffer) {
	for i := range g.edges {
		e := &g.edges[i]
		w := pairLineWidth
		if e.Pointer {
			w = pointerLineWidth
		}
		buf.Line(e.From.X, e.From.Y, e.To.X, e.To.Y, w, ColorWhite.WithAlpha(e.Alpha))
	}
}
