package nebula

import (
	"log/slog"
	"time"
)

// frameStats holds per-frame timing and command metrics.
// Only populated when debug mode is on.
type frameStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	submitTime time.Duration
	starCmds   int
	skyCmds    int
	edges      int
}

// total returns the summed frame time.
func (s frameStats) total() time.Duration {
	return s.updateTime + s.drawTime + s.submitTime
}

// debugLog logs timing and command stats at debug level.
func debugLog(stats frameStats, tick uint64) {
	slog.Debug("frame",
		"tick", tick,
		"update", stats.updateTime,
		"draw", stats.drawTime,
		"submit", stats.submitTime,
		"total", stats.total(),
		"star_cmds", stats.starCmds,
		"sky_cmds", stats.skyCmds,
		"edges", stats.edges,
	)
}

// debugCheckParticles warns when a particle has escaped its bounds. The
// wraparound rules make this unreachable unless a caller resized without
// going through Engine.Resize.
func debugCheckParticles(f *Field) {
	vp := f.Viewport()
	for i := range f.particles {
		p := &f.particles[i]
		if p.Z <= 0 || p.Z > depthFar || p.X < 0 || p.X > vp.Width || p.Y < 0 || p.Y > vp.Height {
			slog.Warn("particle out of bounds", "index", i, "x", p.X, "y", p.Y, "z", p.Z)
			return
		}
	}
}
