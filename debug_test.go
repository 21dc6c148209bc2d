package nebula

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestFrameStatsTotal(t *testing.T) {
	s := frameStats{updateTime: time.Millisecond, drawTime: 2 * time.Millisecond, submitTime: 3 * time.Millisecond}
	if s.total() != 6*time.Millisecond {
		t.Errorf("total = %v, want 6ms", s.total())
	}
}

func TestDebugLog(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)
	debugLog(frameStats{starCmds: 12, edges: 3}, 99)
	out := buf.String()
	for _, want := range []string{"msg=frame", "tick=99", "star_cmds=12", "edges=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestDebugCheckParticles(t *testing.T) {
	buf := captureLogs(t, slog.LevelWarn)
	f := NewField(testConstellation(), testRNG())
	f.Resize(Viewport{800, 600})
	debugCheckParticles(f)
	if buf.Len() != 0 {
		t.Fatalf("warned on a healthy field: %s", buf.String())
	}

	f.particles[3].X = -5
	debugCheckParticles(f)
	if !strings.Contains(buf.String(), "particle out of bounds") || !strings.Contains(buf.String(), "index=3") {
		t.Errorf("log = %q, want an out of bounds warning", buf.String())
	}
}

func TestHUDText(t *testing.T) {
	e := newTestEngine(t)
	out := hudText(e, 59.9, 60)
	for _, want := range []string{"FPS: 59.9", "TPS: 60.0", "warp: 0.000 idle", "fx: warp dir +1", "section: 0", "particles: 115", "body: none"} {
		if !strings.Contains(out, want) {
			t.Errorf("hud %q missing %q", out, want)
		}
	}
}
