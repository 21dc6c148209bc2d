package nebula

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTracerWritesHeaderOnce(t *testing.T) {
	e := newTestEngine(t)
	var buf bytes.Buffer
	tr := NewTracer(&buf)
	for range 3 {
		e.Update(testDt)
		if err := tr.Record(e); err != nil {
			t.Fatal(err)
		}
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want header + 3 rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "tick,now_ms,warp,target,phase") {
		t.Errorf("header = %q", lines[0])
	}

	var rows []*TraceRow
	if err := gocsv.UnmarshalString(buf.String(), &rows); err != nil {
		t.Fatal(err)
	}
	if rows[2].Tick != 3 || rows[2].Particles != 115 || rows[2].Phase != "idle" || rows[2].Body != "none" {
		t.Errorf("row 3 = %+v", rows[2])
	}
}

func TestSnapshotRowDuringTransition(t *testing.T) {
	e := newTestEngine(t)
	e.Navigator().GoTo(1)
	e.Update(testDt)
	row := snapshotRow(e)
	if row.Phase != "transitioning" || row.Target != 1 || row.Section != 1 {
		t.Errorf("row = %+v", row)
	}
	if row.Body != "planet" || !row.BodyShown {
		t.Errorf("body = %q shown = %v", row.Body, row.BodyShown)
	}
	if row.Timers < 2 {
		t.Errorf("timers = %d, want ramp and unlock pending", row.Timers)
	}
	if row.WaveRadius == 0 {
		t.Error("active text field wave radius not captured")
	}
}

func TestTracerWriteError(t *testing.T) {
	e := newTestEngine(t)
	if err := NewTracer(failingWriter{}).Record(e); err == nil {
		t.Error("expected write error")
	}
}
