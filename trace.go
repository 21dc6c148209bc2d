package nebula

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// TraceRow is one tick of the CSV trace.
type TraceRow struct {
	Tick       uint64  `csv:"tick"`
	NowMs      float64 `csv:"now_ms"`
	Warp       float64 `csv:"warp"`
	Target     float64 `csv:"target"`
	Phase      string  `csv:"phase"`
	Effect     string  `csv:"effect"`
	Direction  int     `csv:"direction"`
	Section    int     `csv:"section"`
	Particles  int     `csv:"particles"`
	Edges      int     `csv:"edges"`
	Body       string  `csv:"body"`
	BodyShown  bool    `csv:"body_shown"`
	WaveRadius float64 `csv:"wave_radius"`
	Timers     int     `csv:"timers"`
}

// Tracer appends one TraceRow per Record call to w. The header is written
// with the first row.
type Tracer struct {
	w       io.Writer
	started bool
	row     [1]*TraceRow
}

// NewTracer creates a tracer writing CSV to w.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w, row: [1]*TraceRow{{}}}
}

// snapshotRow captures the engine state for the trace.
func snapshotRow(e *Engine) TraceRow {
	ctrl := e.Controller()
	nav := e.Navigator()
	row := TraceRow{
		Tick:      e.Tick(),
		NowMs:     e.Clock().Now(),
		Warp:      ctrl.Warp(),
		Target:    ctrl.Target(),
		Phase:     ctrl.Phase().String(),
		Effect:    ctrl.Effect().String(),
		Direction: int(ctrl.Direction()),
		Section:   nav.Current(),
		Particles: e.Field().Len(),
		Edges:     e.Graph().Len(),
		Body:      e.Celestial().Body().String(),
		BodyShown: e.Celestial().Visible(),
		Timers:    e.Clock().Len(),
	}
	for _, tf := range e.TextFields() {
		if tf.Active() {
			row.WaveRadius = tf.WaveRadius()
			break
		}
	}
	return row
}

// Record writes the engine's current state as one CSV row.
func (t *Tracer) Record(e *Engine) error {
	*t.row[0] = snapshotRow(e)
	rows := t.row[:]
	var err error
	if t.started {
		err = gocsv.MarshalWithoutHeaders(rows, t.w)
	} else {
		err = gocsv.Marshal(rows, t.w)
		t.started = true
	}
	if err != nil {
		return fmt.Errorf("nebula: writing trace: %w", err)
	}
	return nil
}
