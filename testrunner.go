package nebula

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a test script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Index  int     `json:"index,omitempty"`
	ID     string  `json:"id,omitempty"`
	Key    string  `json:"key,omitempty"` // "down" or "up"
	DeltaY float64 `json:"deltaY,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []scriptStep `json:"steps"`
}

var knownActions = map[string]bool{
	"goto": true, "link": true, "key": true, "wheel": true, "pointer": true,
	"leave": true, "resize": true, "wait": true, "screenshot": true,
}

// screenshotter receives screenshot steps.
type screenshotter interface {
	Queue(label string)
}

// TestRunner sequences scripted input across ticks for automated runs.
// One step executes per tick, except that wait holds the cursor for the
// given number of ticks.
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("nebula: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("nebula: parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("nebula: parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "key" && st.Key != "down" && st.Key != "up" {
			return nil, fmt.Errorf("nebula: parse test script: step %d: key must be down or up, got %q", i, st.Key)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Step executes at most one script step against e. Call once per tick,
// before Engine.Update.
func (r *TestRunner) Step(e *Engine, shots screenshotter) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	nav := e.Navigator()
	switch st.Action {
	case "goto":
		nav.GoTo(st.Index)
	case "link":
		nav.GoToID(st.ID)
	case "key":
		k := KeyDown
		if st.Key == "up" {
			k = KeyUp
		}
		nav.Key(k)
	case "wheel":
		nav.Wheel(st.DeltaY)
	case "pointer":
		e.PointerMove(st.X, st.Y)
	case "leave":
		e.PointerLeave()
	case "resize":
		e.Resize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "screenshot":
		if shots != nil {
			shots.Queue(st.Label)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
