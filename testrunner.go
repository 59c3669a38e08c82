package polaroid

import (
	"encoding/json"
	"errors"
	"fmt"
)

// testStep represents a single action in an interaction script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float32 `json:"x,omitempty"`
	Y       float32 `json:"y,omitempty"`
	FromX   float32 `json:"fromX,omitempty"`
	FromY   float32 `json:"fromY,omitempty"`
	ToX     float32 `json:"toX,omitempty"`
	ToY     float32 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Message *string `json:"message,omitempty"`
}

// testScript is the top-level JSON structure for an interaction script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected pointer events, waits, screenshots and
// message checks across ticks. Attach it with App.SetTestRunner.
//
//	{"steps": [
//	  {"action": "click", "x": 640, "y": 360},
//	  {"action": "expect", "message": "You are the cutest!"},
//	  {"action": "wait", "frames": 130},
//	  {"action": "expect", "message": ""},
//	  {"action": "drag", "fromX": 640, "fromY": 360, "toX": 900, "toY": 200, "frames": 20},
//	  {"action": "screenshot", "label": "after-drag"}
//	]}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

var validActions = map[string]bool{
	"click": true, "drag": true, "press": true, "move": true, "release": true,
	"wait": true, "screenshot": true, "expect": true, "restack": true,
}

// LoadTestScript parses a JSON interaction script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("polaroid: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("polaroid: parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !validActions[st.Action] {
			return nil, fmt.Errorf("polaroid: parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "expect" && st.Message == nil {
			return nil, fmt.Errorf("polaroid: parse test script: step %d: expect needs a message", i)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a runner. Its step method runs at the start of each
// tick, before input processing.
func (a *App) SetTestRunner(runner *TestRunner) {
	a.runner = runner
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Err returns the failed expectations, joined, or nil.
func (r *TestRunner) Err() error {
	if len(r.failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.failures))
	for i, f := range r.failures {
		errs[i] = errors.New(f)
	}
	return errors.Join(errs...)
}

// step advances the runner by one tick.
func (r *TestRunner) step(a *App) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(a.injectQueue) > 0 {
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

	switch st.Action {
	case "screenshot":
		a.Screenshot(st.Label)
	case "click":
		a.InjectClick(st.X, st.Y)
	case "press":
		a.InjectPress(st.X, st.Y)
	case "move":
		a.InjectMove(st.X, st.Y)
	case "release":
		a.InjectRelease(st.X, st.Y)
	case "drag":
		a.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "restack":
		a.Restack()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "expect":
		if got := a.reveal.State().Message; got != *st.Message {
			r.failures = append(r.failures,
				fmt.Sprintf("step %d: message = %q, want %q", r.cursor-1, got, *st.Message))
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(a.injectQueue) == 0 {
		r.done = true
	}
}
