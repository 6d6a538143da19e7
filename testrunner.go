package batchui

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// testStep is one entry of a test script. Which fields matter depends on
// Action.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// stepActions maps a script action to what it does on the window.
var stepActions = map[string]func(r *TestRunner, w *Window, st testStep){
	"screenshot": func(_ *TestRunner, w *Window, st testStep) { w.Screenshot(st.Label) },
	"click":      func(_ *TestRunner, w *Window, st testStep) { w.InjectClick(st.X, st.Y) },
	"rightclick": func(_ *TestRunner, w *Window, st testStep) { w.InjectRightClick(st.X, st.Y) },
	"scroll":     func(_ *TestRunner, w *Window, st testStep) { w.InjectScroll(st.X, st.Y, st.DX, st.DY) },
	"drag": func(_ *TestRunner, w *Window, st testStep) {
		w.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	},
	"wait": func(r *TestRunner, _ *Window, st testStep) {
		// The frame the step runs on counts as the first.
		r.waitCount = max(st.Frames-1, 0)
	},
	"repaint": func(_ *TestRunner, w *Window, _ testStep) { w.Repaint() },
}

// TestRunner replays a scripted sequence of pointer input, waits and
// screenshots, one step per frame:
//
//	{"steps": [
//	  {"action": "drag", "fromX": 40, "fromY": 100, "toX": 40, "toY": 30, "frames": 12},
//	  {"action": "scroll", "x": 200, "y": 300, "dy": -2},
//	  {"action": "wait", "frames": 2},
//	  {"action": "screenshot", "label": "after-drag"}
//	]}
//
// A step does not start until the input queued by the previous one has been
// dispatched.
type TestRunner struct {
	// ExitWhenDone ends the game loop once every step has run and every
	// queued screenshot is written.
	ExitWhenDone bool

	steps     []testStep
	next      int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script struct {
		Steps []testStep `json:"steps"`
	}
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("batchui: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("batchui: parse test script: no steps")
	}
	if i := slices.IndexFunc(script.Steps, func(st testStep) bool { return stepActions[st.Action] == nil }); i >= 0 {
		return nil, fmt.Errorf("batchui: parse test script: step %d: unknown action %q", i, script.Steps[i].Action)
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner to the window. It advances once per Update
// before input is processed.
func (w *Window) SetTestRunner(runner *TestRunner) {
	w.testRunner = runner
}

// Done reports whether every step has been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// busy reports whether the previous step is still playing out.
func (r *TestRunner) busy(w *Window) bool {
	return len(w.injectQueue) > 0 || r.waitCount > 0
}

// step advances the runner by one frame.
func (r *TestRunner) step(w *Window) {
	if r.done {
		return
	}
	if len(w.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.next == len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.next]
	logger.Debug("test step", "index", r.next, "action", st.Action)
	r.next++
	stepActions[st.Action](r, w, st)

	if r.next == len(r.steps) && !r.busy(w) {
		r.done = true
	}
}
