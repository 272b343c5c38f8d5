package sprig

import (
	"encoding/json"
	"fmt"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	FromX  int    `json:"fromX,omitempty"`
	FromY  int    `json:"fromY,omitempty"`
	ToX    int    `json:"toX,omitempty"`
	ToY    int    `json:"toY,omitempty"`
	Frames int    `json:"frames,omitempty"`
	Text   string `json:"text,omitempty"`
	Dir    string `json:"dir,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var gestureNames = map[string]GestureDirection{
	"left":  GestureLeft,
	"right": GestureRight,
	"up":    GestureUp,
	"down":  GestureDown,
}

// TestRunner sequences injected input, keys, gestures and screenshots
// across frames for automated visual testing. Attach it with
// Display.SetTestRunner.
//
// Supported actions: tap, drag, hold, wait, key, gesture, screenshot.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tap", "drag", "hold", "wait", "key", "screenshot":
		case "gesture":
			if _, ok := gestureNames[st.Dir]; !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown gesture direction %q", i, st.Dir)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner. Its step method runs at the start
// of each Update.
func (d *Display) SetTestRunner(runner *TestRunner) {
	d.testRunner = runner
}

// Done reports whether every step has been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(d *Display) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(d.injectQueue) > 0 {
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
		d.Screenshot(st.Label)
	case "tap":
		d.InjectTap(st.X, st.Y)
	case "drag":
		d.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "hold":
		d.InjectHold(st.X, st.Y, st.Frames)
	case "key":
		for _, ch := range st.Text {
			d.Key(ch)
		}
	case "gesture":
		d.Gesture(gestureNames[st.Dir])
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(d.injectQueue) == 0 {
		r.done = true
	}
}
