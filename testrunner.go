package gesture

import (
	"encoding/json"
	"fmt"
	"time"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Pointer int     `json:"pointer,omitempty"`
	MS      int64   `json:"ms,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected pointer events and waits on the scene clock
// for scripted gesture tests and replays. Attach to a Scene via SetTestRunner.
//
// Actions: "press", "release", "tap" (press then release on the next frame),
// "hold" (press, wait ms, release) and "wait" (ms).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitUntil time.Duration
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner. Unknown top-level keys are
// ignored so replay files can embed a script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	var steps []testStep
	for i, st := range script.Steps {
		if st.Pointer < 0 || st.Pointer >= maxPointers {
			return nil, fmt.Errorf("parse test script: step %d: pointer %d out of range", i, st.Pointer)
		}
		switch st.Action {
		case "press", "release", "tap":
			steps = append(steps, st)
		case "wait":
			if st.MS <= 0 {
				return nil, fmt.Errorf("parse test script: step %d: wait needs positive ms", i)
			}
			steps = append(steps, st)
		case "hold":
			if st.MS <= 0 {
				return nil, fmt.Errorf("parse test script: step %d: hold needs positive ms", i)
			}
			press, wait, release := st, st, st
			press.Action, wait.Action, release.Action = "press", "wait", "release"
			steps = append(steps, press, wait, release)
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.UpdateWithDelta before input is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if s.Now() < r.waitUntil {
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		s.InjectPointer(st.Pointer, st.X, st.Y, true)
	case "release":
		s.InjectPointer(st.Pointer, st.X, st.Y, false)
	case "tap":
		s.InjectPointer(st.Pointer, st.X, st.Y, true)
		s.InjectPointer(st.Pointer, st.X, st.Y, false)
	case "wait":
		r.waitUntil = s.Now() + time.Duration(st.MS)*time.Millisecond
	}
}
