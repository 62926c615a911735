package grove

import (
	"encoding/json"
	"fmt"
	"time"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action    string `json:"action"`
	Label     string `json:"label,omitempty"`
	Key       string `json:"key,omitempty"`
	Direction string `json:"direction,omitempty"`
	Name      string `json:"name,omitempty"`
	Ms        int    `json:"ms,omitempty"`
	Frames    int    `json:"frames,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences scripted input, panel actions and screenshots across
// frames. Attach to a Stage via SetTestRunner.
//
// Supported actions:
//
//	key_down, key_up   {"key": "W"}
//	key                {"key": "W", "ms": 100}        press, release ms later
//	press, release     {"direction": "right"}
//	hold               {"direction": "right", "ms": 25}
//	action             {"name": "rain"}
//	resize             {"width": 800, "height": 600}
//	fullscreen
//	wait               {"frames": 30}
//	screenshot         {"label": "after-rain"}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Stage via SetTestRunner. Key and direction names are
// checked up front.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st testStep) validate() error {
	switch st.Action {
	case "key_down", "key_up", "key":
		_, err := ParseKey(st.Key)
		return err
	case "press", "release", "hold":
		if _, ok := ParseDirection(st.Direction); !ok {
			return fmt.Errorf("unknown direction %q", st.Direction)
		}
	case "action":
		if st.Name == "" {
			return fmt.Errorf("action without name")
		}
	case "resize":
		if st.Width <= 0 || st.Height <= 0 {
			return fmt.Errorf("resize to %dx%d", st.Width, st.Height)
		}
	case "fullscreen", "wait", "screenshot":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Stage.Frame.
func (r *TestRunner) step(s *Stage) {
	if r.done {
		return
	}
	// Wait for scheduled injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
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

	hold := time.Duration(st.Ms) * time.Millisecond
	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "key_down":
		k, _ := ParseKey(st.Key)
		s.InjectAt(s.now, KeyDownCommand{Key: k})
	case "key_up":
		k, _ := ParseKey(st.Key)
		s.InjectAt(s.now, KeyUpCommand{Key: k})
	case "key":
		k, _ := ParseKey(st.Key)
		s.InjectKey(k, hold)
	case "press":
		d, _ := ParseDirection(st.Direction)
		s.InjectAt(s.now, ButtonPressCommand{Direction: d, At: s.now})
	case "release":
		d, _ := ParseDirection(st.Direction)
		s.InjectAt(s.now, ButtonReleaseCommand{Direction: d, At: s.now})
	case "hold":
		d, _ := ParseDirection(st.Direction)
		s.InjectButton(d, hold)
	case "action":
		s.InjectAt(s.now, ActionCommand{Name: st.Name})
	case "resize":
		s.InjectAt(s.now, ResizeCommand{Width: st.Width, Height: st.Height})
	case "fullscreen":
		s.InjectAt(s.now, FullscreenCommand{})
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
