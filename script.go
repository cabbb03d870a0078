package gesture

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one action of an input script. Which fields apply depends
// on the action:
//
//	press, move, release, click   x, y
//	drag                          fromX, fromY, toX, toY, frames
//	touch, lift                   id, x, y
//	pinch                         x, y (centre), from, to (finger distance), frames
//	twist                         x, y (centre), distance, from, to (degrees), frames
//	wait                          frames
type scriptStep struct {
	Action   string  `json:"action"`
	ID       int     `json:"id,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	From     float64 `json:"from,omitempty"`
	To       float64 `json:"to,omitempty"`
	Distance float64 `json:"distance,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "press", "move", "release", "click", "drag", "wait":
	case "touch", "lift":
		if st.ID < 0 || st.ID >= maxPointers {
			return fmt.Errorf("pointer %d: %w", st.ID, ErrInvalidPointer)
		}
	case "pinch":
		if st.From <= 0 || st.To <= 0 {
			return fmt.Errorf("pinch needs positive from and to distances")
		}
	case "twist":
		if st.Distance <= 0 {
			return fmt.Errorf("twist needs a positive distance")
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected pointer input across frames so a gesture,
// single or multi-finger, can be replayed without a device. Call Step once
// per frame before PointerInput.Update.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script. Supported actions are press, move,
// release, click, drag, touch, lift, pinch, twist and wait.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *ScriptRunner) Step(p *PointerInput) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if p.Pending() > 0 {
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
	case "press":
		p.InjectPress(st.X, st.Y)
	case "move":
		p.InjectMove(st.X, st.Y)
	case "release":
		p.InjectRelease(st.X, st.Y)
	case "click":
		p.InjectClick(st.X, st.Y)
	case "drag":
		p.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "touch", "lift":
		// The id was checked by LoadScript.
		_ = p.InjectPointer(st.ID, st.X, st.Y, st.Action == "touch")
	case "pinch":
		p.InjectPinch(st.X, st.Y, st.From, st.To, st.Frames)
	case "twist":
		p.InjectTwist(st.X, st.Y, st.Distance, st.From, st.To, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && p.Pending() == 0 {
		r.done = true
	}
}
