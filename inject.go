package gesture

import (
	"fmt"
	"math"
	"slices"
)

// pointerFrame holds every pointer slot for one polled frame.
type pointerFrame = [maxPointers]pointerSample

// Pointer slots the two-finger injections use. They are touch slots so the
// mouse pointer stays free.
const (
	firstFinger  = 1
	secondFinger = 2
)

// queue appends a frame that starts from the last queued one and sets
// pointer id to s.
func (p *PointerInput) queue(id int, s pointerSample) {
	f := p.tail()
	f[id] = s
	p.injectQueue = append(p.injectQueue, f)
}

// tail returns the frame the next injection builds on.
func (p *PointerInput) tail() pointerFrame {
	if n := len(p.injectQueue); n > 0 {
		return p.injectQueue[n-1]
	}
	return p.injectHeld
}

// InjectPointer queues a frame that presses, moves or lifts pointer id at
// the given screen coordinates. Other injected pointers keep their state.
// While any injected pointer is down the real mouse and touches are
// ignored.
func (p *PointerInput) InjectPointer(id int, x, y float64, pressed bool) error {
	if id < 0 || id >= maxPointers {
		return fmt.Errorf("inject pointer %d: %w", id, ErrInvalidPointer)
	}
	p.queue(id, pointerSample{pressed: pressed, x: x, y: y})
	return nil
}

// InjectPress queues a mouse press at the given screen coordinates. The
// sample replaces the real mouse on the next Poll.
func (p *PointerInput) InjectPress(x, y float64) {
	p.queue(mousePointer, pointerSample{pressed: true, x: x, y: y})
}

// InjectMove queues a mouse move with the button held down. Use this between
// InjectPress and InjectRelease to simulate a drag.
func (p *PointerInput) InjectMove(x, y float64) {
	p.queue(mousePointer, pointerSample{pressed: true, x: x, y: y})
}

// InjectRelease queues a mouse release at the given screen coordinates.
func (p *PointerInput) InjectRelease(x, y float64) {
	p.queue(mousePointer, pointerSample{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (p *PointerInput) InjectClick(x, y float64) {
	p.InjectPress(x, y)
	p.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (p *PointerInput) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	p.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		p.InjectMove(x, y)
	}
	p.InjectRelease(toX, toY)
}

// InjectPinch queues a two-finger pinch centred on (cx, cy). The fingers
// land from pixels apart on a horizontal line, spread or close until they
// are to pixels apart and lift together. The sequence consumes frames
// frames, at least 3.
func (p *PointerInput) InjectPinch(cx, cy, from, to float64, frames int) {
	p.injectTwoFinger(cx, cy, from, to, 0, 0, frames)
}

// InjectTwist queues a two-finger twist centred on (cx, cy). The fingers
// stay dist pixels apart while the line through them turns from one angle
// to another, in degrees clockwise. The sequence consumes frames frames, at
// least 3.
func (p *PointerInput) InjectTwist(cx, cy, dist, from, to float64, frames int) {
	p.injectTwoFinger(cx, cy, dist, dist, from, to, frames)
}

// injectTwoFinger lands both fingers in one frame, moves them over
// frames-2 frames so the last move reaches the end pose, then lifts both.
func (p *PointerInput) injectTwoFinger(cx, cy, dist0, dist1, angle0, angle1 float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	pose := func(t float64, pressed bool) {
		half := (dist0 + (dist1-dist0)*t) / 2
		sin, cos := math.Sincos((angle0 + (angle1-angle0)*t) * math.Pi / 180)
		f := p.tail()
		f[firstFinger] = pointerSample{pressed: pressed, x: cx - half*cos, y: cy - half*sin}
		f[secondFinger] = pointerSample{pressed: pressed, x: cx + half*cos, y: cy + half*sin}
		p.injectQueue = append(p.injectQueue, f)
	}
	pose(0, true)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		pose(float64(i)/float64(steps), true)
	}
	pose(1, false)
}

// Pending returns the number of injected frames not yet consumed.
func (p *PointerInput) Pending() int { return len(p.injectQueue) }

// processInjectedInput pops one injected frame into cur. Returns true if
// the real mouse and touches are to be skipped.
func (p *PointerInput) processInjectedInput(cur *pointerFrame) bool {
	if len(p.injectQueue) == 0 {
		// Injected pointers hold until an injected release.
		if !slices.ContainsFunc(p.injectHeld[:], func(s pointerSample) bool { return s.pressed }) {
			return false
		}
		*cur = p.injectHeld
		return true
	}
	p.injectHeld = p.injectQueue[0]
	p.injectQueue = slices.Delete(p.injectQueue, 0, 1)
	*cur = p.injectHeld
	return true
}
