package gesture

import (
	"fmt"
	"math"
)

// Kind selects one of the four delta channels a gesture produces.
type Kind uint8

const (
	KindMoveX    Kind = iota // horizontal translation in pixels
	KindMoveY                // vertical translation in pixels
	KindRotation             // rotation in degrees
	KindScale                // multiplicative scale factor
	kindCount
)

var kindNames = [...]string{"moveX", "moveY", "rotation", "scale"}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// neutral is the value that leaves an object unchanged.
func (k Kind) neutral() float64 {
	if k == KindScale {
		return 1
	}
	return 0
}

// register is an accumulation target and the running sum measured against it.
// Scale sums factor-1 so that all channels accumulate around zero.
type register struct {
	target float64
	sum    float64
}

// Accumulator holds the accumulate-then-fire registers and the per-frame
// consumption of each delta channel.
//
// A channel with a target only reports a delta once |sum| has reached the
// target, and then reports exactly ±target. Consumption is a magnitude that
// pulls the reported delta toward neutral; it is cleared at every frame.
type Accumulator struct {
	regs     [kindCount]register
	consumed [kindCount]float64
	// repeat is set after the first dispatch of a frame so channels without
	// a target are not delivered twice when another channel fires N times.
	repeat bool
}

// SetTarget configures channel k to fire only once |sum| reaches target.
// The running sum is reset. target must be positive.
func (a *Accumulator) SetTarget(k Kind, target float64) error {
	if k >= kindCount {
		return fmt.Errorf("accumulate %d: unknown kind", k)
	}
	if !(target > 0) || math.IsInf(target, 0) {
		return fmt.Errorf("accumulate %s = %v: %w", k, target, ErrInvalidThreshold)
	}
	a.regs[k] = register{target: target}
	return nil
}

// ClearTarget removes the target from channel k.
func (a *Accumulator) ClearTarget(k Kind) {
	if k < kindCount {
		a.regs[k] = register{}
	}
}

// Target returns the configured target of channel k, or 0.
func (a *Accumulator) Target(k Kind) float64 {
	if k >= kindCount {
		return 0
	}
	return a.regs[k].target
}

// Pending returns the running sum of channel k that has not fired yet.
func (a *Accumulator) Pending(k Kind) float64 {
	if k >= kindCount {
		return 0
	}
	return a.regs[k].sum
}

// Accumulating reports whether channel k has a target.
func (a *Accumulator) Accumulating(k Kind) bool {
	return k < kindCount && a.regs[k].target > 0
}

// record adds a raw frame delta to channel k.
func (a *Accumulator) record(k Kind, raw float64) {
	r := &a.regs[k]
	if r.target <= 0 {
		return
	}
	r.sum += raw - k.neutral()
}

// canFire reports whether channel k has accumulated at least one target.
func (a *Accumulator) canFire(k Kind) bool {
	r := &a.regs[k]
	return r.target > 0 && math.Abs(r.sum)-r.target >= 0
}

// fire removes one target's worth of accumulation from channel k.
func (a *Accumulator) fire(k Kind) {
	r := &a.regs[k]
	if !a.canFire(k) {
		return
	}
	if r.sum > 0 {
		r.sum -= r.target
	} else {
		r.sum += r.target
	}
}

// value maps a raw frame delta to the delta a listener should see.
func (a *Accumulator) value(k Kind, raw float64) float64 {
	n := k.neutral()
	v := raw - n
	r := &a.regs[k]
	switch {
	case r.target > 0:
		if math.Abs(r.sum) < r.target {
			return n
		}
		v = math.Copysign(r.target, r.sum)
	case a.repeat:
		return n
	}
	c := a.consumed[k]
	if v < 0 {
		v = math.Min(v+c, 0)
	} else {
		v = math.Max(v-c, 0)
	}
	return v + n
}

// consume absorbs amount of channel k for the current frame. The sign of
// amount is ignored.
func (a *Accumulator) consume(k Kind, amount float64) {
	if math.IsNaN(amount) {
		return
	}
	a.consumed[k] += math.Abs(amount)
}

// Consumed returns the magnitude consumed from channel k this frame.
func (a *Accumulator) Consumed(k Kind) float64 {
	if k >= kindCount {
		return 0
	}
	return a.consumed[k]
}

// resetConsumed clears consumption at the start of a frame.
func (a *Accumulator) resetConsumed() {
	a.consumed = [kindCount]float64{}
	a.repeat = false
}

// reset clears targets, sums and consumption.
func (a *Accumulator) reset() {
	*a = Accumulator{}
}
