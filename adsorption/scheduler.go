package adsorption

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultDuration is how long a snap animation takes.
const DefaultDuration = 80 * time.Millisecond

// Scheduler interpolates values over time and calls back on every tick.
// Detectors do not own a clock; the scheduler's host advances it.
type Scheduler interface {
	// Animate moves each from[i] toward to[i] over d. step receives the
	// current values on every tick, the last call carrying exactly to.
	// done runs once after the last step. cancel stops the animation
	// without calling done.
	Animate(from, to []float64, d time.Duration, step func(values []float64), done func()) (cancel func())
}

// TweenScheduler is a Scheduler backed by gween tweens. Call Update once per
// frame; there is no global animation manager.
type TweenScheduler struct {
	// Ease shapes every animation. Nil means ease.OutQuad.
	Ease ease.TweenFunc

	running []*animation
}

type animation struct {
	tweens    []*gween.Tween
	to        []float64
	values    []float64
	step      func([]float64)
	done      func()
	cancelled bool
	finished  bool
}

// NewTweenScheduler returns an empty scheduler.
func NewTweenScheduler() *TweenScheduler {
	return &TweenScheduler{}
}

// Animate implements Scheduler.
func (s *TweenScheduler) Animate(from, to []float64, d time.Duration, step func([]float64), done func()) func() {
	fn := s.Ease
	if fn == nil {
		fn = ease.OutQuad
	}
	a := &animation{
		tweens: make([]*gween.Tween, len(from)),
		to:     append([]float64(nil), to...),
		values: append([]float64(nil), from...),
		step:   step,
		done:   done,
	}
	for i := range from {
		a.tweens[i] = gween.New(float32(from[i]), float32(to[i]), float32(d.Seconds()), fn)
	}
	s.running = append(s.running, a)
	return func() { a.cancelled = true }
}

// Update advances every running animation by dt seconds.
func (s *TweenScheduler) Update(dt float32) {
	// Callbacks may start or cancel animations; work on a snapshot.
	batch := append([]*animation(nil), s.running...)
	for _, a := range batch {
		if a.cancelled || a.finished {
			continue
		}
		allDone := true
		for i, tw := range a.tweens {
			val, finished := tw.Update(dt)
			a.values[i] = float64(val)
			if finished {
				a.values[i] = a.to[i]
			} else {
				allDone = false
			}
		}
		if a.step != nil {
			a.step(a.values)
		}
		if a.cancelled {
			continue
		}
		if allDone {
			a.finished = true
			if a.done != nil {
				a.done()
			}
		}
	}
	live := s.running[:0]
	for _, a := range s.running {
		if !a.cancelled && !a.finished {
			live = append(live, a)
		}
	}
	clear(s.running[len(live):])
	s.running = live
}

// Active returns the number of running animations.
func (s *TweenScheduler) Active() int {
	n := 0
	for _, a := range s.running {
		if !a.cancelled && !a.finished {
			n++
		}
	}
	return n
}
