package adsorption

import (
	"fmt"
	"math"

	"github.com/phanxgames/gesture"
)

// ScaleAnalyzer finds scale candidates and owns the scale hysteresis.
// Distances and the release budget are measured in absolute scale units,
// the difference between two scales rather than their ratio.
type ScaleAnalyzer struct {
	magnetic Magnetic
	magnets  []*ScaleMagnet

	axis   axis
	held   []ScaleResult
	limits []candidate
}

// NewScaleAnalyzer validates the configuration and returns an analyzer.
func NewScaleAnalyzer(magnetic Magnetic, magnets ...*ScaleMagnet) (*ScaleAnalyzer, error) {
	if magnetic.Target == nil {
		return nil, fmt.Errorf("magnetic without target: %w", ErrInvalidMagnet)
	}
	for _, m := range magnets {
		if m == nil {
			return nil, fmt.Errorf("nil scale magnet: %w", ErrInvalidMagnet)
		}
		if m.Scale <= 0 || math.IsNaN(m.Scale) || math.IsInf(m.Scale, 0) {
			return nil, fmt.Errorf("scale magnet %g: %w", m.Scale, ErrInvalidMagnet)
		}
		if err := validateThresholds(&m.Thresholds, fmt.Sprintf("scale magnet %g", m.Scale)); err != nil {
			return nil, err
		}
	}
	return &ScaleAnalyzer{magnetic: magnetic, magnets: magnets, axis: axis{name: "scale"}}, nil
}

// Phase returns the scale phase.
func (a *ScaleAnalyzer) Phase() Phase { return a.axis.phase }

// Held returns the candidates currently held.
func (a *ScaleAnalyzer) Held() []ScaleResult { return a.held }

// Magnets returns the configured magnets.
func (a *ScaleAnalyzer) Magnets() []*ScaleMagnet { return a.magnets }

// Analyze searches for a magnet within reach of the scale the object would
// have after multiplying by factor. It returns the signed scale offset from
// that projected scale to the closest magnet.
func (a *ScaleAnalyzer) Analyze(factor float64) (float64, bool) {
	if a.axis.phase != PhaseFree {
		return 0, false
	}
	a.held, a.limits = a.held[:0], a.limits[:0]
	cur := a.magnetic.Target.Scale()
	track := trackOf(factor - 1)
	if track == TrackNone || cur <= 0 {
		return 0, false
	}
	next := cur * factor

	var results []ScaleResult
	var cands []candidate
	for _, m := range a.magnets {
		if trackOf(m.Scale-cur) != track {
			continue
		}
		d := m.Scale - next
		if math.Abs(d) >= m.Magnetism {
			continue
		}
		results = append(results, ScaleResult{Distance: d, Magnet: m})
		cands = append(cands, candidate{distance: d, limits: m.Thresholds})
	}
	idx := closest(cands)
	if len(idx) == 0 {
		return 0, false
	}
	for _, i := range idx {
		a.held = append(a.held, results[i])
		a.limits = append(a.limits, cands[i])
	}
	return cands[idx[0]].distance, true
}

func (a *ScaleAnalyzer) discard() {
	if a.axis.phase == PhaseFree {
		a.held, a.limits = a.held[:0], a.limits[:0]
	}
}

func (a *ScaleAnalyzer) capture(track Track) {
	if a.axis.phase == PhaseFree && len(a.limits) > 0 {
		a.axis.capture(track, strongest(a.limits))
	}
}

// Consume runs one frame of hysteresis for a scale factor and returns the
// factor the object receives, and whether the scale broke free.
func (a *ScaleAnalyzer) Consume(factor float64) (float64, bool) {
	cur := a.magnetic.Target.Scale()
	next := cur * factor
	delta := next - cur
	a.axis.consumeImmunity(delta, func() float64 {
		var best *ScaleMagnet
		for _, r := range a.held {
			if best == nil || r.Magnet.Magnetism > best.Magnetism {
				best = r.Magnet
			}
		}
		if best == nil {
			return math.Inf(1)
		}
		return math.Abs(best.Scale - next)
	})
	released := a.axis.consumeRelease(delta)
	if a.axis.passThrough(delta) == 0 && delta != 0 {
		return 1, released
	}
	return factor, released
}

// Reset returns the scale to free and forgets every candidate.
func (a *ScaleAnalyzer) Reset() {
	a.axis.reset()
	a.held, a.limits = a.held[:0], a.limits[:0]
}

// ScaleListener receives scale snapping. A nil OnBeginAdsorption accepts.
type ScaleListener struct {
	OnBeginAdsorption func(sd *ScaleDetector) bool
	// OnAdsorption fires on every animation tick; multiply the object's
	// scale by AdsorptionScale.
	OnAdsorption    func(sd *ScaleDetector)
	OnAdsorptionEnd func(sd *ScaleDetector)
}

// ScaleDetector snaps a scaling object to fixed scales.
type ScaleDetector struct {
	snapper
	analyzer *ScaleAnalyzer
	listener ScaleListener
	factor   float64
}

// NewScaleDetector returns a detector for magnetic against magnets.
func NewScaleDetector(magnetic Magnetic, magnets []*ScaleMagnet, l ScaleListener, opts Options) (*ScaleDetector, error) {
	a, err := NewScaleAnalyzer(magnetic, magnets...)
	if err != nil {
		return nil, err
	}
	return &ScaleDetector{snapper: newSnapper("scale", opts), analyzer: a, listener: l, factor: 1}, nil
}

// Analyzer returns the underlying analyzer.
func (sd *ScaleDetector) Analyzer() *ScaleAnalyzer { return sd.analyzer }

// AdsorptionScale returns the snap factor of the current tick. It is 1
// outside a snap.
func (sd *ScaleDetector) AdsorptionScale() float64 { return sd.factor }

// OnScale runs one frame of scale snapping and reports whether snapping
// affects the object this frame. The frame scale is consumed in full while
// a snap animates.
func (sd *ScaleDetector) OnScale(d *gesture.Detector) bool {
	if sd.watch(d) {
		sd.analyzer.discard()
	}
	if !sd.analyzer.magnetic.Target.Attached() {
		sd.Release()
		return false
	}
	f := d.ScaleFactor()
	if sd.Animating() {
		d.ConsumeScale(f - 1)
		return true
	}
	off, ok := sd.analyzer.Analyze(f)
	pass, released := sd.analyzer.Consume(f)
	if released {
		sd.emit(gesture.EventAdsorptionRelease)
	}
	d.ConsumeScale(math.Abs(f-1) - math.Abs(pass-1))
	if ok {
		if sd.listener.OnBeginAdsorption != nil && !sd.listener.OnBeginAdsorption(sd) {
			sd.analyzer.discard()
		} else {
			next := sd.analyzer.magnetic.Target.Scale() * f
			sd.snap(d, next, next+off, trackOf(f-1))
		}
	}
	return sd.Animating() || sd.analyzer.Phase().Held()
}

// snap animates the absolute scale from the projected value to the magnet
// and reports each tick as a factor of the previous tick.
func (sd *ScaleDetector) snap(d *gesture.Detector, from, to float64, track Track) {
	gesture.Logger().Debug("adsorption scale snap", "from", from, "to", to)
	last := from
	sd.start(d, []float64{from}, []float64{to}, func(v []float64) {
		sd.factor = 1
		if last > 0 && v[0] > 0 {
			sd.factor = v[0] / last
		}
		last = v[0]
		if sd.listener.OnAdsorption != nil {
			sd.listener.OnAdsorption(sd)
		}
	}, func() {
		sd.factor = 1
		sd.analyzer.capture(track)
		if sd.listener.OnAdsorptionEnd != nil {
			sd.listener.OnAdsorptionEnd(sd)
		}
	})
}

// Release cancels any snap and returns the scale to free.
func (sd *ScaleDetector) Release() {
	active := sd.Animating() || sd.analyzer.Phase() != PhaseFree
	sd.stop()
	sd.factor = 1
	sd.analyzer.Reset()
	if active {
		sd.emit(gesture.EventAdsorptionRelease)
	}
}
