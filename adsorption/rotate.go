package adsorption

import (
	"fmt"
	"math"

	"github.com/phanxgames/gesture"
)

// RotateAnalyzer finds angle candidates and owns the rotation hysteresis.
type RotateAnalyzer struct {
	magnetic Magnetic
	magnets  []*RotateMagnet

	axis   axis
	held   []RotateResult
	limits []candidate
}

// NewRotateAnalyzer validates the configuration and returns an analyzer.
func NewRotateAnalyzer(magnetic Magnetic, magnets ...*RotateMagnet) (*RotateAnalyzer, error) {
	if magnetic.Target == nil {
		return nil, fmt.Errorf("magnetic without target: %w", ErrInvalidMagnet)
	}
	for _, m := range magnets {
		if m == nil {
			return nil, fmt.Errorf("nil rotate magnet: %w", ErrInvalidMagnet)
		}
		if err := validateThresholds(&m.Thresholds, fmt.Sprintf("rotate magnet %g", m.Angle)); err != nil {
			return nil, err
		}
	}
	return &RotateAnalyzer{magnetic: magnetic, magnets: magnets, axis: axis{name: "rotation"}}, nil
}

// Phase returns the rotation phase.
func (a *RotateAnalyzer) Phase() Phase { return a.axis.phase }

// Held returns the candidates currently held.
func (a *RotateAnalyzer) Held() []RotateResult { return a.held }

// Magnets returns the configured magnets.
func (a *RotateAnalyzer) Magnets() []*RotateMagnet { return a.magnets }

// Analyze searches for an angle within reach of the rotation the object
// would have after delta degrees. It returns the signed offset from that
// projected rotation to the closest magnet.
func (a *RotateAnalyzer) Analyze(delta float64) (float64, bool) {
	if a.axis.phase != PhaseFree {
		return 0, false
	}
	a.held, a.limits = a.held[:0], a.limits[:0]
	track := trackOf(delta)
	if track == TrackNone {
		return 0, false
	}
	cur := a.magnetic.Target.Rotation()
	next := cur + delta

	var results []RotateResult
	var cands []candidate
	for _, m := range a.magnets {
		if trackOf(gesture.AngleDiff(m.Angle, cur)) != track {
			continue
		}
		d := gesture.AngleDiff(m.Angle, next)
		if math.Abs(d) >= m.Magnetism {
			continue
		}
		results = append(results, RotateResult{Distance: d, Magnet: m})
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

func (a *RotateAnalyzer) discard() {
	if a.axis.phase == PhaseFree {
		a.held, a.limits = a.held[:0], a.limits[:0]
	}
}

func (a *RotateAnalyzer) capture(track Track) {
	if a.axis.phase == PhaseFree && len(a.limits) > 0 {
		a.axis.capture(track, strongest(a.limits))
	}
}

// Consume runs one frame of hysteresis for delta degrees and returns the
// part the object receives, and whether the rotation broke free.
func (a *RotateAnalyzer) Consume(delta float64) (float64, bool) {
	next := a.magnetic.Target.Rotation() + delta
	a.axis.consumeImmunity(delta, func() float64 {
		var best *RotateMagnet
		for _, r := range a.held {
			if best == nil || r.Magnet.Magnetism > best.Magnetism {
				best = r.Magnet
			}
		}
		if best == nil {
			return math.Inf(1)
		}
		return math.Abs(gesture.AngleDiff(best.Angle, next))
	})
	released := a.axis.consumeRelease(delta)
	return a.axis.passThrough(delta), released
}

// Reset returns the rotation to free and forgets every candidate.
func (a *RotateAnalyzer) Reset() {
	a.axis.reset()
	a.held, a.limits = a.held[:0], a.limits[:0]
}

// RotateListener receives rotate snapping. A nil OnBeginAdsorption accepts.
type RotateListener struct {
	OnBeginAdsorption func(rd *RotateDetector) bool
	// OnAdsorption fires on every animation tick; rotate the object by
	// AdsorptionRotation.
	OnAdsorption    func(rd *RotateDetector)
	OnAdsorptionEnd func(rd *RotateDetector)
}

// RotateDetector snaps a rotating object to fixed angles.
type RotateDetector struct {
	snapper
	analyzer *RotateAnalyzer
	listener RotateListener
	delta    float64
}

// NewRotateDetector returns a detector for magnetic against magnets.
func NewRotateDetector(magnetic Magnetic, magnets []*RotateMagnet, l RotateListener, opts Options) (*RotateDetector, error) {
	a, err := NewRotateAnalyzer(magnetic, magnets...)
	if err != nil {
		return nil, err
	}
	return &RotateDetector{snapper: newSnapper("rotate", opts), analyzer: a, listener: l}, nil
}

// Analyzer returns the underlying analyzer.
func (rd *RotateDetector) Analyzer() *RotateAnalyzer { return rd.analyzer }

// AdsorptionRotation returns the snap rotation of the current tick in
// degrees.
func (rd *RotateDetector) AdsorptionRotation() float64 { return rd.delta }

// OnRotate runs one frame of rotate snapping and reports whether snapping
// affects the object this frame. The frame rotation is consumed in full
// while a snap animates.
func (rd *RotateDetector) OnRotate(d *gesture.Detector) bool {
	if rd.watch(d) {
		rd.analyzer.discard()
	}
	if !rd.analyzer.magnetic.Target.Attached() {
		rd.Release()
		return false
	}
	delta := d.Rotation()
	if rd.Animating() {
		d.ConsumeRotation(delta)
		return true
	}
	off, ok := rd.analyzer.Analyze(delta)
	pass, released := rd.analyzer.Consume(delta)
	if released {
		rd.emit(gesture.EventAdsorptionRelease)
	}
	d.ConsumeRotation(delta - pass)
	if ok {
		if rd.listener.OnBeginAdsorption != nil && !rd.listener.OnBeginAdsorption(rd) {
			rd.analyzer.discard()
		} else {
			rd.snap(d, off, trackOf(delta))
		}
	}
	return rd.Animating() || rd.analyzer.Phase().Held()
}

func (rd *RotateDetector) snap(d *gesture.Detector, off float64, track Track) {
	gesture.Logger().Debug("adsorption rotate snap", "offset", off)
	last := 0.0
	rd.start(d, []float64{0}, []float64{off}, func(v []float64) {
		rd.delta = v[0] - last
		last = v[0]
		if rd.listener.OnAdsorption != nil {
			rd.listener.OnAdsorption(rd)
		}
	}, func() {
		rd.delta = 0
		rd.analyzer.capture(track)
		if rd.listener.OnAdsorptionEnd != nil {
			rd.listener.OnAdsorptionEnd(rd)
		}
	})
}

// Release cancels any snap and returns the rotation to free.
func (rd *RotateDetector) Release() {
	active := rd.Animating() || rd.analyzer.Phase() != PhaseFree
	rd.stop()
	rd.delta = 0
	rd.analyzer.Reset()
	if active {
		rd.emit(gesture.EventAdsorptionRelease)
	}
}
