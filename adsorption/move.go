package adsorption

import (
	"fmt"
	"math"

	"github.com/phanxgames/gesture"
)

// MoveAnalyzer finds move candidates and owns the hysteresis of both axes.
type MoveAnalyzer struct {
	magnetic Magnetic
	magnets  []*Magnet

	h, v           axis
	heldH, heldV   []Result
	limitH, limitV []candidate
}

// NewMoveAnalyzer validates the configuration and returns an analyzer.
func NewMoveAnalyzer(magnetic Magnetic, magnets ...*Magnet) (*MoveAnalyzer, error) {
	if magnetic.Target == nil {
		return nil, fmt.Errorf("magnetic without target: %w", ErrInvalidMagnet)
	}
	for _, m := range magnets {
		if err := m.validate(); err != nil {
			return nil, err
		}
	}
	return &MoveAnalyzer{
		magnetic: magnetic,
		magnets:  magnets,
		h:        axis{name: "x"},
		v:        axis{name: "y"},
	}, nil
}

// Phase returns the phase of the horizontal and vertical axes.
func (a *MoveAnalyzer) Phase() (h, v Phase) { return a.h.phase, a.v.phase }

// Held returns the candidates currently held on each axis.
func (a *MoveAnalyzer) Held() (h, v []Result) { return a.heldH, a.heldV }

// Magnets returns the configured magnets.
func (a *MoveAnalyzer) Magnets() []*Magnet { return a.magnets }

// Analyze searches the free axes for candidates given this frame's delta,
// which the caller has not applied yet. It returns the snap offset of each
// axis and which axes found one. Held and immune axes are skipped.
func (a *MoveAnalyzer) Analyze(dx, dy float64) (ox, oy float64, okX, okY bool) {
	cur := a.magnetic.Target.Bounds()
	next := cur.Offset(dx, dy)
	if a.h.phase == PhaseFree {
		ox, okX = a.analyzeAxis(true, trackOf(dx), cur, next)
	}
	if a.v.phase == PhaseFree {
		oy, okY = a.analyzeAxis(false, trackOf(dy), cur, next)
	}
	return ox, oy, okX, okY
}

func (a *MoveAnalyzer) analyzeAxis(horizontal bool, track Track, cur, next gesture.Rect) (float64, bool) {
	held, lim := &a.heldV, &a.limitV
	if horizontal {
		held, lim = &a.heldH, &a.limitH
	}
	*held, *lim = (*held)[:0], (*lim)[:0]
	if track == TrackNone {
		return 0, false
	}

	var results []Result
	var cands []candidate
	for _, m := range a.magnets {
		if m.Target == a.magnetic.Target || !m.Target.Attached() {
			continue
		}
		mb := m.Target.Bounds()
		th := m.thresholds(horizontal)
		for _, al := range a.magnetic.Alignments {
			if al.Horizontal() != horizontal {
				continue
			}
			self, edge := al.Edges()
			if !m.offers(edge) {
				continue
			}
			target := edge.coord(mb)
			// Only magnets ahead of the object in the direction of travel.
			if trackOf(target-self.coord(cur)) != track {
				continue
			}
			d := target - self.coord(next)
			if math.Abs(d) >= th.Magnetism {
				continue
			}
			results = append(results, Result{Distance: d, Alignment: al, Magnet: m})
			cands = append(cands, candidate{distance: d, limits: th})
		}
	}
	idx := closest(cands)
	if len(idx) == 0 {
		return 0, false
	}
	for _, i := range idx {
		*held = append(*held, results[i])
		*lim = append(*lim, cands[i])
	}
	return cands[idx[0]].distance, true
}

// discard forgets candidates found this frame on axes that are still free.
func (a *MoveAnalyzer) discard() {
	if a.h.phase == PhaseFree {
		a.heldH, a.limitH = a.heldH[:0], a.limitH[:0]
	}
	if a.v.phase == PhaseFree {
		a.heldV, a.limitV = a.heldV[:0], a.limitV[:0]
	}
}

// capture moves the given free axes into the magnetized phase.
func (a *MoveAnalyzer) capture(x, y bool, tx, ty Track) {
	if x && a.h.phase == PhaseFree && len(a.limitH) > 0 {
		a.h.capture(tx, strongest(a.limitH))
	}
	if y && a.v.phase == PhaseFree && len(a.limitV) > 0 {
		a.v.capture(ty, strongest(a.limitV))
	}
}

// Consume runs one frame of hysteresis for a delta the caller has not
// applied yet and returns the part of it the object receives, and whether
// an axis broke free. Immunity is checked before the release budget so an
// object released this frame is not also measured for immunity.
func (a *MoveAnalyzer) Consume(dx, dy float64) (px, py float64, released bool) {
	next := a.magnetic.Target.Bounds().Offset(dx, dy)
	a.h.consumeImmunity(dx, func() float64 { return a.alignmentDistance(true, next) })
	a.v.consumeImmunity(dy, func() float64 { return a.alignmentDistance(false, next) })
	rh := a.h.consumeRelease(dx)
	rv := a.v.consumeRelease(dy)
	return a.h.passThrough(dx), a.v.passThrough(dy), rh || rv
}

// alignmentDistance measures how far the object's edge is from the edge it
// was captured by, using the strongest held magnet.
func (a *MoveAnalyzer) alignmentDistance(horizontal bool, r gesture.Rect) float64 {
	held := a.heldV
	if horizontal {
		held = a.heldH
	}
	var best *Result
	for i := range held {
		res := &held[i]
		if !res.Magnet.Target.Attached() {
			continue
		}
		if best == nil || res.Magnet.thresholds(horizontal).Magnetism > best.Magnet.thresholds(horizontal).Magnetism {
			best = res
		}
	}
	if best == nil {
		return math.Inf(1)
	}
	self, edge := best.Alignment.Edges()
	return math.Abs(edge.coord(best.Magnet.Target.Bounds()) - self.coord(r))
}

// Reset returns both axes to free and forgets every candidate.
func (a *MoveAnalyzer) Reset() {
	a.h.reset()
	a.v.reset()
	a.heldH, a.heldV = a.heldH[:0], a.heldV[:0]
	a.limitH, a.limitV = a.limitH[:0], a.limitV[:0]
}
