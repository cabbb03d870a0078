package adsorption

import (
	"math"

	"github.com/phanxgames/gesture"
)

// Phase is the hysteresis state of one snapping dimension.
type Phase uint8

const (
	PhaseFree       Phase = iota // searching for a candidate every frame
	PhaseMagnetized              // held, release budget untouched
	PhaseReleasing               // held, release budget partly spent
	PhaseImmune                  // released, cannot be captured until far enough away
)

var phaseNames = [...]string{"free", "magnetized", "releasing", "immune"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Held reports whether the object is stuck to a magnet.
func (p Phase) Held() bool { return p == PhaseMagnetized || p == PhaseReleasing }

// Track is the direction of movement along one dimension.
type Track int8

const (
	TrackNone     Track = 0
	TrackForward  Track = 1  // increasing value: right, down, clockwise, zoom in
	TrackBackward Track = -1 // decreasing value: left, up, anticlockwise, zoom out
)

func trackOf(delta float64) Track {
	switch {
	case delta > 0:
		return TrackForward
	case delta < 0:
		return TrackBackward
	}
	return TrackNone
}

// Thresholds are the capture geometry of a magnet along one dimension.
type Thresholds struct {
	// Magnetism is the distance under which capture begins.
	Magnetism float64
	// Release is the movement needed to break free. Zero means twice
	// Magnetism.
	Release float64
	// Immunity is the distance the object must travel after release before
	// it can be captured again. Zero skips the immune phase.
	Immunity float64
}

func (t Thresholds) normalize() Thresholds {
	if t.Release == 0 {
		t.Release = 2 * t.Magnetism
	}
	return t
}

func (t Thresholds) valid() bool {
	for _, v := range [...]float64{t.Magnetism, t.Release, t.Immunity} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return t.Magnetism > 0
}

// candidate is one qualifying (magnet, role) pair along a dimension.
type candidate struct {
	distance float64
	limits   Thresholds
}

// closest returns the indices of the candidates tied at the smallest
// |distance|.
func closest(cands []candidate) []int {
	const eps = 1e-9
	best := math.Inf(1)
	var out []int
	for i, c := range cands {
		d := math.Abs(c.distance)
		switch {
		case d < best-eps:
			best = d
			out = append(out[:0], i)
		case math.Abs(d-best) <= eps:
			out = append(out, i)
		}
	}
	return out
}

// strongest returns the thresholds of the held candidate with the largest
// magnetism.
func strongest(cands []candidate) Thresholds {
	var lim Thresholds
	for _, c := range cands {
		if c.limits.Magnetism > lim.Magnetism {
			lim = c.limits
		}
	}
	return lim
}

// axis is the capture, release and immunity machine of one dimension.
//
// track is the direction the capture resists. Movement against it spends the
// release budget or, once immune, moves the object away from the alignment.
// Movement along it flips the track: a held object gets a fresh budget, an
// immune one becomes free.
type axis struct {
	name   string
	phase  Phase
	track  Track
	budget float64
	limits Thresholds
}

func (a *axis) capture(track Track, lim Thresholds) {
	a.phase = PhaseMagnetized
	a.track = track
	a.limits = lim
	a.budget = lim.Release
	gesture.Logger().Debug("adsorption captured", "axis", a.name, "track", int(track), "release", lim.Release)
}

func (a *axis) escaping(delta float64) bool {
	return delta*float64(a.track) < 0
}

// consumeImmunity ends the immune phase once distance reports the object
// beyond the immunity threshold, or at once on a direction reversal.
func (a *axis) consumeImmunity(delta float64, distance func() float64) {
	if a.phase != PhaseImmune || delta == 0 {
		return
	}
	if a.escaping(delta) {
		if distance() > a.limits.Immunity {
			a.free("distance")
		}
		return
	}
	a.track = -a.track
	a.free("reversal")
}

// consumeRelease spends the release budget. It reports whether the object
// broke free this frame.
func (a *axis) consumeRelease(delta float64) bool {
	if !a.phase.Held() || delta == 0 {
		return false
	}
	if !a.escaping(delta) {
		a.track = -a.track
		a.budget = a.limits.Release
		a.phase = PhaseMagnetized
		return false
	}
	a.budget -= math.Abs(delta)
	if a.budget > 0 {
		a.phase = PhaseReleasing
		return false
	}
	a.budget = 0
	if a.limits.Immunity <= 0 {
		a.free("released")
		return true
	}
	a.phase = PhaseImmune
	gesture.Logger().Debug("adsorption released", "axis", a.name, "immunity", a.limits.Immunity)
	return true
}

// passThrough returns the part of delta the object receives.
func (a *axis) passThrough(delta float64) float64 {
	if a.phase.Held() {
		return 0
	}
	return delta
}

func (a *axis) free(reason string) {
	a.phase = PhaseFree
	a.budget = 0
	gesture.Logger().Debug("adsorption free", "axis", a.name, "reason", reason)
}

func (a *axis) reset() {
	*a = axis{name: a.name}
}
