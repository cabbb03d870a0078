package gesture

import "math"

// rawValues returns the four raw channels of the current frame, indexed by
// Kind.
func (d *Detector) rawValues() [kindCount]float64 {
	x, y := d.rawMove()
	return [kindCount]float64{x, y, d.rawRotation(), d.rawScale()}
}

// rawMove is the midpoint delta of the tracked pointers while multi-finger
// move is active, or the delta of the single finger.
func (d *Detector) rawMove() (float64, float64) {
	s := &d.state
	switch {
	case s.multiFinger:
		if !s.moving {
			return 0, 0
		}
		cur, ok := centroid(s.current, s.track.tracked)
		if !ok {
			return 0, 0
		}
		prev, ok := centroid(s.previous, s.track.previous)
		if !ok {
			return 0, 0
		}
		return cur.X - prev.X, cur.Y - prev.Y
	case s.singleFinger:
		cur, prev, ok := d.singlePointer()
		if !ok {
			return 0, 0
		}
		return cur.AbsX - prev.AbsX, cur.AbsY - prev.AbsY
	}
	return 0, 0
}

// rawRotation is the change of bearing, in degrees, of the first tracked
// pointer around the tracked centroid (multi-finger) or around the pivot
// (single finger).
func (d *Detector) rawRotation() float64 {
	s := &d.state
	switch {
	case s.multiFinger:
		if !s.rotating || len(s.track.tracked) == 0 || len(s.track.previous) == 0 {
			return 0
		}
		c, ok := centroid(s.current, s.track.tracked)
		if !ok {
			return 0
		}
		pc, ok := centroid(s.previous, s.track.previous)
		if !ok {
			return 0
		}
		p, ok := s.current.find(s.track.tracked[0])
		if !ok {
			return 0
		}
		pp, ok := s.previous.find(s.track.previous[0])
		if !ok {
			return 0
		}
		return angleDelta(bearing(c, Vec2{p.AbsX, p.AbsY}), bearing(pc, Vec2{pp.AbsX, pp.AbsY}))
	case s.singleFinger:
		cur, prev, ok := d.singlePointer()
		if !ok {
			return 0
		}
		return angleDelta(bearing(s.pivot, Vec2{cur.AbsX, cur.AbsY}), bearing(s.pivot, Vec2{prev.AbsX, prev.AbsY}))
	}
	return 0
}

// rawScale is the ratio of the tracked pointers' ring length (multi-finger)
// or of the finger's distance to the pivot (single finger). Non-finite ratios
// become 1.
func (d *Detector) rawScale() float64 {
	s := &d.state
	switch {
	case s.multiFinger:
		if !s.scaling {
			return 1
		}
		cur, ok := ringLength(s.current, s.track.tracked)
		if !ok {
			return 1
		}
		prev, ok := ringLength(s.previous, s.track.previous)
		if !ok {
			return 1
		}
		return finiteRatio(cur, prev)
	case s.singleFinger:
		cur, prev, ok := d.singlePointer()
		if !ok {
			return 1
		}
		pv := s.pivot
		return finiteRatio(dist(pv.X, pv.Y, cur.AbsX, cur.AbsY), dist(pv.X, pv.Y, prev.AbsX, prev.AbsY))
	}
	return 1
}

// singlePointer returns the first tracked pointer in the current and
// previous frames.
func (d *Detector) singlePointer() (cur, prev Pointer, ok bool) {
	s := &d.state
	if len(s.track.tracked) == 0 || len(s.track.previous) == 0 {
		return Pointer{}, Pointer{}, false
	}
	cur, ok = s.current.find(s.track.tracked[0])
	if !ok {
		return Pointer{}, Pointer{}, false
	}
	prev, ok = s.previous.find(s.track.previous[0])
	return cur, prev, ok
}

// centroid averages the screen positions of ids. Every id must be present.
func centroid(snap *snapshot, ids []int) (Vec2, bool) {
	if len(ids) == 0 {
		return Vec2{}, false
	}
	var c Vec2
	for _, id := range ids {
		p, ok := snap.find(id)
		if !ok {
			return Vec2{}, false
		}
		c.X += p.AbsX
		c.Y += p.AbsY
	}
	n := float64(len(ids))
	return Vec2{c.X / n, c.Y / n}, true
}

// ringLength sums the distances between consecutive ids, closing the loop.
func ringLength(snap *snapshot, ids []int) (float64, bool) {
	if len(ids) < 2 {
		return 0, false
	}
	var total float64
	for i, id := range ids {
		a, ok := snap.find(id)
		if !ok {
			return 0, false
		}
		b, ok := snap.find(ids[(i+1)%len(ids)])
		if !ok {
			return 0, false
		}
		total += dist(a.AbsX, a.AbsY, b.AbsX, b.AbsY)
	}
	return total, true
}

// bearing returns the angle of to as seen from from, in degrees in [0, 360).
func bearing(from, to Vec2) float64 {
	return NormalizeAngle(math.Atan2(to.Y-from.Y, to.X-from.X) * 180 / math.Pi)
}

// NormalizeAngle wraps deg into [0, 360).
func NormalizeAngle(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	if r >= 360 {
		r = 0
	}
	return r
}

// AngleDiff returns the shortest signed difference a-b in (-180, 180].
func AngleDiff(a, b float64) float64 {
	return angleDelta(NormalizeAngle(a), NormalizeAngle(b))
}

func angleDelta(cur, prev float64) float64 {
	d := math.Mod(cur-prev, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}

func finiteRatio(num, den float64) float64 {
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 1
	}
	return r
}
