// Package adsorption makes a manipulated object stick to alignment points
// while a gesture is in progress: rectangle edges and centers for moves,
// fixed angles for rotation and fixed factors for scale.
//
// Each kind has an analyzer and a detector. The analyzer finds the closest
// magnet within its magnetism threshold and runs the hysteresis of one
// dimension:
//
//	free -> magnetized -> releasing -> immune -> free
//
// A captured object stays put until the gesture spends the release budget
// against it; once released it is immune to recapture until it has moved
// the immunity distance away, or reverses.
//
// Detectors wrap an analyzer for use from gesture listeners. Call OnMove,
// OnRotate or OnScale before applying the frame's delta: the detector
// consumes the part the object must not receive and animates the snap
// through a [Scheduler], reporting per-tick deltas to its listener.
//
//	snap, _ := adsorption.NewMoveDetector(
//		adsorption.Magnetic{Target: box.Geometry(), Alignments: adsorption.FrameAlignments},
//		[]*adsorption.Magnet{adsorption.NewMagnet("wall", wall.Geometry(), adsorption.AllEdges...)},
//		adsorption.MoveListener{OnAdsorption: func(md *adsorption.MoveDetector) {
//			box.Translate(md.AdsorptionX(), md.AdsorptionY())
//		}},
//		adsorption.Options{},
//	)
//
// Without a Scheduler in [Options] a detector runs its own
// [TweenScheduler] (via [gween]); advance it with the detector's Update.
//
// [gween]: https://github.com/tanema/gween
package adsorption
