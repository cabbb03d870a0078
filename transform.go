package gesture

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the frame's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(f *Frame) [6]float64 {
	sx := f.ScaleX
	sy := f.ScaleY
	sin, cos := math.Sincos(f.Rotation * math.Pi / 180)

	px := f.PivotX
	py := f.PivotY
	preTx := -px * sx
	preTy := -py * sy

	return [6]float64{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*preTx - sin*preTy + f.X,
		sin*preTx + cos*preTy + f.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// worldTransform composes the frame's local transform with every ancestor's.
func (f *Frame) worldTransform() [6]float64 {
	m := computeLocalTransform(f)
	for p := f.Parent; p != nil; p = p.Parent {
		m = multiplyAffine(computeLocalTransform(p), m)
	}
	return m
}

// --- Coordinate conversion ---

// ScreenToLocal converts a screen-space point to this frame's local space.
func (f *Frame) ScreenToLocal(sx, sy float64) (lx, ly float64) {
	return transformPoint(invertAffine(f.worldTransform()), sx, sy)
}

// LocalToScreen converts a local-space point to screen space.
func (f *Frame) LocalToScreen(lx, ly float64) (sx, sy float64) {
	return transformPoint(f.worldTransform(), lx, ly)
}

// WorldMatrix returns the frame's local-to-screen affine matrix as
// [a, b, c, d, tx, ty].
func (f *Frame) WorldMatrix() [6]float64 { return f.worldTransform() }
