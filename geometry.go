package gesture

import "math"

// Geometry is what the gesture and snapping engines need to know about a
// manipulated object or an anchor.
type Geometry interface {
	// Bounds returns the axis-aligned bounding rectangle in screen space.
	Bounds() Rect
	// Rotation returns the object's own rotation in degrees.
	Rotation() float64
	// Scale returns the object's own scale.
	Scale() float64
	// Attached reports whether the object is still part of the scene.
	// Detached magnets are ignored; a detached magnetic object releases.
	Attached() bool
}

// Space is a coordinate space that can be mapped to and from the screen.
type Space interface {
	LocalToScreen(x, y float64) (float64, float64)
	ScreenToLocal(x, y float64) (float64, float64)
}

// ScreenSpace is the identity Space.
var ScreenSpace Space = screenSpace{}

type screenSpace struct{}

func (screenSpace) LocalToScreen(x, y float64) (float64, float64) { return x, y }
func (screenSpace) ScreenToLocal(x, y float64) (float64, float64) { return x, y }

// MapRect maps r from one space to another and returns the axis-aligned
// bounds of the result. A nil space means screen space.
func MapRect(r Rect, from, to Space) Rect {
	if from == nil {
		from = ScreenSpace
	}
	if to == nil {
		to = ScreenSpace
	}
	corners := [4]Vec2{
		{r.X, r.Y}, {r.Right(), r.Y}, {r.X, r.Bottom()}, {r.Right(), r.Bottom()},
	}
	pts := make([]Vec2, 0, 4)
	for _, c := range corners {
		sx, sy := from.LocalToScreen(c.X, c.Y)
		lx, ly := to.ScreenToLocal(sx, sy)
		pts = append(pts, Vec2{lx, ly})
	}
	return boundsOf(pts)
}

// MapVector maps a displacement from one space to another.
func MapVector(dx, dy float64, from, to Space) (float64, float64) {
	if from == nil {
		from = ScreenSpace
	}
	if to == nil {
		to = ScreenSpace
	}
	ox, oy := from.LocalToScreen(0, 0)
	ex, ey := from.LocalToScreen(dx, dy)
	lox, loy := to.ScreenToLocal(ox, oy)
	lex, ley := to.ScreenToLocal(ex, ey)
	return lex - lox, ley - loy
}

// Frame is a minimal transformable rectangle that implements Geometry and
// Space. Frames form a tree through Parent; every transform is relative to
// the parent.
type Frame struct {
	Name string
	// X and Y position the pivot within the parent.
	X, Y float64
	// Width and Height size the frame in local units.
	Width, Height float64
	// ScaleX and ScaleY multiply the size. NewFrame sets both to 1.
	ScaleX, ScaleY float64
	// Rotation in degrees, clockwise on a Y-down screen.
	Rotation float64
	// PivotX and PivotY are the local point that X and Y place and that
	// rotation and scale turn around.
	PivotX, PivotY float64
	Parent         *Frame

	detached bool
}

// NewFrame creates a frame of the given size positioned with its top-left
// corner at (x, y) and its pivot at the center.
func NewFrame(name string, x, y, w, h float64) *Frame {
	return &Frame{
		Name:   name,
		X:      x + w/2,
		Y:      y + h/2,
		Width:  w,
		Height: h,
		ScaleX: 1,
		ScaleY: 1,
		PivotX: w / 2,
		PivotY: h / 2,
	}
}

// Bounds returns the screen-space bounds of the transformed rectangle.
func (f *Frame) Bounds() Rect {
	m := f.worldTransform()
	pts := make([]Vec2, 0, 4)
	for _, c := range [4]Vec2{{0, 0}, {f.Width, 0}, {0, f.Height}, {f.Width, f.Height}} {
		x, y := transformPoint(m, c.X, c.Y)
		pts = append(pts, Vec2{x, y})
	}
	return boundsOf(pts)
}

// Scale returns the larger of ScaleX and ScaleY.
func (f *Frame) Scale() float64 { return math.Max(f.ScaleX, f.ScaleY) }

// Attached reports whether the frame and all its ancestors are attached.
func (f *Frame) Attached() bool {
	for p := f; p != nil; p = p.Parent {
		if p.detached {
			return false
		}
	}
	return true
}

// Detach removes the frame from the scene.
func (f *Frame) Detach() { f.detached = true }

// Attach returns a detached frame to the scene.
func (f *Frame) Attach() { f.detached = false }

// Translate moves the frame by a screen-space delta.
func (f *Frame) Translate(dx, dy float64) {
	var parent Space = ScreenSpace
	if f.Parent != nil {
		parent = f.Parent
	}
	lx, ly := MapVector(dx, dy, ScreenSpace, parent)
	f.X += lx
	f.Y += ly
}

// Rotate adds deg to the rotation, normalized to [0, 360).
func (f *Frame) Rotate(deg float64) {
	f.Rotation = NormalizeAngle(f.Rotation + deg)
}

// Zoom multiplies both scales by factor.
func (f *Frame) Zoom(factor float64) {
	f.ScaleX *= factor
	f.ScaleY *= factor
}

// SetScale sets both scales.
func (f *Frame) SetScale(s float64) {
	f.ScaleX = s
	f.ScaleY = s
}

// frameGeometry exposes a Frame as Geometry. Rotation is a field on Frame,
// so the method lives on this view.
type frameGeometry struct{ *Frame }

func (g frameGeometry) Rotation() float64 { return g.Frame.Rotation }

// Geometry returns the frame as a Geometry.
func (f *Frame) Geometry() Geometry { return frameGeometry{f} }
