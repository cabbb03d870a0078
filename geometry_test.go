package gesture

import "testing"

// --- Rect ---

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	tests := []struct {
		x, y float64
		want bool
	}{
		{15, 15, true},
		{10, 10, true},
		{30, 30, true},
		{31, 15, false},
		{15, 9, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlap", Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"adjacent", Rect{X: 10, Y: 0, Width: 10, Height: 10}, true},
		{"apart", Rect{X: 11, Y: 0, Width: 10, Height: 10}, false},
		{"inside", Rect{X: 2, Y: 2, Width: 2, Height: 2}, true},
	}
	for _, tt := range tests {
		if got := r.Intersects(tt.other); got != tt.want {
			t.Errorf("%s: Intersects = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("Right, Bottom = %v, %v, want 40, 60", r.Right(), r.Bottom())
	}
	if c := r.Center(); c != (Vec2{25, 40}) {
		t.Errorf("Center = %v, want (25, 40)", c)
	}
	if o := r.Offset(5, -5); o != (Rect{X: 15, Y: 15, Width: 30, Height: 40}) {
		t.Errorf("Offset = %v", o)
	}
	if b := boundsOf(nil); b != (Rect{}) {
		t.Errorf("boundsOf(nil) = %v, want zero", b)
	}
}

// --- Angles ---

func TestNormalizeAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{90, 90},
		{-90, 270},
		{360, 0},
		{725, 5},
		{-360, 0},
	}
	for _, tt := range tests {
		assertNear(t, "NormalizeAngle", NormalizeAngle(tt.in), tt.want)
	}
}

func TestAngleDiff(t *testing.T) {
	tests := []struct{ a, b, want float64 }{
		{10, 350, 20},
		{350, 10, -20},
		{0, 180, 180},
		{180, 0, 180},
		{45, 45, 0},
		{-30, 30, -60},
	}
	for _, tt := range tests {
		assertNear(t, "AngleDiff", AngleDiff(tt.a, tt.b), tt.want)
	}
}

func TestBearing(t *testing.T) {
	o := Vec2{}
	assertNear(t, "east", bearing(o, Vec2{1, 0}), 0)
	assertNear(t, "south", bearing(o, Vec2{0, 1}), 90)
	assertNear(t, "west", bearing(o, Vec2{-1, 0}), 180)
	assertNear(t, "north", bearing(o, Vec2{0, -1}), 270)
}

func TestFiniteRatio(t *testing.T) {
	assertNear(t, "ratio", finiteRatio(3, 2), 1.5)
	assertNear(t, "zero over zero", finiteRatio(0, 0), 1)
	assertNear(t, "over zero", finiteRatio(5, 0), 1)
}

// --- Events ---

func TestActionString(t *testing.T) {
	if ActionPointerDown.String() != "pointer-down" {
		t.Errorf("ActionPointerDown = %q", ActionPointerDown.String())
	}
	if Action(42).String() != "unknown" {
		t.Errorf("Action(42) = %q, want unknown", Action(42).String())
	}
}

func TestActionPointer(t *testing.T) {
	e := ev(ActionPointerDown, 1, 0, pt(3, 0, 0), pt(5, 1, 1))
	if p, ok := e.ActionPointer(); !ok || p.ID != 5 {
		t.Errorf("ActionPointer = %+v, %v, want id 5", p, ok)
	}
	e.ActionIndex = 2
	if _, ok := e.ActionPointer(); ok {
		t.Error("out-of-range index should report false")
	}
}
