package adsorption

import (
	"testing"

	"github.com/phanxgames/gesture"
)

func TestAlignmentEdges(t *testing.T) {
	tests := []struct {
		a          Alignment
		self, edge Edge
	}{
		{LeftToLeft, EdgeLeft, EdgeLeft},
		{LeftToRight, EdgeLeft, EdgeRight},
		{CenterXToCenterX, EdgeCenterX, EdgeCenterX},
		{RightToLeft, EdgeRight, EdgeLeft},
		{TopToTop, EdgeTop, EdgeTop},
		{TopToBottom, EdgeTop, EdgeBottom},
		{CenterYToCenterY, EdgeCenterY, EdgeCenterY},
		{BottomToTop, EdgeBottom, EdgeTop},
		{BottomToBottom, EdgeBottom, EdgeBottom},
	}
	for _, tt := range tests {
		self, edge := tt.a.Edges()
		if self != tt.self || edge != tt.edge {
			t.Errorf("%v.Edges() = %v, %v, want %v, %v", tt.a, self, edge, tt.self, tt.edge)
		}
	}
}

func TestAlignmentOfRoundTrip(t *testing.T) {
	for _, a := range AllAlignments {
		self, edge := a.Edges()
		got, ok := AlignmentOf(self, edge)
		if !ok || got != a {
			t.Errorf("AlignmentOf(%v, %v) = %v, %v, want %v", self, edge, got, ok, a)
		}
		if a.Horizontal() != self.Horizontal() {
			t.Errorf("%v.Horizontal() = %v", a, a.Horizontal())
		}
	}
	if _, ok := AlignmentOf(EdgeLeft, EdgeTop); ok {
		t.Error("edges on different axes should not pair")
	}
}

func TestAlignmentString(t *testing.T) {
	if got := RightToLeft.String(); got != "right->left" {
		t.Errorf("String = %q, want %q", got, "right->left")
	}
	if got := Alignment(200).String(); got != "unknown" {
		t.Errorf("String = %q, want unknown", got)
	}
}

func TestAlignmentSets(t *testing.T) {
	if len(AllAlignments) != 18 {
		t.Errorf("AllAlignments = %d, want 18", len(AllAlignments))
	}
	if len(HorizontalAlignments) != 9 || len(VerticalAlignments) != 9 {
		t.Errorf("horizontal, vertical = %d, %d, want 9, 9", len(HorizontalAlignments), len(VerticalAlignments))
	}
	if len(FrameAndCenterAlignments) != len(FrameAlignments)+len(CenterAlignments) {
		t.Error("FrameAndCenterAlignments should combine frame and center sets")
	}
}

func TestEdgeCoord(t *testing.T) {
	r := gesture.Rect{X: 10, Y: 20, Width: 100, Height: 50}
	want := map[Edge]float64{
		EdgeLeft: 10, EdgeCenterX: 60, EdgeRight: 110,
		EdgeTop: 20, EdgeCenterY: 45, EdgeBottom: 70,
	}
	for e, w := range want {
		assertNear(t, e.String(), e.coord(r), w)
	}
}
