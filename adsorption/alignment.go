package adsorption

import "github.com/phanxgames/gesture"

// Edge is an alignment line of a rectangle that a magnet can offer.
type Edge uint8

const (
	EdgeLeft    Edge = iota // left side
	EdgeCenterX             // vertical center line
	EdgeRight               // right side
	EdgeTop                 // top side
	EdgeCenterY             // horizontal center line
	EdgeBottom              // bottom side
)

var edgeNames = [...]string{"left", "center-x", "right", "top", "center-y", "bottom"}

func (e Edge) String() string {
	if int(e) < len(edgeNames) {
		return edgeNames[e]
	}
	return "unknown"
}

// Horizontal reports whether the edge is a position along the X axis.
func (e Edge) Horizontal() bool { return e <= EdgeRight }

// coord returns the position of the edge on r.
func (e Edge) coord(r gesture.Rect) float64 {
	switch e {
	case EdgeLeft:
		return r.X
	case EdgeCenterX:
		return r.X + r.Width/2
	case EdgeRight:
		return r.Right()
	case EdgeTop:
		return r.Y
	case EdgeCenterY:
		return r.Y + r.Height/2
	default:
		return r.Bottom()
	}
}

// Edge sets offered by magnets.
var (
	FrameEdges      = []Edge{EdgeLeft, EdgeTop, EdgeRight, EdgeBottom}
	CenterEdges     = []Edge{EdgeCenterX, EdgeCenterY}
	HorizontalEdges = []Edge{EdgeLeft, EdgeCenterX, EdgeRight}
	VerticalEdges   = []Edge{EdgeTop, EdgeCenterY, EdgeBottom}
	AllEdges        = []Edge{EdgeLeft, EdgeCenterX, EdgeRight, EdgeTop, EdgeCenterY, EdgeBottom}
)

// Alignment pairs an edge of the magnetic object with an edge of a magnet
// on the same axis. LeftToRight means the object's left edge snaps to the
// magnet's right edge.
type Alignment uint8

const (
	LeftToLeft Alignment = iota
	LeftToCenterX
	LeftToRight
	CenterXToLeft
	CenterXToCenterX
	CenterXToRight
	RightToLeft
	RightToCenterX
	RightToRight
	TopToTop
	TopToCenterY
	TopToBottom
	CenterYToTop
	CenterYToCenterY
	CenterYToBottom
	BottomToTop
	BottomToCenterY
	BottomToBottom
	alignmentCount
)

// Edges returns the object's edge and the magnet's edge.
func (a Alignment) Edges() (self, magnet Edge) {
	if a >= alignmentCount {
		return EdgeLeft, EdgeLeft
	}
	axis := Edge(0)
	i := uint8(a)
	if a >= TopToTop {
		axis = EdgeTop
		i -= uint8(TopToTop)
	}
	return axis + Edge(i/3), axis + Edge(i%3)
}

// Horizontal reports whether the alignment acts on the X axis.
func (a Alignment) Horizontal() bool { return a < TopToTop }

func (a Alignment) String() string {
	if a >= alignmentCount {
		return "unknown"
	}
	s, m := a.Edges()
	return s.String() + "->" + m.String()
}

// AlignmentOf returns the alignment pairing self with magnet, or false when
// the edges lie on different axes.
func AlignmentOf(self, magnet Edge) (Alignment, bool) {
	if self.Horizontal() != magnet.Horizontal() || self > EdgeBottom || magnet > EdgeBottom {
		return 0, false
	}
	base := Alignment(0)
	if !self.Horizontal() {
		base = TopToTop
		self -= EdgeTop
		magnet -= EdgeTop
	}
	return base + Alignment(self)*3 + Alignment(magnet), true
}

// Alignment sets accepted by magnetic objects.
var (
	// FrameAlignments snap edges to edges, outside or inside.
	FrameAlignments = []Alignment{
		LeftToLeft, LeftToRight, RightToLeft, RightToRight,
		TopToTop, TopToBottom, BottomToTop, BottomToBottom,
	}
	// CenterAlignments snap centers to centers.
	CenterAlignments = []Alignment{CenterXToCenterX, CenterYToCenterY}
	// FrameAndCenterAlignments combines the two sets above.
	FrameAndCenterAlignments = append(append([]Alignment{}, FrameAlignments...), CenterAlignments...)
	// HorizontalAlignments are every X-axis pairing.
	HorizontalAlignments = alignmentRange(LeftToLeft, TopToTop)
	// VerticalAlignments are every Y-axis pairing.
	VerticalAlignments = alignmentRange(TopToTop, alignmentCount)
	// AllAlignments are all eighteen pairings.
	AllAlignments = alignmentRange(LeftToLeft, alignmentCount)
)

func alignmentRange(from, to Alignment) []Alignment {
	out := make([]Alignment, 0, to-from)
	for a := from; a < to; a++ {
		out = append(out, a)
	}
	return out
}
