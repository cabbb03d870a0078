package adsorption

import (
	"errors"
	"fmt"
	"slices"

	"github.com/phanxgames/gesture"
)

// ErrInvalidMagnet is returned when a magnet or magnetic object is
// misconfigured.
var ErrInvalidMagnet = errors.New("adsorption: invalid magnet")

// Default thresholds.
const (
	DefaultMoveMagnetism   = 20.0
	DefaultMoveImmunity    = 20.0
	DefaultRotateMagnetism = 5.0
	DefaultRotateImmunity  = 5.0
	DefaultScaleMagnetism  = 0.1
	DefaultScaleImmunity   = 0.2
)

// Magnetic is the object being manipulated.
type Magnetic struct {
	Target gesture.Geometry
	// Alignments lists the pairings the object accepts. Move snapping only.
	Alignments []Alignment
}

// Magnet is a rectangular anchor for move snapping.
type Magnet struct {
	Name   string
	Target gesture.Geometry
	// Edges lists the alignment lines the magnet offers.
	Edges []Edge
	// Horizontal and Vertical are the thresholds along X and Y.
	Horizontal, Vertical Thresholds
}

// NewMagnet returns a magnet offering edges with the default thresholds.
func NewMagnet(name string, target gesture.Geometry, edges ...Edge) *Magnet {
	t := Thresholds{Magnetism: DefaultMoveMagnetism, Immunity: DefaultMoveImmunity}.normalize()
	return &Magnet{Name: name, Target: target, Edges: edges, Horizontal: t, Vertical: t}
}

func (m *Magnet) offers(e Edge) bool { return slices.Contains(m.Edges, e) }

func (m *Magnet) thresholds(horizontal bool) Thresholds {
	if horizontal {
		return m.Horizontal
	}
	return m.Vertical
}

func (m *Magnet) validate() error {
	if m == nil || m.Target == nil {
		return fmt.Errorf("magnet without target: %w", ErrInvalidMagnet)
	}
	if !m.Horizontal.valid() || !m.Vertical.valid() {
		return fmt.Errorf("magnet %q thresholds: %w", m.Name, ErrInvalidMagnet)
	}
	m.Horizontal = m.Horizontal.normalize()
	m.Vertical = m.Vertical.normalize()
	return nil
}

// RotateMagnet is an angle the magnetic object's rotation snaps to.
type RotateMagnet struct {
	// Angle in degrees. Any value is accepted and wrapped to [0, 360).
	Angle float64
	Thresholds
}

// NewRotateMagnet returns a magnet at angle with the default thresholds.
func NewRotateMagnet(angle float64) *RotateMagnet {
	return &RotateMagnet{
		Angle:      angle,
		Thresholds: Thresholds{Magnetism: DefaultRotateMagnetism, Immunity: DefaultRotateImmunity}.normalize(),
	}
}

// SafeAngle returns the angle wrapped to [0, 360).
func (m *RotateMagnet) SafeAngle() float64 { return gesture.NormalizeAngle(m.Angle) }

// RotateMagnets returns a magnet at every multiple of step in [0, 360).
func RotateMagnets(step float64) []*RotateMagnet {
	if step <= 0 {
		return nil
	}
	var out []*RotateMagnet
	for a := 0.0; a < 360; a += step {
		out = append(out, NewRotateMagnet(a))
	}
	return out
}

// ScaleMagnet is a scale the magnetic object snaps to.
type ScaleMagnet struct {
	Scale float64
	Thresholds
}

// NewScaleMagnet returns a magnet at scale with the default thresholds.
func NewScaleMagnet(scale float64) *ScaleMagnet {
	return &ScaleMagnet{
		Scale:      scale,
		Thresholds: Thresholds{Magnetism: DefaultScaleMagnetism, Immunity: DefaultScaleImmunity}.normalize(),
	}
}

func validateThresholds(t *Thresholds, what string) error {
	if !t.valid() {
		return fmt.Errorf("%s thresholds %+v: %w", what, *t, ErrInvalidMagnet)
	}
	*t = t.normalize()
	return nil
}

// Result is a move candidate: the signed distance from the object's edge to
// the magnet's edge along one axis.
type Result struct {
	Distance  float64
	Alignment Alignment
	Magnet    *Magnet
}

// RotateResult is a rotate candidate: the signed angle to the magnet.
type RotateResult struct {
	Distance float64
	Magnet   *RotateMagnet
}

// ScaleResult is a scale candidate: the signed scale difference to the
// magnet.
type ScaleResult struct {
	Distance float64
	Magnet   *ScaleMagnet
}
