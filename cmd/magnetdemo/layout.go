package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/gesture"
	"github.com/phanxgames/gesture/adsorption"
)

// Layout is the TOML layout file: the object being dragged, the magnets it
// snaps to, and the angle and scale stops.
type Layout struct {
	Object  ObjectConfig   `toml:"object"`
	Magnets []MagnetConfig `toml:"magnet"`
	Rotate  StopConfig     `toml:"rotate"`
	Scale   StopConfig     `toml:"scale"`
	Snap    SnapConfig     `toml:"snap"`
	Gesture GestureConfig  `toml:"gesture"`
}

// ObjectConfig places the magnetic object.
type ObjectConfig struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	// Alignments is one of frame, center, frame+center, horizontal,
	// vertical, all.
	Alignments string `toml:"alignments"`
}

// MagnetConfig places one rectangular magnet.
type MagnetConfig struct {
	Name      string  `toml:"name"`
	X         float64 `toml:"x"`
	Y         float64 `toml:"y"`
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	Edges     string  `toml:"edges"`
	Magnetism float64 `toml:"magnetism"`
	Release   float64 `toml:"release"`
	Immunity  float64 `toml:"immunity"`
}

// StopConfig lists snap values for rotation or scale.
type StopConfig struct {
	// Step places a stop at every multiple, rotation only.
	Step      float64   `toml:"step"`
	Values    []float64 `toml:"values"`
	Magnetism float64   `toml:"magnetism"`
	Release   float64   `toml:"release"`
	Immunity  float64   `toml:"immunity"`
}

// SnapConfig tunes the snap animation.
type SnapConfig struct {
	DurationMS int    `toml:"duration-ms"`
	Ease       string `toml:"ease"`
}

// GestureConfig mirrors the detector's plain settings.
type GestureConfig struct {
	TrackedPointers    int     `toml:"tracked-pointers"`
	DoubleClick        bool    `toml:"double-click"`
	ScrollCancelsClick bool    `toml:"scroll-cancels-click"`
	TouchSlop          float64 `toml:"touch-slop"`
}

// layoutFile marks which sections the file set.
type layoutFile struct {
	Object  *ObjectConfig  `toml:"object"`
	Magnets []MagnetConfig `toml:"magnet"`
	Rotate  *StopConfig    `toml:"rotate"`
	Scale   *StopConfig    `toml:"scale"`
	Snap    *SnapConfig    `toml:"snap"`
	Gesture *GestureConfig `toml:"gesture"`
}

// DefaultLayout is used when no layout file exists.
func DefaultLayout() Layout {
	return Layout{
		Object: ObjectConfig{X: 80, Y: 80, Width: 120, Height: 80, Alignments: "frame+center"},
		Magnets: []MagnetConfig{
			{Name: "left panel", X: 320, Y: 60, Width: 160, Height: 300, Edges: "all"},
			{Name: "footer", X: 40, Y: 400, Width: 560, Height: 40, Edges: "frame"},
		},
		Rotate: StopConfig{Step: 45},
		Scale:  StopConfig{Values: []float64{0.5, 1, 1.5, 2}},
		Snap:   SnapConfig{DurationMS: int(adsorption.DefaultDuration / time.Millisecond), Ease: "out-quad"},
	}
}

// LoadLayout reads a TOML layout from the given path. Missing file is not an
// error; sections the file omits keep their defaults.
func LoadLayout(path string) (Layout, error) {
	l := DefaultLayout()
	if path == "" {
		return l, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return Layout{}, fmt.Errorf("failed to stat layout: %w", err)
	}
	var f layoutFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return Layout{}, fmt.Errorf("failed to decode layout: %w", err)
	}
	if f.Object != nil {
		l.Object = *f.Object
	}
	if f.Magnets != nil {
		l.Magnets = f.Magnets
	}
	if f.Rotate != nil {
		l.Rotate = *f.Rotate
	}
	if f.Scale != nil {
		l.Scale = *f.Scale
	}
	if f.Snap != nil {
		l.Snap = *f.Snap
	}
	if f.Gesture != nil {
		l.Gesture = *f.Gesture
	}
	if err := l.validate(); err != nil {
		return Layout{}, fmt.Errorf("invalid layout %s: %w", path, err)
	}
	return l, nil
}

func (l Layout) validate() error {
	if l.Object.Width <= 0 || l.Object.Height <= 0 {
		return fmt.Errorf("object size %gx%g", l.Object.Width, l.Object.Height)
	}
	if _, err := parseAlignments(l.Object.Alignments); err != nil {
		return err
	}
	for _, m := range l.Magnets {
		if m.Width <= 0 || m.Height <= 0 {
			return fmt.Errorf("magnet %q size %gx%g", m.Name, m.Width, m.Height)
		}
		if _, err := parseEdges(m.Edges); err != nil {
			return fmt.Errorf("magnet %q: %w", m.Name, err)
		}
	}
	if _, err := parseEase(l.Snap.Ease); err != nil {
		return err
	}
	return nil
}

func parseAlignments(s string) ([]adsorption.Alignment, error) {
	switch s {
	case "", "frame+center":
		return adsorption.FrameAndCenterAlignments, nil
	case "frame":
		return adsorption.FrameAlignments, nil
	case "center":
		return adsorption.CenterAlignments, nil
	case "horizontal":
		return adsorption.HorizontalAlignments, nil
	case "vertical":
		return adsorption.VerticalAlignments, nil
	case "all":
		return adsorption.AllAlignments, nil
	}
	return nil, fmt.Errorf("unknown alignments %q", s)
}

func parseEdges(s string) ([]adsorption.Edge, error) {
	switch s {
	case "", "all":
		return adsorption.AllEdges, nil
	case "frame":
		return adsorption.FrameEdges, nil
	case "center":
		return adsorption.CenterEdges, nil
	case "horizontal":
		return adsorption.HorizontalEdges, nil
	case "vertical":
		return adsorption.VerticalEdges, nil
	}
	return nil, fmt.Errorf("unknown edges %q", s)
}

// thresholds applies the configured values over defaults.
func thresholds(def adsorption.Thresholds, magnetism, release, immunity float64) adsorption.Thresholds {
	if magnetism > 0 {
		def.Magnetism = magnetism
		def.Release = 0
	}
	if release > 0 {
		def.Release = release
	}
	if immunity > 0 {
		def.Immunity = immunity
	}
	return def
}

// Scene builds the frames and magnets described by the layout.
func (l Layout) Scene() (object *gesture.Frame, frames []*gesture.Frame, magnets []*adsorption.Magnet) {
	object = gesture.NewFrame("object", l.Object.X, l.Object.Y, l.Object.Width, l.Object.Height)
	for _, mc := range l.Magnets {
		f := gesture.NewFrame(mc.Name, mc.X, mc.Y, mc.Width, mc.Height)
		edges, _ := parseEdges(mc.Edges)
		m := adsorption.NewMagnet(mc.Name, f.Geometry(), edges...)
		m.Horizontal = thresholds(m.Horizontal, mc.Magnetism, mc.Release, mc.Immunity)
		m.Vertical = m.Horizontal
		frames = append(frames, f)
		magnets = append(magnets, m)
	}
	return object, frames, magnets
}

// RotateMagnets returns the rotation stops.
func (l Layout) RotateMagnets() []*adsorption.RotateMagnet {
	var out []*adsorption.RotateMagnet
	if l.Rotate.Step > 0 {
		out = adsorption.RotateMagnets(l.Rotate.Step)
	}
	for _, v := range l.Rotate.Values {
		out = append(out, adsorption.NewRotateMagnet(v))
	}
	for _, m := range out {
		m.Thresholds = thresholds(m.Thresholds, l.Rotate.Magnetism, l.Rotate.Release, l.Rotate.Immunity)
	}
	return out
}

// ScaleMagnets returns the scale stops.
func (l Layout) ScaleMagnets() []*adsorption.ScaleMagnet {
	out := make([]*adsorption.ScaleMagnet, 0, len(l.Scale.Values))
	for _, v := range l.Scale.Values {
		m := adsorption.NewScaleMagnet(v)
		m.Thresholds = thresholds(m.Thresholds, l.Scale.Magnetism, l.Scale.Release, l.Scale.Immunity)
		out = append(out, m)
	}
	return out
}

func parseEase(s string) (ease.TweenFunc, error) {
	switch s {
	case "", "out-quad":
		return ease.OutQuad, nil
	case "linear":
		return ease.Linear, nil
	case "in-out-quad":
		return ease.InOutQuad, nil
	case "in-out-cubic":
		return ease.InOutCubic, nil
	case "in-out-sine":
		return ease.InOutSine, nil
	case "out-bounce":
		return ease.OutBounce, nil
	case "out-elastic":
		return ease.OutElastic, nil
	}
	return nil, fmt.Errorf("unknown ease %q", s)
}
