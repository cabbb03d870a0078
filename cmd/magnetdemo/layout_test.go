package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/gesture/adsorption"
)

func writeLayout(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadLayout_MissingFile(t *testing.T) {
	l, err := LoadLayout(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := DefaultLayout()
	if len(l.Magnets) != len(def.Magnets) || l.Object != def.Object {
		t.Errorf("missing file should give the default layout, got %+v", l)
	}
}

func TestLoadLayout_Sections(t *testing.T) {
	path := writeLayout(t, `
[object]
x = 10
y = 20
width = 50
height = 40
alignments = "center"

[[magnet]]
name = "wall"
x = 200
y = 0
width = 10
height = 480
edges = "horizontal"
magnetism = 8

[snap]
duration-ms = 120
ease = "linear"
`)
	l, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Object.X != 10 || l.Object.Width != 50 || l.Object.Alignments != "center" {
		t.Errorf("object = %+v", l.Object)
	}
	if len(l.Magnets) != 1 || l.Magnets[0].Name != "wall" {
		t.Fatalf("magnets = %+v", l.Magnets)
	}
	if l.Snap.DurationMS != 120 || l.Snap.Ease != "linear" {
		t.Errorf("snap = %+v", l.Snap)
	}
	// Omitted sections keep defaults.
	if l.Rotate.Step != 45 {
		t.Errorf("rotate step = %v, want 45", l.Rotate.Step)
	}

	object, frames, magnets := l.Scene()
	if object.Bounds().X != 10 || object.Bounds().Y != 20 {
		t.Errorf("object bounds = %+v", object.Bounds())
	}
	if len(frames) != 1 || len(magnets) != 1 {
		t.Fatalf("scene has %d frames and %d magnets, want 1 and 1", len(frames), len(magnets))
	}
	m := magnets[0]
	if m.Horizontal.Magnetism != 8 {
		t.Errorf("magnetism = %v, want 8", m.Horizontal.Magnetism)
	}
	if len(m.Edges) != len(adsorption.HorizontalEdges) {
		t.Errorf("edges = %v, want %v", m.Edges, adsorption.HorizontalEdges)
	}
}

func TestLoadLayout_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad toml", `[object`},
		{"zero size", "[object]\nwidth = 0\nheight = 10\n"},
		{"unknown edges", "[[magnet]]\nname = \"m\"\nwidth = 1\nheight = 1\nedges = \"diagonal\"\n"},
		{"unknown alignments", "[object]\nwidth = 1\nheight = 1\nalignments = \"sideways\"\n"},
		{"unknown ease", "[snap]\nease = \"wobble\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadLayout(writeLayout(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLayoutStops(t *testing.T) {
	l := DefaultLayout()
	l.Rotate = StopConfig{Step: 90, Values: []float64{30}, Magnetism: 3}
	l.Scale = StopConfig{Values: []float64{1, 2}, Immunity: 0.5}

	rot := l.RotateMagnets()
	if len(rot) != 5 {
		t.Fatalf("rotate stops = %d, want 5", len(rot))
	}
	if rot[4].Angle != 30 || rot[4].Magnetism != 3 || rot[4].Release != 0 {
		t.Errorf("rotate stop = %+v", rot[4])
	}

	sc := l.ScaleMagnets()
	if len(sc) != 2 || sc[1].Scale != 2 {
		t.Fatalf("scale stops = %+v", sc)
	}
	if math.Abs(sc[1].Immunity-0.5) > 1e-9 || sc[1].Magnetism != adsorption.DefaultScaleMagnetism {
		t.Errorf("scale thresholds = %+v", sc[1].Thresholds)
	}
}

func TestBundledLayout(t *testing.T) {
	l, err := LoadLayout("magnetdemo.toml")
	if err != nil {
		t.Fatalf("bundled layout: %v", err)
	}
	if len(l.Magnets) != 2 || !l.Gesture.DoubleClick {
		t.Errorf("bundled layout = %+v", l)
	}
}
