package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/gesture"
	"github.com/phanxgames/gesture/adsorption"
)

var (
	clearColor  = color.RGBA{R: 35, G: 30, B: 45, A: 255}
	magnetColor = color.RGBA{R: 90, G: 90, B: 110, A: 255}
	freeColor   = color.RGBA{R: 77, G: 178, B: 230, A: 255}
	heldColor   = color.RGBA{R: 255, G: 178, B: 51, A: 255}
)

// Game implements ebiten.Game.
type Game struct {
	width, height int

	object  *gesture.Frame
	magnets []*gesture.Frame

	detector *gesture.Detector
	input    *gesture.PointerInput
	runner   *gesture.ScriptRunner
	sched    *adsorption.TweenScheduler

	moveSnap  *adsorption.MoveDetector
	rotSnap   *adsorption.RotateDetector
	scaleSnap *adsorption.ScaleDetector

	pixel  *ebiten.Image
	status string
}

// newGame wires the detector, the three snap detectors and the input source
// for the given layout.
func newGame(l Layout, width, height int, runner *gesture.ScriptRunner) (*Game, error) {
	det, err := gesture.NewDetector(gesture.Config{
		TrackedPointers:    l.Gesture.TrackedPointers,
		EnableDoubleClick:  l.Gesture.DoubleClick,
		ScrollCancelsClick: l.Gesture.ScrollCancelsClick,
		Taps:               gesture.TapTiming{TouchSlop: l.Gesture.TouchSlop},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create detector: %w", err)
	}

	fn, err := parseEase(l.Snap.Ease)
	if err != nil {
		return nil, err
	}
	sched := adsorption.NewTweenScheduler()
	sched.Ease = fn
	opts := adsorption.Options{
		Duration:  time.Duration(l.Snap.DurationMS) * time.Millisecond,
		Scheduler: sched,
	}

	object, frames, magnets := l.Scene()
	alignments, err := parseAlignments(l.Object.Alignments)
	if err != nil {
		return nil, err
	}
	magnetic := adsorption.Magnetic{Target: object.Geometry(), Alignments: alignments}

	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	g := &Game{
		width:    width,
		height:   height,
		object:   object,
		magnets:  frames,
		detector: det,
		input:    gesture.NewPointerInput(nil),
		runner:   runner,
		sched:    sched,
		pixel:    pixel,
	}

	g.moveSnap, err = adsorption.NewMoveDetector(magnetic, magnets, adsorption.MoveListener{
		OnAdsorption: func(md *adsorption.MoveDetector) {
			object.Translate(md.AdsorptionX(), md.AdsorptionY())
		},
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create move snapping: %w", err)
	}
	g.rotSnap, err = adsorption.NewRotateDetector(magnetic, l.RotateMagnets(), adsorption.RotateListener{
		OnAdsorption: func(rd *adsorption.RotateDetector) {
			object.Rotate(rd.AdsorptionRotation())
		},
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create rotate snapping: %w", err)
	}
	g.scaleSnap, err = adsorption.NewScaleDetector(magnetic, l.ScaleMagnets(), adsorption.ScaleListener{
		OnAdsorption: func(sd *adsorption.ScaleDetector) {
			object.Zoom(sd.AdsorptionScale())
		},
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create scale snapping: %w", err)
	}

	g.wire()
	return g, nil
}

func (g *Game) wire() {
	g.detector.SetTarget(g.object.Geometry())
	g.detector.SetMoveInterceptor(g.moveSnap)
	g.detector.SetTouchListener(&gesture.TouchListener{
		OnBeginTouch: func(_ *gesture.Detector, x, y float64) bool {
			return g.object.Bounds().Contains(x, y)
		},
		OnTouchMove: func(d *gesture.Detector) bool {
			g.object.Translate(d.MoveX(), d.MoveY())
			return true
		},
		OnClick:       func(*gesture.Detector) { g.status = "click" },
		OnLongClick:   func(*gesture.Detector) { g.status = "long click" },
		OnTouchEnd:    func(*gesture.Detector) { g.status = "touch end" },
		OnTouchCancel: func(*gesture.Detector) { g.status = "cancel" },
		OnDoubleClick: func(*gesture.Detector) {
			g.object.Rotation = 0
			g.object.SetScale(1)
			g.status = "double click: reset"
		},
	})
	g.detector.SetMoveListener(&gesture.MoveListener{
		OnMove: func(d *gesture.Detector) bool {
			g.object.Translate(d.MoveX(), d.MoveY())
			return true
		},
	})
	g.detector.SetRotateListener(&gesture.RotateListener{
		OnRotate: func(d *gesture.Detector) bool {
			g.rotSnap.OnRotate(d)
			g.object.Rotate(d.Rotation())
			return true
		},
	})
	g.detector.SetScaleListener(&gesture.ScaleListener{
		OnScale: func(d *gesture.Detector) bool {
			g.scaleSnap.OnScale(d)
			g.object.Zoom(d.ScaleFactor())
			return true
		},
	})
}

// Update polls input and advances the snap animations.
func (g *Game) Update() error {
	if g.runner != nil {
		g.runner.Step(g.input)
	}
	g.input.Update(g.detector, time.Now())
	g.sched.Update(1 / float32(ebiten.TPS()))
	return nil
}

// Draw renders the magnets, the object and a status line.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	for _, f := range g.magnets {
		g.drawFrame(screen, f, magnetColor)
	}
	c := freeColor
	h, v := g.moveSnap.Analyzer().Phase()
	if h.Held() || v.Held() || g.rotSnap.Analyzer().Phase().Held() || g.scaleSnap.Analyzer().Phase().Held() {
		c = heldColor
	}
	g.drawFrame(screen, g.object, c)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"move %s/%s  rotate %s  scale %s\nrotation %.1f  scale %.2f\n%s",
		h, v, g.rotSnap.Analyzer().Phase(), g.scaleSnap.Analyzer().Phase(),
		g.object.Rotation, g.object.Scale(), g.status))
}

func (g *Game) drawFrame(screen *ebiten.Image, f *gesture.Frame, c color.Color) {
	m := f.WorldMatrix()
	var world ebiten.GeoM
	world.SetElement(0, 0, m[0])
	world.SetElement(1, 0, m[1])
	world.SetElement(0, 1, m[2])
	world.SetElement(1, 1, m[3])
	world.SetElement(0, 2, m[4])
	world.SetElement(1, 2, m[5])

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(f.Width, f.Height)
	op.GeoM.Concat(world)
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(g.pixel, &op)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
