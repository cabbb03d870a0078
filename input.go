package gesture

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	maxPointers  = 10 // pointer 0 = mouse, 1-9 = touch
	mousePointer = 0
)

// InputSource reads raw pointer state once per frame. The methods match the
// ebiten functions of the same name so tests can supply a fake.
type InputSource interface {
	CursorPosition() (int, int)
	IsMouseButtonPressed(b ebiten.MouseButton) bool
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (int, int)
}

type ebitenSource struct{}

func (ebitenSource) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenSource) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

func (ebitenSource) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenSource) TouchPosition(id ebiten.TouchID) (int, int) { return ebiten.TouchPosition(id) }

// EbitenSource returns an InputSource reading ebiten's global input state.
func EbitenSource() InputSource { return ebitenSource{} }

// --- Per-pointer state ---

type pointerSample struct {
	pressed bool
	x, y    float64
}

// PointerInput turns per-frame pointer polling into the PointerEvent stream
// a Detector consumes. The left mouse button is pointer 0; touches take
// pointers 1-9 in the order they land.
type PointerInput struct {
	src InputSource

	last  [maxPointers]pointerSample
	order []int // ids currently down, in touch-down order

	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	touchIDs  []ebiten.TouchID

	injectQueue []pointerFrame
	injectHeld  pointerFrame
	events      []PointerEvent
}

// NewPointerInput returns a PointerInput reading src. A nil src reads ebiten.
func NewPointerInput(src InputSource) *PointerInput {
	if src == nil {
		src = ebitenSource{}
	}
	return &PointerInput{src: src}
}

// Down reports how many pointers are currently down.
func (p *PointerInput) Down() int { return len(p.order) }

// Update polls the source and feeds the resulting events to d, then ticks
// d's tap timers. Call it once per frame from the game's Update.
func (p *PointerInput) Update(d *Detector, now time.Time) {
	for _, ev := range p.Poll(now) {
		d.Process(ev)
	}
	d.Tick(now)
}

// Poll samples the source and returns the events since the previous poll:
// one move for every pointer that changed position, then lifts, then new
// touches. The returned slice is reused by the next call.
func (p *PointerInput) Poll(now time.Time) []PointerEvent {
	var cur pointerFrame
	if !p.processInjectedInput(&cur) {
		p.sampleMouse(&cur)
		p.sampleTouches(&cur)
	}

	p.events = p.events[:0]

	moved := false
	for _, id := range p.order {
		if cur[id].pressed && (cur[id].x != p.last[id].x || cur[id].y != p.last[id].y) {
			p.last[id] = cur[id]
			moved = true
		}
	}
	if moved {
		p.events = append(p.events, p.event(ActionMove, 0, now))
	}

	for i := 0; i < len(p.order); {
		id := p.order[i]
		if cur[id].pressed {
			i++
			continue
		}
		action := ActionPointerUp
		if len(p.order) == 1 {
			action = ActionUp
		}
		p.events = append(p.events, p.event(action, i, now))
		p.order = append(p.order[:i], p.order[i+1:]...)
		p.last[id] = pointerSample{}
	}

	for id := 0; id < maxPointers; id++ {
		if !cur[id].pressed || p.last[id].pressed {
			continue
		}
		p.last[id] = cur[id]
		p.order = append(p.order, id)
		action := ActionPointerDown
		if len(p.order) == 1 {
			action = ActionDown
		}
		p.events = append(p.events, p.event(action, len(p.order)-1, now))
	}
	return p.events
}

// Cancel drops every pointer and returns a cancel event, or false when no
// pointer was down. Hosts call it when the window loses focus.
func (p *PointerInput) Cancel(now time.Time) (PointerEvent, bool) {
	if len(p.order) == 0 {
		return PointerEvent{}, false
	}
	ev := p.event(ActionCancel, 0, now)
	p.order = p.order[:0]
	p.last = [maxPointers]pointerSample{}
	return ev, true
}

func (p *PointerInput) event(a Action, index int, now time.Time) PointerEvent {
	ptrs := make([]Pointer, len(p.order))
	for i, id := range p.order {
		s := p.last[id]
		ptrs[i] = Pointer{ID: id, X: s.x, Y: s.y, AbsX: s.x, AbsY: s.y}
	}
	return PointerEvent{Action: a, ActionIndex: index, Pointers: ptrs, Time: now}
}

// sampleMouse reads the left button as pointer 0.
func (p *PointerInput) sampleMouse(cur *[maxPointers]pointerSample) {
	mx, my := p.src.CursorPosition()
	cur[mousePointer] = pointerSample{
		pressed: p.src.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		x:       float64(mx),
		y:       float64(my),
	}
}

// sampleTouches reads touches into pointers 1-9.
func (p *PointerInput) sampleTouches(cur *[maxPointers]pointerSample) {
	p.touchIDs = p.src.AppendTouchIDs(p.touchIDs[:0])

	var activeSlots [maxPointers]bool
	for _, tid := range p.touchIDs {
		slot := p.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := p.src.TouchPosition(tid)
		cur[slot] = pointerSample{pressed: true, x: float64(tx), y: float64(ty)}
	}

	// Free slots whose touch ended.
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && !activeSlots[i] {
			p.touchUsed[i] = false
			p.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (p *PointerInput) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && p.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !p.touchUsed[i] {
			p.touchUsed[i] = true
			p.touchMap[i] = tid
			return i
		}
	}
	return -1
}
