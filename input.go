package polaroid

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// --- Constants ---

const (
	defaultClickThreshold     = 5.0  // pixels
	defaultLiftScale          = 1.05 // scale while held
	defaultTransitionDuration = 0.3  // seconds
)

// InteractionConfig tunes the drag controller.
type InteractionConfig struct {
	// ClickThreshold is the pointer travel in pixels below which a release
	// counts as a click.
	ClickThreshold float32
	// LiftScale is the uniform scale of a held photo.
	LiftScale float32
	// TransitionDuration is the length of lift/return animations in seconds.
	TransitionDuration float32
	// Ease shapes lift/return animations. Nil uses DefaultEase.
	Ease ease.TweenFunc
	// RevealTopmostOnly limits reveals to clicks on the photo that was on
	// top of the stack when pressed; other clicks resolve as drops.
	RevealTopmostOnly bool
	// KeepGrabOffset keeps the point under the pointer fixed while dragging.
	// Off, the photo center follows the pointer's drag-plane projection.
	KeepGrabOffset bool
}

// DefaultInteractionConfig returns a 5px click threshold, a 1.05 lift scale
// and 300ms ease-out transitions.
func DefaultInteractionConfig() InteractionConfig {
	return InteractionConfig{
		ClickThreshold:     defaultClickThreshold,
		LiftScale:          defaultLiftScale,
		TransitionDuration: defaultTransitionDuration,
		Ease:               DefaultEase,
	}
}

// --- Drag session ---

// DragSession exists while the pointer is held on a photo.
type DragSession struct {
	Photo *Photo
	// StartX and StartY are the screen position of the press.
	StartX, StartY float32
	// OriginDepth is the photo's Z when it was picked up.
	OriginDepth float32
	// PlaneZ is the depth the photo is dragged across.
	PlaneZ float32
	// WasTopmost records whether the photo was on top when pressed.
	WasTopmost bool

	grabX, grabY float32 // photo center minus pointer on PlaneZ; zero unless KeepGrabOffset
	lastX, lastY float32
}

// Displacement returns the pointer travel from the press to (x, y) in pixels.
func (s *DragSession) Displacement(x, y float32) float32 {
	return screenDistance(s.StartX, s.StartY, x, y)
}

// --- Drag controller ---

// DragController runs the pick/drag/release state machine:
//
//	Idle -> Armed (pointer down on a photo)
//	Armed -> Dragging (pointer travels ClickThreshold or more)
//	Armed|Dragging -> Idle (pointer up: click or drop)
//
// All photo mutations caused by pointer input go through it.
type DragController struct {
	stack  *Stack
	cam    *Camera
	picker *Picker
	reveal *Presenter
	cfg    InteractionConfig

	state   DragState
	session *DragSession

	// OnPick, if set, is called when a photo is picked up.
	OnPick func(*Photo)
	// OnRelease, if set, is called when a session ends.
	OnRelease func(*Photo, Release)
}

// NewDragController wires the controller to the scene it manipulates.
// Zero-valued fields of cfg take their defaults.
func NewDragController(stack *Stack, cam *Camera, picker *Picker, reveal *Presenter, cfg InteractionConfig) *DragController {
	def := DefaultInteractionConfig()
	if cfg.ClickThreshold <= 0 {
		cfg.ClickThreshold = def.ClickThreshold
	}
	if cfg.LiftScale <= 0 {
		cfg.LiftScale = def.LiftScale
	}
	if cfg.TransitionDuration < 0 {
		cfg.TransitionDuration = def.TransitionDuration
	}
	if cfg.Ease == nil {
		cfg.Ease = def.Ease
	}
	return &DragController{
		stack:  stack,
		cam:    cam,
		picker: picker,
		reveal: reveal,
		cfg:    cfg,
	}
}

// State returns the current phase.
func (d *DragController) State() DragState {
	return d.state
}

// Session returns the active session, or nil.
func (d *DragController) Session() *DragSession {
	return d.session
}

// PointerDown picks the photo under (x, y) and lifts it. It does nothing
// while a message is revealed, while a session is already active, or when
// nothing is hit. Returns true if a session started.
func (d *DragController) PointerDown(x, y float32) bool {
	if d.session != nil {
		return false
	}
	if d.reveal != nil && d.reveal.Visible() {
		return false
	}
	hit, ok := d.picker.Pick(x, y)
	if !ok {
		return false
	}
	p := hit.Photo
	wasTop := d.stack.Topmost() == p

	d.stack.Select(p)
	d.stack.raise(p)
	lift := d.stack.LiftDepth()
	p.TransitionTo(lift, d.cfg.LiftScale, d.cfg.TransitionDuration, d.cfg.Ease)

	sess := &DragSession{
		Photo:       p,
		StartX:      x,
		StartY:      y,
		OriginDepth: hit.Photo.BaseDepth,
		PlaneZ:      lift,
		WasTopmost:  wasTop,
		lastX:       x,
		lastY:       y,
	}
	if q, ok := d.cam.ScreenToPlane(x, y, lift); ok && d.cfg.KeepGrabOffset {
		sess.grabX = p.Position.X - q.X
		sess.grabY = p.Position.Y - q.Y
	}
	d.session = sess
	d.state = DragArmed

	if d.OnPick != nil {
		d.OnPick(p)
	}
	return true
}

// PointerMove drags the held photo across its drag plane once the pointer
// has travelled ClickThreshold pixels. Depth is left untouched.
func (d *DragController) PointerMove(x, y float32) {
	s := d.session
	if s == nil {
		return
	}
	s.lastX, s.lastY = x, y
	if d.state == DragArmed {
		if s.Displacement(x, y) < d.cfg.ClickThreshold {
			return
		}
		d.state = DragDragging
	}
	d.dragTo(x, y)
}

func (d *DragController) dragTo(x, y float32) {
	s := d.session
	q, ok := d.cam.ScreenToPlane(x, y, s.PlaneZ)
	if !ok {
		return
	}
	s.Photo.stopMove()
	s.Photo.Position.X = q.X + s.grabX
	s.Photo.Position.Y = q.Y + s.grabY
}

// PointerUp ends the session. Total travel below ClickThreshold is a click:
// the message is revealed and the photo returns to its stack depth. Anything
// else is a drop: the photo stays where it was released, at its lifted
// depth. Both restore scale 1 and clear the selection. Without a session it
// is a no-op returning ReleaseNone.
func (d *DragController) PointerUp(x, y float32) Release {
	s := d.session
	if s == nil {
		return ReleaseNone
	}
	p := s.Photo
	dur := d.cfg.TransitionDuration

	result := ReleaseDrop
	if s.Displacement(x, y) < d.cfg.ClickThreshold {
		if !d.cfg.RevealTopmostOnly || s.WasTopmost {
			result = ReleaseClick
		}
	} else if d.state == DragDragging {
		d.dragTo(x, y)
	}

	switch result {
	case ReleaseClick:
		if d.reveal != nil {
			d.reveal.Show(p.Index)
		}
		p.TransitionTo(p.BaseDepth, 1, dur, d.cfg.Ease)
	case ReleaseDrop:
		p.TransitionScale(1, dur, d.cfg.Ease)
	}

	d.stack.Deselect()
	d.session = nil
	d.state = DragIdle

	if d.OnRelease != nil {
		d.OnRelease(p, result)
	}
	return result
}

// Cancel drops an active session as if released where the pointer last was.
// The app calls it when the window loses focus mid-press.
func (d *DragController) Cancel() {
	if d.session == nil {
		return
	}
	s := d.session
	// Force a drop: a vanished pointer should never reveal.
	s.StartX, s.StartY = s.lastX+d.cfg.ClickThreshold, s.lastY
	d.PointerUp(s.lastX, s.lastY)
}

// --- Pointer polling ---

// pointerTracker turns per-tick pressed/position samples into down, move
// and up edges for a DragController.
type pointerTracker struct {
	down         bool
	lastX, lastY float32
	touchID      ebiten.TouchID
	touching     bool
	touchBuf     []ebiten.TouchID
}

// feed delivers one sample. Moves are only reported when the position
// changes.
func (pt *pointerTracker) feed(d *DragController, x, y float32, pressed bool) {
	switch {
	case pressed && !pt.down:
		pt.down = true
		d.PointerDown(x, y)
	case pressed && pt.down:
		if x != pt.lastX || y != pt.lastY {
			d.PointerMove(x, y)
		}
	case !pressed && pt.down:
		pt.down = false
		d.PointerUp(x, y)
	}
	pt.lastX, pt.lastY = x, y
}

// read samples the primary pointer: the first active touch if any,
// otherwise the mouse with its left button.
func (pt *pointerTracker) read() (x, y float32, pressed bool) {
	pt.touchBuf = ebiten.AppendTouchIDs(pt.touchBuf[:0])
	if pt.touching {
		for _, id := range pt.touchBuf {
			if id == pt.touchID {
				tx, ty := ebiten.TouchPosition(id)
				return float32(tx), float32(ty), true
			}
		}
		// Touch lifted: release at its last known position.
		pt.touching = false
		return pt.lastX, pt.lastY, false
	}
	if len(pt.touchBuf) > 0 && !pt.down {
		pt.touching = true
		pt.touchID = pt.touchBuf[0]
		tx, ty := ebiten.TouchPosition(pt.touchID)
		return float32(tx), float32(ty), true
	}
	mx, my := ebiten.CursorPosition()
	return float32(mx), float32(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}
