package polaroid

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// SurfaceID identifies one intersectable rectangle in the stack. IDs are
// unique across all photos and stable for the life of a Stack.
type SurfaceID uint32

// Surface is a flat rectangle attached to a photo. Width and Height are in
// photo-local units, centered on Offset.
type Surface struct {
	ID     SurfaceID
	Kind   SurfaceKind
	Width  float32
	Height float32
	// Offset is the rectangle center relative to the photo origin. Z lifts the
	// surface slightly toward the camera so the image never z-fights its frame.
	Offset Vec3
}

// containsLocal reports whether a photo-local point lies inside the surface.
// Points on the edge are considered inside.
func (s *Surface) containsLocal(l Vec2) bool {
	hw := s.Width / 2
	hh := s.Height / 2
	return l.X >= s.Offset.X-hw && l.X <= s.Offset.X+hw &&
		l.Y >= s.Offset.Y-hh && l.Y <= s.Offset.Y+hh
}

// Photo is one framed picture in the stack.
//
// Index is unique and stable. BaseDepth is the resting Z given by the
// stacking order. Fields are mutated only by DragController, the reveal
// click path and the loop tick; callers should treat them as read-only.
type Photo struct {
	Index     int
	Position  Vec3
	Scale     Vec2
	Rotation  float32
	BaseDepth float32
	Selected  bool

	// Texture is nil until the image is loaded; a placeholder is drawn meanwhile.
	Texture *ebiten.Image
	// Source is where the image is fetched from (URL or file path).
	Source string

	surfaces []SurfaceID
	raised   uint64 // raise order; later raises win ties

	moveAnim  *Transition // X and Y
	depthAnim *Transition
	scaleAnim *Transition

	swayTime  float32
	swayPhase float32
}

// Surfaces returns the IDs of the photo's surfaces, frame first. The
// returned slice MUST NOT be mutated.
func (p *Photo) Surfaces() []SurfaceID {
	return p.surfaces
}

// Animating reports whether a move, depth or scale transition is in flight.
func (p *Photo) Animating() bool {
	return p.moveAnim != nil || p.depthAnim != nil || p.scaleAnim != nil
}

// TransitionTo replaces any running depth and scale transitions with new
// ones toward (depth, scale). A zero duration applies the target at once.
func (p *Photo) TransitionTo(depth, scale, duration float32, fn ease.TweenFunc) {
	p.TransitionDepth(depth, duration, fn)
	p.TransitionScale(scale, duration, fn)
}

// TransitionDepth replaces any running depth transition.
func (p *Photo) TransitionDepth(depth, duration float32, fn ease.TweenFunc) {
	if duration <= 0 {
		p.Position.Z = depth
		p.depthAnim = nil
		return
	}
	p.depthAnim = TweenDepth(p, depth, duration, fn)
}

// TransitionPosition moves the photo to pos. X and Y run on their own
// transition, so a later depth transition does not stop the move.
func (p *Photo) TransitionPosition(pos Vec3, duration float32, fn ease.TweenFunc) {
	p.TransitionDepth(pos.Z, duration, fn)
	if duration <= 0 {
		p.Position.X, p.Position.Y = pos.X, pos.Y
		p.moveAnim = nil
		return
	}
	p.moveAnim = TweenXY(p, pos.X, pos.Y, duration, fn)
}

// stopMove abandons a running X/Y transition, leaving the photo where it is.
func (p *Photo) stopMove() {
	p.moveAnim = nil
}

// TransitionScale replaces any running scale transition. Scale is uniform.
func (p *Photo) TransitionScale(scale, duration float32, fn ease.TweenFunc) {
	if duration <= 0 {
		p.Scale = Vec2{scale, scale}
		p.scaleAnim = nil
		return
	}
	p.scaleAnim = TweenScale(p, scale, scale, duration, fn)
}

// update advances running transitions by dt seconds and drops finished ones.
func (p *Photo) update(dt float32) {
	if p.moveAnim != nil {
		p.moveAnim.Update(dt)
		if p.moveAnim.Done {
			p.moveAnim = nil
		}
	}
	if p.depthAnim != nil {
		p.depthAnim.Update(dt)
		if p.depthAnim.Done {
			p.depthAnim = nil
		}
	}
	if p.scaleAnim != nil {
		p.scaleAnim.Update(dt)
		if p.scaleAnim.Done {
			p.scaleAnim = nil
		}
	}
}
