package polaroid

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/chewxy/math32"
	"github.com/tanema/gween/ease"
)

// ErrNoPhotos is returned when a stack would contain no photos.
var ErrNoPhotos = errors.New("polaroid: stack needs at least one photo")

// StackConfig controls the geometry of a photo stack. Sizes are in world
// units.
type StackConfig struct {
	// Count is the number of photos.
	Count int
	// DepthStep is the Z distance between neighbouring photos at rest.
	DepthStep float32

	FrameWidth, FrameHeight float32
	ImageWidth, ImageHeight float32
	// ImageOffsetY shifts the image up inside the frame, leaving the wide
	// polaroid border at the bottom.
	ImageOffsetY float32
	// ImageLift separates the image from its frame along Z.
	ImageLift float32
}

// DefaultStackConfig returns the classic five-photo polaroid stack.
func DefaultStackConfig() StackConfig {
	return StackConfig{
		Count:        5,
		DepthStep:    0.1,
		FrameWidth:   2.2,
		FrameHeight:  2.7,
		ImageWidth:   2.0,
		ImageHeight:  2.0,
		ImageOffsetY: 0.15,
		ImageLift:    0.001,
	}
}

func (c StackConfig) validate() error {
	if c.Count <= 0 {
		return ErrNoPhotos
	}
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 || c.ImageWidth <= 0 || c.ImageHeight <= 0 {
		return fmt.Errorf("%w: photo sizes must be positive", ErrInvalidConfig)
	}
	if c.DepthStep < 0 {
		return fmt.Errorf("%w: depth step must not be negative", ErrInvalidConfig)
	}
	return nil
}

// SwayConfig drives the idle rotation applied to photos that are not held.
type SwayConfig struct {
	Enabled bool
	// Amplitude is the peak rotation in radians.
	Amplitude float32
	// Frequency is in oscillations per second.
	Frequency float32
}

// Stack owns the photos of a scene and the mapping from intersectable
// surfaces back to the photo that owns them.
type Stack struct {
	cfg      StackConfig
	photos   []*Photo
	surfaces []Surface
	owners   map[SurfaceID]int

	selected *Photo
	raiseSeq uint64
	sway     SwayConfig

	drawBuf []*Photo
}

// NewStack builds cfg.Count photos, each with a frame surface and an image
// surface, stacked so that photo i rests at Z = i * DepthStep.
func NewStack(cfg StackConfig) (*Stack, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s := &Stack{
		cfg:      cfg,
		photos:   make([]*Photo, 0, cfg.Count),
		surfaces: make([]Surface, 0, cfg.Count*2),
		owners:   make(map[SurfaceID]int, cfg.Count*2),
		drawBuf:  make([]*Photo, 0, cfg.Count),
	}
	for i := 0; i < cfg.Count; i++ {
		depth := float32(i) * cfg.DepthStep
		p := &Photo{
			Index:     i,
			Position:  Vec3{0, 0, depth},
			Scale:     Vec2{1, 1},
			BaseDepth: depth,
			swayPhase: float32(i) * 1.3,
		}
		s.addSurface(p, Surface{
			Kind:   SurfaceFrame,
			Width:  cfg.FrameWidth,
			Height: cfg.FrameHeight,
		})
		s.addSurface(p, Surface{
			Kind:   SurfaceImage,
			Width:  cfg.ImageWidth,
			Height: cfg.ImageHeight,
			Offset: Vec3{0, cfg.ImageOffsetY, cfg.ImageLift},
		})
		s.photos = append(s.photos, p)
	}
	return s, nil
}

func (s *Stack) addSurface(p *Photo, surf Surface) {
	surf.ID = SurfaceID(len(s.surfaces) + 1)
	s.surfaces = append(s.surfaces, surf)
	s.owners[surf.ID] = p.Index
	p.surfaces = append(p.surfaces, surf.ID)
}

// Config returns the geometry the stack was built with.
func (s *Stack) Config() StackConfig {
	return s.cfg
}

// Len returns the number of photos.
func (s *Stack) Len() int {
	return len(s.photos)
}

// Photo returns the photo with the given index, or nil if out of range.
func (s *Stack) Photo(index int) *Photo {
	if index < 0 || index >= len(s.photos) {
		return nil
	}
	return s.photos[index]
}

// Photos returns all photos in index order. The returned slice MUST NOT be
// mutated.
func (s *Stack) Photos() []*Photo {
	return s.photos
}

// Surface looks up a surface by ID.
func (s *Stack) Surface(id SurfaceID) (*Surface, bool) {
	i := int(id) - 1
	if i < 0 || i >= len(s.surfaces) {
		return nil, false
	}
	return &s.surfaces[i], true
}

// Owner resolves a surface to the photo it belongs to.
func (s *Stack) Owner(id SurfaceID) (*Photo, bool) {
	idx, ok := s.owners[id]
	if !ok {
		return nil, false
	}
	return s.photos[idx], true
}

// LiftDepth is the Z a photo is raised to while held: one unit in front of
// the whole stack.
func (s *Stack) LiftDepth() float32 {
	return float32(len(s.photos))*s.cfg.DepthStep + 1
}

// Selected returns the selected photo, or nil.
func (s *Stack) Selected() *Photo {
	return s.selected
}

// Select marks p as the only selected photo.
func (s *Stack) Select(p *Photo) {
	if s.selected != nil && s.selected != p {
		s.selected.Selected = false
	}
	s.selected = p
	if p != nil {
		p.Selected = true
	}
}

// Deselect clears the selection.
func (s *Stack) Deselect() {
	if s.selected != nil {
		s.selected.Selected = false
		s.selected = nil
	}
}

// raise records p as the most recently lifted photo. Among photos resting at
// the same depth, the most recently raised one is drawn and picked on top.
func (s *Stack) raise(p *Photo) {
	s.raiseSeq++
	p.raised = s.raiseSeq
}

// frontOf reports whether a is in front of b: higher Z, then more recently
// raised, then higher index.
func frontOf(a, b *Photo) bool {
	return compareDepth(a, b) > 0
}

func compareDepth(a, b *Photo) int {
	if c := cmp.Compare(a.Position.Z, b.Position.Z); c != 0 {
		return c
	}
	if c := cmp.Compare(a.raised, b.raised); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

// Topmost returns the photo nearest the camera.
func (s *Stack) Topmost() *Photo {
	var top *Photo
	for _, p := range s.photos {
		if top == nil || frontOf(p, top) {
			top = p
		}
	}
	return top
}

// DrawOrder returns the photos sorted back-to-front. The returned slice is
// reused between calls.
func (s *Stack) DrawOrder() []*Photo {
	s.drawBuf = append(s.drawBuf[:0], s.photos...)
	slices.SortStableFunc(s.drawBuf, compareDepth)
	return s.drawBuf
}

// SetSway configures the idle rotation.
func (s *Stack) SetSway(cfg SwayConfig) {
	s.sway = cfg
	if !cfg.Enabled {
		for _, p := range s.photos {
			p.Rotation = 0
		}
	}
}

// Update advances transitions and idle sway by dt seconds. A held photo
// keeps its rotation; its sway clock resumes on release so the motion stays
// continuous.
func (s *Stack) Update(dt float32) {
	for _, p := range s.photos {
		p.update(dt)
		if !s.sway.Enabled || p.Selected {
			continue
		}
		p.swayTime += dt
		p.Rotation = s.sway.Amplitude * math32.Sin(2*math32.Pi*s.sway.Frequency*p.swayTime+p.swayPhase)
	}
}

// Restack sends every photo that is not held back to the center of the
// stack at its resting depth and scale 1.
func (s *Stack) Restack(duration float32, fn ease.TweenFunc) {
	for _, p := range s.photos {
		if p.Selected {
			continue
		}
		p.TransitionPosition(Vec3{0, 0, p.BaseDepth}, duration, fn)
		p.TransitionScale(1, duration, fn)
	}
}

// Animating reports whether any photo has a transition in flight.
func (s *Stack) Animating() bool {
	for _, p := range s.photos {
		if p.Animating() {
			return true
		}
	}
	return false
}
