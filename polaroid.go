package polaroid

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the default frame tint.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// SurfaceKind distinguishes the two intersectable parts of a photo.
type SurfaceKind uint8

const (
	SurfaceFrame SurfaceKind = iota // white polaroid border
	SurfaceImage                    // the picture itself
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfaceFrame:
		return "frame"
	case SurfaceImage:
		return "image"
	default:
		return "unknown"
	}
}

// DragState is the pointer interaction phase of the DragController.
type DragState uint8

const (
	DragIdle     DragState = iota // no pointer session
	DragArmed                     // pointer down on a photo, below the click threshold
	DragDragging                  // pointer moved past the click threshold
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragArmed:
		return "armed"
	case DragDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Release describes how a pointer-up resolved a drag session.
type Release uint8

const (
	ReleaseNone  Release = iota // no session was active
	ReleaseClick                // displacement below threshold; reveal shown
	ReleaseDrop                 // photo left where it was dropped
)

func (r Release) String() string {
	switch r {
	case ReleaseNone:
		return "none"
	case ReleaseClick:
		return "click"
	case ReleaseDrop:
		return "drop"
	default:
		return "unknown"
	}
}
