package polaroid

import "github.com/chewxy/math32"

const (
	defaultFOV     = 75 // degrees, vertical
	defaultNear    = 0.1
	defaultFar     = 1000
	defaultCameraZ = 5
)

// Camera is a perspective camera looking down -Z with +Y up. It has no
// rotation: the photo stack always faces it.
type Camera struct {
	// Position is the world-space eye point.
	Position Vec3
	// FOV is the vertical field of view in degrees.
	FOV float32
	// Near and Far bound the visible depth range.
	Near, Far float32
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	tanHalfFOV float32
	aspect     float32
	dirty      bool
}

// NewCamera creates a camera at (0, 0, 5) with a 75° field of view and the
// given viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Position: Vec3{0, 0, defaultCameraZ},
		FOV:      defaultFOV,
		Near:     defaultNear,
		Far:      defaultFar,
		Viewport: viewport,
		dirty:    true,
	}
}

// Resize updates the viewport size after a window resize. Returns true when
// the size actually changed.
func (c *Camera) Resize(width, height float32) bool {
	if c.Viewport.Width == width && c.Viewport.Height == height {
		return false
	}
	c.Viewport.Width = width
	c.Viewport.Height = height
	c.dirty = true
	return true
}

// MarkDirty forces a recomputation of the cached projection terms. Call it
// after changing FOV or Viewport directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// Aspect returns the viewport width/height ratio (1 for a degenerate viewport).
func (c *Camera) Aspect() float32 {
	c.update()
	return c.aspect
}

func (c *Camera) update() {
	if !c.dirty {
		return
	}
	c.dirty = false
	c.tanHalfFOV = math32.Tan(c.FOV * math32.Pi / 360)
	c.aspect = 1
	if c.Viewport.Height > 0 && c.Viewport.Width > 0 {
		c.aspect = c.Viewport.Width / c.Viewport.Height
	}
}

// ScreenToNDC converts screen coordinates to normalized device coordinates
// in [-1, 1], with +Y up. A degenerate viewport maps everything to the
// center.
func (c *Camera) ScreenToNDC(sx, sy float32) (x, y float32) {
	vp := c.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		return 0, 0
	}
	x = (sx-vp.X)/vp.Width*2 - 1
	y = -((sy-vp.Y)/vp.Height*2 - 1)
	return x, y
}

// Ray returns the world-space ray from the eye through screen point (sx, sy).
func (c *Camera) Ray(sx, sy float32) Ray {
	c.update()
	nx, ny := c.ScreenToNDC(sx, sy)
	dir := Vec3{
		X: nx * c.tanHalfFOV * c.aspect,
		Y: ny * c.tanHalfFOV,
		Z: -1,
	}
	return Ray{Origin: c.Position, Direction: dir.Normalize()}
}

// ScreenToPlane projects screen point (sx, sy) onto the plane z = planeZ.
// Returns false if the plane is behind the camera.
func (c *Camera) ScreenToPlane(sx, sy, planeZ float32) (Vec3, bool) {
	p, _, ok := c.Ray(sx, sy).IntersectPlaneZ(planeZ)
	return p, ok
}

// WorldToScreen projects a world point into screen coordinates. Returns
// false when the point lies outside the near/far range.
func (c *Camera) WorldToScreen(p Vec3) (sx, sy float32, ok bool) {
	c.update()
	rel := p.Sub(c.Position)
	depth := -rel.Z
	if depth < c.Near || depth > c.Far {
		return 0, 0, false
	}
	nx := rel.X / (depth * c.tanHalfFOV * c.aspect)
	ny := rel.Y / (depth * c.tanHalfFOV)
	vp := c.Viewport
	sx = vp.X + (nx+1)/2*vp.Width
	sy = vp.Y + (1-ny)/2*vp.Height
	return sx, sy, true
}
