package polaroid

import "github.com/chewxy/math32"

// Vec2 is a 2D vector used for scales, pointer positions and local
// surface coordinates.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3D vector in world space. +Z points toward the camera.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// parallelEpsilon is the smallest |Direction.Z| treated as crossing a
// z-plane.
const parallelEpsilon = 1e-6

// IntersectPlaneZ intersects the ray with the plane z = planeZ (normal +Z).
// Returns the hit point, its distance along the ray, and false when the ray
// is parallel to the plane or the plane lies behind the origin.
func (r Ray) IntersectPlaneZ(planeZ float32) (Vec3, float32, bool) {
	if math32.Abs(r.Direction.Z) < parallelEpsilon {
		return Vec3{}, 0, false
	}
	t := (planeZ - r.Origin.Z) / r.Direction.Z
	if t < 0 {
		return Vec3{}, 0, false
	}
	return r.At(t), t, true
}

// screenDistance returns the pixel distance between two pointer positions.
func screenDistance(x0, y0, x1, y1 float32) float32 {
	dx := x1 - x0
	dy := y1 - y0
	return math32.Sqrt(dx*dx + dy*dy)
}

// localToWorld maps a point in a photo's local plane (before scale and
// rotation) to world space. offsetZ lifts the point off the photo plane.
//
//	world = Position + Rotate(Rotation) * (Scale ⊙ local) + (0, 0, offsetZ)
func localToWorld(p *Photo, lx, ly, offsetZ float32) Vec3 {
	sx := lx * p.Scale.X
	sy := ly * p.Scale.Y
	sin, cos := math32.Sincos(p.Rotation)
	return Vec3{
		X: p.Position.X + cos*sx - sin*sy,
		Y: p.Position.Y + sin*sx + cos*sy,
		Z: p.Position.Z + offsetZ,
	}
}

// worldToLocal is the inverse of localToWorld for points on the photo plane.
// A zero scale component maps everything to the origin on that axis.
func worldToLocal(p *Photo, w Vec3) Vec2 {
	dx := w.X - p.Position.X
	dy := w.Y - p.Position.Y
	sin, cos := math32.Sincos(-p.Rotation)
	rx := cos*dx - sin*dy
	ry := sin*dx + cos*dy
	var lx, ly float32
	if p.Scale.X != 0 {
		lx = rx / p.Scale.X
	}
	if p.Scale.Y != 0 {
		ly = ry / p.Scale.Y
	}
	return Vec2{lx, ly}
}
