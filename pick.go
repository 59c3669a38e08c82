package polaroid

import (
	"cmp"
	"slices"
)

// Hit is one ray/surface intersection.
type Hit struct {
	Photo    *Photo
	Surface  SurfaceID
	Kind     SurfaceKind
	Point    Vec3
	Distance float32
}

// Picker casts pointer rays from a camera into a stack. Picking never
// mutates the stack; it only reports candidates.
type Picker struct {
	cam   *Camera
	stack *Stack
	hits  []Hit
}

// NewPicker creates a picker over the given camera and stack.
func NewPicker(cam *Camera, stack *Stack) *Picker {
	return &Picker{cam: cam, stack: stack}
}

// Pick returns the nearest photo under screen point (sx, sy). A hit on a
// frame or image resolves to the owning photo.
func (pk *Picker) Pick(sx, sy float32) (Hit, bool) {
	hits := pk.Hits(sx, sy)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

// Hits returns every surface under (sx, sy), nearest first. Coplanar hits
// are ordered by raise order, then image before frame, then higher photo
// index. The returned slice is reused by the next call.
func (pk *Picker) Hits(sx, sy float32) []Hit {
	pk.hits = pk.hits[:0]
	ray := pk.cam.Ray(sx, sy)
	for i := range pk.stack.surfaces {
		surf := &pk.stack.surfaces[i]
		owner, ok := pk.stack.Owner(surf.ID)
		if !ok {
			continue
		}
		pt, dist, ok := ray.IntersectPlaneZ(owner.Position.Z + surf.Offset.Z)
		if !ok {
			continue
		}
		if !surf.containsLocal(worldToLocal(owner, pt)) {
			continue
		}
		pk.hits = append(pk.hits, Hit{
			Photo:    owner,
			Surface:  surf.ID,
			Kind:     surf.Kind,
			Point:    pt,
			Distance: dist,
		})
	}
	slices.SortStableFunc(pk.hits, compareHits)
	return pk.hits
}

func compareHits(a, b Hit) int {
	if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Photo.raised, a.Photo.raised); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Kind, a.Kind); c != 0 {
		return c
	}
	return cmp.Compare(b.Photo.Index, a.Photo.Index)
}
