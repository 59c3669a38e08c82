package polaroid

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transition animates up to 3 float32 fields on a Photo simultaneously.
// Each field is driven by a gween.Tween holding its start value, end value,
// elapsed time, duration and easing function. Create one via TweenDepth,
// TweenScale or TweenXY and call Update(dt) each tick; values are
// written straight into the photo.
//
// There is no global animation manager: Photo.update advances its own
// transitions from the loop tick, and starting a new transition on a field
// replaces the old one.
type Transition struct {
	tweens [3]*gween.Tween
	count  int
	fields [3]*float32
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *Transition) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// DefaultEase approximates a power2 ease-out curve.
var DefaultEase ease.TweenFunc = ease.OutQuad

// TweenDepth creates a Transition that animates p.Position.Z to depth.
func TweenDepth(p *Photo, depth, duration float32, fn ease.TweenFunc) *Transition {
	g := &Transition{count: 1}
	g.tweens[0] = gween.New(p.Position.Z, depth, duration, fn)
	g.fields[0] = &p.Position.Z
	return g
}

// TweenScale creates a Transition that animates p.Scale to (sx, sy).
func TweenScale(p *Photo, sx, sy, duration float32, fn ease.TweenFunc) *Transition {
	g := &Transition{count: 2}
	g.tweens[0] = gween.New(p.Scale.X, sx, duration, fn)
	g.tweens[1] = gween.New(p.Scale.Y, sy, duration, fn)
	g.fields[0] = &p.Scale.X
	g.fields[1] = &p.Scale.Y
	return g
}

// TweenXY creates a Transition that animates p.Position.X and p.Position.Y
// to (x, y). Depth is left to its own transition.
func TweenXY(p *Photo, x, y, duration float32, fn ease.TweenFunc) *Transition {
	g := &Transition{count: 2}
	g.tweens[0] = gween.New(p.Position.X, x, duration, fn)
	g.tweens[1] = gween.New(p.Position.Y, y, duration, fn)
	g.fields[0] = &p.Position.X
	g.fields[1] = &p.Position.Y
	return g
}
