package polaroid

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- White pixel singleton (no sync.Once: rendering is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// for untextured quads.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// quad is a projected surface: screen corners in TL, TR, BL, BR order.
type quad [4]Vec2

// projectSurface projects the corners of one of p's surfaces to screen
// space. It fails if any corner falls outside the camera's depth range.
func projectSurface(cam *Camera, p *Photo, s *Surface) (quad, bool) {
	hw, hh := s.Width/2, s.Height/2
	lx := [4]float32{s.Offset.X - hw, s.Offset.X + hw, s.Offset.X - hw, s.Offset.X + hw}
	ly := [4]float32{s.Offset.Y + hh, s.Offset.Y + hh, s.Offset.Y - hh, s.Offset.Y - hh}
	var q quad
	for i := range q {
		w := localToWorld(p, lx[i], ly[i], s.Offset.Z)
		sx, sy, ok := cam.WorldToScreen(w)
		if !ok {
			return quad{}, false
		}
		q[i] = Vec2{sx, sy}
	}
	return q, true
}

// RenderStats counts the work done by one Draw call.
type RenderStats struct {
	Photos    int
	Surfaces  int
	DrawCalls int
	Culled    int
}

// Renderer paints a stack back-to-front through a camera. It holds no scene
// state of its own; each Draw reflects the current photo transforms.
type Renderer struct {
	cam   *Camera
	stack *Stack

	Background  Color
	FrameColor  Color
	Placeholder Color

	verts []ebiten.Vertex
	inds  []uint32
	stats RenderStats
}

// NewRenderer returns a renderer with a soft pink background, white frames
// and a light grey placeholder for images still loading.
func NewRenderer(cam *Camera, stack *Stack) *Renderer {
	return &Renderer{
		cam:         cam,
		stack:       stack,
		Background:  Color{1, 0.94, 0.96, 1},
		FrameColor:  ColorWhite,
		Placeholder: Color{0.85, 0.85, 0.85, 1},
		verts:       make([]ebiten.Vertex, 0, 4),
		inds:        make([]uint32, 0, 6),
	}
}

// Stats returns the counters of the last Draw.
func (r *Renderer) Stats() RenderStats {
	return r.stats
}

// Draw clears dst and paints every photo, frame before image, farthest first.
func (r *Renderer) Draw(dst *ebiten.Image) {
	r.stats = RenderStats{}
	dst.Fill(r.Background.toRGBA())

	for _, p := range r.stack.DrawOrder() {
		r.stats.Photos++
		for _, id := range p.Surfaces() {
			s, ok := r.stack.Surface(id)
			if !ok {
				continue
			}
			q, ok := projectSurface(r.cam, p, s)
			if !ok {
				r.stats.Culled++
				continue
			}
			r.stats.Surfaces++
			switch {
			case s.Kind == SurfaceImage && p.Texture != nil:
				r.drawQuad(dst, q, p.Texture, ColorWhite)
			case s.Kind == SurfaceImage:
				r.drawQuad(dst, q, ensureWhitePixel(), r.Placeholder)
			default:
				r.drawQuad(dst, q, ensureWhitePixel(), r.FrameColor)
			}
		}
	}
}

func (r *Renderer) drawQuad(dst *ebiten.Image, q quad, src *ebiten.Image, c Color) {
	b := src.Bounds()
	sx := [4]float32{float32(b.Min.X), float32(b.Max.X), float32(b.Min.X), float32(b.Max.X)}
	sy := [4]float32{float32(b.Min.Y), float32(b.Min.Y), float32(b.Max.Y), float32(b.Max.Y)}

	// Premultiplied.
	ca := c.A
	cr, cg, cb := c.R*ca, c.G*ca, c.B*ca

	r.verts = r.verts[:0]
	for i := range q {
		r.verts = append(r.verts, ebiten.Vertex{
			DstX:   q[i].X,
			DstY:   q[i].Y,
			SrcX:   sx[i],
			SrcY:   sy[i],
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	// Two triangles: TL-TR-BL, TR-BR-BL
	r.inds = append(r.inds[:0], 0, 1, 2, 1, 3, 2)

	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.Filter = ebiten.FilterLinear
	dst.DrawTriangles32(r.verts, r.inds, src, &op)
	r.stats.DrawCalls++
}
