package polaroid

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// FPSWidget displays the current FPS and TPS in the top-left corner. The
// text is refreshed every ~0.5 seconds.
type FPSWidget struct {
	img        *ebiten.Image
	sinceDraw  float64
	needsPaint bool
}

// NewFPSWidget creates the widget. It allocates its own 100x32 image.
func NewFPSWidget() *FPSWidget {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &FPSWidget{img: ebiten.NewImage(100, 32), needsPaint: true}
}

// Update advances the refresh clock by dt seconds.
func (w *FPSWidget) Update(dt float64) {
	w.sinceDraw += dt
	if w.sinceDraw >= 0.5 {
		w.sinceDraw = 0
		w.needsPaint = true
	}
}

// Draw paints the widget onto dst at (x, y).
func (w *FPSWidget) Draw(dst *ebiten.Image, x, y float64) {
	if w.needsPaint {
		w.needsPaint = false
		w.img.Clear()
		// Semi-transparent background for readability
		w.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(w.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x, y)
	dst.DrawImage(w.img, &op)
}
