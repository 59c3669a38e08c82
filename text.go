package polaroid

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement.
type Font interface {
	MeasureString(s string) (width, height float64)
	LineHeight() float64
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("polaroid: parse font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// DefaultFont returns Go Regular at the given size.
func DefaultFont(size float64) (*TTFFont, error) {
	return LoadTTFFont(goregular.TTF, size)
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// wrapText breaks s into lines no wider than maxWidth, splitting on spaces.
// Explicit newlines are kept. A single word wider than maxWidth gets a line
// of its own.
func wrapText(f Font, s string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if width, _ := f.MeasureString(next); maxWidth > 0 && width > maxWidth {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = next
		}
		lines = append(lines, cur)
	}
	return lines
}

// --- MessageOverlay ---

// MessageOverlay draws the revealed message as a card centered on screen.
// Line layout is cached until the message or screen width changes.
type MessageOverlay struct {
	Font       Font
	Background Color
	Foreground Color
	Padding    float64
	// MaxWidth caps the card width as a fraction of the screen width.
	MaxWidth float64

	msg    string
	screen int
	lines  []string
	w, h   float64
}

// NewMessageOverlay returns an overlay with a translucent white card and
// dark text.
func NewMessageOverlay(f Font) *MessageOverlay {
	return &MessageOverlay{
		Font:       f,
		Background: Color{1, 1, 1, 0.9},
		Foreground: Color{0.2, 0.2, 0.2, 1},
		Padding:    20,
		MaxWidth:   0.8,
	}
}

// layout wraps msg for a screen of the given width and returns the card size.
func (o *MessageOverlay) layout(msg string, screenW int) (w, h float64) {
	if msg == o.msg && screenW == o.screen && o.lines != nil {
		return o.w, o.h
	}
	o.msg, o.screen = msg, screenW
	maxText := float64(screenW)*o.MaxWidth - 2*o.Padding
	o.lines = wrapText(o.Font, msg, maxText)

	var textW float64
	for _, l := range o.lines {
		lw, _ := o.Font.MeasureString(l)
		textW = max(textW, lw)
	}
	o.w = textW + 2*o.Padding
	o.h = float64(len(o.lines))*o.Font.LineHeight() + 2*o.Padding
	return o.w, o.h
}

// Draw renders msg centered on dst. An empty message draws nothing.
func (o *MessageOverlay) Draw(dst *ebiten.Image, msg string) {
	if msg == "" || o.Font == nil {
		return
	}
	b := dst.Bounds()
	w, h := o.layout(msg, b.Dx())
	x := (float64(b.Dx()) - w) / 2
	y := (float64(b.Dy()) - h) / 2
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), o.Background.toRGBA(), true)

	ttf, ok := o.Font.(*TTFFont)
	if !ok {
		return
	}
	lh := o.Font.LineHeight()
	for i, line := range o.lines {
		lw, _ := o.Font.MeasureString(line)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+(w-lw)/2, y+o.Padding+float64(i)*lh)
		op.ColorScale.ScaleWithColor(o.Foreground.toRGBA())
		text.Draw(dst, line, ttf.face, op)
	}
}
