// LED frame rendering
// A frame is one color per physical pixel. It is streamed to the LED channel
// last pixel first: the panel is chained so that the final word of a frame
// lands on pixel 0.
package core

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Frame holds one color per pixel, index i for physical pixel i
type Frame [PanelPixels]Color

// SolidFrame returns a frame with every pixel set to c
func SolidFrame(c Color) Frame {
	var f Frame
	for i := range f {
		f[i] = c
	}
	return f
}

// LetterFrame returns the frame for a glyph: set cells in ColorGlyph, the
// rest off
func LetterFrame(l Letter) Frame {
	var f Frame
	for i, on := range l {
		if on {
			f[i] = ColorGlyph
		}
	}
	return f
}

// GlyphMode selects how RenderLetter animates a glyph
type GlyphMode uint8

const (
	// GlyphStatic writes the finished glyph once and holds it for GlyphHold
	GlyphStatic GlyphMode = iota

	// GlyphReveal lights the glyph one cell at a time, rewriting the whole
	// frame after every cell (25 frames, 625 words), then holds for RevealHold.
	// This is the cadence the board first shipped with.
	GlyphReveal
)

// Renderer is the only writer of the LED channel.
// It also satisfies drivers.Displayer so tinygo graphics code can draw on the
// panel directly.
type Renderer struct {
	ch    PixelChannel
	sleep Sleeper
	mode  GlyphMode
	buf   Frame
}

var _ drivers.Displayer = (*Renderer)(nil)

// NewRenderer creates a renderer in GlyphStatic mode
func NewRenderer(ch PixelChannel, sleep Sleeper) *Renderer {
	return &Renderer{
		ch:    ch,
		sleep: sleep,
		mode:  GlyphStatic,
	}
}

// SetGlyphMode changes the letter animation
func (r *Renderer) SetGlyphMode(mode GlyphMode) {
	r.mode = mode
}

// GlyphMode returns the current letter animation
func (r *Renderer) GlyphMode() GlyphMode {
	return r.mode
}

// Write streams a frame to the channel, pixel 24 first and pixel 0 last
func (r *Renderer) Write(f *Frame) {
	for i := PanelPixels - 1; i >= 0; i-- {
		r.ch.Put(f[i].Word())
	}
}

// Fill shows a solid color on every pixel. It does not hold.
func (r *Renderer) Fill(c Color) {
	r.buf = SolidFrame(c)
	r.Write(&r.buf)
}

// RenderLetter shows a glyph and blocks until its display time is over
func (r *Renderer) RenderLetter(l Letter) error {
	return DrawLetter(r, l, r.mode, r.sleep)
}

// glyphRGBA is ColorGlyph as a display color
var glyphRGBA = color.RGBA{R: 0xFF, A: 0xFF}

// DrawLetter draws a glyph on a 5x5 display: set cells in ColorGlyph, the rest
// off. GlyphStatic pushes the finished glyph once and holds for GlyphHold.
// GlyphReveal pushes the display after every cell, then holds for RevealHold.
func DrawLetter(d drivers.Displayer, l Letter, mode GlyphMode, sleep Sleeper) error {
	if mode == GlyphReveal {
		for i := range l {
			drawCell(d, i, false)
		}
		for i, on := range l {
			if on {
				drawCell(d, i, true)
			}
			if err := d.Display(); err != nil {
				return err
			}
			sleep.Sleep(RevealStep)
		}
		sleep.Sleep(RevealHold)
		return nil
	}

	for i, on := range l {
		drawCell(d, i, on)
	}
	if err := d.Display(); err != nil {
		return err
	}
	sleep.Sleep(GlyphHold)
	return nil
}

// drawCell sets row-major cell i of the panel
func drawCell(d drivers.Displayer, i int, on bool) {
	var c color.RGBA
	if on {
		c = glyphRGBA
	}
	d.SetPixel(int16(i%PanelWidth), int16(i/PanelWidth), c)
}

// Size returns the panel size in pixels
func (r *Renderer) Size() (x, y int16) {
	return PanelWidth, PanelHeight
}

// SetPixel sets one pixel of the working frame. Out of range is ignored.
func (r *Renderer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= PanelWidth || y >= PanelHeight {
		return
	}
	r.buf[int(y)*PanelWidth+int(x)] = RGB(c.R, c.G, c.B)
}

// Display streams the working frame to the channel
func (r *Renderer) Display() error {
	r.Write(&r.buf)
	return nil
}
