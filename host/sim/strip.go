package sim

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"vogal/core"
)

// Strip emulates the 5x5 LED panel. Words are shifted in one per pixel and a
// frame latches every core.PanelPixels words. The renderer writes the last
// pixel first, so the k-th word of a frame lands on pixel 24-k.
type Strip struct {
	mu      sync.Mutex
	shift   []uint32
	frames  []core.Frame
	current core.Frame
	out     io.Writer
}

var _ core.PixelChannel = (*Strip)(nil)

// NewStrip creates a dark panel. Latched frames are drawn to out when it is
// not nil.
func NewStrip(out io.Writer) *Strip {
	return &Strip{out: out}
}

// Put shifts one word into the panel
func (s *Strip) Put(word uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shift = append(s.shift, word)
	if len(s.shift) < core.PanelPixels {
		return
	}

	var f core.Frame
	for k, w := range s.shift {
		f[core.PanelPixels-1-k] = core.Color(w)
	}
	s.shift = s.shift[:0]
	s.current = f
	s.frames = append(s.frames, f)

	if s.out != nil {
		fmt.Fprint(s.out, Render(f))
	}
}

// Current returns the last latched frame
func (s *Strip) Current() core.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Frames returns a copy of every latched frame
func (s *Strip) Frames() []core.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// Render draws a frame as five rows of text, one cell per pixel
func Render(f core.Frame) string {
	var b strings.Builder
	for y := 0; y < core.PanelHeight; y++ {
		for x := 0; x < core.PanelWidth; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(cell(f[y*core.PanelWidth+x]))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// cell picks the character of the strongest channel of c
func cell(c core.Color) byte {
	if c.Word()&0xFFFFFF00 == 0 {
		return '.'
	}
	r, g, b := c.R(), c.G(), c.B()
	switch {
	case r >= g && r >= b:
		return 'R'
	case g >= b:
		return 'G'
	default:
		return 'B'
	}
}
