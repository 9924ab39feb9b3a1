package core

// Panel geometry
const (
	PanelWidth  = 5
	PanelHeight = 5
	PanelPixels = PanelWidth * PanelHeight
)

// Letter is a 5x5 row-major bitmap
type Letter [PanelPixels]bool

// Vowel bitmaps. Rows are listed as wired on the panel, so odd rows look
// mirrored here.
var (
	LetterA = Letter{
		false, true, true, true, false,
		true, false, false, false, true,
		true, true, true, true, true,
		true, false, false, false, true,
		true, false, false, false, true,
	}
	LetterE = Letter{
		true, true, true, true, true,
		false, false, false, false, true,
		true, true, true, true, true,
		false, false, false, false, true,
		true, true, true, true, true,
	}
	LetterI = Letter{
		false, false, true, false, false,
		false, false, true, false, false,
		false, false, true, false, false,
		false, false, true, false, false,
		false, false, true, false, false,
	}
	LetterO = Letter{
		false, true, true, true, false,
		true, false, false, false, true,
		true, false, false, false, true,
		true, false, false, false, true,
		false, true, true, true, false,
	}
	LetterU = Letter{
		true, false, false, false, true,
		true, false, false, false, true,
		true, false, false, false, true,
		true, false, false, false, true,
		false, true, true, true, false,
	}
)

// Vowels is the intro sequence, in display order
var Vowels = [5]Letter{LetterA, LetterE, LetterI, LetterO, LetterU}

// VowelNames labels Vowels for the console
const VowelNames = "AEIOU"

// Color is a packed pixel word in LED channel order:
//
//	bits 24-31: green
//	bits 16-23: red
//	bits  8-15: blue
//	bits  0-7:  not shifted out by the channel
type Color uint32

// RGB packs a color into channel order
func RGB(r, g, b uint8) Color {
	return Color(uint32(g)<<24 | uint32(r)<<16 | uint32(b)<<8)
}

// R returns the red byte
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green byte
func (c Color) G() uint8 { return uint8(c >> 24) }

// B returns the blue byte
func (c Color) B() uint8 { return uint8(c >> 8) }

// Word returns the value written to the LED channel
func (c Color) Word() uint32 { return uint32(c) }

// Named colors. Values are the exact words the board firmware has always sent.
const (
	ColorOff       Color = 0
	ColorBlue      Color = 0xFF << 8  // blue, full
	ColorRedHalf   Color = 0x80 << 16 // red, 50%
	ColorGreenHalf Color = 0x80 << 24 // green, 50%
	ColorGlyph     Color = 0xFF << 16 // lit glyph cell, red

	// ColorWhiteDim was packed as R<<16|G<<8|B with R=32 G=64 B=16. On the
	// channel that reads as red 32, blue 64 and an unsent low byte. Kept
	// bit-exact.
	ColorWhiteDim Color = 0x20<<16 | 0x40<<8 | 0x10
)
