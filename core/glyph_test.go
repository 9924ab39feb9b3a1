package core

import "testing"

func TestRGBPacking(t *testing.T) {
	testCases := []struct {
		name     string
		color    Color
		expected Color
	}{
		{"off", RGB(0, 0, 0), ColorOff},
		{"blue full", RGB(0, 0, 0xFF), ColorBlue},
		{"red half", RGB(0x80, 0, 0), ColorRedHalf},
		{"green half", RGB(0, 0x80, 0), ColorGreenHalf},
		{"glyph red", RGB(0xFF, 0, 0), ColorGlyph},
	}

	for _, tc := range testCases {
		if tc.color != tc.expected {
			t.Errorf("%s: RGB packed to %s, want %s", tc.name, hex32(uint32(tc.color)), hex32(uint32(tc.expected)))
		}
	}
}

func TestColorChannels(t *testing.T) {
	c := RGB(0x11, 0x22, 0x33)
	if c.R() != 0x11 || c.G() != 0x22 || c.B() != 0x33 {
		t.Errorf("Channels of %s = %02X %02X %02X", hex32(c.Word()), c.R(), c.G(), c.B())
	}
}

func TestWhiteDimWord(t *testing.T) {
	if ColorWhiteDim.Word() != 0x00204010 {
		t.Errorf("ColorWhiteDim = %s, want 0x00204010", hex32(ColorWhiteDim.Word()))
	}
}

func TestVowels(t *testing.T) {
	if len(VowelNames) != len(Vowels) {
		t.Fatalf("%d names for %d vowels", len(VowelNames), len(Vowels))
	}
	for i, l := range Vowels {
		lit := 0
		for _, on := range l {
			if on {
				lit++
			}
		}
		if lit == 0 || lit == PanelPixels {
			t.Errorf("Vowel %c has %d lit cells", VowelNames[i], lit)
		}
	}

	// I is a single vertical stroke down the middle column
	for i, on := range LetterI {
		want := i%PanelWidth == 2
		if on != want {
			t.Errorf("LetterI cell %d = %v, want %v", i, on, want)
		}
	}
}
