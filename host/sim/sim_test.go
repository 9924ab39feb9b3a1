package sim

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vogal/core"
)

const testClockHz = 125000000

type board struct {
	keypad   *Keypad
	renderer *core.Renderer
	strip    *Strip
	buzzer   *Buzzer
	loop     *core.Loop
	boots    int
}

func newBoard(t *testing.T, out *bytes.Buffer) *board {
	t.Helper()
	pins := core.DefaultPins()
	b := &board{
		keypad: NewKeypad(pins.Matrix),
		buzzer: NewBuzzer(testClockHz, zerolog.Nop()),
	}
	if out != nil {
		b.strip = NewStrip(out)
	} else {
		b.strip = NewStrip(nil)
	}

	loop, r, err := core.Setup(core.Hardware{
		GPIO:    b.keypad,
		Audio:   b.buzzer,
		Pixels:  b.strip,
		Reboot:  func() { b.boots++ },
		Sleep:   ScaledSleeper{},
		ClockHz: testClockHz,
	}, pins)
	require.NoError(t, err)
	b.loop = loop
	b.renderer = r
	return b
}

func TestKeypadPressUnknownKey(t *testing.T) {
	kp := NewKeypad(core.DefaultKeyMatrix())
	assert.Error(t, kp.Press('Z'))
	assert.NoError(t, kp.Press('#'))
	assert.Equal(t, 1, kp.Pending())
}

func TestKeypadRejectsUnconfiguredPins(t *testing.T) {
	kp := NewKeypad(core.DefaultKeyMatrix())
	assert.Error(t, kp.SetPin(17, false))
	_, err := kp.GetPin(20)
	assert.Error(t, err)

	require.NoError(t, kp.ConfigureOutput(17))
	assert.Error(t, kp.ConfigureInputPullUp(17))
}

func TestKeypadScansQueuedPresses(t *testing.T) {
	b := newBoard(t, nil)
	require.NoError(t, b.keypad.Press('6'))
	require.NoError(t, b.keypad.Press('*'))

	key, err := b.loop.Step()
	require.NoError(t, err)
	assert.Equal(t, core.Key('6'), key)

	key, err = b.loop.Step()
	require.NoError(t, err)
	assert.Equal(t, core.Key('*'), key)

	key, err = b.loop.Step()
	require.NoError(t, err)
	assert.Equal(t, core.KeyNone, key)
	assert.Zero(t, b.keypad.Pending())
}

func TestFillKeysLatchSolidFrames(t *testing.T) {
	var out bytes.Buffer
	b := newBoard(t, &out)

	for _, k := range []core.Key{'B', 'C', 'A'} {
		require.NoError(t, b.keypad.Press(k))
		_, err := b.loop.Step()
		require.NoError(t, err)
	}

	frames := b.strip.Frames()
	require.Len(t, frames, 3)
	assert.Equal(t, core.SolidFrame(core.ColorBlue), frames[0])
	assert.Equal(t, core.SolidFrame(core.ColorRedHalf), frames[1])
	assert.Equal(t, core.SolidFrame(core.ColorOff), frames[2])

	assert.Contains(t, out.String(), "B B B B B\n")
	assert.Contains(t, out.String(), "R R R R R\n")
	assert.Contains(t, out.String(), ". . . . .\n")
	assert.False(t, b.buzzer.Sounding())
}

func TestIntroSequence(t *testing.T) {
	b := newBoard(t, nil)
	require.NoError(t, b.keypad.Press('1'))
	_, err := b.loop.Step()
	require.NoError(t, err)

	frames := b.strip.Frames()
	require.Len(t, frames, len(core.Vowels))
	for i, l := range core.Vowels {
		assert.Equal(t, core.LetterFrame(l), frames[i], "vowel %c", core.VowelNames[i])
	}

	tones := b.buzzer.Tones()
	require.Len(t, tones, core.IntroBeepCount+len(core.Melody))
	beepDiv := core.ClockDivider(testClockHz, core.DefaultBuzzerFreq)
	assert.Equal(t, beepDiv, tones[0].Divider)
	assert.Equal(t, beepDiv, tones[1].Divider)
	for i, n := range core.Melody {
		assert.Equal(t, core.ClockDivider(testClockHz, n.FreqHz), tones[core.IntroBeepCount+i].Divider)
	}
	assert.False(t, b.buzzer.Sounding())
}

func TestRevealModeLatchesEveryStep(t *testing.T) {
	b := newBoard(t, nil)
	b.renderer.SetGlyphMode(core.GlyphReveal)

	require.NoError(t, b.keypad.Press('1'))
	_, err := b.loop.Step()
	require.NoError(t, err)

	frames := b.strip.Frames()
	require.Len(t, frames, len(core.Vowels)*core.PanelPixels)
	assert.Equal(t, core.LetterFrame(core.LetterU), frames[len(frames)-1])
}

func TestRebootStopsLoop(t *testing.T) {
	b := newBoard(t, nil)
	require.NoError(t, b.keypad.Press('D'))
	require.NoError(t, b.keypad.Press('0'))

	err := b.loop.Run(context.Background())
	assert.ErrorIs(t, err, core.ErrRebootRequested)
	assert.Equal(t, 1, b.boots)
	assert.Equal(t, core.SolidFrame(core.ColorGreenHalf), b.strip.Current())
}

func TestStripLatchOrder(t *testing.T) {
	s := NewStrip(nil)
	for k := 0; k < core.PanelPixels; k++ {
		s.Put(uint32(k) << 8)
	}
	f := s.Current()
	assert.Equal(t, core.Color(0), f[core.PanelPixels-1])
	assert.Equal(t, core.Color(24<<8), f[0])

	// A partial frame does not latch
	s.Put(1)
	assert.Len(t, s.Frames(), 1)
}

func TestRenderCells(t *testing.T) {
	f := core.LetterFrame(core.LetterI)
	assert.Equal(t, ". . R . .\n. . R . .\n. . R . .\n. . R . .\n. . R . .\n\n", Render(f))

	// The low byte never reaches the panel
	assert.Equal(t, byte('.'), cell(core.Color(0x10)))
	assert.Equal(t, byte('B'), cell(core.ColorWhiteDim))
	assert.Equal(t, byte('G'), cell(core.ColorGreenHalf))
}

func TestBuzzerRequiresConfigure(t *testing.T) {
	bz := NewBuzzer(testClockHz, zerolog.Nop())
	assert.Error(t, bz.SetDutyCycle(core.DefaultBuzzerPin, core.HalfDuty))

	require.NoError(t, bz.ConfigureAudio(core.DefaultBuzzerPin, core.PWMResolution))
	assert.Error(t, bz.SetClockDivider(3, 7))
	require.NoError(t, bz.SetClockDivider(core.DefaultBuzzerPin, 7))
	require.NoError(t, bz.SetDutyCycle(core.DefaultBuzzerPin, core.HalfDuty))

	tones := bz.Tones()
	require.Len(t, tones, 1)
	assert.Equal(t, uint32(testClockHz/(7*core.PWMResolution)), tones[0].FreqHz)
}
