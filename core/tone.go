// Buzzer tone generation
// Pitch is set through the PWM clock divider, loudness is a fixed 50% duty.
package core

import "time"

const (
	// PWMResolution is the number of counts in one PWM period
	PWMResolution = 4096

	// HalfDuty drives the buzzer at 50%
	HalfDuty PWMValue = PWMResolution / 2

	// DefaultBuzzerFreq is the beep pitch in Hz
	DefaultBuzzerFreq = 4000

	// DefaultBuzzerPin is the PWM pin the buzzer is soldered to
	DefaultBuzzerPin PWMPin = 21
)

// Note is one entry of a melody
type Note struct {
	FreqHz   uint32
	Duration time.Duration
}

// Melody is the C major scale played at the end of the intro
var Melody = [8]Note{
	{262, 300 * time.Millisecond}, // C4
	{294, 300 * time.Millisecond}, // D4
	{330, 300 * time.Millisecond}, // E4
	{349, 300 * time.Millisecond}, // F4
	{392, 300 * time.Millisecond}, // G4
	{440, 300 * time.Millisecond}, // A4
	{494, 300 * time.Millisecond}, // B4
	{523, 600 * time.Millisecond}, // C5
}

// ClockDivider returns the integer PWM clock divider for a pitch:
// clockHz / (freqHz * PWMResolution), truncated.
// Returns 0 for a zero frequency; otherwise at least 1.
func ClockDivider(clockHz, freqHz uint32) uint32 {
	if freqHz == 0 {
		return 0
	}
	div := uint64(clockHz) / (uint64(freqHz) * PWMResolution)
	if div == 0 {
		div = 1
	}
	return uint32(div)
}

// Tone is the only writer of the audio channel
type Tone struct {
	audio   AudioDriver
	pin     PWMPin
	clockHz uint32
	sleep   Sleeper
}

// NewTone creates a tone generator for a buzzer pin. clockHz is the PWM
// source clock (the system clock on RP2040).
func NewTone(audio AudioDriver, pin PWMPin, clockHz uint32, sleep Sleeper) *Tone {
	return &Tone{
		audio:   audio,
		pin:     pin,
		clockHz: clockHz,
		sleep:   sleep,
	}
}

// Init configures the buzzer pin at DefaultBuzzerFreq, silent
func (t *Tone) Init() error {
	if err := t.audio.ConfigureAudio(t.pin, PWMResolution); err != nil {
		return err
	}
	if err := t.setFrequency(DefaultBuzzerFreq); err != nil {
		return err
	}
	return t.audio.SetDutyCycle(t.pin, 0)
}

// Beep sounds freqHz for d, then stays silent for BeepGap, times times.
// Blocks until done.
func (t *Tone) Beep(times int, freqHz uint32, d time.Duration) error {
	if err := t.setFrequency(freqHz); err != nil {
		return err
	}
	for i := 0; i < times; i++ {
		if err := t.pulse(d, BeepGap); err != nil {
			return err
		}
	}
	return nil
}

// PlayMelody plays every note of Melody in order with NoteGap between notes.
// Blocks until done; it cannot be interrupted.
func (t *Tone) PlayMelody() error {
	for _, n := range Melody {
		if err := t.PlayNote(n); err != nil {
			return err
		}
	}
	return nil
}

// PlayNote plays a single note followed by NoteGap
func (t *Tone) PlayNote(n Note) error {
	if n.FreqHz == 0 {
		t.sleep.Sleep(n.Duration + NoteGap)
		return nil
	}
	if err := t.setFrequency(n.FreqHz); err != nil {
		return err
	}
	return t.pulse(n.Duration, NoteGap)
}

func (t *Tone) setFrequency(freqHz uint32) error {
	div := ClockDivider(t.clockHz, freqHz)
	if div == 0 {
		return nil
	}
	return t.audio.SetClockDivider(t.pin, div)
}

// pulse drives 50% duty for on, then silence for off
func (t *Tone) pulse(on, off time.Duration) error {
	if err := t.audio.SetDutyCycle(t.pin, HalfDuty); err != nil {
		return err
	}
	t.sleep.Sleep(on)
	if err := t.audio.SetDutyCycle(t.pin, 0); err != nil {
		return err
	}
	t.sleep.Sleep(off)
	return nil
}
