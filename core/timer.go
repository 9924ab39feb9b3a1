package core

import "time"

// Fixed delays of the control pipeline
const (
	IdleDelay      = 100 * time.Millisecond // between control loop iterations
	RebootDelay    = 100 * time.Millisecond // pause before handing over to the bootloader
	BeepGap        = 200 * time.Millisecond // silence after each beep
	NoteGap        = 150 * time.Millisecond // silence after each melody note
	RevealStep     = 100 * time.Millisecond // per-cell step of the reveal animation
	RevealHold     = 500 * time.Millisecond // hold after the reveal animation
	GlyphHold      = 25*RevealStep + RevealHold
	IntroBeepCount = 2
	IntroBeepTime  = 200 * time.Millisecond
)

// Sleeper blocks the caller for a duration.
// Hardware builds use time.Sleep; tests substitute a recording fake.
type Sleeper interface {
	Sleep(d time.Duration)
}

// SleeperFunc adapts a function to the Sleeper interface
type SleeperFunc func(d time.Duration)

// Sleep calls f(d)
func (f SleeperFunc) Sleep(d time.Duration) {
	f(d)
}

// SystemSleeper blocks with time.Sleep
var SystemSleeper Sleeper = SleeperFunc(time.Sleep)
