package core

// Hardware bundles the long-lived peripheral handles of the board.
// Each handle has a single owner in the pipeline.
type Hardware struct {
	GPIO    GPIODriver   // keypad lines, owned by the Scanner
	Audio   AudioDriver  // buzzer, owned by the Tone generator
	Pixels  PixelChannel // LED panel, owned by the Renderer
	Reboot  RebootFunc
	Sleep   Sleeper // nil means SystemSleeper
	ClockHz uint32  // PWM source clock
}

// Pins is the board wiring
type Pins struct {
	Matrix KeyMatrix
	Buzzer PWMPin
	LED    GPIOPin // data line of the LED panel
}

// DefaultPins returns the board wiring: keypad per DefaultKeyMatrix, buzzer
// on GPIO 21, LED panel data on GPIO 7
func DefaultPins() Pins {
	return Pins{
		Matrix: DefaultKeyMatrix(),
		Buzzer: DefaultBuzzerPin,
		LED:    7,
	}
}

// Setup validates the wiring, initializes the keypad and buzzer and returns
// the control loop along with its renderer
func Setup(hw Hardware, pins Pins) (*Loop, *Renderer, error) {
	if err := pins.Matrix.Validate(); err != nil {
		return nil, nil, err
	}

	sleep := hw.Sleep
	if sleep == nil {
		sleep = SystemSleeper
	}

	scanner := NewScanner(hw.GPIO, pins.Matrix)
	if err := scanner.Init(); err != nil {
		return nil, nil, err
	}

	tone := NewTone(hw.Audio, pins.Buzzer, hw.ClockHz, sleep)
	if err := tone.Init(); err != nil {
		return nil, nil, err
	}

	reboot := hw.Reboot
	if reboot == nil {
		reboot = func() {}
	}

	renderer := NewRenderer(hw.Pixels, sleep)
	dispatcher := NewDispatcher(renderer, tone, reboot, sleep)

	DebugPrintln("ready: press keys on the keypad")
	return NewLoop(scanner, dispatcher, sleep), renderer, nil
}
