package core

// PWMPin identifies a hardware pin capable of PWM output
type PWMPin uint32

// PWMValue is the compare level of a PWM channel (0 to resolution)
type PWMValue uint32

// AudioDriver is the abstract PWM interface the tone generator drives.
// The channel is a live hardware parameter: every setting takes effect
// immediately and holds until changed. There is no queueing.
type AudioDriver interface {
	// ConfigureAudio routes a pin to its PWM slice, sets the counter wrap so that
	// one period spans resolution counts, and enables the slice
	ConfigureAudio(pin PWMPin, resolution uint32) error

	// SetClockDivider sets the integer clock divider of the pin's slice
	SetClockDivider(pin PWMPin, div uint32) error

	// SetDutyCycle sets the compare level for a pin
	// value: 0 (silent) to resolution (always high)
	SetDutyCycle(pin PWMPin, value PWMValue) error
}
