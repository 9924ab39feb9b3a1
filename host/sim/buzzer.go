package sim

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"vogal/core"
)

// ToneEvent is a tone heard on the emulated buzzer
type ToneEvent struct {
	FreqHz  uint32
	Divider uint32
}

// Buzzer emulates a PWM slice driving a piezo buzzer
type Buzzer struct {
	mu         sync.Mutex
	log        zerolog.Logger
	clockHz    uint32
	pin        core.PWMPin
	resolution uint32
	div        uint32
	duty       core.PWMValue
	enabled    bool
	tones      []ToneEvent
}

var _ core.AudioDriver = (*Buzzer)(nil)

// NewBuzzer creates a buzzer fed by a PWM source clock of clockHz
func NewBuzzer(clockHz uint32, log zerolog.Logger) *Buzzer {
	return &Buzzer{clockHz: clockHz, log: log, div: 1}
}

func (bz *Buzzer) ConfigureAudio(pin core.PWMPin, resolution uint32) error {
	bz.mu.Lock()
	defer bz.mu.Unlock()
	if resolution == 0 {
		return fmt.Errorf("pwm resolution must be positive")
	}
	bz.pin = pin
	bz.resolution = resolution
	bz.enabled = true
	bz.log.Debug().Uint32("pin", uint32(pin)).Uint32("wrap", resolution-1).Msg("pwm slice enabled")
	return nil
}

func (bz *Buzzer) SetClockDivider(pin core.PWMPin, div uint32) error {
	bz.mu.Lock()
	defer bz.mu.Unlock()
	if err := bz.check(pin); err != nil {
		return err
	}
	bz.div = div
	return nil
}

func (bz *Buzzer) SetDutyCycle(pin core.PWMPin, value core.PWMValue) error {
	bz.mu.Lock()
	defer bz.mu.Unlock()
	if err := bz.check(pin); err != nil {
		return err
	}

	wasOn := bz.duty > 0
	bz.duty = value
	if value == 0 || wasOn {
		return nil
	}

	ev := ToneEvent{Divider: bz.div}
	if bz.div > 0 {
		ev.FreqHz = bz.clockHz / (bz.div * bz.resolution)
	}
	bz.tones = append(bz.tones, ev)
	bz.log.Info().Uint32("freq_hz", ev.FreqHz).Uint32("div", ev.Divider).Msg("buzzer on")
	return nil
}

func (bz *Buzzer) check(pin core.PWMPin) error {
	if !bz.enabled {
		return fmt.Errorf("pwm not configured")
	}
	if pin != bz.pin {
		return fmt.Errorf("pin %d has no audio slice", pin)
	}
	return nil
}

// Sounding reports whether the buzzer is currently driven
func (bz *Buzzer) Sounding() bool {
	bz.mu.Lock()
	defer bz.mu.Unlock()
	return bz.duty > 0
}

// Tones returns every tone started so far
func (bz *Buzzer) Tones() []ToneEvent {
	bz.mu.Lock()
	defer bz.mu.Unlock()
	out := make([]ToneEvent, len(bz.tones))
	copy(out, bz.tones)
	return out
}
