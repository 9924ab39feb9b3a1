//go:build rp2040

package main

import (
	"errors"
	"machine"

	"vogal/core"
)

// ErrNotConfigured is returned when reading a pin that was never configured
var ErrNotConfigured = errors.New("pin not configured")

// RPGPIODriver implements the GPIODriver interface for RP2040
type RPGPIODriver struct {
	// Track configured pins to prevent conflicts
	configuredPins map[core.GPIOPin]machine.Pin
}

// NewRPGPIODriver creates a new RP2040 GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
	}
}

// ConfigureOutput configures a pin as a digital output
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if _, exists := d.configuredPins[pin]; exists {
		// Already configured, this is OK
		return nil
	}

	// RP2040 GPIO numbers map directly to machine.Pin
	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.configuredPins[pin] = machinePin

	return nil
}

// ConfigureInputPullUp configures a pin as an input with pull-up resistor
func (d *RPGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	if _, exists := d.configuredPins[pin]; exists {
		return nil
	}

	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	d.configuredPins[pin] = machinePin

	return nil
}

// SetPin sets the pin to high (true) or low (false)
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		// Pin isn't configured - configure it first
		if err := d.ConfigureOutput(pin); err != nil {
			return err
		}
		machinePin = d.configuredPins[pin]
	}

	machinePin.Set(value)
	return nil
}

// GetPin reads the current pin state
func (d *RPGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		return false, ErrNotConfigured
	}

	return machinePin.Get(), nil
}
