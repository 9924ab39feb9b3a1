//go:build rp2040

package main

import (
	"device/rp"
	"machine"
	"runtime/volatile"
	"unsafe"

	"vogal/core"
)

// pwmPeripheral is an interface for PWM hardware peripherals
// This abstracts over TinyGo's unexported *pwmGroup type
type pwmPeripheral interface {
	Channel(pin machine.Pin) (uint8, error)
	SetTop(top uint32)
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

// Each PWM slice has 5 registers: CSR, DIV, CTR, CC, TOP
const pwmSliceStride = 5 * 4

// maxDivInt is the largest integer part of the 8.4 fixed-point divider
const maxDivInt = 0xFF

// RP2040AudioDriver implements the AudioDriver interface for RP2040
// The divider is written straight to the slice DIV register since TinyGo only
// exposes period-based configuration.
type RP2040AudioDriver struct {
	// Key: pin number, Value: PWM channel
	channels map[core.PWMPin]uint8

	// Key: slice number (0-7), Value: PWM peripheral
	peripherals map[uint8]pwmPeripheral
}

// NewRP2040AudioDriver creates a new RP2040 audio driver
func NewRP2040AudioDriver() *RP2040AudioDriver {
	return &RP2040AudioDriver{
		channels:    make(map[core.PWMPin]uint8),
		peripherals: make(map[uint8]pwmPeripheral),
	}
}

// pwmSlice maps a GPIO to its PWM slice
// RP2040: GPIO pin N maps to slice (N >> 1) & 0x7, channel N & 1
func pwmSlice(pin core.PWMPin) uint8 {
	return uint8((uint32(pin) >> 1) & 0x7)
}

// ConfigureAudio routes the pin to PWM and sets the slice wrap to resolution counts
func (d *RP2040AudioDriver) ConfigureAudio(pin core.PWMPin, resolution uint32) error {
	sliceNum := pwmSlice(pin)

	pwm, exists := d.peripherals[sliceNum]
	if !exists {
		pwm = getPWMPeripheral(sliceNum)
		d.peripherals[sliceNum] = pwm
	}

	channel, err := pwm.Channel(machine.Pin(pin))
	if err != nil {
		return err
	}
	d.channels[pin] = channel

	pwm.SetTop(resolution - 1)
	pwm.Set(channel, 0)
	pwm.Enable(true)
	return nil
}

// SetClockDivider writes the integer part of the slice clock divider
func (d *RP2040AudioDriver) SetClockDivider(pin core.PWMPin, div uint32) error {
	if _, exists := d.channels[pin]; !exists {
		return ErrNotConfigured
	}
	if div > maxDivInt {
		div = maxDivInt
	}

	reg := (*volatile.Register32)(unsafe.Pointer(uintptr(unsafe.Pointer(&rp.PWM.CH0_DIV)) + uintptr(pwmSlice(pin))*pwmSliceStride))
	reg.Set(div << rp.PWM_CH0_DIV_INT_Pos)
	return nil
}

// SetDutyCycle sets the compare level of the pin's channel
func (d *RP2040AudioDriver) SetDutyCycle(pin core.PWMPin, value core.PWMValue) error {
	channel, exists := d.channels[pin]
	if !exists {
		return ErrNotConfigured
	}

	d.peripherals[pwmSlice(pin)].Set(channel, uint32(value))
	return nil
}

// getPWMPeripheral returns the PWM peripheral for a given slice number
// RP2040 has 8 PWM slices: PWM0-PWM7
func getPWMPeripheral(sliceNum uint8) pwmPeripheral {
	switch sliceNum {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		// Should never happen with proper masking
		return machine.PWM0
	}
}
