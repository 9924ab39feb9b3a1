//go:build rp2040

package main

import (
	"context"
	"machine"
	"time"

	"vogal/core"
	ledpio "vogal/targets/pio"
)

// ledBlink blinks the on-board LED a number of times for diagnostics
func ledBlink(count int) {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for i := 0; i < count; i++ {
		led.High()
		time.Sleep(150 * time.Millisecond)
		led.Low()
		time.Sleep(150 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond) // Pause after blink sequence
}

// halt reports a fatal init error forever
func halt(code int, err error) {
	core.DebugPrintln("fatal: " + err.Error())
	for {
		ledBlink(code)
	}
}

func main() {
	// Console first so init failures are visible
	InitConsole()
	InitClock()
	core.SetDebugWriter(consoleWriter)

	pins := core.DefaultPins()
	mode := GetMode()

	// LED panel on a PIO state machine
	leds, err := ledpio.NewWS2812Channel(machine.Pin(pins.LED))
	if err != nil {
		halt(2, err)
	}

	loop, renderer, err := core.Setup(core.Hardware{
		GPIO:    NewRPGPIODriver(),
		Audio:   NewRP2040AudioDriver(),
		Pixels:  leds,
		Reboot:  enterBootloader,
		Sleep:   core.SystemSleeper,
		ClockHz: PWMClockHz(),
	}, pins)
	if err != nil {
		halt(3, err)
	}
	renderer.SetGlyphMode(mode.Glyphs)

	// Only returns if the bootloader hand-over failed
	err = loop.Run(context.Background())
	halt(4, err)
}

// enterBootloader reboots into the USB mass-storage bootloader for reflashing
func enterBootloader() {
	machine.EnterBootloader()
}
