//go:build rp2040

package main

import (
	"machine"
	"runtime/volatile"
	"unsafe"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x24 // Raw timer high word
	timerTIMERAWL = timerBase + 0x28 // Raw timer low word
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

	bootTime uint64
)

// InitClock records the boot time of the 1MHz hardware timer
func InitClock() {
	bootTime = GetHardwareUptime()
}

// GetHardwareUptime reads the full 64-bit RP2040 microsecond timer
func GetHardwareUptime() uint64 {
	// Must read high first, then low, then high again to detect rollover
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()

		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// UptimeMillis returns milliseconds since InitClock
func UptimeMillis() uint32 {
	return uint32((GetHardwareUptime() - bootTime) / 1000)
}

// PWMClockHz returns the PWM source clock, which is clk_sys on RP2040
func PWMClockHz() uint32 {
	return machine.CPUFrequency()
}
