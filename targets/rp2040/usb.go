//go:build rp2040

package main

import (
	"machine"
)

// InitConsole initializes the USB serial console
// TinyGo automatically sets up USB CDC-ACM on RP2040
func InitConsole() {
	// machine.Serial is USB CDC on RP2040, not UART
	_ = machine.Serial.Configure(machine.UARTConfig{})
}

// consoleWriter writes one console line prefixed with the uptime in
// milliseconds, e.g. "[1520] key pressed: B"
func consoleWriter(msg string) {
	_, _ = machine.Serial.Write([]byte("[" + utoa(UptimeMillis()) + "] " + msg + "\r\n"))
}

// utoa converts a uint32 to string without importing strconv (for embedded)
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}
