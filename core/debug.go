package core

// DebugWriter is a function type for writing console messages
type DebugWriter func(string)

var (
	// debugPrintln is the global console print function (set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether console output is active
	debugEnabled = true
)

// SetDebugWriter sets the platform-specific console output function
// This allows platforms to redirect output to UART, USB, a host logger, etc.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// SetDebugEnabled enables or disables console output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// DebugPrintln writes a console message using the platform-specific writer.
// Best effort: the core never reads anything back.
func DebugPrintln(msg string) {
	if debugEnabled {
		debugPrintln(msg)
	}
}
