package pio

// Bit timing in state machine cycles: T1 high for both bit values,
// T2 high only for a one, T3 low for both
const (
	ws2812T1 = 2
	ws2812T2 = 5
	ws2812T3 = 3

	ws2812CyclesPerBit = ws2812T1 + ws2812T2 + ws2812T3
	ws2812Freq         = 800000
	ws2812Bits         = 24
)

// ws2812ClockDiv returns the 16.8 fixed-point divider for 800kHz bits
func ws2812ClockDiv(sysHz uint32) (uint16, uint8) {
	div := uint64(sysHz) * 256 / (ws2812Freq * ws2812CyclesPerBit)
	return uint16(div >> 8), uint8(div)
}
