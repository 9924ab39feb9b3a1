//go:build rp2040

package pio

// WS2812 LED channel using tinygo-org/pio package
// The state machine shifts out the top 24 bits of every word, MSB first,
// as 800kHz NRZ pulses on a side-set pin.

import (
	"errors"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

const ws2812Origin = 0 // Load at offset 0 for correct jump addresses

// ErrNoStateMachine is returned when every PIO state machine is taken
var ErrNoStateMachine = errors.New("no free PIO state machine")

// buildWS2812Program creates the WS2812 PIO program using AssemblerV0
func buildWS2812Program() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 1}
	return []uint16{
		// .wrap_target
		// bitloop:
		asm.Out(rp2pio.OutDestX, 1).Side(0).Delay(ws2812T3 - 1).Encode(), // 0: out x, 1 side 0
		asm.Jmp(3, rp2pio.JmpXZero).Side(1).Delay(ws2812T1 - 1).Encode(),  // 1: jmp !x do_zero side 1
		asm.Jmp(0, rp2pio.JmpAlways).Side(1).Delay(ws2812T2 - 1).Encode(), // 2: jmp bitloop side 1
		// do_zero:
		asm.Nop().Side(0).Delay(ws2812T2 - 1).Encode(), // 3: nop side 0
		// .wrap
	}
}

// WS2812Channel is a PixelChannel backed by a PIO state machine
type WS2812Channel struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	pin    machine.Pin
	offset uint8
}

// NewWS2812Channel claims a state machine and starts streaming on pin
func NewWS2812Channel(pin machine.Pin) (*WS2812Channel, error) {
	pioNum, smNum, ok := allocatePIO()
	if !ok {
		return nil, ErrNoStateMachine
	}

	pioHW := rp2pio.PIO0
	if pioNum == 1 {
		pioHW = rp2pio.PIO1
	}

	c := &WS2812Channel{
		pio: pioHW,
		sm:  pioHW.StateMachine(smNum),
		pin: pin,
	}
	if err := c.init(); err != nil {
		releasePIO(pioNum, smNum)
		return nil, err
	}
	return c, nil
}

func (c *WS2812Channel) init() error {
	// Claim the state machine first
	c.sm.TryClaim()

	program := buildWS2812Program()
	offset, err := c.pio.AddProgram(program, ws2812Origin)
	if err != nil {
		return err
	}
	c.offset = offset

	c.pin.Configure(machine.PinConfig{Mode: c.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSidesetParams(1, false, false)
	cfg.SetSidesetPins(c.pin)

	// Shift left, autopull after 24 bits: the low byte of every word is dropped
	cfg.SetOutShift(false, true, ws2812Bits)
	cfg.SetFIFOJoin(rp2pio.FifoJoinTx)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	whole, frac := ws2812ClockDiv(machine.CPUFrequency())
	cfg.SetClkDivIntFrac(whole, frac)

	// Initialize state machine FIRST, then pin direction
	c.sm.Init(offset, cfg)
	c.sm.SetPindirsConsecutive(c.pin, 1, true)
	c.sm.SetPinsConsecutive(c.pin, 1, false)

	c.sm.SetEnabled(true)
	return nil
}

// Put queues one pixel word, waiting while the TX FIFO is full
func (c *WS2812Channel) Put(word uint32) {
	for c.sm.IsTxFIFOFull() {
		// Busy wait - one word drains in 30us
	}
	c.sm.TxPut(word)
}
