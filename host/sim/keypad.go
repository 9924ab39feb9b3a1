// Package sim emulates the keypad, LED panel and buzzer of the board so the
// firmware core can run on a host.
package sim

import (
	"fmt"
	"sync"

	"vogal/core"
)

// press is a key held down on the emulated keypad
type press struct {
	row, col  core.GPIOPin
	holdReads int
}

// Keypad emulates a matrix keypad at the electrical level: a pressed key pulls
// its column low while its row is driven low. Presses are queued and each one
// is released after HoldReads low reads of its column.
type Keypad struct {
	mu      sync.Mutex
	matrix  core.KeyMatrix
	levels  map[core.GPIOPin]bool
	outputs map[core.GPIOPin]bool
	inputs  map[core.GPIOPin]bool
	queue   []*press

	// HoldReads is the number of low reads a queued press lasts, at least 1
	HoldReads int
}

var _ core.GPIODriver = (*Keypad)(nil)

// NewKeypad creates an idle keypad for matrix
func NewKeypad(matrix core.KeyMatrix) *Keypad {
	return &Keypad{
		matrix:    matrix,
		levels:    make(map[core.GPIOPin]bool),
		outputs:   make(map[core.GPIOPin]bool),
		inputs:    make(map[core.GPIOPin]bool),
		HoldReads: 3,
	}
}

// Press queues a press of k. It fails if k is not on the layout.
func (kp *Keypad) Press(k core.Key) error {
	kp.mu.Lock()
	defer kp.mu.Unlock()

	hold := kp.HoldReads
	if hold < 1 {
		hold = 1
	}
	for r := range kp.matrix.Layout {
		for c, lk := range kp.matrix.Layout[r] {
			if lk == k {
				kp.queue = append(kp.queue, &press{
					row:       kp.matrix.Rows[r],
					col:       kp.matrix.Cols[c],
					holdReads: hold,
				})
				return nil
			}
		}
	}
	return fmt.Errorf("key %q is not on the keypad", byte(k))
}

// Pending returns the number of presses not yet released
func (kp *Keypad) Pending() int {
	kp.mu.Lock()
	defer kp.mu.Unlock()
	return len(kp.queue)
}

func (kp *Keypad) ConfigureOutput(pin core.GPIOPin) error {
	kp.mu.Lock()
	defer kp.mu.Unlock()
	if kp.inputs[pin] {
		return fmt.Errorf("pin %d already configured as input", pin)
	}
	kp.outputs[pin] = true
	kp.levels[pin] = false
	return nil
}

func (kp *Keypad) ConfigureInputPullUp(pin core.GPIOPin) error {
	kp.mu.Lock()
	defer kp.mu.Unlock()
	if kp.outputs[pin] {
		return fmt.Errorf("pin %d already configured as output", pin)
	}
	kp.inputs[pin] = true
	return nil
}

func (kp *Keypad) SetPin(pin core.GPIOPin, value bool) error {
	kp.mu.Lock()
	defer kp.mu.Unlock()
	if !kp.outputs[pin] {
		return fmt.Errorf("pin %d is not an output", pin)
	}
	kp.levels[pin] = value
	return nil
}

// GetPin reads a column. Only the head of the press queue is on the keypad.
func (kp *Keypad) GetPin(pin core.GPIOPin) (bool, error) {
	kp.mu.Lock()
	defer kp.mu.Unlock()
	if !kp.inputs[pin] {
		return false, fmt.Errorf("pin %d is not an input", pin)
	}
	if len(kp.queue) == 0 {
		return true, nil
	}

	p := kp.queue[0]
	if p.col != pin || kp.levels[p.row] {
		return true, nil
	}
	if p.holdReads <= 0 {
		kp.queue = kp.queue[1:]
		return true, nil
	}
	p.holdReads--
	return false, nil
}
