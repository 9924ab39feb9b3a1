package core

import (
	"time"
)

// recorder collects the order of hardware events across all mocks
type recorder struct {
	events []string
}

func (r *recorder) add(ev string) {
	if r != nil {
		r.events = append(r.events, ev)
	}
}

// mockPress is a key held down on the mock keypad
type mockPress struct {
	row, col  GPIOPin
	holdReads int // low reads of the column left before the key is released
}

// MockGPIODriver emulates a 4x4 matrix electrically: a pressed key pulls its
// column low only while its row is driven low
type MockGPIODriver struct {
	levels   map[GPIOPin]bool
	outputs  map[GPIOPin]bool
	pullups  map[GPIOPin]bool
	reads    map[GPIOPin]int
	pressed  []*mockPress
	released int
	maxLow   int
	setErr   error
	getErr   error
}

func NewMockGPIODriver() *MockGPIODriver {
	return &MockGPIODriver{
		levels:  make(map[GPIOPin]bool),
		outputs: make(map[GPIOPin]bool),
		pullups: make(map[GPIOPin]bool),
		reads:   make(map[GPIOPin]int),
	}
}

func (m *MockGPIODriver) ConfigureOutput(pin GPIOPin) error {
	m.outputs[pin] = true
	m.levels[pin] = false
	return nil
}

func (m *MockGPIODriver) ConfigureInputPullUp(pin GPIOPin) error {
	m.pullups[pin] = true
	return nil
}

func (m *MockGPIODriver) SetPin(pin GPIOPin, value bool) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.levels[pin] = value

	low := 0
	for p := range m.outputs {
		if !m.levels[p] {
			low++
		}
	}
	if low > m.maxLow {
		m.maxLow = low
	}
	return nil
}

func (m *MockGPIODriver) GetPin(pin GPIOPin) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	m.reads[pin]++
	for i, p := range m.pressed {
		if p.col != pin || m.levels[p.row] {
			continue
		}
		if p.holdReads == 0 {
			m.pressed = append(m.pressed[:i], m.pressed[i+1:]...)
			m.released++
			return true, nil
		}
		p.holdReads--
		return false, nil
	}
	return true, nil
}

// press holds the key at (r, c) of matrix for holdReads low reads
func (m *MockGPIODriver) press(matrix KeyMatrix, r, c, holdReads int) {
	m.pressed = append(m.pressed, &mockPress{
		row:       matrix.Rows[r],
		col:       matrix.Cols[c],
		holdReads: holdReads,
	})
}

// rowsIdle reports whether every row of matrix is at its inactive level
func (m *MockGPIODriver) rowsIdle(matrix KeyMatrix) bool {
	for _, r := range matrix.Rows {
		if !m.levels[r] {
			return false
		}
	}
	return true
}

// MockPixelChannel records every word put on the LED channel
type MockPixelChannel struct {
	words []uint32
	rec   *recorder
}

func (c *MockPixelChannel) Put(word uint32) {
	c.words = append(c.words, word)
	c.rec.add("led")
}

// audioEvent is one call on the mock audio driver
type audioEvent struct {
	kind  string // "div" or "duty"
	value uint32
}

// MockAudioDriver records divider and duty changes
type MockAudioDriver struct {
	pin        PWMPin
	resolution uint32
	events     []audioEvent
	rec        *recorder
	err        error
}

func (a *MockAudioDriver) ConfigureAudio(pin PWMPin, resolution uint32) error {
	a.pin = pin
	a.resolution = resolution
	return a.err
}

func (a *MockAudioDriver) SetClockDivider(pin PWMPin, div uint32) error {
	if a.err != nil {
		return a.err
	}
	a.events = append(a.events, audioEvent{"div", div})
	a.rec.add("div:" + utoa(div))
	return nil
}

func (a *MockAudioDriver) SetDutyCycle(pin PWMPin, value PWMValue) error {
	if a.err != nil {
		return a.err
	}
	a.events = append(a.events, audioEvent{"duty", uint32(value)})
	a.rec.add("duty:" + utoa(uint32(value)))
	return nil
}

// pulses counts transitions to HalfDuty
func (a *MockAudioDriver) pulses() int {
	n := 0
	for _, ev := range a.events {
		if ev.kind == "duty" && ev.value == uint32(HalfDuty) {
			n++
		}
	}
	return n
}

// MockSleeper records requested sleeps without blocking
type MockSleeper struct {
	sleeps []time.Duration
	rec    *recorder
}

func (s *MockSleeper) Sleep(d time.Duration) {
	s.sleeps = append(s.sleeps, d)
	s.rec.add("sleep")
}

func (s *MockSleeper) total() time.Duration {
	var sum time.Duration
	for _, d := range s.sleeps {
		sum += d
	}
	return sum
}

const testClockHz = 125000000

// testRig wires the full pipeline over mocks
type testRig struct {
	gpio     *MockGPIODriver
	pixels   *MockPixelChannel
	audio    *MockAudioDriver
	sleeper  *MockSleeper
	rec      *recorder
	reboots  int
	loop     *Loop
	renderer *Renderer
}

func newTestRig() (*testRig, error) {
	rec := &recorder{}
	rig := &testRig{
		gpio:    NewMockGPIODriver(),
		pixels:  &MockPixelChannel{rec: rec},
		audio:   &MockAudioDriver{rec: rec},
		sleeper: &MockSleeper{rec: rec},
		rec:     rec,
	}
	loop, renderer, err := Setup(Hardware{
		GPIO:    rig.gpio,
		Audio:   rig.audio,
		Pixels:  rig.pixels,
		Reboot:  func() { rig.reboots++; rec.add("reboot") },
		Sleep:   rig.sleeper,
		ClockHz: testClockHz,
	}, DefaultPins())
	if err != nil {
		return nil, err
	}
	rig.loop = loop
	rig.renderer = renderer

	// Forget the init traffic
	rig.audio.events = nil
	rig.rec.events = nil
	return rig, nil
}
