package core

import (
	"context"
	"errors"
)

// LoopState is the control loop state
type LoopState uint8

const (
	StateIdle        LoopState = iota // waiting for a key
	StateDispatching                  // running the action of a key
	StateRebooting                    // bootloader requested, terminal
)

// String returns the state name
func (s LoopState) String() string {
	switch s {
	case StateDispatching:
		return "Dispatching"
	case StateRebooting:
		return "Rebooting"
	default:
		return "Idle"
	}
}

// Loop is the scheduler of the firmware: scan, dispatch, idle, forever
type Loop struct {
	scanner    *Scanner
	dispatcher *Dispatcher
	sleep      Sleeper
	state      LoopState
}

// NewLoop creates a control loop in the Idle state
func NewLoop(scanner *Scanner, dispatcher *Dispatcher, sleep Sleeper) *Loop {
	return &Loop{
		scanner:    scanner,
		dispatcher: dispatcher,
		sleep:      sleep,
		state:      StateIdle,
	}
}

// State returns the current state
func (l *Loop) State() LoopState {
	return l.state
}

// Step performs one scan and, if a key was found, dispatches it.
// It does not sleep. Once a reboot was requested the loop stays in
// StateRebooting and Step does nothing.
func (l *Loop) Step() (Key, error) {
	if l.state == StateRebooting {
		return KeyNone, ErrRebootRequested
	}

	key, err := l.scanner.Scan()
	if err != nil {
		return KeyNone, err
	}
	if key == KeyNone {
		return KeyNone, nil
	}

	l.state = StateDispatching
	DebugPrintln("key pressed: " + key.String())
	err = l.dispatcher.Dispatch(key)
	if errors.Is(err, ErrRebootRequested) {
		l.state = StateRebooting
		return key, err
	}
	l.state = StateIdle
	return key, err
}

// Run loops until the reboot collaborator returns or ctx is done.
// ctx is only checked between iterations: an action always runs to
// completion. Hardware errors are logged and the loop carries on.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := l.Step(); err != nil {
			if errors.Is(err, ErrRebootRequested) {
				return err
			}
			DebugPrintln("error: " + err.Error())
		}

		l.sleep.Sleep(IdleDelay)
	}
}
