package core

import "errors"

// RebootFunc hands control to the firmware-reflash bootloader.
// On hardware it never returns.
type RebootFunc func()

// ErrRebootRequested is returned when the reboot collaborator returned
// control, which only happens off-hardware
var ErrRebootRequested = errors.New("reboot requested")

// Dispatcher runs the action bound to a key
type Dispatcher struct {
	renderer *Renderer
	tone     *Tone
	reboot   RebootFunc
	sleep    Sleeper
}

// NewDispatcher creates a dispatcher over the LED renderer, the tone
// generator and the reboot collaborator
func NewDispatcher(renderer *Renderer, tone *Tone, reboot RebootFunc, sleep Sleeper) *Dispatcher {
	return &Dispatcher{
		renderer: renderer,
		tone:     tone,
		reboot:   reboot,
		sleep:    sleep,
	}
}

// Dispatch maps a key to its action and runs it to completion
func (d *Dispatcher) Dispatch(k Key) error {
	a := ActionFor(k)
	DebugPrintln("action " + a.Kind.String() + ": " + a.Label)

	switch a.Kind {
	case ActionPlayIntro:
		return d.playIntro()

	case ActionAllOff, ActionAllColor:
		d.renderer.Fill(a.Color)
		DebugPrintln("frame " + hex32(a.Color.Word()) + " x" + itoa(PanelPixels))
		return nil

	case ActionReboot:
		d.sleep.Sleep(RebootDelay)
		d.reboot()
		return ErrRebootRequested

	default:
		return nil
	}
}

func (d *Dispatcher) playIntro() error {
	if err := d.tone.Beep(IntroBeepCount, DefaultBuzzerFreq, IntroBeepTime); err != nil {
		return err
	}
	for i, l := range Vowels {
		DebugPrintln("glyph " + VowelNames[i:i+1])
		if err := d.renderer.RenderLetter(l); err != nil {
			return err
		}
	}
	return d.tone.PlayMelody()
}
