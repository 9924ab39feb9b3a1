package core

// ActionKind is what a key press does
type ActionKind uint8

const (
	ActionUnmapped  ActionKind = iota // no-op, logged
	ActionPlayIntro                   // beeps, vowel glyphs, melody
	ActionAllOff                      // every pixel off
	ActionAllColor                    // every pixel one color
	ActionReboot                      // hand over to the USB bootloader
)

// String returns the action name
func (k ActionKind) String() string {
	switch k {
	case ActionPlayIntro:
		return "PlayIntroSequence"
	case ActionAllOff:
		return "AllOff"
	case ActionAllColor:
		return "AllColor"
	case ActionReboot:
		return "RequestReboot"
	default:
		return "Unmapped"
	}
}

// Action is the resolved meaning of a key
type Action struct {
	Kind  ActionKind
	Color Color // fill color for ActionAllOff and ActionAllColor
	Label string
}

// ActionFor maps a key to its action. The mapping is fixed and case-sensitive.
func ActionFor(k Key) Action {
	switch k {
	case '1':
		return Action{Kind: ActionPlayIntro, Label: "intro: beeps, vowels, melody"}
	case 'A':
		return Action{Kind: ActionAllOff, Color: ColorOff, Label: "all LEDs off"}
	case 'B':
		return Action{Kind: ActionAllColor, Color: ColorBlue, Label: "all LEDs blue (100%)"}
	case 'C':
		return Action{Kind: ActionAllColor, Color: ColorRedHalf, Label: "all LEDs red (50%)"}
	case 'D':
		return Action{Kind: ActionAllColor, Color: ColorGreenHalf, Label: "all LEDs green (50%)"}
	case '#':
		return Action{Kind: ActionAllColor, Color: ColorWhiteDim, Label: "all LEDs white (20%)"}
	case '0':
		return Action{Kind: ActionReboot, Label: "rebooting into USB bootloader"}
	default:
		return Action{Kind: ActionUnmapped, Label: "unmapped key"}
	}
}
