// Package console reads and classifies the board's USB console output.
package console

import (
	"strconv"
	"strings"
)

// Kind classifies a console line
type Kind int

const (
	KindOther Kind = iota
	KindReady
	KindKey
	KindAction
	KindFrame
	KindGlyph
	KindError
	KindFatal
)

var kindNames = [...]string{
	KindOther:  "other",
	KindReady:  "ready",
	KindKey:    "key",
	KindAction: "action",
	KindFrame:  "frame",
	KindGlyph:  "glyph",
	KindError:  "error",
	KindFatal:  "fatal",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Event is one parsed console line
type Event struct {
	Uptime    uint32 // milliseconds since boot, when HasUptime
	HasUptime bool
	Kind      Kind
	Key       string // KindKey
	Action    string // KindAction: the action name, e.g. "AllColor"
	Text      string // the message without the uptime prefix
}

// IsReboot reports whether the line announces the bootloader hand-over
func (e Event) IsReboot() bool {
	return e.Kind == KindAction && e.Action == "RequestReboot"
}

// ParseLine classifies a console line such as "[1520] key pressed: B"
func ParseLine(line string) Event {
	line = strings.TrimRight(line, "\r\n")
	ev := Event{Text: line}

	if strings.HasPrefix(line, "[") {
		if end := strings.Index(line, "] "); end > 0 {
			if ms, err := strconv.ParseUint(line[1:end], 10, 32); err == nil {
				ev.Uptime = uint32(ms)
				ev.HasUptime = true
				ev.Text = line[end+2:]
			}
		}
	}

	text := ev.Text
	switch {
	case strings.HasPrefix(text, "ready"):
		ev.Kind = KindReady
	case strings.HasPrefix(text, "key pressed: "):
		ev.Kind = KindKey
		ev.Key = strings.TrimPrefix(text, "key pressed: ")
	case strings.HasPrefix(text, "action "):
		ev.Kind = KindAction
		rest := strings.TrimPrefix(text, "action ")
		if i := strings.Index(rest, ":"); i > 0 {
			ev.Action = rest[:i]
		} else {
			ev.Action = rest
		}
	case strings.HasPrefix(text, "frame "):
		ev.Kind = KindFrame
	case strings.HasPrefix(text, "glyph "):
		ev.Kind = KindGlyph
	case strings.HasPrefix(text, "error: "):
		ev.Kind = KindError
	case strings.HasPrefix(text, "fatal: "):
		ev.Kind = KindFatal
	}
	return ev
}
