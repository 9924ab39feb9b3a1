package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Stats counts what the monitor has seen
type Stats struct {
	Lines   int
	Keys    map[string]int
	Actions map[string]int
	Errors  int
}

// Monitor follows a console stream and logs every line as a structured event
type Monitor struct {
	src io.Reader
	log zerolog.Logger

	// Follow keeps reading after io.EOF. Serial ports with a read timeout
	// report an idle line as EOF.
	Follow bool

	// ExitOnReboot stops the monitor when the board hands over to its bootloader
	ExitOnReboot bool

	stats Stats
}

// NewMonitor creates a monitor over src
func NewMonitor(src io.Reader, log zerolog.Logger) *Monitor {
	return &Monitor{
		src: src,
		log: log,
		stats: Stats{
			Keys:    make(map[string]int),
			Actions: make(map[string]int),
		},
	}
}

// Stats returns the counters collected so far
func (m *Monitor) Stats() Stats {
	return m.stats
}

// Run reads lines until the stream ends, ctx is done, or a reboot is seen
// with ExitOnReboot set
func (m *Monitor) Run(ctx context.Context) error {
	var pending []byte
	buf := make([]byte, 256)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := m.src.Read(buf)
		pending = append(pending, buf[:n]...)

		for {
			i := bytes.IndexByte(pending, '\n')
			if i < 0 {
				break
			}
			line := string(pending[:i])
			pending = pending[i+1:]
			if m.handle(line) {
				return nil
			}
		}

		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			if m.Follow {
				continue
			}
			if len(pending) > 0 {
				m.handle(string(pending))
			}
			return nil
		}
		return fmt.Errorf("read console: %w", err)
	}
}

// handle logs one line and reports whether the monitor should stop
func (m *Monitor) handle(line string) bool {
	ev := ParseLine(line)
	if ev.Text == "" {
		return false
	}
	m.stats.Lines++

	var e *zerolog.Event
	switch ev.Kind {
	case KindError:
		m.stats.Errors++
		e = m.log.Warn()
	case KindFatal:
		m.stats.Errors++
		e = m.log.Error()
	case KindFrame, KindGlyph:
		e = m.log.Debug()
	default:
		e = m.log.Info()
	}

	if ev.HasUptime {
		e = e.Uint32("uptime_ms", ev.Uptime)
	}
	e = e.Str("kind", ev.Kind.String())

	switch ev.Kind {
	case KindKey:
		m.stats.Keys[ev.Key]++
		e = e.Str("key", ev.Key)
	case KindAction:
		m.stats.Actions[ev.Action]++
		e = e.Str("action", ev.Action)
	}
	e.Msg(ev.Text)

	return ev.IsReboot() && m.ExitOnReboot
}
