package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	testCases := []struct {
		line   string
		kind   Kind
		uptime uint32
		hasUp  bool
		key    string
		action string
		text   string
	}{
		{"[1520] key pressed: B\r\n", KindKey, 1520, true, "B", "", "key pressed: B"},
		{"[0] ready: press keys on the keypad", KindReady, 0, true, "", "", "ready: press keys on the keypad"},
		{"action AllColor: all LEDs blue (100%)", KindAction, 0, false, "", "AllColor", "action AllColor: all LEDs blue (100%)"},
		{"[9] frame 0x0000FF00 x25", KindFrame, 9, true, "", "", "frame 0x0000FF00 x25"},
		{"[10] glyph E", KindGlyph, 10, true, "", "", "glyph E"},
		{"error: bus fault", KindError, 0, false, "", "", "error: bus fault"},
		{"fatal: invalid key matrix", KindFatal, 0, false, "", "", "fatal: invalid key matrix"},
		{"[abc] key pressed: 1", KindOther, 0, false, "", "", "[abc] key pressed: 1"},
		{"boot noise", KindOther, 0, false, "", "", "boot noise"},
	}

	for _, tc := range testCases {
		ev := ParseLine(tc.line)
		assert.Equal(t, tc.kind, ev.Kind, tc.line)
		assert.Equal(t, tc.hasUp, ev.HasUptime, tc.line)
		assert.Equal(t, tc.uptime, ev.Uptime, tc.line)
		assert.Equal(t, tc.key, ev.Key, tc.line)
		assert.Equal(t, tc.action, ev.Action, tc.line)
		assert.Equal(t, tc.text, ev.Text, tc.line)
	}
}

func TestIsReboot(t *testing.T) {
	assert.True(t, ParseLine("[5] action RequestReboot: rebooting into USB bootloader").IsReboot())
	assert.False(t, ParseLine("[5] action AllOff: all LEDs off").IsReboot())
	assert.False(t, ParseLine("RequestReboot").IsReboot())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "action", KindAction.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

const session = "[0] ready: press keys on the keypad\n" +
	"[800] key pressed: B\n" +
	"[801] action AllColor: all LEDs blue (100%)\n" +
	"[801] frame 0x0000FF00 x25\n" +
	"[1900] key pressed: 5\n" +
	"[1900] action Unmapped: unmapped key\n" +
	"[2500] error: bus fault\n" +
	"[3000] key pressed: 0\n" +
	"[3000] action RequestReboot: rebooting into USB bootloader\n"

func TestMonitorCountsSession(t *testing.T) {
	var out bytes.Buffer
	m := NewMonitor(strings.NewReader(session+"[3100] tail"), zerolog.New(&out))

	require.NoError(t, m.Run(context.Background()))

	st := m.Stats()
	assert.Equal(t, 10, st.Lines)
	assert.Equal(t, 1, st.Keys["B"])
	assert.Equal(t, 1, st.Keys["0"])
	assert.Equal(t, 1, st.Actions["RequestReboot"])
	assert.Equal(t, 1, st.Errors)

	assert.Contains(t, out.String(), `"key":"B"`)
	assert.Contains(t, out.String(), `"uptime_ms":2500`)
	assert.Contains(t, out.String(), `"level":"warn"`)
	assert.Contains(t, out.String(), `"message":"tail"`)
}

func TestMonitorExitOnReboot(t *testing.T) {
	m := NewMonitor(strings.NewReader(session+"[3200] never seen\n"), zerolog.Nop())
	m.ExitOnReboot = true

	require.NoError(t, m.Run(context.Background()))
	assert.Equal(t, 9, m.Stats().Lines)
}

// idleReader returns its data, then reports EOF like an idle serial port
// until it has been polled limit times
type idleReader struct {
	data  []byte
	polls int
	limit int
	stop  context.CancelFunc
}

func (r *idleReader) Read(p []byte) (int, error) {
	if len(r.data) > 0 {
		n := copy(p, r.data)
		r.data = r.data[n:]
		return n, nil
	}
	r.polls++
	if r.polls >= r.limit {
		r.stop()
	}
	return 0, io.EOF
}

func TestMonitorFollowTreatsEOFAsIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &idleReader{data: []byte("[1] key pressed: A\n"), limit: 5, stop: cancel}
	m := NewMonitor(src, zerolog.Nop())
	m.Follow = true

	err := m.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, src.polls)
	assert.Equal(t, 1, m.Stats().Keys["A"])
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, errors.New("device unplugged") }

func TestMonitorReadError(t *testing.T) {
	m := NewMonitor(failReader{}, zerolog.Nop())
	err := m.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device unplugged")
}
