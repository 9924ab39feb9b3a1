// vogal-sim runs the keypad firmware on the host against an emulated board.
// Keys are read from stdin, one character per key; the LED panel is drawn on
// stdout and everything else is logged on stderr.
package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"vogal/core"
	"vogal/host/sim"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "vogal-sim",
		Short:        "Run the keypad firmware against an emulated board",
		Long:         `Type keys (1-9, 0, A-D, *, #) followed by enter. The panel is redrawn on every frame and buzzer tones are logged. Key 0 reboots, which ends the simulation.`,
		SilenceUsage: true,
		RunE:         runSim,
	}
	cmd.Flags().Bool("reveal", false, "Light glyphs one cell at a time")
	cmd.Flags().Float64("speed", 1, "Time scale; 0 skips every delay")
	cmd.Flags().Int("hold-reads", 3, "Column reads each key press stays down")
	cmd.Flags().Uint32("clock", 125000000, "PWM source clock in Hz")
	cmd.Flags().BoolP("verbose", "v", false, "Log PWM setup")
	cmd.Flags().BoolP("quiet", "q", false, "Mute the firmware console")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func runSim(cmd *cobra.Command, args []string) error {
	reveal, _ := cmd.Flags().GetBool("reveal")
	speed, _ := cmd.Flags().GetFloat64("speed")
	holdReads, _ := cmd.Flags().GetInt("hold-reads")
	clockHz, _ := cmd.Flags().GetUint32("clock")
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	fw := logger.With().Str("src", "firmware").Logger()
	core.SetDebugWriter(func(s string) { fw.Info().Msg(s) })
	defer core.SetDebugWriter(nil)
	core.SetDebugEnabled(!quiet)
	defer core.SetDebugEnabled(true)

	pins := core.DefaultPins()
	keypad := sim.NewKeypad(pins.Matrix)
	keypad.HoldReads = holdReads
	strip := sim.NewStrip(cmd.OutOrStdout())
	buzzer := sim.NewBuzzer(clockHz, logger.With().Str("src", "buzzer").Logger())

	rebooted := false
	loop, renderer, err := core.Setup(core.Hardware{
		GPIO:    keypad,
		Audio:   buzzer,
		Pixels:  strip,
		Reboot:  func() { rebooted = true },
		Sleep:   sim.ScaledSleeper{Speed: speed},
		ClockHz: clockHz,
	}, pins)
	if err != nil {
		return err
	}
	if reveal {
		renderer.SetGlyphMode(core.GlyphReveal)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go feedKeys(ctx, cmd.InOrStdin(), keypad, logger, cancel)

	err = loop.Run(ctx)
	switch {
	case errors.Is(err, core.ErrRebootRequested):
		logger.Info().Bool("rebooted", rebooted).Msg("bootloader requested, leaving simulator")
		return nil
	case errors.Is(err, context.Canceled):
		logger.Info().Msg("input closed")
		return nil
	default:
		return err
	}
}

// feedKeys turns stdin into key presses. When the input ends it waits for the
// queued presses to be scanned, then cancels the run.
func feedKeys(ctx context.Context, in io.Reader, keypad *sim.Keypad, logger zerolog.Logger, done context.CancelFunc) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		for _, ch := range []byte(sc.Text()) {
			if ch == ' ' || ch == '\t' {
				continue
			}
			if err := keypad.Press(core.Key(ch)); err != nil {
				logger.Warn().Err(err).Msg("ignored")
			}
		}
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for keypad.Pending() > 0 {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
	done()
}
