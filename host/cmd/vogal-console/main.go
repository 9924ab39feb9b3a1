// vogal-console follows the board's USB console and logs every line as a
// structured event.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"vogal/host/console"
	"vogal/host/serial"
)

var rootCmd = &cobra.Command{
	Use:          "vogal-console",
	Short:        "Follow the keypad board's USB console",
	SilenceUsage: true,
	RunE:         runConsole,
}

func init() {
	rootCmd.Flags().StringP("device", "d", "/dev/ttyACM0", "Serial device path")
	rootCmd.Flags().IntP("baud", "b", 115200, "Baud rate (ignored for USB CDC)")
	rootCmd.Flags().Int("timeout", 100, "Read timeout in milliseconds")
	rootCmd.Flags().Bool("exit-on-reboot", false, "Stop when the board enters its bootloader")
	rootCmd.Flags().BoolP("verbose", "v", false, "Also log frame and glyph lines")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runConsole(cmd *cobra.Command, args []string) error {
	device, _ := cmd.Flags().GetString("device")
	baud, _ := cmd.Flags().GetInt("baud")
	timeout, _ := cmd.Flags().GetInt("timeout")
	exitOnReboot, _ := cmd.Flags().GetBool("exit-on-reboot")
	verbose, _ := cmd.Flags().GetBool("verbose")

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	cfg := serial.DefaultConfig(device)
	cfg.Baud = baud
	cfg.ReadTimeout = timeout

	port, err := serial.Open(cfg)
	if err != nil {
		return err
	}
	defer port.Close()

	if err := port.Flush(); err != nil {
		logger.Warn().Err(err).Msg("flush failed")
	}
	logger.Info().Str("device", device).Msg("connected")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mon := console.NewMonitor(port, logger)
	mon.Follow = true
	mon.ExitOnReboot = exitOnReboot

	err = mon.Run(ctx)
	st := mon.Stats()
	logger.Info().
		Int("lines", st.Lines).
		Int("keys", total(st.Keys)).
		Int("errors", st.Errors).
		Msg("console closed")

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("monitor %s: %w", device, err)
	}
	return nil
}

func total(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}
