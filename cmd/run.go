// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Tidewater Robotics

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tidewater-robotics/bollard/pkg/stream"
	"github.com/tidewater-robotics/bollard/pkg/waveform"
)

var (
	runFrequency int
	runMode      string
)

var runCmd = &cobra.Command{
	Use:   "run <sequence-file>",
	Short: "Stream a waypoint sequence to the bench",
	Long: `Load a sequence snapshot, interpolate and sample it, and stream the
resulting frames to the bench until the sequence completes or Ctrl+C is
pressed.

The snapshot's interpolation mode and output frequency are used unless
overridden with --mode / --frequency. On completion (or interruption) the
bench is returned to idle and the link is closed.

Exit codes:
  0 - Sequence completed or was stopped cleanly
  1 - Load, connection, or transmission error`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVar(&runFrequency, "frequency", 0, "Override output frequency in Hz")
	runCmd.Flags().StringVar(&runMode, "mode", "", "Override interpolation mode (linear|step|polynomial)")
}

func runRun(cmd *cobra.Command, args []string) error {
	snap, err := waveform.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load sequence: %v", err)
	}
	store, mode, frequency, err := snap.Restore()
	if err != nil {
		return fmt.Errorf("invalid sequence: %v", err)
	}

	if runMode != "" {
		mode, err = waveform.ParseMode(runMode)
		if err != nil {
			return err
		}
	}
	if runFrequency > 0 {
		frequency = runFrequency
	}

	transport, err := buildTransport()
	if err != nil {
		return err
	}

	s := stream.New(transport, store)
	s.SetMode(mode)
	if err := s.SetFrequency(frequency); err != nil {
		return err
	}

	fmt.Printf("Bollard - Sequence Run\n")
	fmt.Printf("Connection: %s\n", transport.String())
	fmt.Printf("Sequence: %s (%s interpolation at %d Hz)\n", args[0], mode, frequency)

	if err := s.Start(); err != nil {
		return err
	}

	cache := s.Cache()
	fmt.Printf("Streaming %d steps over %.2f seconds. Press Ctrl+C to stop.\n\n",
		cache.StepCount(), cache.Duration())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			fmt.Printf("\nInterrupted, idling bench...\n")
			if err := s.Stop(); err != nil {
				fmt.Fprintf(os.Stderr, "Stop error: %v\n", err)
			}
			printRunSummary(s)
			return nil

		case <-ticker.C:
			cursor := s.Cursor()
			fmt.Printf("\r  step %d/%d (t=%.2fs)   ",
				cursor, cache.StepCount(), cache.TimeAt(cursor))

			if s.State() == stream.Closed {
				fmt.Printf("\nSequence complete.\n")
				printRunSummary(s)
				return nil
			}
		}
	}
}

func printRunSummary(s *stream.Streamer) {
	stats := s.Stats()
	fmt.Printf("\n%s", stats.String())
}
