// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Tidewater Robotics

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tidewater-robotics/bollard/pkg/keel"
)

var frameShowStart bool

var frameCmd = &cobra.Command{
	Use:   "frame [pwm values...]",
	Short: "Encode a Keel frame and show its wire bytes",
	Long: `Encode one Keel data frame offline and print the wire bytes together
with the decoded view. With no arguments the idle frame is shown; otherwise
exactly eight PWM values must be given (values are clamped to 1100-1900).

With --start the fixed start-of-stream sequence is shown instead.

Useful for verifying firmware-side parsers against known-good frames.`,
	Args: cobra.MaximumNArgs(keel.ChannelCount),
	RunE: runFrame,
}

func init() {
	rootCmd.AddCommand(frameCmd)
	frameCmd.Flags().BoolVar(&frameShowStart, "start", false, "Show the start-of-stream sequence instead")
}

func runFrame(cmd *cobra.Command, args []string) error {
	if frameShowStart {
		seq := keel.StartSequence()
		fmt.Printf("Start sequence (%d bytes):\n%s\n", len(seq), keel.FormatBytes(seq))
		return nil
	}

	pwm := make([]int, keel.ChannelCount)
	for i := range pwm {
		pwm[i] = keel.PWMNeutral
	}
	if len(args) > 0 {
		if len(args) != keel.ChannelCount {
			return fmt.Errorf("need exactly %d PWM values, got %d", keel.ChannelCount, len(args))
		}
		for i, arg := range args {
			v, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid PWM value %q: %v", arg, err)
			}
			pwm[i] = v
		}
	}

	encoded, err := keel.EncodeFrame(pwm)
	if err != nil {
		return err
	}

	fmt.Printf("Frame (%d bytes):\n%s\n\n", len(encoded), keel.FormatBytes(encoded))

	// Run the bytes back through the decoder as a self-check
	decoder := keel.NewDecoder()
	for _, b := range encoded {
		frame, err := decoder.DecodeByte(b)
		if err != nil {
			return fmt.Errorf("self-check decode failed: %v", err)
		}
		if frame != nil {
			fmt.Print(keel.FormatFrame(frame))
		}
	}
	return nil
}
