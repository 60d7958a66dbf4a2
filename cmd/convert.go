// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Tidewater Robotics

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidewater-robotics/bollard/pkg/waveform"
)

var (
	convertFrequency int
	convertMode      string
)

var convertCmd = &cobra.Command{
	Use:   "convert <input-file> <output-file>",
	Short: "Convert a sequence snapshot between JSON and CBOR",
	Long: `Load a sequence snapshot and write it back out, choosing the codec by
file extension (.cbor for CBOR, anything else for JSON).

The interpolation mode and output frequency stored in the snapshot can be
rewritten with --mode / --frequency.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().IntVar(&convertFrequency, "frequency", 0, "Rewrite the stored output frequency in Hz")
	convertCmd.Flags().StringVar(&convertMode, "mode", "", "Rewrite the stored interpolation mode (linear|step|polynomial)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	snap, err := waveform.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load sequence: %v", err)
	}

	store, mode, frequency, err := snap.Restore()
	if err != nil {
		return fmt.Errorf("invalid sequence: %v", err)
	}

	if convertMode != "" {
		mode, err = waveform.ParseMode(convertMode)
		if err != nil {
			return err
		}
	}
	if convertFrequency > 0 {
		frequency = convertFrequency
	}

	out := waveform.TakeSnapshot(store, mode, frequency)
	if err := out.SaveFile(args[1]); err != nil {
		return fmt.Errorf("failed to write sequence: %v", err)
	}

	fmt.Printf("Wrote %s (%s interpolation at %d Hz)\n", args[1], mode, frequency)
	return nil
}
