// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Tidewater Robotics

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidewater-robotics/bollard/pkg/stream"
	"github.com/tidewater-robotics/bollard/pkg/waveform"
)

var idleCmd = &cobra.Command{
	Use:   "idle",
	Short: "Send a single idle frame to the bench",
	Long: `Open the link, command the neutral PWM value (1500) on all eight
channels, and close the link again.

Useful as a panic button or to confirm connectivity without loading a
sequence.`,
	RunE: runIdle,
}

func init() {
	rootCmd.AddCommand(idleCmd)
}

func runIdle(cmd *cobra.Command, args []string) error {
	transport, err := buildTransport()
	if err != nil {
		return err
	}

	s := stream.New(transport, waveform.NewStore())
	if err := s.Idle(); err != nil {
		return err
	}

	fmt.Printf("Idle frame sent via %s\n", transport.String())
	return nil
}
