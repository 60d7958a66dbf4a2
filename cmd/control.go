// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Tidewater Robotics

package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tidewater-robotics/bollard/pkg/stream"
	"github.com/tidewater-robotics/bollard/pkg/waveform"
)

var controlCmd = &cobra.Command{
	Use:   "control <sequence-file>",
	Short: "Interactive TUI for driving the test bench",
	Long: `Drive the thruster test bench via an interactive terminal UI.

The sequence snapshot is loaded up front; the UI then shows link state,
progress through the sampled sequence, and live transmit statistics.

Keys:
  s        Start / stop the sequence
  i        Send an idle frame (panic button)
  + / -    Step the output frequency through the presets
  q        Stop, idle the bench, and quit

Supports both serial and WebSocket connections.`,
	Args: cobra.ExactArgs(1),
	RunE: runControl,
}

func init() {
	rootCmd.AddCommand(controlCmd)
}

func runControl(cmd *cobra.Command, args []string) error {
	snap, err := waveform.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load sequence: %v", err)
	}
	store, mode, frequency, err := snap.Restore()
	if err != nil {
		return fmt.Errorf("invalid sequence: %v", err)
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

	m := initialControlModel(s, args[0], transport.String())
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}

	// Make sure the bench is left idle even if the UI crashed mid-run
	if s.State() != stream.Closed {
		if err := s.Stop(); err != nil {
			return err
		}
	}
	return nil
}
