// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics
//
// Bollard - ROV thruster test bench controller
//
// A CLI tool for streaming interpolated PWM waveforms to an eight-channel
// thruster test bench over the Keel serial protocol.

package main

import (
	"os"

	"github.com/tidewater-robotics/bollard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
