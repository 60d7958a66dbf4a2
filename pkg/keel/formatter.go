// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

package keel

import (
	"fmt"
	"strings"
)

// FormatFrame returns a human-readable, multi-line description of a frame.
func FormatFrame(f *Frame) string {
	if f.IsStart() {
		return fmt.Sprintf("[%s] START SEQUENCE (arming preamble)\n",
			f.Timestamp().Format("15:04:05.000"))
	}

	var b strings.Builder
	label := "DATA FRAME"
	if f.IsIdle() {
		label = "IDLE FRAME"
	}
	fmt.Fprintf(&b, "[%s] %s (CRC 0x%02X)\n", f.Timestamp().Format("15:04:05.000"), label, f.CRC())
	for i := 0; i < ChannelCount; i++ {
		fmt.Fprintf(&b, "  Thruster %d: %4d us\n", i+1, f.PWM(i))
	}
	return b.String()
}

// FormatBytes returns a hex dump of raw frame bytes, 16 per line.
func FormatBytes(data []byte) string {
	var b strings.Builder
	for i, v := range data {
		if i > 0 && i%16 == 0 {
			b.WriteString("\n")
		} else if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%02X", v)
	}
	return b.String()
}
