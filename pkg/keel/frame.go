// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

package keel

import "time"

// Frame represents a decoded Keel frame: either one PWM command frame for
// all eight channels, or the arming start sequence.
type Frame struct {
	pwm       [ChannelCount]uint16
	crc       byte
	start     bool
	timestamp time.Time
}

// NewFrame creates a data frame with the given fields.
func NewFrame(pwm [ChannelCount]uint16, crc byte) *Frame {
	return &Frame{
		pwm:       pwm,
		crc:       crc,
		timestamp: time.Now(),
	}
}

// PWM returns the command value for the given channel (0-7).
func (f *Frame) PWM(channel int) uint16 {
	return f.pwm[channel]
}

// Values returns all eight channel values, channel 0 first.
func (f *Frame) Values() [ChannelCount]uint16 {
	return f.pwm
}

// CRC returns the frame's CRC byte as received on the wire.
func (f *Frame) CRC() byte {
	return f.crc
}

// IsStart returns true if the frame is the arming start sequence rather
// than a data frame.
func (f *Frame) IsStart() bool {
	return f.start
}

// Timestamp returns the frame's decode timestamp.
func (f *Frame) Timestamp() time.Time {
	return f.timestamp
}

// IsIdle returns true if every channel commands the neutral value.
func (f *Frame) IsIdle() bool {
	if f.start {
		return false
	}
	for _, v := range f.pwm {
		if v != PWMNeutral {
			return false
		}
	}
	return true
}
