// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

// Package keel provides a Go implementation of the Keel thruster-bus wire
// protocol.
//
// Keel is a one-way binary protocol carrying PWM commands from a controller
// to the test bench microcontroller. Each data frame holds one command value
// for all eight thruster channels and is protected by a CRC-8 checksum that
// the firmware recomputes and verifies before actuating. This package
// provides frame encoding/decoding, CRC calculation, and frame formatting.
package keel

// Protocol framing bytes
const (
	HeaderByte  = 0xAA
	TrailerByte = 0xEE
)

// Frame layout. A data frame is header (3) + payload (16) + CRC (1) +
// trailer (1) = 21 bytes. The payload is eight little-endian uint16 PWM
// values, channel 0 first.
const (
	ChannelCount = 8
	HeaderSize   = 3
	PayloadSize  = ChannelCount * 2
	FrameSize    = HeaderSize + PayloadSize + 2
)

// PWM limits enforced by the bench firmware. Values outside the range are
// clamped before transmission, never rejected.
const (
	PWMMin     = 1100
	PWMMax     = 1900
	PWMNeutral = 1500
)

// CRC-8 configuration (poly x^8+x^2+x+1, zero initial register)
const (
	crcPolynomial = 0x07
	crcInitial    = 0x00
)

// startSequence is the fixed arming preamble sent once before a stream of
// data frames. It carries no CRC and no parameters; the firmware matches it
// byte-for-byte.
var startSequence = [7]byte{0xFF, 0x00, 0x01, 0x00, 0x00, 0x52, 0xEE}

// Decoder states (internal)
const (
	stateIdle = iota
	stateHeader
	statePayload
	stateCRC
	stateTrailer
	stateStartSeq
)
