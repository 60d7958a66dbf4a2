// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

package keel

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Decoder implements the Keel frame decoder state machine. It consumes the
// byte stream one octet at a time and emits complete, CRC-verified frames.
// The arming start sequence is recognized and reported as a start frame.
type Decoder struct {
	state    int
	buffer   []byte // header + payload, the CRC-covered section
	crc      byte
	seqIndex int
}

// NewDecoder creates a new Keel frame decoder.
func NewDecoder() *Decoder {
	return &Decoder{
		state:  stateIdle,
		buffer: make([]byte, 0, HeaderSize+PayloadSize),
	}
}

// Reset resets the decoder state to idle.
func (d *Decoder) Reset() {
	d.state = stateIdle
	d.buffer = d.buffer[:0]
	d.crc = 0
	d.seqIndex = 0
}

// DecodeByte processes a single byte through the decoder state machine.
// Returns a completed frame, or nil while the frame is incomplete.
// Returns an error if decoding fails; the decoder resynchronizes on the
// next header byte.
func (d *Decoder) DecodeByte(b byte) (*Frame, error) {
	switch d.state {
	case stateIdle:
		switch b {
		case HeaderByte:
			d.buffer = append(d.buffer[:0], b)
			d.state = stateHeader
		case startSequence[0]:
			d.seqIndex = 1
			d.state = stateStartSeq
		}
		// Other bytes are noise between frames; skip until sync
		return nil, nil

	case stateHeader:
		if b != 0x00 {
			d.Reset()
			return nil, fmt.Errorf("invalid header byte 0x%02X", b)
		}
		d.buffer = append(d.buffer, b)
		if len(d.buffer) == HeaderSize {
			d.state = statePayload
		}
		return nil, nil

	case statePayload:
		d.buffer = append(d.buffer, b)
		if len(d.buffer) == HeaderSize+PayloadSize {
			d.state = stateCRC
		}
		return nil, nil

	case stateCRC:
		d.crc = b
		d.state = stateTrailer
		return nil, nil

	case stateTrailer:
		if b != TrailerByte {
			d.Reset()
			return nil, fmt.Errorf("missing trailer: got 0x%02X, want 0x%02X", b, TrailerByte)
		}
		if calculated := CRC8(d.buffer); calculated != d.crc {
			err := fmt.Errorf("CRC mismatch: expected 0x%02X, got 0x%02X", calculated, d.crc)
			d.Reset()
			return nil, err
		}
		var pwm [ChannelCount]uint16
		for i := 0; i < ChannelCount; i++ {
			pwm[i] = binary.LittleEndian.Uint16(d.buffer[HeaderSize+2*i:])
		}
		frame := NewFrame(pwm, d.crc)
		d.Reset()
		return frame, nil

	case stateStartSeq:
		if b != startSequence[d.seqIndex] {
			d.Reset()
			return nil, fmt.Errorf("invalid start sequence byte 0x%02X at offset %d", b, d.seqIndex)
		}
		d.seqIndex++
		if d.seqIndex == len(startSequence) {
			d.Reset()
			return &Frame{start: true, timestamp: time.Now()}, nil
		}
		return nil, nil

	default:
		d.Reset()
		return nil, fmt.Errorf("invalid state: %d", d.state)
	}
}
