package keel

import (
	"encoding/binary"
	"fmt"
)

// EncodeFrame builds a complete wire-formatted Keel data frame from eight
// PWM values, channel 0 first. Values outside [PWMMin, PWMMax] are clamped.
// Returns the 21 frame bytes ready for transmission.
func EncodeFrame(pwm []int) ([]byte, error) {
	if len(pwm) != ChannelCount {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrWrongChannelCount, len(pwm), ChannelCount)
	}

	frame := make([]byte, 0, FrameSize)
	frame = append(frame, HeaderByte, 0x00, 0x00)

	var buf [2]byte
	for _, v := range pwm {
		binary.LittleEndian.PutUint16(buf[:], uint16(ClampPWM(v)))
		frame = append(frame, buf[0], buf[1])
	}

	// CRC covers header and payload only
	frame = append(frame, CRC8(frame))
	frame = append(frame, TrailerByte)

	return frame, nil
}

// MustEncodeFrame encodes a frame and panics on error. Only for inputs
// known to have exactly eight values.
func MustEncodeFrame(pwm []int) []byte {
	frame, err := EncodeFrame(pwm)
	if err != nil {
		panic(fmt.Sprintf("keel: encode error: %v", err))
	}
	return frame
}

// IdleFrame returns a data frame commanding the neutral value on every
// channel. The bench treats it as "all thrusters off".
func IdleFrame() []byte {
	idle := make([]int, ChannelCount)
	for i := range idle {
		idle[i] = PWMNeutral
	}
	return MustEncodeFrame(idle)
}

// StartSequence returns the fixed 7-byte arming preamble sent once before
// any data frames.
func StartSequence() []byte {
	seq := make([]byte, len(startSequence))
	copy(seq, startSequence[:])
	return seq
}

// ClampPWM clamps a PWM value to the range accepted by the firmware.
func ClampPWM(v int) int {
	if v < PWMMin {
		return PWMMin
	}
	if v > PWMMax {
		return PWMMax
	}
	return v
}
