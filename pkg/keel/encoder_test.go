package keel

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestEncodeFrame_IdleGolden(t *testing.T) {
	want := []byte{
		0xAA, 0x00, 0x00,
		0xDC, 0x05, 0xDC, 0x05, 0xDC, 0x05, 0xDC, 0x05,
		0xDC, 0x05, 0xDC, 0x05, 0xDC, 0x05, 0xDC, 0x05,
		0x81,
		0xEE,
	}

	got, err := EncodeFrame([]int{1500, 1500, 1500, 1500, 1500, 1500, 1500, 1500})
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("frame mismatch:\n got %X\nwant %X", got, want)
	}
	if !bytes.Equal(got, IdleFrame()) {
		t.Errorf("IdleFrame() differs from explicit neutral encoding")
	}
}

func TestEncodeFrame_Layout(t *testing.T) {
	pwm := []int{1100, 1200, 1300, 1400, 1500, 1600, 1700, 1800}
	frame, err := EncodeFrame(pwm)
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	if len(frame) != FrameSize {
		t.Fatalf("frame length = %d, want %d", len(frame), FrameSize)
	}
	if !bytes.Equal(frame[0:3], []byte{0xAA, 0x00, 0x00}) {
		t.Errorf("header = %X, want AA0000", frame[0:3])
	}
	if frame[20] != TrailerByte {
		t.Errorf("trailer = 0x%02X, want 0x%02X", frame[20], TrailerByte)
	}
	if frame[19] != CRC8(frame[:19]) {
		t.Errorf("CRC byte = 0x%02X, want 0x%02X", frame[19], CRC8(frame[:19]))
	}

	for i, want := range pwm {
		got := binary.LittleEndian.Uint16(frame[HeaderSize+2*i:])
		if int(got) != want {
			t.Errorf("channel %d = %d, want %d", i, got, want)
		}
	}
}

func TestEncodeFrame_ClampsOutOfRange(t *testing.T) {
	frame, err := EncodeFrame([]int{0, 5000, 1099, 1901, 1100, 1900, -1, 1500})
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	want := []uint16{1100, 1900, 1100, 1900, 1100, 1900, 1100, 1500}
	for i, w := range want {
		got := binary.LittleEndian.Uint16(frame[HeaderSize+2*i:])
		if got != w {
			t.Errorf("channel %d = %d, want clamped %d", i, got, w)
		}
	}
}

func TestEncodeFrame_WrongChannelCount(t *testing.T) {
	for _, n := range []int{0, 1, 7, 9, 16} {
		pwm := make([]int, n)
		if _, err := EncodeFrame(pwm); !errors.Is(err, ErrWrongChannelCount) {
			t.Errorf("EncodeFrame with %d values: err = %v, want ErrWrongChannelCount", n, err)
		}
	}
}

func TestStartSequence_Literal(t *testing.T) {
	want := []byte{0xFF, 0x00, 0x01, 0x00, 0x00, 0x52, 0xEE}
	if got := StartSequence(); !bytes.Equal(got, want) {
		t.Errorf("StartSequence() = %X, want %X", got, want)
	}

	// Callers must not be able to corrupt the shared literal
	seq := StartSequence()
	seq[0] = 0x00
	if got := StartSequence(); !bytes.Equal(got, want) {
		t.Errorf("StartSequence() mutated by caller: %X", got)
	}
}

func TestClampPWM(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{1099, 1100},
		{1100, 1100},
		{1500, 1500},
		{1900, 1900},
		{1901, 1900},
		{-200, 1100},
		{65535, 1900},
	}
	for _, tt := range tests {
		if got := ClampPWM(tt.in); got != tt.want {
			t.Errorf("ClampPWM(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
