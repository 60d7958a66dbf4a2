package keel

import (
	"strings"
	"testing"
)

// feed pushes bytes through the decoder and returns the first completed
// frame, or nil if none was produced.
func feed(t *testing.T, d *Decoder, data []byte) *Frame {
	t.Helper()
	for _, b := range data {
		frame, err := d.DecodeByte(b)
		if err != nil {
			t.Fatalf("DecodeByte(0x%02X) error: %v", b, err)
		}
		if frame != nil {
			return frame
		}
	}
	return nil
}

func TestDecoder_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		pwm  []int
	}{
		{"idle", []int{1500, 1500, 1500, 1500, 1500, 1500, 1500, 1500}},
		{"ramp", []int{1100, 1200, 1300, 1400, 1500, 1600, 1700, 1800}},
		{"extremes", []int{1100, 1900, 1100, 1900, 1100, 1900, 1100, 1900}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := MustEncodeFrame(tt.pwm)
			frame := feed(t, NewDecoder(), encoded)
			if frame == nil {
				t.Fatal("decoder did not produce a frame")
			}
			if frame.IsStart() {
				t.Fatal("data frame decoded as start sequence")
			}
			for i, want := range tt.pwm {
				if got := frame.PWM(i); int(got) != want {
					t.Errorf("channel %d = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestDecoder_StartSequence(t *testing.T) {
	frame := feed(t, NewDecoder(), StartSequence())
	if frame == nil {
		t.Fatal("decoder did not recognize the start sequence")
	}
	if !frame.IsStart() {
		t.Error("IsStart() = false for start sequence")
	}
}

func TestDecoder_CRCMismatch(t *testing.T) {
	encoded := IdleFrame()
	encoded[19] ^= 0xFF // corrupt the CRC byte

	d := NewDecoder()
	var lastErr error
	for _, b := range encoded {
		frame, err := d.DecodeByte(b)
		if frame != nil {
			t.Fatal("corrupted frame was accepted")
		}
		if err != nil {
			lastErr = err
		}
	}
	if lastErr == nil || !strings.Contains(lastErr.Error(), "CRC mismatch") {
		t.Errorf("expected CRC mismatch error, got %v", lastErr)
	}
}

func TestDecoder_BadTrailer(t *testing.T) {
	encoded := IdleFrame()
	encoded[20] = 0x00

	d := NewDecoder()
	var lastErr error
	for _, b := range encoded {
		frame, err := d.DecodeByte(b)
		if frame != nil {
			t.Fatal("frame without trailer was accepted")
		}
		if err != nil {
			lastErr = err
		}
	}
	if lastErr == nil || !strings.Contains(lastErr.Error(), "trailer") {
		t.Errorf("expected trailer error, got %v", lastErr)
	}
}

func TestDecoder_ResyncAfterNoise(t *testing.T) {
	d := NewDecoder()

	// Noise bytes before the frame are skipped silently
	if frame := feed(t, d, []byte{0x01, 0x02, 0x42}); frame != nil {
		t.Fatal("decoder produced a frame from noise")
	}

	frame := feed(t, d, MustEncodeFrame([]int{1600, 1500, 1500, 1500, 1500, 1500, 1500, 1500}))
	if frame == nil {
		t.Fatal("decoder did not resync onto a valid frame")
	}
	if got := frame.PWM(0); got != 1600 {
		t.Errorf("channel 0 = %d, want 1600", got)
	}
}

func TestDecoder_StreamOfFrames(t *testing.T) {
	// A realistic transmission: start sequence followed by data frames
	var stream []byte
	stream = append(stream, StartSequence()...)
	stream = append(stream, MustEncodeFrame([]int{1100, 1500, 1500, 1500, 1500, 1500, 1500, 1500})...)
	stream = append(stream, MustEncodeFrame([]int{1200, 1500, 1500, 1500, 1500, 1500, 1500, 1500})...)
	stream = append(stream, IdleFrame()...)

	d := NewDecoder()
	var frames []*Frame
	for _, b := range stream {
		frame, err := d.DecodeByte(b)
		if err != nil {
			t.Fatalf("DecodeByte error: %v", err)
		}
		if frame != nil {
			frames = append(frames, frame)
		}
	}

	if len(frames) != 4 {
		t.Fatalf("decoded %d frames, want 4", len(frames))
	}
	if !frames[0].IsStart() {
		t.Error("first frame should be the start sequence")
	}
	if frames[1].PWM(0) != 1100 || frames[2].PWM(0) != 1200 {
		t.Errorf("data frames out of order: %d, %d", frames[1].PWM(0), frames[2].PWM(0))
	}
	if !frames[3].IsIdle() {
		t.Error("last frame should be idle")
	}
}

func TestFrame_IsIdle(t *testing.T) {
	idle := feed(t, NewDecoder(), IdleFrame())
	if idle == nil || !idle.IsIdle() {
		t.Error("idle frame not reported as idle")
	}

	active := feed(t, NewDecoder(), MustEncodeFrame([]int{1501, 1500, 1500, 1500, 1500, 1500, 1500, 1500}))
	if active == nil || active.IsIdle() {
		t.Error("active frame reported as idle")
	}
}
