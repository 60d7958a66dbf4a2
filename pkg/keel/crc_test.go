package keel

import "testing"

func TestCRC8_GoldenVectors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want byte
	}{
		{
			name: "empty input",
			data: []byte{},
			want: 0x00,
		},
		{
			name: "single zero byte",
			data: []byte{0x00},
			want: 0x00,
		},
		{
			name: "frame header",
			data: []byte{0xAA, 0x00, 0x00},
			want: 0xCF,
		},
		{
			// Standard CRC-8 check value (poly 0x07, init 0x00)
			name: "check string 123456789",
			data: []byte("123456789"),
			want: 0xF4,
		},
		{
			name: "idle frame header and payload",
			data: []byte{
				0xAA, 0x00, 0x00,
				0xDC, 0x05, 0xDC, 0x05, 0xDC, 0x05, 0xDC, 0x05,
				0xDC, 0x05, 0xDC, 0x05, 0xDC, 0x05, 0xDC, 0x05,
			},
			want: 0x81,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CRC8(tt.data); got != tt.want {
				t.Errorf("CRC8() = 0x%02X, want 0x%02X", got, tt.want)
			}
		})
	}
}

func TestCRC8_Deterministic(t *testing.T) {
	data := []byte{0xAA, 0x00, 0x00, 0x10, 0x20, 0x30, 0x40}
	first := CRC8(data)
	for i := 0; i < 100; i++ {
		if got := CRC8(data); got != first {
			t.Fatalf("CRC8 not deterministic: run %d got 0x%02X, first run 0x%02X", i, got, first)
		}
	}
}

func TestCRC8_SingleBitSensitivity(t *testing.T) {
	data := []byte{0xAA, 0x00, 0x00, 0xDC, 0x05}
	base := CRC8(data)

	for i := range data {
		for bit := 0; bit < 8; bit++ {
			flipped := make([]byte, len(data))
			copy(flipped, data)
			flipped[i] ^= 1 << bit
			if CRC8(flipped) == base {
				t.Errorf("flipping byte %d bit %d did not change the CRC", i, bit)
			}
		}
	}
}
