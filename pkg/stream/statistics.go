// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

package stream

import (
	"fmt"
	"time"
)

// Statistics tracks transmit counters for the life of a streamer. The
// streamer updates it under its own lock; Streamer.Stats returns a copy.
type Statistics struct {
	StartTime time.Time

	Runs           uint64 // streaming runs started
	FramesSent     uint64 // data + idle frames written
	BytesWritten   uint64
	WriteErrors    uint64
	DiscardedTicks uint64 // ticks suppressed after a stop

	FrameRate float64 // frames/sec (calculated)
}

// NewStatistics creates a statistics tracker starting now.
func NewStatistics() *Statistics {
	return &Statistics{StartTime: time.Now()}
}

// CalculateRates refreshes the derived rate fields.
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.FrameRate = float64(s.FramesSent) / elapsed
	}
}

// String returns a formatted statistics summary.
func (s *Statistics) String() string {
	s.CalculateRates()

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Transmit statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Runs:            %8d\n", s.Runs)
	result += fmt.Sprintf("Frames Sent:     %8d\n", s.FramesSent)
	result += fmt.Sprintf("Bytes Written:   %8d\n", s.BytesWritten)
	if s.WriteErrors > 0 {
		result += fmt.Sprintf("Write Errors:    %8d\n", s.WriteErrors)
	}
	if s.DiscardedTicks > 0 {
		result += fmt.Sprintf("Discarded Ticks: %8d\n", s.DiscardedTicks)
	}
	result += fmt.Sprintf("Frame Rate:      %8.1f frames/sec\n", s.FrameRate)
	result += "========================================\n"

	return result
}
