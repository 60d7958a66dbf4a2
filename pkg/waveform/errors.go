// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

package waveform

import "errors"

var (
	// ErrInsufficientData is returned when a curve is requested for a
	// channel with no waypoints.
	ErrInsufficientData = errors.New("insufficient data: no waypoints")

	// ErrNoWaveformData is returned by Rebuild when every channel is
	// empty, so there is nothing to stream.
	ErrNoWaveformData = errors.New("no waveform data on any channel")

	// ErrIndexOutOfRange is returned for a stale or invalid waypoint
	// index. Indices shift after removals; callers must re-fetch the
	// waypoint list before reusing one.
	ErrIndexOutOfRange = errors.New("waypoint index out of range")

	// ErrChannelOutOfRange is returned for a channel index outside 0-7.
	ErrChannelOutOfRange = errors.New("channel index out of range")
)
