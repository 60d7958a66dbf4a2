// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

package stream

import "errors"

var (
	// ErrLinkOpenFailed is returned when the transport cannot be opened.
	// Non-fatal; the caller may fix the port settings and retry.
	ErrLinkOpenFailed = errors.New("failed to open link")

	// ErrLinkNotOpen is returned for writes on a transport that is not
	// open. The streamer treats it as a forced stop.
	ErrLinkNotOpen = errors.New("link not open")

	// ErrWriteFailed is returned when a transport write fails.
	ErrWriteFailed = errors.New("link write failed")

	// ErrAlreadyStreaming is returned by Start while a run is active.
	ErrAlreadyStreaming = errors.New("stream already running")
)
