// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

package keel

import "errors"

// ErrWrongChannelCount is returned when a frame is requested for a PWM
// vector that does not hold exactly one value per channel.
var ErrWrongChannelCount = errors.New("wrong channel count")
