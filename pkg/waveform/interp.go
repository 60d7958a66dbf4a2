// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

package waveform

import (
	"fmt"
	"sort"
	"strings"
)

// Mode selects the curve-fitting rule applied uniformly across channels.
type Mode int

const (
	// ModeLinear draws straight segments between consecutive waypoints
	// and extrapolates the edge segments' slope outside the range.
	ModeLinear Mode = iota

	// ModeStepHold holds the most recent waypoint's value until the next
	// one ("constant"/previous-value interpolation).
	ModeStepHold

	// ModePolynomial fits one exact interpolating polynomial through all
	// of a channel's waypoints (barycentric Lagrange). Numerically
	// unstable for many or closely spaced waypoints.
	ModePolynomial
)

// String returns the mode name used in sequence snapshots.
func (m Mode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeStepHold:
		return "constant"
	case ModePolynomial:
		return "polynomial"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode name. Accepts the snapshot names ("linear",
// "constant", "polynomial") plus "step" as an alias for constant.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return ModeLinear, nil
	case "constant", "step":
		return ModeStepHold, nil
	case "polynomial":
		return ModePolynomial, nil
	default:
		return 0, fmt.Errorf("unknown interpolation mode %q", s)
	}
}

// BuildCurve returns a continuous time→PWM function through the given
// waypoints, which must be sorted ascending by time with unique times (as
// Store guarantees). Fails with ErrInsufficientData for zero waypoints; a
// single waypoint degrades to a constant function in every mode.
//
// The returned function is unclamped; callers clamp samples to the valid
// PWM range before use.
func BuildCurve(points []Waypoint, mode Mode) (func(float64) float64, error) {
	if len(points) == 0 {
		return nil, ErrInsufficientData
	}
	if len(points) == 1 {
		v := float64(points[0].PWM)
		return func(float64) float64 { return v }, nil
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Time
		ys[i] = float64(p.PWM)
	}

	switch mode {
	case ModeLinear:
		return linearCurve(xs, ys), nil
	case ModeStepHold:
		return stepHoldCurve(xs, ys), nil
	case ModePolynomial:
		return barycentricCurve(xs, ys), nil
	default:
		return nil, fmt.Errorf("unknown interpolation mode %d", int(mode))
	}
}

// linearCurve interpolates piecewise-linearly between waypoints. Outside
// the waypoint range the nearest edge segment's slope continues (linear
// extrapolation, not clamping).
func linearCurve(xs, ys []float64) func(float64) float64 {
	n := len(xs)
	return func(t float64) float64 {
		i := sort.SearchFloat64s(xs, t)
		var lo int
		switch {
		case i <= 1:
			lo = 0
		case i >= n:
			lo = n - 2
		default:
			lo = i - 1
		}
		slope := (ys[lo+1] - ys[lo]) / (xs[lo+1] - xs[lo])
		return ys[lo] + (t-xs[lo])*slope
	}
}

// stepHoldCurve returns the value of the most recent waypoint at or before
// t. Before the first waypoint the first value is held.
func stepHoldCurve(xs, ys []float64) func(float64) float64 {
	return func(t float64) float64 {
		i := sort.SearchFloat64s(xs, t)
		if i < len(xs) && xs[i] == t {
			return ys[i]
		}
		if i == 0 {
			return ys[0]
		}
		return ys[i-1]
	}
}

// barycentricCurve evaluates the unique interpolating polynomial through
// all waypoints using the second barycentric form.
func barycentricCurve(xs, ys []float64) func(float64) float64 {
	n := len(xs)
	w := make([]float64, n)
	for j := 0; j < n; j++ {
		w[j] = 1
		for k := 0; k < n; k++ {
			if k != j {
				w[j] /= xs[j] - xs[k]
			}
		}
	}

	return func(t float64) float64 {
		var num, den float64
		for j := 0; j < n; j++ {
			if t == xs[j] {
				return ys[j]
			}
			c := w[j] / (t - xs[j])
			num += c * ys[j]
			den += c
		}
		return num / den
	}
}
