// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

package waveform

import (
	"fmt"
	"math"

	"github.com/tidewater-robotics/bollard/pkg/keel"
)

// Cache holds the dense per-channel PWM sample arrays for one streaming
// run. It is derived state, rebuilt by Rebuild before a run starts, and is
// never a second source of truth for waypoints. Channels with no waypoints
// carry no samples; the streamer substitutes the neutral value for them.
type Cache struct {
	times     []float64
	curves    [keel.ChannelCount][]int
	stepCount int
	frequency int
	mode      Mode
}

// Rebuild samples every non-empty channel's interpolated curve at
// stepCount = floor(maxTime*frequency)+1 evenly spaced times from 0 to
// round(maxTime) inclusive, clamping each sample to the valid PWM range.
// Fails with ErrNoWaveformData when every channel is empty.
func Rebuild(store *Store, mode Mode, frequency int) (*Cache, error) {
	if frequency <= 0 {
		return nil, fmt.Errorf("invalid output frequency %d Hz", frequency)
	}
	if store.Empty() {
		return nil, ErrNoWaveformData
	}

	maxTime := store.MaxTime()
	stepCount := int(maxTime*float64(frequency)) + 1

	c := &Cache{
		times:     linspace(0, math.Round(maxTime), stepCount),
		stepCount: stepCount,
		frequency: frequency,
		mode:      mode,
	}

	for ch := 0; ch < keel.ChannelCount; ch++ {
		pts, err := store.Waypoints(ch)
		if err != nil {
			return nil, err
		}
		if len(pts) == 0 {
			// Empty channel: no curve to sample, contributes neutral
			continue
		}
		curve, err := BuildCurve(pts, mode)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
		samples := make([]int, stepCount)
		for i, t := range c.times {
			samples[i] = keel.ClampPWM(int(curve(t)))
		}
		c.curves[ch] = samples
	}

	return c, nil
}

// linspace returns count evenly spaced values from start to end inclusive.
func linspace(start, end float64, count int) []float64 {
	ts := make([]float64, count)
	if count == 1 {
		ts[0] = start
		return ts
	}
	step := (end - start) / float64(count-1)
	for i := range ts {
		ts[i] = start + float64(i)*step
	}
	return ts
}

// StepCount returns the number of samples per channel.
func (c *Cache) StepCount() int {
	return c.stepCount
}

// Frequency returns the output frequency the cache was sampled at.
func (c *Cache) Frequency() int {
	return c.frequency
}

// Mode returns the interpolation mode the cache was built with.
func (c *Cache) Mode() Mode {
	return c.mode
}

// Duration returns the time of the last sample in seconds.
func (c *Cache) Duration() float64 {
	return c.times[len(c.times)-1]
}

// TimeAt returns the sample time for the given step, or 0 if the step is
// out of range.
func (c *Cache) TimeAt(step int) float64 {
	if step < 0 || step >= c.stepCount {
		return 0
	}
	return c.times[step]
}

// Samples returns a copy of one channel's sample array. The slice is nil
// for channels with no waypoints.
func (c *Cache) Samples(channel int) ([]int, error) {
	if err := checkChannel(channel); err != nil {
		return nil, err
	}
	if c.curves[channel] == nil {
		return nil, nil
	}
	out := make([]int, len(c.curves[channel]))
	copy(out, c.curves[channel])
	return out, nil
}

// VectorAt returns the eight-channel PWM vector for one step, with the
// neutral value substituted for channels that have no waveform. Returns
// false when the step is outside the cache.
func (c *Cache) VectorAt(step int) ([]int, bool) {
	if step < 0 || step >= c.stepCount {
		return nil, false
	}
	vec := make([]int, keel.ChannelCount)
	for ch := range c.curves {
		if c.curves[ch] == nil {
			vec[ch] = keel.PWMNeutral
		} else {
			vec[ch] = c.curves[ch][step]
		}
	}
	return vec, true
}
