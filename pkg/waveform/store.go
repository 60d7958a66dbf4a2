// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

// Package waveform turns sparse per-channel (time, PWM) waypoints into the
// dense, fixed-rate sample arrays streamed to the thruster bench. It owns
// the waypoint store, the three interpolation modes, the sampled-curve
// cache, and the sequence snapshot used for persistence.
package waveform

import (
	"fmt"
	"sort"

	"github.com/tidewater-robotics/bollard/pkg/keel"
)

// Waypoint is one (time, PWM) anchor point a channel's curve must pass
// through. Time is in seconds from sequence start.
type Waypoint struct {
	Time float64
	PWM  int
}

// Store owns the waypoint sets for all eight channels. Each channel's
// waypoints are kept sorted ascending by time with unique time values;
// adding a waypoint at an existing time replaces it.
//
// The store does not validate PWM or time ranges. Out-of-range values are
// clamped downstream before transmission.
type Store struct {
	channels [keel.ChannelCount][]Waypoint
}

// NewStore creates an empty waypoint store.
func NewStore() *Store {
	return &Store{}
}

func checkChannel(channel int) error {
	if channel < 0 || channel >= keel.ChannelCount {
		return fmt.Errorf("%w: %d (valid 0-%d)", ErrChannelOutOfRange, channel, keel.ChannelCount-1)
	}
	return nil
}

// Add inserts a waypoint on the given channel, keeping the channel sorted
// by time. A waypoint at an exactly equal time is replaced.
func (s *Store) Add(channel int, wp Waypoint) error {
	if err := checkChannel(channel); err != nil {
		return err
	}

	pts := s.channels[channel]
	i := sort.Search(len(pts), func(i int) bool { return pts[i].Time >= wp.Time })
	if i < len(pts) && pts[i].Time == wp.Time {
		pts[i] = wp
		return nil
	}

	pts = append(pts, Waypoint{})
	copy(pts[i+1:], pts[i:])
	pts[i] = wp
	s.channels[channel] = pts
	return nil
}

// Update replaces the waypoint at the given index with a new (time, PWM)
// pair, re-sorting as needed. Fails with ErrIndexOutOfRange if the index
// does not exist at call time.
func (s *Store) Update(channel, index int, wp Waypoint) error {
	if err := s.Remove(channel, index); err != nil {
		return err
	}
	return s.Add(channel, wp)
}

// Remove deletes the waypoint at the given index. Fails with
// ErrIndexOutOfRange if the index does not exist at call time.
func (s *Store) Remove(channel, index int) error {
	if err := checkChannel(channel); err != nil {
		return err
	}
	pts := s.channels[channel]
	if index < 0 || index >= len(pts) {
		return fmt.Errorf("%w: index %d on channel %d (%d waypoints)",
			ErrIndexOutOfRange, index, channel, len(pts))
	}
	s.channels[channel] = append(pts[:index], pts[index+1:]...)
	return nil
}

// Waypoints returns a copy of the channel's waypoints, sorted by time.
func (s *Store) Waypoints(channel int) ([]Waypoint, error) {
	if err := checkChannel(channel); err != nil {
		return nil, err
	}
	pts := make([]Waypoint, len(s.channels[channel]))
	copy(pts, s.channels[channel])
	return pts, nil
}

// MaxTime returns the maximum waypoint time across all channels, or 0 if
// no channel has any waypoints.
func (s *Store) MaxTime() float64 {
	maxTime := 0.0
	for _, pts := range s.channels {
		if len(pts) == 0 {
			continue
		}
		if t := pts[len(pts)-1].Time; t > maxTime {
			maxTime = t
		}
	}
	return maxTime
}

// Empty returns true if no channel has any waypoints.
func (s *Store) Empty() bool {
	for _, pts := range s.channels {
		if len(pts) > 0 {
			return false
		}
	}
	return true
}
