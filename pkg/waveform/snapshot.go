// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

package waveform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/tidewater-robotics/bollard/pkg/keel"
)

// DefaultFrequency is the output frequency assumed when a snapshot does
// not carry one.
const DefaultFrequency = 20 // Hz

// Snapshot is the persistence unit for a sequence: interpolation mode,
// output frequency, and every channel's waypoint list. The JSON encoding
// is a compatibility contract with existing sequence files; channel keys
// are decimal strings ("0".."7") and waypoints are [time, pwm] pairs.
type Snapshot struct {
	InterpolationMethod string                  `json:"interpolation_method" cbor:"interpolation_method"`
	Frequency           int                     `json:"frequency" cbor:"frequency"`
	ThrusterData        map[string][][2]float64 `json:"thruster_data" cbor:"thruster_data"`
}

// TakeSnapshot captures the store's waypoints together with the current
// mode and frequency.
func TakeSnapshot(store *Store, mode Mode, frequency int) *Snapshot {
	data := make(map[string][][2]float64, keel.ChannelCount)
	for ch := 0; ch < keel.ChannelCount; ch++ {
		pts, _ := store.Waypoints(ch)
		pairs := make([][2]float64, len(pts))
		for i, p := range pts {
			pairs[i] = [2]float64{p.Time, float64(p.PWM)}
		}
		data[strconv.Itoa(ch)] = pairs
	}
	return &Snapshot{
		InterpolationMethod: mode.String(),
		Frequency:           frequency,
		ThrusterData:        data,
	}
}

// Restore rebuilds a store, mode, and frequency from the snapshot.
// Missing fields default to linear interpolation, DefaultFrequency, and
// empty waypoint lists. Channel keys outside 0-7 are ignored.
func (s *Snapshot) Restore() (*Store, Mode, int, error) {
	mode := ModeLinear
	if s.InterpolationMethod != "" {
		var err error
		mode, err = ParseMode(s.InterpolationMethod)
		if err != nil {
			return nil, 0, 0, err
		}
	}

	frequency := s.Frequency
	if frequency == 0 {
		frequency = DefaultFrequency
	}
	if frequency < 0 {
		return nil, 0, 0, fmt.Errorf("invalid frequency %d Hz in snapshot", frequency)
	}

	store := NewStore()
	for ch := 0; ch < keel.ChannelCount; ch++ {
		for _, pair := range s.ThrusterData[strconv.Itoa(ch)] {
			if err := store.Add(ch, Waypoint{Time: pair[0], PWM: int(pair[1])}); err != nil {
				return nil, 0, 0, err
			}
		}
	}

	return store, mode, frequency, nil
}

// EncodeJSON encodes the snapshot as indented JSON, the format shared
// with existing sequence files.
func (s *Snapshot) EncodeJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "    ")
}

// DecodeSnapshotJSON decodes a JSON snapshot.
func DecodeSnapshotJSON(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode JSON snapshot: %w", err)
	}
	return &s, nil
}

// EncodeCBOR encodes the snapshot as CBOR, a compact alternative for
// machine-generated sequences.
func (s *Snapshot) EncodeCBOR() ([]byte, error) {
	return cbor.Marshal(s)
}

// DecodeSnapshotCBOR decodes a CBOR snapshot.
func DecodeSnapshotCBOR(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode CBOR snapshot: %w", err)
	}
	return &s, nil
}

// LoadFile reads a snapshot from disk. Files with a .cbor extension are
// decoded as CBOR, everything else as JSON.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isCBORPath(path) {
		return DecodeSnapshotCBOR(data)
	}
	return DecodeSnapshotJSON(data)
}

// SaveFile writes a snapshot to disk, choosing the codec by extension as
// in LoadFile.
func (s *Snapshot) SaveFile(path string) error {
	var data []byte
	var err error
	if isCBORPath(path) {
		data, err = s.EncodeCBOR()
	} else {
		data, err = s.EncodeJSON()
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func isCBORPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".cbor")
}
