// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Tidewater Robotics

// Package stream owns the link lifecycle and the periodic transmission of
// Keel frames. A Streamer samples the waypoint store into a cache when a
// run starts, then walks a cursor through the cache at the configured
// output frequency, one frame per tick, until the sequence is exhausted or
// the operator stops it.
package stream

import (
	"fmt"
	"sync"
	"time"

	"github.com/tidewater-robotics/bollard/pkg/keel"
	"github.com/tidewater-robotics/bollard/pkg/waveform"
)

// State is the link/streaming state.
type State int

const (
	// Closed means the transport is not open.
	Closed State = iota
	// Idle means the transport is open but no run is active.
	Idle
	// Streaming means frames are being emitted periodically.
	Streaming
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Idle:
		return "idle"
	case Streaming:
		return "streaming"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Streamer is the transmission scheduler and link state machine. All
// mutable state (link state, cache, cursor) lives behind one mutex, so
// ticks, operator commands, and waypoint edits cannot interleave badly.
//
// The cache is a snapshot taken at Start: waypoint, mode, or frequency
// changes during a run do not resample it. In particular a mid-run
// frequency change reschedules the tick interval but keeps serving the
// cache built at the old rate until the next Start.
type Streamer struct {
	mu        sync.Mutex
	transport Transport
	store     *waveform.Store

	mode      waveform.Mode
	frequency int

	state  State
	cache  *waveform.Cache
	cursor int

	stopC      chan struct{}
	reschedule chan time.Duration

	stats Statistics
}

// New creates a streamer over the given transport and waypoint store,
// defaulting to linear interpolation at the default output frequency.
func New(transport Transport, store *waveform.Store) *Streamer {
	return &Streamer{
		transport: transport,
		store:     store,
		mode:      waveform.ModeLinear,
		frequency: waveform.DefaultFrequency,
		stats:     *NewStatistics(),
	}
}

// tickInterval converts a frequency to the tick period. The integer
// millisecond division mirrors the bench's original controller; fractional
// periods truncate, a known source of minor timing drift kept for
// compatibility.
func tickInterval(hz int) time.Duration {
	interval := time.Duration(1000/hz) * time.Millisecond
	if interval <= 0 {
		interval = time.Millisecond
	}
	return interval
}

// SetMode sets the interpolation mode used by the next Start.
func (s *Streamer) SetMode(mode waveform.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// Mode returns the current interpolation mode.
func (s *Streamer) Mode() waveform.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetFrequency sets the output frequency. If a run is active the tick
// interval is rescheduled immediately, but the cache keeps its sampling
// rate until the next Start.
func (s *Streamer) SetFrequency(hz int) error {
	if hz <= 0 {
		return fmt.Errorf("invalid output frequency %d Hz", hz)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.frequency = hz
	if s.state == Streaming {
		select {
		case <-s.reschedule:
		default:
		}
		s.reschedule <- tickInterval(hz)
	}
	return nil
}

// Frequency returns the configured output frequency.
func (s *Streamer) Frequency() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frequency
}

// State returns the current link state.
func (s *Streamer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cursor returns the current step index into the cache.
func (s *Streamer) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Cache returns the sample cache of the current (or most recent) run, or
// nil before the first Start. The cache is immutable once built.
func (s *Streamer) Cache() *waveform.Cache {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache
}

// Stats returns a copy of the transmit statistics.
func (s *Streamer) Stats() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Transport returns the transport description for display.
func (s *Streamer) Transport() string {
	return s.transport.String()
}

// Connect opens the transport without starting a run. Fails with
// ErrLinkOpenFailed (wrapped) if the transport cannot be opened; the
// streamer stays Closed and the caller may retry.
func (s *Streamer) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Closed {
		return nil
	}
	if err := s.transport.Open(); err != nil {
		return err
	}
	s.state = Idle
	return nil
}

// Start begins a streaming run. The cache is rebuilt from the store with
// the current mode and frequency; if every channel is empty the start
// fails with waveform.ErrNoWaveformData and the link state is unchanged.
// On success the start sequence is sent, the cursor resets to 0, and
// periodic ticking begins at 1000/frequency milliseconds.
func (s *Streamer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Streaming {
		return ErrAlreadyStreaming
	}

	cache, err := waveform.Rebuild(s.store, s.mode, s.frequency)
	if err != nil {
		return err
	}

	if s.state == Closed {
		if err := s.transport.Open(); err != nil {
			return err
		}
		s.state = Idle
	}

	n, err := s.transport.Write(keel.StartSequence())
	if err != nil {
		s.stats.WriteErrors++
		s.transport.Close()
		s.state = Closed
		return err
	}
	s.stats.BytesWritten += uint64(n)

	s.cache = cache
	s.cursor = 0
	s.state = Streaming
	s.stats.Runs++
	s.stopC = make(chan struct{})
	s.reschedule = make(chan time.Duration, 1)
	go s.run(tickInterval(s.frequency), s.stopC, s.reschedule)

	return nil
}

// Stop ends any active run: the tick loop is cancelled, one idle frame is
// sent, and the transport is closed. Safe to call in any state; stopping
// a Closed streamer is a no-op.
func (s *Streamer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked()
}

// Idle puts the bench into its neutral state: open the link if needed,
// send a single idle frame, and close. This is the original controller's
// Idle button.
func (s *Streamer) Idle() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Closed {
		if err := s.transport.Open(); err != nil {
			return err
		}
		s.state = Idle
	}
	return s.stopLocked()
}

// stopLocked performs the stop sequence. Caller must hold s.mu.
func (s *Streamer) stopLocked() error {
	if s.stopC != nil {
		close(s.stopC)
		s.stopC = nil
	}
	if s.state == Closed {
		return nil
	}

	var writeErr error
	if n, err := s.transport.Write(keel.IdleFrame()); err != nil {
		s.stats.WriteErrors++
		writeErr = err
	} else {
		s.stats.FramesSent++
		s.stats.BytesWritten += uint64(n)
	}

	closeErr := s.transport.Close()
	s.state = Closed

	if writeErr != nil {
		return writeErr
	}
	return closeErr
}

// run is the tick loop for one streaming run. It exits when stopC closes,
// when the sequence completes, or when a write fails.
func (s *Streamer) run(interval time.Duration, stopC chan struct{}, reschedule chan time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopC:
			return
		case d := <-reschedule:
			ticker.Reset(d)
		case <-ticker.C:
			if !s.tick(stopC) {
				return
			}
		}
	}
}

// tick transmits the frame at the cursor and advances it. Returns false
// when the run is over. stopC identifies the run this tick belongs to: a
// stop (or restart) that raced the ticker wins, and the stale tick is
// discarded without sending anything.
func (s *Streamer) tick(stopC chan struct{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Streaming || s.stopC != stopC {
		s.stats.DiscardedTicks++
		return false
	}

	vec, ok := s.cache.VectorAt(s.cursor)
	if !ok {
		// Sequence exhausted: degrade to idle and close
		s.stopLocked()
		return false
	}

	n, err := s.transport.Write(keel.MustEncodeFrame(vec))
	if err != nil {
		// Treat any write failure as a forced stop
		s.stats.WriteErrors++
		s.stopLocked()
		return false
	}
	s.stats.FramesSent++
	s.stats.BytesWritten += uint64(n)
	s.cursor++
	return true
}
