package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot represents the latest companion link activity shown by the UI.
type Snapshot struct {
	Link                string // bridge description, e.g. "static" or a URL
	Sent                int    // outbound messages acknowledged
	SendFailures        int    // outbound messages that failed
	Received            int    // inbound messages handed to the inbox
	Dropped             int    // inbound messages dropped before the loop saw them
	LastSent            time.Time
	LastReceived        time.Time
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll or send failures
}

// IsOffline returns true when the companion has been unreachable for
// multiple attempts.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetLink records which bridge the app is using.
func (s *Store) SetLink(link string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Link = link
}

// RecordPoll records one inbox poll. When err is non-nil the counters are
// kept but the error is recorded for visibility.
func (s *Store) RecordPoll(received int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.snapshot.LastUpdated = now
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	if received > 0 {
		s.snapshot.Received += received
		s.snapshot.LastReceived = now
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// RecordSend records the outcome of one outbound message.
func (s *Store) RecordSend(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.snapshot.LastUpdated = now
	if err != nil {
		s.snapshot.SendFailures++
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.Sent++
	s.snapshot.LastSent = now
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// RecordDropped adds n inbound messages to the drop count.
func (s *Store) RecordDropped(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Dropped += n
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
