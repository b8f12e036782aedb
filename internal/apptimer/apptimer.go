// Package apptimer provides one-shot application timers for the event loop.
// Timers fire as FiredMsg messages; a cancelled timer whose message still
// arrives is ignored, so its callback never runs.
package apptimer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MinDelay is the shortest delay a timer is scheduled with.
const MinDelay = time.Millisecond

// Handle identifies a registered timer. The zero Handle is never issued.
type Handle uint64

// FiredMsg is delivered to the loop when a timer's delay has elapsed.
type FiredMsg struct {
	Handle Handle
	At     time.Time
}

// Service tracks live timers. It must only be used from the loop goroutine.
type Service struct {
	next    Handle
	live    map[Handle]func()
	pending []tea.Cmd

	// after builds the command that waits for d; tests replace it.
	after func(d time.Duration, h Handle) tea.Cmd
}

// New returns an empty timer service.
func New() *Service {
	return &Service{
		live:  make(map[Handle]func()),
		after: tickAfter,
	}
}

func tickAfter(d time.Duration, h Handle) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FiredMsg{Handle: h, At: t}
	})
}

// Register schedules fn to run once after delay. Delays below MinDelay are
// raised to MinDelay.
func (s *Service) Register(delay time.Duration, fn func()) Handle {
	if delay < MinDelay {
		delay = MinDelay
	}
	s.next++
	h := s.next
	s.live[h] = fn
	s.pending = append(s.pending, s.after(delay, h))
	return h
}

// Cancel removes a timer before it fires. It reports whether the timer was
// still live.
func (s *Service) Cancel(h Handle) bool {
	if _, ok := s.live[h]; !ok {
		return false
	}
	delete(s.live, h)
	return true
}

// Live reports whether h has neither fired nor been cancelled.
func (s *Service) Live(h Handle) bool {
	_, ok := s.live[h]
	return ok
}

// Len returns the number of live timers.
func (s *Service) Len() int {
	return len(s.live)
}

// Fire runs the callback for a delivered timer. Cancelled or already fired
// timers are ignored and Fire returns false.
func (s *Service) Fire(msg FiredMsg) bool {
	fn, ok := s.live[msg.Handle]
	if !ok {
		return false
	}
	delete(s.live, msg.Handle)
	if fn != nil {
		fn()
	}
	return true
}

// Flush returns the commands for timers registered since the last Flush.
func (s *Service) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
