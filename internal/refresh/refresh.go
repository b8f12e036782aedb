// Package refresh drives the per-minute clock update and the weather
// request cadence.
package refresh

import (
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dontpanic/internal/appmsg"
	"github.com/five82/dontpanic/internal/clock"
	"github.com/five82/dontpanic/internal/weather"
)

// DefaultEvery is the request cadence in minutes.
const DefaultEvery = 15

// Sender begins an outbound message; see appmsg.Outbox.
type Sender interface {
	Send(d appmsg.Dict) (tea.Cmd, error)
}

// Scheduler handles minute ticks.
type Scheduler struct {
	clock  *clock.Display
	outbox Sender
	every  int
	logger *slog.Logger
}

// New returns a scheduler requesting weather every `every` minutes of the
// hour. Values outside 1..60 fall back to DefaultEvery.
func New(display *clock.Display, outbox Sender, every int, logger *slog.Logger) *Scheduler {
	if every < 1 || every > 60 {
		every = DefaultEvery
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{clock: display, outbox: outbox, every: every, logger: logger}
}

// Every returns the cadence in minutes.
func (s *Scheduler) Every() int {
	return s.every
}

// Due reports whether minute-of-hour m triggers a request. Minute zero
// always does.
func (s *Scheduler) Due(m int) bool {
	return m%s.every == 0
}

// Tick refreshes the clock strings for t and, on due minutes, begins exactly
// one refresh request. The returned command delivers the request, or is nil
// when nothing was sent.
func (s *Scheduler) Tick(t time.Time, use24h bool) tea.Cmd {
	s.clock.Update(t, use24h)
	if !s.Due(t.Minute()) {
		return nil
	}
	return s.Request()
}

// Request begins a refresh request now. A busy or missing outbox is logged
// and the request is dropped; the next due minute tries again.
func (s *Scheduler) Request() tea.Cmd {
	cmd, err := s.outbox.Send(weather.RefreshRequest())
	if err != nil {
		if errors.Is(err, appmsg.ErrBusy) {
			s.logger.Error("outbox busy, weather request skipped")
		} else {
			s.logger.Error("outbox send failed", "error", err)
		}
		return nil
	}
	s.logger.Debug("weather request queued")
	return cmd
}
