package companion

import (
	"context"
	"sync"

	"github.com/five82/dontpanic/internal/appmsg"
	"github.com/five82/dontpanic/internal/weather"
)

var _ Bridge = (*Static)(nil)

// Static is an in-process companion that answers every weather refresh
// request with a fixed sample. Other messages are accepted and ignored.
type Static struct {
	Temperature int32
	Conditions  string

	mu      sync.Mutex
	pending []appmsg.Dict
	sent    int
}

// NewStatic returns a companion reporting the given weather.
func NewStatic(temperature int32, conditions string) *Static {
	return &Static{Temperature: temperature, Conditions: conditions}
}

// String describes the bridge for the status line.
func (s *Static) String() string {
	return "static"
}

// Send implements appmsg.Transport.
func (s *Static) Send(ctx context.Context, d appmsg.Dict) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent++
	if weather.IsRefreshRequest(d) {
		s.pending = append(s.pending, weather.Sample(s.Temperature, s.Conditions))
	}
	return nil
}

// Receive implements Bridge.
func (s *Static) Receive(ctx context.Context) ([]appmsg.Dict, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out, nil
}

// Sent returns how many messages have been sent to the companion.
func (s *Static) Sent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent
}
