package appmsg

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Size limits for a single message in each direction.
const (
	InboxSizeMaximum  = 8200
	OutboxSizeMaximum = 8200
)

const defaultSendTimeout = 5 * time.Second

// Transport delivers an outbound dictionary to the companion application.
type Transport interface {
	Send(ctx context.Context, d Dict) error
}

// SentMsg reports that an outbound dictionary was acknowledged.
type SentMsg struct {
	Dict Dict
}

// FailedMsg reports that an outbound dictionary could not be delivered.
type FailedMsg struct {
	Dict Dict
	Err  error
}

// ReceivedMsg carries an inbound dictionary into the event loop.
type ReceivedMsg struct {
	Dict Dict
}

// DroppedMsg reports inbound dictionaries discarded before the loop saw them.
type DroppedMsg struct {
	Count int
	Err   error
}

// Outbox sends one dictionary at a time. A second Send before the first has
// settled fails with ErrBusy.
type Outbox struct {
	ctx       context.Context
	transport Transport
	timeout   time.Duration
	inFlight  bool
}

// NewOutbox returns an outbox delivering through t. A nil transport makes
// every Send fail with ErrNoLink.
func NewOutbox(ctx context.Context, t Transport) *Outbox {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Outbox{ctx: ctx, transport: t, timeout: defaultSendTimeout}
}

// Busy reports whether a send is awaiting its result.
func (o *Outbox) Busy() bool {
	return o.inFlight
}

// Send begins delivering d. The returned command performs the delivery off
// the loop and yields a SentMsg or FailedMsg; the loop must pass that result
// to Settle before the outbox accepts another message.
func (o *Outbox) Send(d Dict) (tea.Cmd, error) {
	if o.inFlight {
		return nil, ErrBusy
	}
	if o.transport == nil {
		return nil, ErrNoLink
	}
	if size := d.Size(); size > OutboxSizeMaximum {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	o.inFlight = true

	parent, transport, timeout := o.ctx, o.transport, o.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		if err := transport.Send(ctx, d); err != nil {
			return FailedMsg{Dict: d, Err: err}
		}
		return SentMsg{Dict: d}
	}, nil
}

// Settle marks the in-flight send as finished.
func (o *Outbox) Settle() {
	o.inFlight = false
}

// Inbox is a bounded queue of inbound dictionaries between the companion
// link and the event loop.
type Inbox struct {
	ctx     context.Context
	ch      chan Dict
	drops   chan struct{}
	dropped atomic.Int64
}

// NewInbox returns an inbox holding at most capacity undelivered messages.
func NewInbox(ctx context.Context, capacity int) *Inbox {
	if ctx == nil {
		ctx = context.Background()
	}
	if capacity < 1 {
		capacity = 1
	}
	return &Inbox{
		ctx:   ctx,
		ch:    make(chan Dict, capacity),
		drops: make(chan struct{}, 1),
	}
}

// Deliver enqueues d without blocking. A full inbox or an oversized message
// drops d and the drop is reported to the loop as a DroppedMsg.
func (i *Inbox) Deliver(d Dict) error {
	if size := d.Size(); size > InboxSizeMaximum {
		i.drop()
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	select {
	case i.ch <- d:
		return nil
	default:
		i.drop()
		return ErrInboxFull
	}
}

func (i *Inbox) drop() {
	i.dropped.Add(1)
	select {
	case i.drops <- struct{}{}:
	default:
	}
}

// Listen waits for the next inbound event. The loop re-issues Listen after
// handling each ReceivedMsg or DroppedMsg. It yields nil once the inbox
// context is done. Queued messages are returned before pending drops.
func (i *Inbox) Listen() tea.Cmd {
	return func() tea.Msg {
		// Queued messages arrived before any drop still pending.
		select {
		case d := <-i.ch:
			return ReceivedMsg{Dict: d}
		default:
		}
		select {
		case <-i.ctx.Done():
			return nil
		case d := <-i.ch:
			return ReceivedMsg{Dict: d}
		case <-i.drops:
			return DroppedMsg{Count: int(i.dropped.Swap(0)), Err: ErrInboxFull}
		}
	}
}
