package companion

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/dontpanic/internal/appmsg"
	"github.com/five82/dontpanic/internal/state"
)

// DefaultPollInterval is how often the receiver asks the bridge for
// inbound messages.
const DefaultPollInterval = 2 * time.Second

// StartReceiver launches a background goroutine that moves inbound messages
// from bridge into inbox at a fixed cadence. It returns immediately and
// stops when ctx is done.
func StartReceiver(ctx context.Context, bridge Bridge, inbox *appmsg.Inbox, store *state.Store, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			receive(ctx, bridge, inbox, store, logger)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// receive performs one poll. Messages that do not fit the inbox are dropped;
// the inbox reports drops to the loop.
func receive(ctx context.Context, bridge Bridge, inbox *appmsg.Inbox, store *state.Store, logger *slog.Logger) {
	msgs, err := bridge.Receive(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		store.RecordPoll(0, err)
		logger.Warn("inbox poll failed", "error", err)
		return
	}
	delivered := 0
	for _, d := range msgs {
		if err := inbox.Deliver(d); err != nil {
			logger.Error("inbox dropped message", "error", err, "tuples", len(d))
			continue
		}
		delivered++
	}
	store.RecordPoll(delivered, nil)
	if delivered > 0 {
		logger.Debug("inbox received", "messages", delivered)
	}
}
