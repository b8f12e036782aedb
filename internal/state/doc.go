// Package state provides thread-safe link health for the dontpanic watchface.
//
// # Overview
//
// The companion receiver runs on its own goroutine while the UI renders on
// the event loop. Store is the point where the two meet: the receiver and
// the outbox result handler record activity, and the status line reads a
// Snapshot.
//
//	Receiver goroutine:            Event loop:
//	┌────────────────────┐        ┌─────────────────────┐
//	│ bridge.Receive()   │        │ SentMsg / FailedMsg │
//	│ store.RecordPoll() │        │ store.RecordSend()  │
//	└─────────┬──────────┘        └──────────┬──────────┘
//	          └────────→ Store ←─────────────┘
//	                       │
//	                 store.Snapshot() → status line
//
// # Update Semantics
//
// A failed poll or send keeps every counter, records the error and bumps
// ConsecutiveFailures. Any success clears the error and the failure streak.
// Snapshot.IsOffline reports two or more consecutive failures.
//
// Snapshots are returned by value; the error is re-wrapped so callers never
// share the stored instance.
//
// The zero Store is ready to use.
package state
