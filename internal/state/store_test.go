package state

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestStore_RecordPollCountsMessages(t *testing.T) {
	var s Store
	s.SetLink("static")

	before := time.Now()
	s.RecordPoll(2, nil)
	s.RecordPoll(0, nil)

	snap := s.Snapshot()
	if snap.Link != "static" {
		t.Fatalf("Link = %q, want static", snap.Link)
	}
	if snap.Received != 2 {
		t.Fatalf("Received = %d, want 2", snap.Received)
	}
	if snap.LastReceived.Before(before) || snap.LastUpdated.Before(before) {
		t.Fatalf("timestamps not updated: %v %v", snap.LastReceived, snap.LastUpdated)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
}

func TestStore_ErrorKeepsCountersAndClonesError(t *testing.T) {
	var s Store
	s.RecordPoll(1, nil)
	s.RecordSend(nil)

	origErr := errors.New("boom")
	s.RecordPoll(0, origErr)

	snap := s.Snapshot()
	if snap.Received != 1 || snap.Sent != 1 {
		t.Fatalf("counters changed on error: received=%d sent=%d", snap.Received, snap.Sent)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("fresh store: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.RecordPoll(0, errors.New("fail 1"))
	if snap = s.Snapshot(); snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 1 failure")
	}

	s.RecordSend(errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("failures = %d offline = %v, want 2 and offline", snap.ConsecutiveFailures, snap.IsOffline())
	}
	if snap.SendFailures != 1 {
		t.Fatalf("SendFailures = %d, want 1", snap.SendFailures)
	}

	s.RecordSend(nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("failures = %d after success, want 0", snap.ConsecutiveFailures)
	}
}

func TestStore_RecordDropped(t *testing.T) {
	var s Store
	s.RecordDropped(3)
	s.RecordDropped(0)
	s.RecordDropped(-1)
	if got := s.Snapshot().Dropped; got != 3 {
		t.Fatalf("Dropped = %d, want 3", got)
	}
}
