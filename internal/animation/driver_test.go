package animation

import (
	"bytes"
	"errors"
	"image"
	"image/gif"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/five82/dontpanic/internal/apptimer"
	"github.com/five82/dontpanic/internal/bitmap"
)

type fakeTimer struct {
	delay time.Duration
	fn    func()
}

type fakeTimers struct {
	next      apptimer.Handle
	live      map[apptimer.Handle]fakeTimer
	cancelled []apptimer.Handle
}

func newFakeTimers() *fakeTimers {
	return &fakeTimers{live: make(map[apptimer.Handle]fakeTimer)}
}

func (f *fakeTimers) Register(delay time.Duration, fn func()) apptimer.Handle {
	f.next++
	f.live[f.next] = fakeTimer{delay: delay, fn: fn}
	return f.next
}

func (f *fakeTimers) Cancel(h apptimer.Handle) bool {
	if _, ok := f.live[h]; !ok {
		return false
	}
	delete(f.live, h)
	f.cancelled = append(f.cancelled, h)
	return true
}

// only returns the single live timer.
func (f *fakeTimers) only(t *testing.T) (apptimer.Handle, fakeTimer) {
	t.Helper()
	if len(f.live) != 1 {
		t.Fatalf("live timers = %d, want 1", len(f.live))
	}
	for h, ft := range f.live {
		return h, ft
	}
	panic("unreachable")
}

func (f *fakeTimers) fire(t *testing.T) time.Duration {
	t.Helper()
	h, ft := f.only(t)
	delete(f.live, h)
	ft.fn()
	return ft.delay
}

type fakeSequence struct {
	frames int
	delay  time.Duration
	shown  int
	closed bool
}

func (s *fakeSequence) Size() image.Point { return image.Pt(3, 2) }

func (s *fakeSequence) NextFrame(dst *bitmap.Bitmap) (time.Duration, bool) {
	if s.shown >= s.frames {
		return 0, false
	}
	s.shown++
	dst.Fill(bitmap.Color8(s.shown))
	return s.delay, true
}

func (s *fakeSequence) Close() error {
	s.closed = true
	return nil
}

func openFake(seq *fakeSequence) Opener {
	return func() (Sequence, error) { return seq, nil }
}

func TestDriver_LoadSchedulesFirstAdvance(t *testing.T) {
	timers := newFakeTimers()
	d := NewDriver(timers, nil, nil)
	if err := d.Load(openFake(&fakeSequence{frames: 3, delay: 40 * time.Millisecond})); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.State() != Loaded {
		t.Fatalf("State = %v, want loaded", d.State())
	}
	if got := d.Frame().Size(); got != image.Pt(3, 2) {
		t.Fatalf("frame size = %v, want 3x2", got)
	}
	if _, ft := timers.only(t); ft.delay != apptimer.MinDelay {
		t.Fatalf("first delay = %v, want %v", ft.delay, apptimer.MinDelay)
	}
}

func TestDriver_AdvancesUntilSequenceEnds(t *testing.T) {
	timers := newFakeTimers()
	var redraws int
	d := NewDriver(timers, func(*bitmap.Bitmap) { redraws++ }, nil)
	seq := &fakeSequence{frames: 3, delay: 40 * time.Millisecond}
	if err := d.Load(openFake(seq)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	timers.fire(t)
	if d.State() != Advancing {
		t.Fatalf("State = %v, want advancing", d.State())
	}
	if got := timers.fire(t); got != 40*time.Millisecond {
		t.Fatalf("rescheduled delay = %v, want 40ms", got)
	}
	timers.fire(t)
	timers.fire(t) // sequence exhausted

	if d.State() != Finished {
		t.Fatalf("State = %v, want finished", d.State())
	}
	if len(timers.live) != 0 {
		t.Fatalf("live timers after end = %d, want 0", len(timers.live))
	}
	if redraws != 3 || d.Frames() != 3 {
		t.Fatalf("redraws = %d frames = %d, want 3", redraws, d.Frames())
	}
	if got := d.Frame().Color8At(0, 0); got != bitmap.Color8(3) {
		t.Fatalf("last frame pixel = %#x, want 0x3", got)
	}
}

func TestDriver_UnloadCancelsPendingTimer(t *testing.T) {
	timers := newFakeTimers()
	d := NewDriver(timers, nil, nil)
	seq := &fakeSequence{frames: 10, delay: time.Second}
	if err := d.Load(openFake(seq)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	timers.fire(t)
	h, _ := timers.only(t)

	d.Unload()
	if len(timers.live) != 0 || len(timers.cancelled) != 1 || timers.cancelled[0] != h {
		t.Fatalf("cancelled = %v live = %d, want %d cancelled", timers.cancelled, len(timers.live), h)
	}
	if !seq.closed || d.Frame() != nil || d.State() != Unloaded {
		t.Fatalf("unload left closed=%v frame=%v state=%v", seq.closed, d.Frame() != nil, d.State())
	}
}

func TestDriver_UnloadWithoutLoad(t *testing.T) {
	timers := newFakeTimers()
	d := NewDriver(timers, nil, nil)
	d.Unload()
	d.Unload()
	if len(timers.cancelled) != 0 || d.State() != Unloaded {
		t.Fatalf("unload on fresh driver cancelled %v, state %v", timers.cancelled, d.State())
	}
}

func TestDriver_ReloadTearsDownFirst(t *testing.T) {
	timers := newFakeTimers()
	d := NewDriver(timers, nil, nil)
	first := &fakeSequence{frames: 5, delay: time.Second}
	second := &fakeSequence{frames: 5, delay: time.Second}
	if err := d.Load(openFake(first)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := d.Load(openFake(second)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !first.closed {
		t.Fatalf("first sequence not closed on reload")
	}
	timers.only(t)
}

func TestDriver_OpenFailureStaysUnloaded(t *testing.T) {
	var logs bytes.Buffer
	timers := newFakeTimers()
	d := NewDriver(timers, nil, slog.New(slog.NewTextHandler(&logs, nil)))
	boom := errors.New("missing resource")

	err := d.Load(func() (Sequence, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("Load error = %v, want %v", err, boom)
	}
	if d.State() != Unloaded || len(timers.live) != 0 {
		t.Fatalf("State = %v timers = %d after failed open", d.State(), len(timers.live))
	}
	if !strings.Contains(logs.String(), "animation open failed") {
		t.Fatalf("logs = %q, want open failure logged", logs.String())
	}
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestDriver_LoadGIF(t *testing.T) {
	rc := &closeTracker{Reader: bytes.NewReader(encodeGIF(t, twoFrames(-1, gif.DisposalNone)))}
	timers := newFakeTimers()
	d := NewDriver(timers, nil, nil)
	if err := d.LoadGIF(rc); err != nil {
		t.Fatalf("LoadGIF: %v", err)
	}
	if !rc.closed {
		t.Fatalf("resource left open")
	}
	timers.fire(t)
	timers.fire(t)
	timers.fire(t)
	if d.Frames() != 2 || len(timers.live) != 0 {
		t.Fatalf("frames = %d live = %d, want 2 frames then stop", d.Frames(), len(timers.live))
	}
	if got := d.Frame().Color8At(3, 3); got != bitmap.Blue {
		t.Fatalf("final pixel = %#x, want blue", got)
	}
}
