package animation

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/five82/dontpanic/internal/apptimer"
	"github.com/five82/dontpanic/internal/bitmap"
)

// State is the driver's lifecycle state.
type State int

const (
	// Unloaded holds no sequence, frame buffer or timer.
	Unloaded State = iota
	// Loaded holds a sequence and frame buffer with the first advance pending.
	Loaded
	// Advancing has produced at least one frame and has the next one scheduled.
	Advancing
	// Finished keeps the last frame; the sequence has no more and nothing is
	// scheduled.
	Finished
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loaded:
		return "loaded"
	case Advancing:
		return "advancing"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Timers schedules one-shot callbacks on the event loop.
type Timers interface {
	Register(delay time.Duration, fn func()) apptimer.Handle
	Cancel(h apptimer.Handle) bool
}

// Opener opens a named animation resource.
type Opener func() (Sequence, error)

// Driver advances an animated sequence on the event loop. At most one
// advance timer is outstanding at a time.
type Driver struct {
	timers  Timers
	onFrame func(*bitmap.Bitmap)
	logger  *slog.Logger

	state   State
	seq     Sequence
	frame   *bitmap.Bitmap
	pending apptimer.Handle
	frames  int
}

// NewDriver returns an unloaded driver. onFrame runs after every frame
// written to the buffer, typically to mark the image layer dirty.
func NewDriver(timers Timers, onFrame func(*bitmap.Bitmap), logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{timers: timers, onFrame: onFrame, logger: logger}
}

// State returns the current lifecycle state.
func (d *Driver) State() State { return d.state }

// Frame returns the frame buffer, or nil when unloaded.
func (d *Driver) Frame() *bitmap.Bitmap { return d.frame }

// Frames returns the number of frames produced since the last Load.
func (d *Driver) Frames() int { return d.frames }

// Load opens a sequence, allocates a frame buffer sized to it and schedules
// the first advance at the minimum delay. Anything already loaded is torn
// down first. An open failure is logged and leaves the driver unloaded.
func (d *Driver) Load(open Opener) error {
	d.Unload()

	seq, err := open()
	if err != nil {
		d.logger.Error("animation open failed", "error", err)
		return fmt.Errorf("open animation: %w", err)
	}
	d.seq = seq
	d.frame = bitmap.NewBlank(seq.Size())
	d.frames = 0
	d.state = Loaded
	d.schedule(apptimer.MinDelay)
	d.logger.Debug("animation loaded", "width", seq.Size().X, "height", seq.Size().Y)
	return nil
}

// LoadGIF is Load for a GIF read from rc. rc is closed once decoded.
func (d *Driver) LoadGIF(rc io.ReadCloser) error {
	return d.Load(func() (Sequence, error) {
		defer rc.Close()
		return OpenGIF(rc)
	})
}

func (d *Driver) schedule(delay time.Duration) {
	d.pending = d.timers.Register(delay, d.advance)
}

// advance is the timer callback. The fired timer is no longer pending.
func (d *Driver) advance() {
	d.pending = 0
	if d.seq == nil || d.frame == nil {
		return
	}
	delay, ok := d.seq.NextFrame(d.frame)
	if !ok {
		d.state = Finished
		d.logger.Debug("animation finished", "frames", d.frames)
		return
	}
	d.frames++
	d.state = Advancing
	if d.onFrame != nil {
		d.onFrame(d.frame)
	}
	d.schedule(delay)
}

// Unload cancels the pending advance and releases the sequence and frame
// buffer. It is safe on an unloaded driver.
func (d *Driver) Unload() {
	if d.pending != 0 {
		d.timers.Cancel(d.pending)
		d.pending = 0
	}
	if d.seq != nil {
		if err := d.seq.Close(); err != nil {
			d.logger.Warn("animation close failed", "error", err)
		}
		d.seq = nil
	}
	d.frame = nil
	d.state = Unloaded
}
