// Package animation plays an animated image into an 8-bit frame buffer.
//
// A Driver moves through three states. Unloaded holds nothing. Load opens a
// Sequence, allocates a buffer of the sequence's size and schedules the first
// advance after apptimer.MinDelay, entering Loaded. Each advance writes the
// next frame, notifies the owner and reschedules itself by the frame's delay,
// leaving the driver Advancing. When the sequence reports no further frame,
// nothing is rescheduled, the last frame stays on screen and the driver is
// Finished. Unload cancels
// the outstanding advance and releases everything.
//
// GIFSequence honours the GIF disposal methods and loop count. Frames with a
// zero delay are shown for 100ms.
package animation
