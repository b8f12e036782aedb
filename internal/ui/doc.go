// Package ui is the watchface shell: a Bubble Tea program that owns the
// single watchface window and routes every host event to its handler.
//
// # Window
//
// The window is a 144x168 framebuffer with a blue background, a full-screen
// bitmap layer showing the animation, and four right-aligned yellow text
// layers 100 px wide:
//
//	y=19  time       "12:30"
//	y=39  weather    "DONT PANIC" until the first report
//	y=59  weekday    "Tuesday"
//	y=79  date       "Mar  5"
//
// Loading the window builds the layers, starts the animation from resource
// output, fills the clock and sends one weather request. Unloading cancels
// the pending animation timer and releases the decoder and frame buffer.
//
// # Events
//
// Model.Update is the only place watchface state changes:
//
//   - apptimer.FiredMsg runs a live timer callback (animation advance)
//   - minuteMsg refreshes the clock and, on cadence minutes, requests weather
//   - appmsg.ReceivedMsg applies a weather report
//   - appmsg.DroppedMsg, SentMsg and FailedMsg are logged and counted
//
// Every Update ends by flushing timers registered during the handler, so
// a callback that reschedules itself is picked up by the program.
//
// # Rendering
//
// View redraws the framebuffer only when a layer changed, then maps it to
// terminal cells with half blocks next to a status panel. The help and log
// overlays replace the main view while open.
package ui
