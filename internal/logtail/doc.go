// Package logtail reads the end of the application log for the log overlay.
//
// Read uses a ring buffer, so only the last maxLines lines are held in
// memory however large the file grows. Tail applies a case-insensitive
// substring filter before lines enter the ring, which is how the overlay's
// search box narrows the view:
//
//	lines, err := logtail.Tail(cfg.Log.Path, 400, "outbox")
//
// A log file that does not exist yet is not an error.
package logtail
