// Package screen composes the watch display: a framebuffer window holding
// bitmap and text layers, and a terminal renderer for it.
package screen
