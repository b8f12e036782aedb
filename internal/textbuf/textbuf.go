// Package textbuf provides fixed-capacity text buffers that are rewritten in
// place. A value persists until the next write overwrites it.
package textbuf

import (
	"fmt"
	"unicode/utf8"
)

// Buffer holds at most Cap()-1 bytes of text. One byte of the capacity is
// reserved for the terminator the watch toolkit expects, so a buffer sized
// for "00:00" has capacity 6.
type Buffer struct {
	data []byte
	n    int
}

// New returns an empty buffer with the given capacity in bytes.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{data: make([]byte, capacity)}
}

// Cap returns the buffer capacity including the reserved terminator byte.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Set overwrites the buffer with s, truncated to fit. Truncation never splits
// a valid UTF-8 sequence at the cut. It returns true when the stored text changed.
func (b *Buffer) Set(s string) bool {
	limit := len(b.data) - 1
	if len(s) > limit {
		s = s[:limit]
		// Back off a rune cut by the limit. Invalid bytes before it are
		// copied as they are.
		for k := 1; k < utf8.UTFMax && k <= len(s); k++ {
			if utf8.RuneStart(s[len(s)-k]) {
				if !utf8.FullRuneInString(s[len(s)-k:]) {
					s = s[:len(s)-k]
				}
				break
			}
		}
	}
	if b.n == len(s) && string(b.data[:b.n]) == s {
		return false
	}
	b.n = copy(b.data, s)
	b.data[b.n] = 0
	return true
}

// Printf formats into the buffer like snprintf.
func (b *Buffer) Printf(format string, args ...any) bool {
	return b.Set(fmt.Sprintf(format, args...))
}

// String returns the current contents.
func (b *Buffer) String() string {
	if b == nil {
		return ""
	}
	return string(b.data[:b.n])
}

// Len returns the number of bytes stored.
func (b *Buffer) Len() int {
	return b.n
}
