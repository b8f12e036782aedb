// Package resource resolves the watchface's bundled resources by ID.
package resource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ID names a bundled resource.
type ID string

// Output is the animated image shown behind the text layers.
const Output ID = "output"

// ErrNotFound is returned when no resource is registered under an ID.
var ErrNotFound = errors.New("resource not found")

// Registry maps resource IDs to their content. Built-in content is
// generated on demand; a file registered with Override replaces it.
type Registry struct {
	builtin   map[ID]func() ([]byte, error)
	overrides map[ID]string
}

// NewRegistry returns a registry holding the built-in resources.
func NewRegistry() *Registry {
	return &Registry{
		builtin: map[ID]func() ([]byte, error){
			Output: BuiltinAnimation,
		},
		overrides: make(map[ID]string),
	}
}

// Override serves id from the file at path. An empty path restores the
// built-in content.
func (r *Registry) Override(id ID, path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		delete(r.overrides, id)
		return
	}
	r.overrides[id] = path
}

// Source describes where id is served from: a file path, "builtin", or ""
// when the ID is unknown.
func (r *Registry) Source(id ID) string {
	if path, ok := r.overrides[id]; ok {
		return path
	}
	if _, ok := r.builtin[id]; ok {
		return "builtin"
	}
	return ""
}

// IDs lists every registered ID in sorted order.
func (r *Registry) IDs() []ID {
	seen := make(map[ID]struct{}, len(r.builtin)+len(r.overrides))
	for id := range r.builtin {
		seen[id] = struct{}{}
	}
	for id := range r.overrides {
		seen[id] = struct{}{}
	}
	ids := make([]ID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Open returns a reader over the resource's bytes. The caller closes it.
func (r *Registry) Open(id ID) (io.ReadCloser, error) {
	if path, ok := r.overrides[id]; ok {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open resource %s: %w", id, err)
		}
		return file, nil
	}
	gen, ok := r.builtin[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	data, err := gen()
	if err != nil {
		return nil, fmt.Errorf("build resource %s: %w", id, err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
