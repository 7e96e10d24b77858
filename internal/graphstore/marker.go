package graphstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// Marker gates seeding on a zero-byte file. The pipeline drops the marker
// after a successful seed; as long as it exists, later runs skip the load
// entirely instead of re-merging every row.
type Marker struct {
	path string
}

// NewMarker creates a marker handle for path.
func NewMarker(path string) *Marker {
	return &Marker{path: filepath.Clean(path)}
}

// Exists reports whether the marker file is present.
func (m *Marker) Exists() (bool, error) {
	_, err := os.Stat(m.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat seed marker: %w", err)
}

// Write drops the marker file, creating parent directories as needed.
func (m *Marker) Write() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("ensure seed marker directory: %w", err)
	}
	f, err := os.OpenFile(m.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("write seed marker: %w", err)
	}
	return f.Close()
}

// Clear removes the marker so the next run seeds again.
func (m *Marker) Clear() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear seed marker: %w", err)
	}
	return nil
}
