// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/samber/oops"

	"github.com/credkit/credkit/internal/xdg"
)

// FileBackend persists the session document as a single 0600 file. Writes go
// through a temp file plus rename so readers never observe a partial
// document.
type FileBackend struct {
	path string
}

// NewFileBackend creates a FileBackend at the given path. An empty path
// selects DefaultPath.
func NewFileBackend(path string) *FileBackend {
	if path == "" {
		path = DefaultPath()
	}
	return &FileBackend{path: path}
}

// DefaultPath returns the session file location under the XDG state dir.
func DefaultPath() string {
	return filepath.Join(xdg.StateDir(), "session.json")
}

// Path returns the backing file path.
func (b *FileBackend) Path() string {
	return b.path
}

// Load reads the session document. A missing file reads as absent.
func (b *FileBackend) Load() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, oops.Code("SESSION_READ_FAILED").With("path", b.path).Wrap(err)
	}
	return data, nil
}

// Store atomically replaces the session document.
func (b *FileBackend) Store(data []byte) error {
	if err := xdg.EnsureDir(filepath.Dir(b.path)); err != nil {
		return oops.Code("SESSION_WRITE_FAILED").With("path", b.path).Wrap(err)
	}

	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return oops.Code("SESSION_WRITE_FAILED").With("path", tmp).Wrap(err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		_ = os.Remove(tmp) //nolint:errcheck // best effort cleanup
		return oops.Code("SESSION_WRITE_FAILED").With("path", b.path).Wrap(err)
	}
	return nil
}

// Delete removes the session document.
func (b *FileBackend) Delete() error {
	if err := os.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return oops.Code("SESSION_DELETE_FAILED").With("path", b.path).Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ Backend = (*FileBackend)(nil)
