// Package storage persists portfolio file content on the local filesystem.
// Content lives in a single flat directory keyed by the server-generated
// storage name, never by the user-supplied one
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Disk struct {
	root string
}

// New creates the storage directory if it doesn't exist yet
func New(root string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory, %w", err)
	}

	return &Disk{root: root}, nil
}

// Path resolves a storage name to its location on disk. The name is
// reduced to its base so a crafted record can't escape the root
func (d *Disk) Path(name string) string {
	return filepath.Join(d.root, filepath.Base(name))
}

// Save writes src under the given storage name and reports the number
// of bytes written. A partially written file is removed on failure
func (d *Disk) Save(name string, src io.Reader) (int64, error) {
	dst, err := os.Create(d.Path(name))
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return 0, err
	}

	return n, dst.Close()
}

// Open returns the stored content. The error wraps os.ErrNotExist when
// the backing file is missing
func (d *Disk) Open(name string) (*os.File, error) {
	return os.Open(d.Path(name))
}

// Exists reports whether the backing content is present
func (d *Disk) Exists(name string) bool {
	_, err := os.Stat(d.Path(name))
	return err == nil
}

// Remove deletes stored content. A missing backing file is not an error
// so deletes stay idempotent
func (d *Disk) Remove(name string) error {
	err := os.Remove(d.Path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}
