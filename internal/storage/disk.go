// Package storage holds product image blobs on the local filesystem.
// Metadata lives in Postgres; this package only deals in bytes.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore is the boundary the image service writes through.
type BlobStore interface {
	Save(name string, r io.Reader) error
	Remove(name string) error
}

type DiskStore struct {
	dir string
}

// NewDiskStore creates the backing directory if it does not exist.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory %q: %w", dir, err)
	}

	return &DiskStore{dir: dir}, nil
}

// Dir is the directory served as the public image root.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save streams r into a file under the store directory. Names are flat;
// anything that would escape the directory is rejected.
func (s *DiskStore) Save(name string, r io.Reader) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file %q: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)

		return fmt.Errorf("writing image file %q: %w", name, err)
	}

	return f.Close()
}

// Remove deletes the named blob. A missing file is not an error; the
// metadata row is the source of truth and may outlive a manual cleanup.
func (s *DiskStore) Remove(name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing image file %q: %w", name, err)
	}

	return nil
}

func (s *DiskStore) resolve(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid image name %q", name)
	}

	return filepath.Join(s.dir, name), nil
}
