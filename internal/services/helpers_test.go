package service_test

import (
	"fmt"
	"io"
	"sync"
)

// fakeBlobStore keeps blobs in a map so tests can assert on what was
// written and removed without touching the filesystem.
type fakeBlobStore struct {
	mu      sync.Mutex
	files   map[string]string
	saveErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{files: make(map[string]string)}
}

func (f *fakeBlobStore) Save(name string, r io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading blob %q: %w", name, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[name] = string(data)

	return nil
}

func (f *fakeBlobStore) Remove(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, name)

	return nil
}
