package memory

import (
	"context"
	"io"
	"sync"

	"github.com/postlane/postlane/pkg/postlane"
)

// Backend is an in-memory implementation of the postlane.BlobStore interface
type Backend struct {
	mu           sync.RWMutex
	objects      map[string][]byte
	contentTypes map[string]string
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

var _ postlane.BlobStore = (*Backend)(nil)

// Put stores an object and returns a memory:// URL for it
func (b *Backend) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[key] = data
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	b.contentTypes[key] = contentType

	return "memory://" + key, nil
}

// Delete removes an object. Deleting an absent key succeeds, matching S3
// semantics.
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.objects, key)
	delete(b.contentTypes, key)
	return nil
}

// Get returns a stored object's bytes and content type. Test helper.
func (b *Backend) Get(key string) ([]byte, string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[key]
	if !exists {
		return nil, "", false
	}
	return append([]byte(nil), data...), b.contentTypes[key], true
}

// Len returns the number of stored objects. Test helper.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}
