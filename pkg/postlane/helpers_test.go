package postlane_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/postlane/postlane/pkg/postlane"
)

// stubBlobStore is an in-memory blob store with injectable failures for
// exercising the compensation paths.
type stubBlobStore struct {
	mu      sync.Mutex
	objects map[string]string // key -> content type

	failPutExt     string              // puts for keys with this extension fail
	failDeleteKeys map[string]struct{} // deletes for these keys fail
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{
		objects:        make(map[string]string),
		failDeleteKeys: make(map[string]struct{}),
	}
}

func (s *stubBlobStore) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failPutExt != "" && strings.HasSuffix(key, s.failPutExt) {
		return "", errors.New("injected put failure")
	}
	s.objects[key] = contentType
	return "stub://" + key, nil
}

func (s *stubBlobStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, fail := s.failDeleteKeys[key]; fail {
		return errors.New("injected delete failure")
	}
	// Deleting an absent key succeeds, matching S3 semantics.
	delete(s.objects, key)
	return nil
}

func (s *stubBlobStore) failDeleteOf(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failDeleteKeys[key] = struct{}{}
}

func (s *stubBlobStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *stubBlobStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

// countingStore wraps a ContentStore and records writes so tests can assert
// that a failed operation never reached the relational store.
type countingStore struct {
	postlane.ContentStore

	mu              sync.Mutex
	savePosts       int
	deletePosts     int
	createUsers     int
	failSave        bool
	failEmailLookup bool
}

func (c *countingStore) SavePost(ctx context.Context, post *postlane.Post) error {
	c.mu.Lock()
	c.savePosts++
	fail := c.failSave
	c.mu.Unlock()

	if fail {
		return errors.New("injected save failure")
	}
	return c.ContentStore.SavePost(ctx, post)
}

func (c *countingStore) DeletePost(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	c.deletePosts++
	c.mu.Unlock()
	return c.ContentStore.DeletePost(ctx, id)
}

func (c *countingStore) GetUserByEmail(ctx context.Context, email string) (*postlane.User, error) {
	c.mu.Lock()
	fail := c.failEmailLookup
	c.mu.Unlock()

	if fail {
		return nil, errors.New("injected lookup failure")
	}
	return c.ContentStore.GetUserByEmail(ctx, email)
}

func (c *countingStore) CreateUser(ctx context.Context, user *postlane.User) error {
	c.mu.Lock()
	c.createUsers++
	c.mu.Unlock()
	return c.ContentStore.CreateUser(ctx, user)
}

// recordingNotifier captures sends and can simulate delivery failures.
type recordingNotifier struct {
	mu    sync.Mutex
	sends []sentMail
	fail  bool
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (n *recordingNotifier) Send(ctx context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("injected notification failure")
	}
	n.sends = append(n.sends, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (n *recordingNotifier) sent() []sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMail(nil), n.sends...)
}
