package memory_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/postlane/postlane/pkg/postlane/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndGet(t *testing.T) {
	backend := memory.New()
	ctx := context.Background()

	url, err := backend.Put(ctx, "abc.jpg", bytes.NewReader([]byte("payload")), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "memory://abc.jpg", url)

	data, contentType, ok := backend.Get("abc.jpg")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), data)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestPutDefaultsContentType(t *testing.T) {
	backend := memory.New()

	_, err := backend.Put(context.Background(), "blob", bytes.NewReader([]byte("x")), "")
	require.NoError(t, err)

	_, contentType, ok := backend.Get("blob")
	require.True(t, ok)
	assert.Equal(t, "application/octet-stream", contentType)
}

func TestDeleteIsIdempotent(t *testing.T) {
	backend := memory.New()
	ctx := context.Background()

	_, err := backend.Put(ctx, "k.png", bytes.NewReader([]byte("x")), "image/png")
	require.NoError(t, err)

	require.NoError(t, backend.Delete(ctx, "k.png"))
	_, _, ok := backend.Get("k.png")
	assert.False(t, ok)

	// A second delete of the same key still succeeds.
	assert.NoError(t, backend.Delete(ctx, "k.png"))
	assert.Equal(t, 0, backend.Len())
}
