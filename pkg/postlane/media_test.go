package postlane_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/postlane/postlane/pkg/postlane"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAttachmentCount(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{name: "zero files", count: 0, wantErr: true},
		{name: "one file", count: 1, wantErr: false},
		{name: "two files", count: 2, wantErr: false},
		{name: "three files", count: 3, wantErr: false},
		{name: "four files", count: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := newStubBlobStore()
			orch := postlane.NewMediaOrchestrator(blobs, nil)

			files := make([]postlane.FileUpload, tt.count)
			for i := range files {
				files[i] = postlane.FileUpload{Name: "photo.jpg", Data: []byte("data")}
			}

			refs, err := orch.Upload(context.Background(), files)

			if tt.wantErr {
				var countErr *postlane.AttachmentCountError
				require.ErrorAs(t, err, &countErr)
				assert.Equal(t, tt.count, countErr.Got)
				assert.Equal(t, 0, blobs.len(), "no object should be stored")
			} else {
				require.NoError(t, err)
				assert.Len(t, refs, tt.count)
				assert.Equal(t, tt.count, blobs.len())
			}
		})
	}
}

func TestValidateRejectsWithoutTouchingStore(t *testing.T) {
	tests := []struct {
		name    string
		files   []postlane.FileUpload
		wantErr error
	}{
		{
			name:    "empty batch",
			files:   nil,
			wantErr: &postlane.AttachmentCountError{Got: 0},
		},
		{
			name: "oversized batch",
			files: []postlane.FileUpload{
				{Name: "a.jpg", Data: []byte("1")},
				{Name: "b.jpg", Data: []byte("2")},
				{Name: "c.jpg", Data: []byte("3")},
				{Name: "d.jpg", Data: []byte("4")},
			},
			wantErr: &postlane.AttachmentCountError{Got: 4},
		},
		{
			name:    "only zero-byte files",
			files:   []postlane.FileUpload{{Name: "a.jpg", Data: nil}},
			wantErr: &postlane.AttachmentCountError{Got: 0},
		},
		{
			name:    "name without extension",
			files:   []postlane.FileUpload{{Name: "noext", Data: []byte("1")}},
			wantErr: postlane.ErrInvalidAttachmentName,
		},
		{
			name: "valid batch",
			files: []postlane.FileUpload{
				{Name: "a.jpg", Data: []byte("1")},
				{Name: "empty.png", Data: nil},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := newStubBlobStore()
			orch := postlane.NewMediaOrchestrator(blobs, nil)

			err := orch.Validate(tt.files)

			switch want := tt.wantErr.(type) {
			case nil:
				assert.NoError(t, err)
			case *postlane.AttachmentCountError:
				var countErr *postlane.AttachmentCountError
				require.ErrorAs(t, err, &countErr)
				assert.Equal(t, want.Got, countErr.Got)
			default:
				require.ErrorIs(t, err, want)
			}
			assert.Equal(t, 0, blobs.len())
		})
	}
}

func TestUploadSkipsEmptyFiles(t *testing.T) {
	blobs := newStubBlobStore()
	orch := postlane.NewMediaOrchestrator(blobs, nil)

	refs, err := orch.Upload(context.Background(), []postlane.FileUpload{
		{Name: "a.jpg", Data: []byte("aaa")},
		{Name: "empty.png", Data: nil},
	})
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.True(t, strings.HasSuffix(refs[0].Key, ".jpg"))
}

func TestUploadAllFilesEmpty(t *testing.T) {
	blobs := newStubBlobStore()
	orch := postlane.NewMediaOrchestrator(blobs, nil)

	_, err := orch.Upload(context.Background(), []postlane.FileUpload{
		{Name: "a.jpg", Data: nil},
		{Name: "b.png", Data: []byte{}},
	})

	// Empty files are skipped, not errors, but they do not satisfy the
	// minimum either.
	var countErr *postlane.AttachmentCountError
	require.ErrorAs(t, err, &countErr)
	assert.Equal(t, 0, countErr.Got)
	assert.Equal(t, 0, blobs.len())
}

func TestUploadKeyDerivation(t *testing.T) {
	blobs := newStubBlobStore()
	orch := postlane.NewMediaOrchestrator(blobs, nil)

	refs, err := orch.Upload(context.Background(), []postlane.FileUpload{
		{Name: "holiday.photo.jpeg", Data: []byte("xxx")},
	})
	require.NoError(t, err)
	require.Len(t, refs, 1)

	// Key is a fresh token plus the extension after the last dot.
	assert.True(t, strings.HasSuffix(refs[0].Key, ".jpeg"))
	assert.NotContains(t, refs[0].Key, "holiday")
	assert.Equal(t, "image/jpeg", refs[0].ContentType)
	assert.Equal(t, "stub://"+refs[0].Key, refs[0].URL)
}

func TestUploadRejectsNameWithoutExtension(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
	}{
		{name: "no dot", fileName: "README"},
		{name: "trailing dot", fileName: "photo."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := newStubBlobStore()
			orch := postlane.NewMediaOrchestrator(blobs, nil)

			_, err := orch.Upload(context.Background(), []postlane.FileUpload{
				{Name: "fine.jpg", Data: []byte("a")},
				{Name: tt.fileName, Data: []byte("b")},
			})
			require.ErrorIs(t, err, postlane.ErrInvalidAttachmentName)
			assert.Equal(t, 0, blobs.len(), "naming failures abort before any put")
		})
	}
}

func TestUploadOrderPreserved(t *testing.T) {
	blobs := newStubBlobStore()
	orch := postlane.NewMediaOrchestrator(blobs, nil)

	refs, err := orch.Upload(context.Background(), []postlane.FileUpload{
		{Name: "first.jpg", Data: []byte("1")},
		{Name: "second.png", Data: []byte("2")},
		{Name: "third.gif", Data: []byte("3")},
	})
	require.NoError(t, err)
	require.Len(t, refs, 3)

	// Uploads run concurrently; the result order must follow input order.
	assert.True(t, strings.HasSuffix(refs[0].Key, ".jpg"))
	assert.True(t, strings.HasSuffix(refs[1].Key, ".png"))
	assert.True(t, strings.HasSuffix(refs[2].Key, ".gif"))
}

func TestUploadCompensatesOnFailure(t *testing.T) {
	blobs := newStubBlobStore()
	blobs.failPutExt = ".png"
	orch := postlane.NewMediaOrchestrator(blobs, nil)

	_, err := orch.Upload(context.Background(), []postlane.FileUpload{
		{Name: "a.jpg", Data: []byte("1")},
		{Name: "b.png", Data: []byte("2")},
		{Name: "c.gif", Data: []byte("3")},
	})

	var uploadErr *postlane.UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.True(t, strings.HasSuffix(uploadErr.Key, ".png"))

	// Every object stored before the failure has been swept.
	assert.Equal(t, 0, blobs.len())
}

func TestDeleteSweepContinuesPastFailures(t *testing.T) {
	blobs := newStubBlobStore()
	orch := postlane.NewMediaOrchestrator(blobs, nil)

	refs, err := orch.Upload(context.Background(), []postlane.FileUpload{
		{Name: "a.jpg", Data: []byte("1")},
		{Name: "b.png", Data: []byte("2")},
		{Name: "c.gif", Data: []byte("3")},
	})
	require.NoError(t, err)

	blobs.failDeleteOf(refs[1].Key)

	results, all := orch.Delete(context.Background(), refs)
	assert.False(t, all)
	assert.Equal(t, []bool{true, false, true}, results)

	// The sweep kept going after the failure.
	assert.False(t, blobs.has(refs[0].Key))
	assert.True(t, blobs.has(refs[1].Key))
	assert.False(t, blobs.has(refs[2].Key))
}

func TestDeleteAllSucceed(t *testing.T) {
	blobs := newStubBlobStore()
	orch := postlane.NewMediaOrchestrator(blobs, nil)

	refs, err := orch.Upload(context.Background(), []postlane.FileUpload{
		{Name: "a.jpg", Data: []byte("1")},
		{Name: "b.png", Data: []byte("2")},
	})
	require.NoError(t, err)

	results, all := orch.Delete(context.Background(), refs)
	assert.True(t, all)
	assert.Equal(t, []bool{true, true}, results)
	assert.Equal(t, 0, blobs.len())
}

func TestUploadCancelledContext(t *testing.T) {
	blobs := newStubBlobStore()
	orch := postlane.NewMediaOrchestrator(blobs, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Count validation still runs before anything else.
	_, err := orch.Upload(ctx, nil)
	var countErr *postlane.AttachmentCountError
	assert.True(t, errors.As(err, &countErr))
}
