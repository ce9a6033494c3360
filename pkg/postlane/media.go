package postlane

import (
	"bytes"
	"context"
	"log/slog"
	"mime"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MediaOrchestrator turns raw file payloads into stored attachments and back.
// Batches are all-or-nothing on upload: the first failed put triggers
// compensating deletes for every put that already completed, so a caller
// never observes a half-stored batch.
type MediaOrchestrator struct {
	blobs  BlobStore
	logger *slog.Logger
}

// NewMediaOrchestrator creates an orchestrator over the given blob store.
func NewMediaOrchestrator(blobs BlobStore, logger *slog.Logger) *MediaOrchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaOrchestrator{blobs: blobs, logger: logger}
}

// Validate runs the checks Upload performs before its first put: batch size
// bounds, the non-empty minimum after zero-byte files are dropped, and the
// per-file extension requirement. Callers replacing an existing attachment
// set run it first so a bad batch is rejected while the old objects are
// still intact.
func (o *MediaOrchestrator) Validate(files []FileUpload) error {
	if len(files) < MinAttachments || len(files) > MaxAttachments {
		return &AttachmentCountError{Got: len(files)}
	}

	nonEmpty := 0
	for _, f := range files {
		if len(f.Data) == 0 {
			continue
		}
		if fileExtension(f.Name) == "" {
			return ErrInvalidAttachmentName
		}
		nonEmpty++
	}
	if nonEmpty < MinAttachments {
		return &AttachmentCountError{Got: 0}
	}
	return nil
}

// Upload stores the given files and returns one MediaRef per accepted file,
// in input order regardless of completion order.
//
// The batch size must be between MinAttachments and MaxAttachments.
// Zero-byte files are skipped silently but do not count toward the minimum.
// Object keys are a fresh UUID plus the original file's extension; a name
// without an extension fails the whole batch before any put is issued.
func (o *MediaOrchestrator) Upload(ctx context.Context, files []FileUpload) ([]MediaRef, error) {
	if err := o.Validate(files); err != nil {
		return nil, err
	}

	accepted := make([]FileUpload, 0, len(files))
	for _, f := range files {
		if len(f.Data) == 0 {
			o.logger.Warn("skipping empty attachment", "name", f.Name)
			continue
		}
		accepted = append(accepted, f)
	}

	// Derive every key up front; Validate has already rejected names
	// without a usable extension.
	refs := make([]MediaRef, len(accepted))
	for i, f := range accepted {
		ext := fileExtension(f.Name)
		refs[i] = MediaRef{
			Key:         uuid.New().String() + ext,
			ContentType: contentTypeForExtension(ext),
		}
	}

	stored := make([]bool, len(accepted))
	g, gctx := errgroup.WithContext(ctx)
	for i := range accepted {
		i := i
		g.Go(func() error {
			url, err := o.blobs.Put(gctx, refs[i].Key, bytes.NewReader(accepted[i].Data), refs[i].ContentType)
			if err != nil {
				return &UploadError{Key: refs[i].Key, Err: err}
			}
			refs[i].URL = url
			stored[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Compensate: sweep every object that made it in before the
		// failure. Sweep failures leave orphan objects, which policy
		// tolerates; they are logged and swallowed.
		for i, ok := range stored {
			if !ok {
				continue
			}
			if derr := o.blobs.Delete(ctx, refs[i].Key); derr != nil {
				o.logger.Error("compensating delete failed, object orphaned",
					"key", refs[i].Key, "error", derr)
			}
		}
		return nil, err
	}

	return refs, nil
}

// Delete removes the given attachments from the blob store. Individual
// failures do not stop the sweep; the returned slice holds the per-ref
// outcome in input order and the flag is true only if every delete succeeded.
func (o *MediaOrchestrator) Delete(ctx context.Context, refs []MediaRef) ([]bool, bool) {
	results := make([]bool, len(refs))
	all := true
	for i, ref := range refs {
		if err := o.blobs.Delete(ctx, ref.Key); err != nil {
			o.logger.Error("media delete failed", "key", ref.Key, "error", err)
			all = false
			continue
		}
		results[i] = true
	}
	return results, all
}

// fileExtension returns the substring from the last dot of name, or "" when
// name carries no usable extension.
func fileExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx:]
}

func contentTypeForExtension(ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
