package postlane

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors returned by ContentStore implementations. The service layer
// wraps them into the typed errors below before they reach callers.
var (
	// ErrPostNotFound indicates a post row was not found
	ErrPostNotFound = errors.New("post not found")

	// ErrUserNotFound indicates a user row was not found
	ErrUserNotFound = errors.New("user not found")

	// ErrCategoryNotFound indicates a category row was not found
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCommentNotFound indicates a comment row was not found
	ErrCommentNotFound = errors.New("comment not found")

	// ErrDuplicateUser indicates a user with the same email already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidAttachmentName indicates a file name without an extension,
	// from which no object key can be derived
	ErrInvalidAttachmentName = errors.New("attachment name has no extension")
)

// NotFoundError reports a failed entity lookup during a post operation.
type NotFoundError struct {
	Kind EntityKind
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// AttachmentCountError reports an attachment batch outside the 1..3 range.
type AttachmentCountError struct {
	Got int
}

func (e *AttachmentCountError) Error() string {
	return fmt.Sprintf("invalid attachment count %d: must be between %d and %d",
		e.Got, MinAttachments, MaxAttachments)
}

// UploadError reports a failed attachment batch upload. By the time it is
// returned every object stored earlier in the same batch has been swept by a
// compensating delete.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed for key %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// PersistError reports a failed ContentStore write after the side effects of
// earlier steps were either compensated or deliberately kept.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist operation %s failed: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// PartialDeleteError reports an attachment sweep in which at least one object
// delete failed. The relational row is left untouched; the operation is
// retryable.
type PartialDeleteError struct {
	FailedKeys []string
}

func (e *PartialDeleteError) Error() string {
	return fmt.Sprintf("media delete failed for keys: %s", strings.Join(e.FailedKeys, ", "))
}
