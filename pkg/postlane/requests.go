package postlane

import "github.com/google/uuid"

// Request DTOs

// FileUpload is one raw attachment payload as received from the caller. The
// original file name supplies the extension from which the object key and
// content type are derived.
type FileUpload struct {
	Name string
	Data []byte
}

// CreatePostRequest contains parameters for creating a post.
type CreatePostRequest struct {
	Title       string
	Description string
	AuthorID    uuid.UUID
	CategoryID  uuid.UUID
	Files       []FileUpload
}

// UpdatePostRequest contains parameters for updating a post. An empty Files
// slice means "keep the existing attachments"; a non-empty slice replaces the
// whole attachment set.
type UpdatePostRequest struct {
	Title       string
	Description string
	AuthorID    uuid.UUID
	CategoryID  uuid.UUID
	Files       []FileUpload
}

// CreateUserRequest contains parameters for registering a user.
type CreateUserRequest struct {
	UserName string
	Email    string
}

// CreateCommentRequest contains parameters for commenting on a post.
type CreateCommentRequest struct {
	PostID uuid.UUID
	UserID uuid.UUID
	Body   string
}

// UpdateCommentRequest contains parameters for editing a comment body. The
// post and author bindings of a comment never change.
type UpdateCommentRequest struct {
	Body string
}

// CreateCategoryRequest contains parameters for creating a category.
type CreateCategoryRequest struct {
	Name        string
	Description string
}

// UpdateCategoryRequest contains parameters for renaming a category.
type UpdateCategoryRequest struct {
	Name        string
	Description string
}
