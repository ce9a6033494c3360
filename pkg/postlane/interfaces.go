package postlane

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// ContentStore defines the interface for relational persistence of posts,
// users, categories, and comments. Lookups return the package sentinel
// errors for missing rows; they never panic.
type ContentStore interface {
	// Post operations
	SavePost(ctx context.Context, post *Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*Post, error)
	ListPosts(ctx context.Context) ([]*Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error

	// User operations
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// Category operations
	CreateCategory(ctx context.Context, category *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// Comment operations
	CreateComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListComments(ctx context.Context) ([]*Comment, error)
	ListCommentsByPost(ctx context.Context, postID uuid.UUID) ([]*Comment, error)
	UpdateComment(ctx context.Context, comment *Comment) error
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

// BlobStore defines the interface for object-store backends holding post
// attachments.
type BlobStore interface {
	// Put stores an object and returns its resolvable URL
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)

	// Delete removes an object
	Delete(ctx context.Context, key string) error
}

// NotificationSink delivers best-effort outbound messages. Send failures are
// never fatal to the calling operation.
type NotificationSink interface {
	Send(ctx context.Context, to, subject, body string) error
}
