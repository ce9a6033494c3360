package postlane

import (
	"context"

	"github.com/google/uuid"
)

// Service is the boundary contract exposed to transport layers. Every
// operation returns either the resulting entity or one of the typed errors in
// errors.go; callers branch on error kind, never on nil results.
type Service interface {
	// Post lifecycle
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)
	UpdatePost(ctx context.Context, id uuid.UUID, req UpdatePostRequest) (*Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	GetPost(ctx context.Context, id uuid.UUID) (*Post, error)
	ListPosts(ctx context.Context) ([]*Post, error)

	// User operations
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// Category operations
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// Comment operations
	AddComment(ctx context.Context, req CreateCommentRequest) (*Comment, error)
	GetComment(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListComments(ctx context.Context) ([]*Comment, error)
	ListPostComments(ctx context.Context, postID uuid.UUID) ([]*Comment, error)
	UpdateComment(ctx context.Context, id uuid.UUID, req UpdateCommentRequest) (*Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
}
