package postlane

import (
	"time"

	"github.com/google/uuid"
)

// Attachment count bounds enforced for every post.
const (
	MinAttachments = 1
	MaxAttachments = 3
)

// EntityKind names the entity class in lookup errors.
type EntityKind string

const (
	KindPost     EntityKind = "post"
	KindUser     EntityKind = "user"
	KindCategory EntityKind = "category"
	KindComment  EntityKind = "comment"
)

// Post is a published content item. A post always carries between
// MinAttachments and MaxAttachments media references; the attachments are
// owned exclusively by the post and live in an object store.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AuthorID    uuid.UUID  `json:"author_id"`
	CategoryID  uuid.UUID  `json:"category_id"`
	Media       []MediaRef `json:"media"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MediaRef points at one object-store attachment. Keys are generated, never
// reused, and belong to exactly one post.
type MediaRef struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
}

// User is a post author.
type User struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a reader remark attached to a post. Comments are removed with
// the post they belong to.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category classifies posts.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
