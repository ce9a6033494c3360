package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/postlane/postlane/pkg/postlane"
)

// Repository implements postlane.ContentStore using in-memory storage.
// Intended for tests and development configurations.
type Repository struct {
	mu         sync.RWMutex
	posts      map[uuid.UUID]*postlane.Post
	users      map[uuid.UUID]*postlane.User
	categories map[uuid.UUID]*postlane.Category
	comments   map[uuid.UUID]*postlane.Comment
}

// New creates a new in-memory repository
func New() postlane.ContentStore {
	return &Repository{
		posts:      make(map[uuid.UUID]*postlane.Post),
		users:      make(map[uuid.UUID]*postlane.User),
		categories: make(map[uuid.UUID]*postlane.Category),
		comments:   make(map[uuid.UUID]*postlane.Comment),
	}
}

// Post operations

func (r *Repository) SavePost(ctx context.Context, post *postlane.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}

	// Store a copy to avoid external modifications
	postCopy := *post
	postCopy.Media = append([]postlane.MediaRef(nil), post.Media...)
	r.posts[post.ID] = &postCopy

	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*postlane.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, postlane.ErrPostNotFound
	}

	postCopy := *post
	postCopy.Media = append([]postlane.MediaRef(nil), post.Media...)
	return &postCopy, nil
}

func (r *Repository) ListPosts(ctx context.Context) ([]*postlane.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*postlane.Post, 0, len(r.posts))
	for _, post := range r.posts {
		postCopy := *post
		postCopy.Media = append([]postlane.MediaRef(nil), post.Media...)
		posts = append(posts, &postCopy)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[id]; !exists {
		return postlane.ErrPostNotFound
	}
	delete(r.posts, id)

	// Comments live and die with their post.
	for commentID, comment := range r.comments {
		if comment.PostID == id {
			delete(r.comments, commentID)
		}
	}
	return nil
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *postlane.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	userCopy := *user
	r.users[user.ID] = &userCopy
	return nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*postlane.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, postlane.ErrUserNotFound
	}
	userCopy := *user
	return &userCopy, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*postlane.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			userCopy := *user
			return &userCopy, nil
		}
	}
	return nil, postlane.ErrUserNotFound
}

func (r *Repository) ListUsers(ctx context.Context) ([]*postlane.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*postlane.User, 0, len(r.users))
	for _, user := range r.users {
		userCopy := *user
		users = append(users, &userCopy)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[id]; !exists {
		return postlane.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// Category operations

func (r *Repository) CreateCategory(ctx context.Context, category *postlane.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	categoryCopy := *category
	r.categories[category.ID] = &categoryCopy
	return nil
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*postlane.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, exists := r.categories[id]
	if !exists {
		return nil, postlane.ErrCategoryNotFound
	}
	categoryCopy := *category
	return &categoryCopy, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*postlane.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]*postlane.Category, 0, len(r.categories))
	for _, category := range r.categories {
		categoryCopy := *category
		categories = append(categories, &categoryCopy)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, category *postlane.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[category.ID]; !exists {
		return postlane.ErrCategoryNotFound
	}
	categoryCopy := *category
	r.categories[category.ID] = &categoryCopy
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[id]; !exists {
		return postlane.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

// Comment operations

func (r *Repository) CreateComment(ctx context.Context, comment *postlane.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	commentCopy := *comment
	r.comments[comment.ID] = &commentCopy
	return nil
}

func (r *Repository) GetComment(ctx context.Context, id uuid.UUID) (*postlane.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comment, exists := r.comments[id]
	if !exists {
		return nil, postlane.ErrCommentNotFound
	}
	commentCopy := *comment
	return &commentCopy, nil
}

func (r *Repository) ListComments(ctx context.Context) ([]*postlane.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comments := make([]*postlane.Comment, 0, len(r.comments))
	for _, comment := range r.comments {
		commentCopy := *comment
		comments = append(comments, &commentCopy)
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *Repository) ListCommentsByPost(ctx context.Context, postID uuid.UUID) ([]*postlane.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var comments []*postlane.Comment
	for _, comment := range r.comments {
		if comment.PostID != postID {
			continue
		}
		commentCopy := *comment
		comments = append(comments, &commentCopy)
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *Repository) UpdateComment(ctx context.Context, comment *postlane.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.comments[comment.ID]; !exists {
		return postlane.ErrCommentNotFound
	}
	commentCopy := *comment
	r.comments[comment.ID] = &commentCopy
	return nil
}

func (r *Repository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.comments[id]; !exists {
		return postlane.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}
