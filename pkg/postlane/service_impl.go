package postlane

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface. It holds no per-request state;
// everything it coordinates lives in the content store and the blob store.
type service struct {
	store    ContentStore
	media    *MediaOrchestrator
	notifier NotificationSink
	logger   *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithContentStore sets the relational store for the service
func WithContentStore(store ContentStore) Option {
	return func(s *service) {
		s.store = store
	}
}

// WithBlobStore sets the object-store backend holding post attachments
func WithBlobStore(blobs BlobStore) Option {
	return func(s *service) {
		s.media = NewMediaOrchestrator(blobs, nil)
	}
}

// WithNotifier sets the notification sink for the service
func WithNotifier(sink NotificationSink) Option {
	return func(s *service) {
		s.notifier = sink
	}
}

// WithLogger sets the logger for the service
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options. A content store
// and a blob store are required; the notifier defaults to a no-op sink.
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.store == nil {
		return nil, fmt.Errorf("content store is required")
	}
	if s.media == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if s.notifier == nil {
		s.notifier = NewNoopNotifier()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.media.logger = s.logger

	return s, nil
}

// Post lifecycle

func (s *service) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	author, err := s.store.GetUser(ctx, req.AuthorID)
	if err != nil {
		return nil, &NotFoundError{Kind: KindUser, ID: req.AuthorID}
	}
	if _, err := s.store.GetCategory(ctx, req.CategoryID); err != nil {
		return nil, &NotFoundError{Kind: KindCategory, ID: req.CategoryID}
	}

	refs, err := s.media.Upload(ctx, req.Files)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &Post{
		Title:       req.Title,
		Description: req.Description,
		AuthorID:    req.AuthorID,
		CategoryID:  req.CategoryID,
		Media:       refs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.SavePost(ctx, post); err != nil {
		// The objects are already up; sweep them so the failed create
		// leaves nothing behind. Sweep failures are logged inside
		// Delete and swallowed here.
		s.media.Delete(ctx, refs)
		return nil, &PersistError{Op: "create post", Err: err}
	}

	s.notifyCreated(ctx, author, post)

	return post, nil
}

func (s *service) UpdatePost(ctx context.Context, id uuid.UUID, req UpdatePostRequest) (*Post, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Kind: KindPost, ID: id}
	}
	if _, err := s.store.GetUser(ctx, req.AuthorID); err != nil {
		return nil, &NotFoundError{Kind: KindUser, ID: req.AuthorID}
	}
	if _, err := s.store.GetCategory(ctx, req.CategoryID); err != nil {
		return nil, &NotFoundError{Kind: KindCategory, ID: req.CategoryID}
	}

	post.Title = req.Title
	post.Description = req.Description
	post.AuthorID = req.AuthorID
	post.CategoryID = req.CategoryID
	post.UpdatedAt = time.Now().UTC()

	// An empty file set means "keep the existing attachments". A non-empty
	// set replaces them wholesale: the old objects go first, then the new
	// ones are uploaded. If the upload fails after the old set is gone the
	// stored row keeps its now-dangling refs and the caller must retry
	// with a fresh attachment set.
	if len(req.Files) > 0 {
		// A batch that fails the fast checks must not cost the caller
		// their stored attachments, so validate before deleting anything.
		if err := s.media.Validate(req.Files); err != nil {
			return nil, err
		}
		if _, ok := s.media.Delete(ctx, post.Media); !ok {
			return nil, &PartialDeleteError{FailedKeys: keysOf(post.Media)}
		}
		refs, err := s.media.Upload(ctx, req.Files)
		if err != nil {
			return nil, err
		}
		post.Media = refs
	}

	if err := s.store.SavePost(ctx, post); err != nil {
		return nil, &PersistError{Op: "update post", Err: err}
	}

	return post, nil
}

func (s *service) DeletePost(ctx context.Context, id uuid.UUID) error {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return &NotFoundError{Kind: KindPost, ID: id}
	}

	// The row is removed only after every object is gone. A partial sweep
	// leaves the row untouched and the caller retries; this trades a
	// temporarily undeletable post for never having a row that points at
	// half-deleted objects.
	results, ok := s.media.Delete(ctx, post.Media)
	if !ok {
		var failed []string
		for i, ref := range post.Media {
			if !results[i] {
				failed = append(failed, ref.Key)
			}
		}
		return &PartialDeleteError{FailedKeys: failed}
	}

	if err := s.store.DeletePost(ctx, id); err != nil {
		return &PersistError{Op: "delete post", Err: err}
	}

	s.logger.Info("post deleted", "post_id", id)
	return nil
}

func (s *service) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Kind: KindPost, ID: id}
	}
	return post, nil
}

func (s *service) ListPosts(ctx context.Context) ([]*Post, error) {
	return s.store.ListPosts(ctx)
}

func (s *service) notifyCreated(ctx context.Context, author *User, post *Post) {
	subject := fmt.Sprintf("Post created: %s", post.Title)
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Congratulations! Your post titled %q has been successfully created.\n\n"+
			"Post created at: %s\n\n"+
			"Best Regards,\n"+
			"The Postlane Team",
		author.UserName, post.Title, post.CreatedAt.Format(time.RFC1123),
	)

	if err := s.notifier.Send(ctx, author.Email, subject, body); err != nil {
		s.logger.Warn("post-created notification failed",
			"post_id", post.ID, "to", author.Email, "error", err)
	}
}

// User operations

func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	// Duplicate check is by email, the stricter of the two policies the
	// sibling applications disagreed on. Only a confirmed miss clears the
	// insert; a store failure propagates instead of masking a duplicate.
	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrDuplicateUser
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, &PersistError{Op: "create user", Err: err}
	}

	user := &User{
		UserName:  req.UserName,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, &PersistError{Op: "create user", Err: err}
	}
	return user, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Kind: KindUser, ID: id}
	}
	return user, nil
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.store.ListUsers(ctx)
}

func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return &NotFoundError{Kind: KindUser, ID: id}
	}
	return nil
}

// Category operations

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	category := &Category{
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, &PersistError{Op: "create category", Err: err}
	}
	return category, nil
}

func (s *service) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Kind: KindCategory, ID: id}
	}
	return category, nil
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Kind: KindCategory, ID: id}
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := s.store.UpdateCategory(ctx, category); err != nil {
		return nil, &PersistError{Op: "update category", Err: err}
	}
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return &NotFoundError{Kind: KindCategory, ID: id}
	}
	return nil
}

// Comment operations

func (s *service) AddComment(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
	if _, err := s.store.GetPost(ctx, req.PostID); err != nil {
		return nil, &NotFoundError{Kind: KindPost, ID: req.PostID}
	}
	if _, err := s.store.GetUser(ctx, req.UserID); err != nil {
		return nil, &NotFoundError{Kind: KindUser, ID: req.UserID}
	}

	now := time.Now().UTC()
	comment := &Comment{
		PostID:    req.PostID,
		UserID:    req.UserID,
		Body:      req.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, &PersistError{Op: "create comment", Err: err}
	}
	return comment, nil
}

func (s *service) GetComment(ctx context.Context, id uuid.UUID) (*Comment, error) {
	comment, err := s.store.GetComment(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Kind: KindComment, ID: id}
	}
	return comment, nil
}

func (s *service) ListComments(ctx context.Context) ([]*Comment, error) {
	return s.store.ListComments(ctx)
}

func (s *service) ListPostComments(ctx context.Context, postID uuid.UUID) ([]*Comment, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return nil, &NotFoundError{Kind: KindPost, ID: postID}
	}
	return s.store.ListCommentsByPost(ctx, postID)
}

func (s *service) UpdateComment(ctx context.Context, id uuid.UUID, req UpdateCommentRequest) (*Comment, error) {
	comment, err := s.store.GetComment(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Kind: KindComment, ID: id}
	}

	comment.Body = req.Body
	comment.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateComment(ctx, comment); err != nil {
		return nil, &PersistError{Op: "update comment", Err: err}
	}
	return comment, nil
}

func (s *service) DeleteComment(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteComment(ctx, id); err != nil {
		return &NotFoundError{Kind: KindComment, ID: id}
	}
	return nil
}

func keysOf(refs []MediaRef) []string {
	keys := make([]string, len(refs))
	for i, ref := range refs {
		keys[i] = ref.Key
	}
	return keys
}
