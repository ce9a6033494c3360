package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/postlane/postlane/pkg/postlane"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements postlane.ContentStore using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) postlane.ContentStore {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) postlane.ContentStore {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return postlane.ErrDuplicateUser
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Post operations

func (r *Repository) SavePost(ctx context.Context, post *postlane.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}

	query := `
		INSERT INTO posts (id, title, description, author_id, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			author_id = EXCLUDED.author_id,
			category_id = EXCLUDED.category_id,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Description, post.AuthorID, post.CategoryID,
		post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("save post", err)
	}

	// Media rows are replaced wholesale; the ordering column keeps the
	// input order stable across reads.
	if _, err := r.db.Exec(ctx, `DELETE FROM post_media WHERE post_id = $1`, post.ID); err != nil {
		return r.handlePostgresError("save post media", err)
	}
	for i, ref := range post.Media {
		_, err := r.db.Exec(ctx, `
			INSERT INTO post_media (post_id, position, object_key, url, content_type)
			VALUES ($1, $2, $3, $4, $5)`,
			post.ID, i, ref.Key, ref.URL, ref.ContentType)
		if err != nil {
			return r.handlePostgresError("save post media", err)
		}
	}

	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*postlane.Post, error) {
	query := `
		SELECT id, title, description, author_id, category_id, created_at, updated_at
		FROM posts WHERE id = $1`

	var post postlane.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Description, &post.AuthorID, &post.CategoryID,
		&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, postlane.ErrPostNotFound
		}
		return nil, r.handlePostgresError("get post", err)
	}

	media, err := r.getPostMedia(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Media = media

	return &post, nil
}

func (r *Repository) getPostMedia(ctx context.Context, postID uuid.UUID) ([]postlane.MediaRef, error) {
	rows, err := r.db.Query(ctx, `
		SELECT object_key, url, content_type
		FROM post_media WHERE post_id = $1 ORDER BY position`, postID)
	if err != nil {
		return nil, r.handlePostgresError("get post media", err)
	}
	defer rows.Close()

	var media []postlane.MediaRef
	for rows.Next() {
		var ref postlane.MediaRef
		if err := rows.Scan(&ref.Key, &ref.URL, &ref.ContentType); err != nil {
			return nil, r.handlePostgresError("get post media", err)
		}
		media = append(media, ref)
	}
	return media, rows.Err()
}

func (r *Repository) ListPosts(ctx context.Context) ([]*postlane.Post, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, description, author_id, category_id, created_at, updated_at
		FROM posts ORDER BY created_at`)
	if err != nil {
		return nil, r.handlePostgresError("list posts", err)
	}
	defer rows.Close()

	var posts []*postlane.Post
	for rows.Next() {
		var post postlane.Post
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Description, &post.AuthorID, &post.CategoryID,
			&post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, r.handlePostgresError("list posts", err)
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list posts", err)
	}

	for _, post := range posts {
		media, err := r.getPostMedia(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		post.Media = media
	}

	return posts, nil
}

func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return r.handlePostgresError("delete post comments", err)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM post_media WHERE post_id = $1`, id); err != nil {
		return r.handlePostgresError("delete post media", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return postlane.ErrPostNotFound
	}
	return nil
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *postlane.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, user_name, email, created_at)
		VALUES ($1, $2, $3, $4)`,
		user.ID, user.UserName, user.Email, user.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create user", err)
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*postlane.User, error) {
	var user postlane.User
	err := r.db.QueryRow(ctx, `
		SELECT id, user_name, email, created_at FROM users WHERE id = $1`, id).Scan(
		&user.ID, &user.UserName, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, postlane.ErrUserNotFound
		}
		return nil, r.handlePostgresError("get user", err)
	}
	return &user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*postlane.User, error) {
	var user postlane.User
	err := r.db.QueryRow(ctx, `
		SELECT id, user_name, email, created_at FROM users WHERE lower(email) = lower($1)`, email).Scan(
		&user.ID, &user.UserName, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, postlane.ErrUserNotFound
		}
		return nil, r.handlePostgresError("get user by email", err)
	}
	return &user, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]*postlane.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_name, email, created_at FROM users ORDER BY created_at`)
	if err != nil {
		return nil, r.handlePostgresError("list users", err)
	}
	defer rows.Close()

	var users []*postlane.User
	for rows.Next() {
		var user postlane.User
		if err := rows.Scan(&user.ID, &user.UserName, &user.Email, &user.CreatedAt); err != nil {
			return nil, r.handlePostgresError("list users", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return postlane.ErrUserNotFound
	}
	return nil
}

// Category operations

func (r *Repository) CreateCategory(ctx context.Context, category *postlane.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO categories (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)`,
		category.ID, category.Name, category.Description, category.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create category", err)
	}
	return nil
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*postlane.Category, error) {
	var category postlane.Category
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, created_at FROM categories WHERE id = $1`, id).Scan(
		&category.ID, &category.Name, &category.Description, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, postlane.ErrCategoryNotFound
		}
		return nil, r.handlePostgresError("get category", err)
	}
	return &category, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*postlane.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, r.handlePostgresError("list categories", err)
	}
	defer rows.Close()

	var categories []*postlane.Category
	for rows.Next() {
		var category postlane.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt); err != nil {
			return nil, r.handlePostgresError("list categories", err)
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}

func (r *Repository) UpdateCategory(ctx context.Context, category *postlane.Category) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE categories SET name = $2, description = $3 WHERE id = $1`,
		category.ID, category.Name, category.Description)
	if err != nil {
		return r.handlePostgresError("update category", err)
	}
	if tag.RowsAffected() == 0 {
		return postlane.ErrCategoryNotFound
	}
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return postlane.ErrCategoryNotFound
	}
	return nil
}

// Comment operations

func (r *Repository) CreateComment(ctx context.Context, comment *postlane.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO comments (id, post_id, user_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		comment.ID, comment.PostID, comment.UserID, comment.Body,
		comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create comment", err)
	}
	return nil
}

func (r *Repository) GetComment(ctx context.Context, id uuid.UUID) (*postlane.Comment, error) {
	var comment postlane.Comment
	err := r.db.QueryRow(ctx, `
		SELECT id, post_id, user_id, body, created_at, updated_at
		FROM comments WHERE id = $1`, id).Scan(
		&comment.ID, &comment.PostID, &comment.UserID, &comment.Body,
		&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, postlane.ErrCommentNotFound
		}
		return nil, r.handlePostgresError("get comment", err)
	}
	return &comment, nil
}

func (r *Repository) ListComments(ctx context.Context) ([]*postlane.Comment, error) {
	return r.queryComments(ctx, `
		SELECT id, post_id, user_id, body, created_at, updated_at
		FROM comments ORDER BY created_at`)
}

func (r *Repository) ListCommentsByPost(ctx context.Context, postID uuid.UUID) ([]*postlane.Comment, error) {
	return r.queryComments(ctx, `
		SELECT id, post_id, user_id, body, created_at, updated_at
		FROM comments WHERE post_id = $1 ORDER BY created_at`, postID)
}

func (r *Repository) queryComments(ctx context.Context, query string, args ...interface{}) ([]*postlane.Comment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError("list comments", err)
	}
	defer rows.Close()

	var comments []*postlane.Comment
	for rows.Next() {
		var comment postlane.Comment
		if err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.UserID, &comment.Body,
			&comment.CreatedAt, &comment.UpdatedAt); err != nil {
			return nil, r.handlePostgresError("list comments", err)
		}
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

func (r *Repository) UpdateComment(ctx context.Context, comment *postlane.Comment) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE comments SET body = $2, updated_at = $3 WHERE id = $1`,
		comment.ID, comment.Body, comment.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update comment", err)
	}
	if tag.RowsAffected() == 0 {
		return postlane.ErrCommentNotFound
	}
	return nil
}

func (r *Repository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete comment", err)
	}
	if tag.RowsAffected() == 0 {
		return postlane.ErrCommentNotFound
	}
	return nil
}
