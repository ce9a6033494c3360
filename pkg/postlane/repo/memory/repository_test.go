package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/postlane/postlane/pkg/postlane"
	"github.com/postlane/postlane/pkg/postlane/repo/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRoundTrip(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	now := time.Now().UTC()
	post := &postlane.Post{
		Title:      "hello",
		AuthorID:   uuid.New(),
		CategoryID: uuid.New(),
		Media: []postlane.MediaRef{
			{Key: "k1.jpg", URL: "memory://k1.jpg", ContentType: "image/jpeg"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	require.NoError(t, repo.SavePost(ctx, post))
	assert.NotEqual(t, uuid.Nil, post.ID, "save assigns an ID")

	got, err := repo.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)
	assert.Equal(t, post.Media, got.Media)

	// The stored copy is isolated from later caller mutations.
	post.Media[0].Key = "mutated"
	got2, err := repo.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "k1.jpg", got2.Media[0].Key)
}

func TestSavePostUpdatesInPlace(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	post := &postlane.Post{Title: "v1", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.SavePost(ctx, post))
	id := post.ID

	post.Title = "v2"
	require.NoError(t, repo.SavePost(ctx, post))
	assert.Equal(t, id, post.ID, "update keeps the ID")

	got, err := repo.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Title)

	posts, err := repo.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestGetPostNotFound(t *testing.T) {
	repo := memory.New()

	_, err := repo.GetPost(context.Background(), uuid.New())
	assert.ErrorIs(t, err, postlane.ErrPostNotFound)
}

func TestDeletePost(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	post := &postlane.Post{Title: "doomed"}
	require.NoError(t, repo.SavePost(ctx, post))
	require.NoError(t, repo.DeletePost(ctx, post.ID))

	_, err := repo.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, postlane.ErrPostNotFound)
	assert.ErrorIs(t, repo.DeletePost(ctx, post.ID), postlane.ErrPostNotFound)
}

func TestUserOperations(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	user := &postlane.User{UserName: "asha", Email: "Asha@Example.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateUser(ctx, user))

	t.Run("GetUser", func(t *testing.T) {
		got, err := repo.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "asha", got.UserName)
	})

	t.Run("GetUserByEmail is case-insensitive", func(t *testing.T) {
		got, err := repo.GetUserByEmail(ctx, "asha@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("GetUserByEmail missing", func(t *testing.T) {
		_, err := repo.GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, postlane.ErrUserNotFound)
	})

	t.Run("DeleteUser", func(t *testing.T) {
		require.NoError(t, repo.DeleteUser(ctx, user.ID))
		_, err := repo.GetUser(ctx, user.ID)
		assert.ErrorIs(t, err, postlane.ErrUserNotFound)
	})
}

func TestCategoryOperations(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	a := &postlane.Category{Name: "zebra"}
	b := &postlane.Category{Name: "apple"}
	require.NoError(t, repo.CreateCategory(ctx, a))
	require.NoError(t, repo.CreateCategory(ctx, b))

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "apple", categories[0].Name, "listing is name-ordered")

	a.Name = "yak"
	require.NoError(t, repo.UpdateCategory(ctx, a))
	got, err := repo.GetCategory(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "yak", got.Name)

	require.NoError(t, repo.DeleteCategory(ctx, b.ID))
	assert.ErrorIs(t, repo.DeleteCategory(ctx, b.ID), postlane.ErrCategoryNotFound)
}

func TestCommentOperations(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	post := &postlane.Post{Title: "commented"}
	require.NoError(t, repo.SavePost(ctx, post))
	other := &postlane.Post{Title: "quiet"}
	require.NoError(t, repo.SavePost(ctx, other))

	first := &postlane.Comment{PostID: post.ID, Body: "first", CreatedAt: time.Now().UTC()}
	second := &postlane.Comment{PostID: post.ID, Body: "second", CreatedAt: time.Now().UTC().Add(time.Second)}
	require.NoError(t, repo.CreateComment(ctx, first))
	require.NoError(t, repo.CreateComment(ctx, second))

	t.Run("ListCommentsByPost is time-ordered and scoped", func(t *testing.T) {
		comments, err := repo.ListCommentsByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "first", comments[0].Body)

		none, err := repo.ListCommentsByPost(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("UpdateComment", func(t *testing.T) {
		first.Body = "first, edited"
		require.NoError(t, repo.UpdateComment(ctx, first))
		got, err := repo.GetComment(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "first, edited", got.Body)
	})

	t.Run("DeleteComment missing", func(t *testing.T) {
		assert.ErrorIs(t, repo.DeleteComment(ctx, uuid.New()), postlane.ErrCommentNotFound)
	})

	t.Run("DeletePost removes its comments", func(t *testing.T) {
		require.NoError(t, repo.DeletePost(ctx, post.ID))
		_, err := repo.GetComment(ctx, first.ID)
		assert.ErrorIs(t, err, postlane.ErrCommentNotFound)
		comments, err := repo.ListComments(ctx)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
