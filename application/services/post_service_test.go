package services

import (
	"context"
	"testing"

	"devlink-backend/domain"
	"devlink-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := seedUser(t, env, "jordan")

	post, err := env.post.Create(ctx, author.ID, CreatePostInput{
		Title:  "Shipping a side project",
		Text:   "Notes from the first release.",
		Link:   "https://example.com/notes",
		Images: []domain.Image{{URL: "https://example.com/shot.png", Caption: "screenshot"}},
	})
	require.NoError(t, err)
	assert.Equal(t, author.ID, post.UserID)
	assert.Equal(t, author.Name, post.Name)
	assert.Equal(t, author.Avatar, post.Avatar)
	require.Len(t, post.Images, 1)

	assert.Contains(t, env.published.detailTypes(), "post.created")

	_, err = env.post.Create(ctx, "missing-user", CreatePostInput{Title: "t", Text: "x"})
	assert.True(t, errors.IsNotFound(err))
}

func TestListOrdering(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := seedUser(t, env, "jordan")
	other := seedUser(t, env, "casey")

	first, err := env.post.Create(ctx, author.ID, CreatePostInput{Title: "first", Text: "1"})
	require.NoError(t, err)
	second, err := env.post.Create(ctx, other.ID, CreatePostInput{Title: "second", Text: "2"})
	require.NoError(t, err)

	all, err := env.post.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest post first")
	assert.Equal(t, first.ID, all[1].ID)

	mine, err := env.post.ListByUser(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)
}

func TestDeletePostAuthorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := seedUser(t, env, "jordan")
	intruder := seedUser(t, env, "casey")

	post, err := env.post.Create(ctx, author.ID, CreatePostInput{Title: "mine", Text: "x"})
	require.NoError(t, err)

	err = env.post.Delete(ctx, post.ID, intruder.ID)
	require.Error(t, err)
	assert.True(t, errors.IsForbidden(err))

	require.NoError(t, env.post.Delete(ctx, post.ID, author.ID))
	_, err = env.post.Get(ctx, post.ID)
	assert.True(t, errors.IsNotFound(err))

	assert.Contains(t, env.published.detailTypes(), "post.deleted")
}

func TestLikeUnlikeFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := seedUser(t, env, "jordan")
	fan := seedUser(t, env, "casey")

	post, err := env.post.Create(ctx, author.ID, CreatePostInput{Title: "likeable", Text: "x"})
	require.NoError(t, err)

	likes, err := env.post.Like(ctx, post.ID, fan.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, fan.ID, likes[0].UserID)

	_, err = env.post.Like(ctx, post.ID, fan.ID)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err), "double like is rejected")

	likes, err = env.post.Unlike(ctx, post.ID, fan.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	_, err = env.post.Unlike(ctx, post.ID, fan.ID)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err), "unliking without a like is rejected")

	// The like state survives the round trip through storage.
	stored, err := env.post.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Likes)
}

func TestCommentFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := seedUser(t, env, "jordan")
	commenter := seedUser(t, env, "casey")

	post, err := env.post.Create(ctx, author.ID, CreatePostInput{Title: "discussable", Text: "x"})
	require.NoError(t, err)

	comments, err := env.post.AddComment(ctx, post.ID, commenter.ID, "nice work")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, commenter.Name, comments[0].Name)
	assert.Equal(t, "nice work", comments[0].Text)

	t.Run("only the comment author may remove it", func(t *testing.T) {
		_, err := env.post.RemoveComment(ctx, post.ID, comments[0].ID, author.ID)
		require.Error(t, err)
		assert.True(t, errors.IsForbidden(err))
	})

	t.Run("unknown comment id", func(t *testing.T) {
		_, err := env.post.RemoveComment(ctx, post.ID, "missing-id", commenter.ID)
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	remaining, err := env.post.RemoveComment(ctx, post.ID, comments[0].ID, commenter.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
