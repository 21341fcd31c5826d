package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect/internal/infrastructure/memory"
	"github.com/devconnect/devconnect/pkg/helpers"
)

type postFixture struct {
	svc     *PostService
	userSvc *UserService
	userID  string
	otherID string
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	users := memory.NewUserRepository()
	posts := memory.NewPostRepository()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	logger := discardLogger()

	userSvc := NewUserService(users, jwt, nil, logger, false)
	svc := NewPostService(posts, users, logger)

	ctx := context.Background()
	register := func(name, email string) string {
		token, err := userSvc.Register(ctx, name, email, "s3cret123")
		require.NoError(t, err)
		claims, err := jwt.Verify(token)
		require.NoError(t, err)
		return claims.User.ID
	}

	return &postFixture{
		svc:     svc,
		userSvc: userSvc,
		userID:  register("Ada", "ada@example.com"),
		otherID: register("Grace", "grace@example.com"),
	}
}

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.userID, "hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", p.Text)
	assert.Equal(t, "Ada", p.Name)
	assert.Contains(t, p.Avatar, "gravatar.com")
	assert.Equal(t, f.userID, p.User.Hex())
	assert.Empty(t, p.Likes)
	assert.Empty(t, p.Comments)
}

func TestListPostsNewestFirst(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.userID, "first")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond) // distinct creation timestamps
	second, err := f.svc.Create(ctx, f.userID, "second")
	require.NoError(t, err)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestGetPostBadID(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePostOwnerOnly(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.userID, "hello")
	require.NoError(t, err)

	err = f.svc.Delete(ctx, p.ID.Hex(), f.otherID)
	assert.ErrorIs(t, err, ErrNotPostOwner)

	require.NoError(t, f.svc.Delete(ctx, p.ID.Hex(), f.userID))

	_, err = f.svc.Get(ctx, p.ID.Hex())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestLikeUnlike(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.userID, "hello")
	require.NoError(t, err)

	liked, err := f.svc.Like(ctx, p.ID.Hex(), f.otherID)
	require.NoError(t, err)
	require.Len(t, liked.Likes, 1)
	assert.Equal(t, f.otherID, liked.Likes[0].User.Hex())

	_, err = f.svc.Like(ctx, p.ID.Hex(), f.otherID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	unliked, err := f.svc.Unlike(ctx, p.ID.Hex(), f.otherID)
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)

	_, err = f.svc.Unlike(ctx, p.ID.Hex(), f.otherID)
	assert.ErrorIs(t, err, ErrNotLiked)
}

func TestLikeMissingPost(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Like(context.Background(), "64f1c0ffee0000000000abcd", f.userID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestComments(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.userID, "hello")
	require.NoError(t, err)

	withComment, err := f.svc.AddComment(ctx, p.ID.Hex(), f.otherID, "nice post")
	require.NoError(t, err)
	require.Len(t, withComment.Comments, 1)
	cm := withComment.Comments[0]
	assert.NotEmpty(t, cm.ID)
	assert.Equal(t, "nice post", cm.Text)
	assert.Equal(t, "Grace", cm.Name)
	assert.Equal(t, f.otherID, cm.User.Hex())

	// Newest comment first
	withMore, err := f.svc.AddComment(ctx, p.ID.Hex(), f.userID, "thanks")
	require.NoError(t, err)
	require.Len(t, withMore.Comments, 2)
	assert.Equal(t, "thanks", withMore.Comments[0].Text)

	// Only the comment author may remove it
	_, err = f.svc.RemoveComment(ctx, p.ID.Hex(), cm.ID, f.userID)
	assert.ErrorIs(t, err, ErrNotPostOwner)

	after, err := f.svc.RemoveComment(ctx, p.ID.Hex(), cm.ID, f.otherID)
	require.NoError(t, err)
	require.Len(t, after.Comments, 1)
	assert.Equal(t, "thanks", after.Comments[0].Text)

	_, err = f.svc.RemoveComment(ctx, p.ID.Hex(), cm.ID, f.otherID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
