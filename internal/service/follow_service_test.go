package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_FollowUnknownAuthor(t *testing.T) {
	t.Parallel()
	svc := NewFollowService(noopFollowRepo(), noopUserRepo())

	err := svc.Follow(context.Background(), 1, "ghost")
	assertNotFoundError(t, err)

	err = svc.Unfollow(context.Background(), 1, "ghost")
	assertNotFoundError(t, err)
}

func TestFollowService_FollowResolvesUsername(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		require.Equal(t, "author", username)
		return &models.User{ID: 8, Username: "author"}, nil
	}
	var followedAuthor uint
	follows := noopFollowRepo()
	follows.followFn = func(_ context.Context, userID, authorID uint) error {
		assert.Equal(t, uint(1), userID)
		followedAuthor = authorID
		return nil
	}
	svc := NewFollowService(follows, users)

	require.NoError(t, svc.Follow(context.Background(), 1, "author"))
	assert.Equal(t, uint(8), followedAuthor)
}

func TestFollowService_IsFollowing(t *testing.T) {
	t.Parallel()
	follows := noopFollowRepo()
	follows.existsFn = func(_ context.Context, userID, authorID uint) (bool, error) {
		return userID == 1 && authorID == 2, nil
	}
	svc := NewFollowService(follows, noopUserRepo())

	ok, err := svc.IsFollowing(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsFollowing(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
