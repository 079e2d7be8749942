package repository

import (
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "leo")
	created := createPosts(t, db, author, nil, 3)

	posts, total, err := repo.List(ctxTest(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, posts, 3)
	assert.Equal(t, created[2].ID, posts[0].ID, "newest post must come first")
	assert.Equal(t, created[0].ID, posts[2].ID)
	assert.Equal(t, "leo", posts[0].Author.Username, "author must be preloaded")
}

func TestPostListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "leo")
	createPosts(t, db, author, nil, 15)

	page1, total, err := repo.List(ctxTest(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, page1, 10)

	page2, total, err := repo.List(ctxTest(), 10, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, page2, 5)
}

func TestPostListByGroupFiltersOthers(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "leo")
	travel := createGroup(t, db, "travel")
	food := createGroup(t, db, "food")
	createPosts(t, db, author, travel, 2)
	createPost(t, db, author, food, "off-topic")
	createPost(t, db, author, nil, "ungrouped")

	posts, total, err := repo.ListByGroup(ctxTest(), travel.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, posts, 2)
	for _, p := range posts {
		require.NotNil(t, p.GroupID)
		assert.Equal(t, travel.ID, *p.GroupID)
		assert.Equal(t, "travel", p.Group.Slug, "group must be preloaded")
	}
}

func TestPostListByAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	leo := createUser(t, db, "leo")
	mia := createUser(t, db, "mia")
	createPosts(t, db, leo, nil, 3)
	createPosts(t, db, mia, nil, 1)

	posts, total, err := repo.ListByAuthor(ctxTest(), leo.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, posts, 3)

	count, err := repo.CountByAuthor(ctxTest(), leo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestPostListFeedOnlyFollowedAuthors(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	follows := NewFollowRepository(db)

	reader := createUser(t, db, "reader")
	followed := createUser(t, db, "followed")
	ignored := createUser(t, db, "ignored")
	createPosts(t, db, followed, nil, 2)
	createPosts(t, db, ignored, nil, 2)

	require.NoError(t, follows.Follow(ctxTest(), reader.ID, followed.ID))

	posts, total, err := repo.ListFeed(ctxTest(), reader.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, followed.ID, p.AuthorID)
	}

	// A user following nobody has an empty feed.
	posts, total, err = repo.ListFeed(ctxTest(), ignored.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, posts)
}

func TestPostUpdatePersistsClearedGroup(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "leo")
	travel := createGroup(t, db, "travel")
	post := createPost(t, db, author, travel, "original")

	post.Text = "edited"
	post.GroupID = nil
	require.NoError(t, repo.Update(ctxTest(), post))

	var got models.Post
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, "edited", got.Text)
	assert.Nil(t, got.GroupID, "cleared group must be persisted as NULL")
}

func TestPostGetByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(ctxTest(), 42)
	assert.Error(t, err)
}
