package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	updateFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	listFn          func(context.Context, int, int) ([]*models.Post, int64, error)
	listByGroupFn   func(context.Context, uint, int, int) ([]*models.Post, int64, error)
	listByAuthorFn  func(context.Context, uint, int, int) ([]*models.Post, int64, error)
	listFeedFn      func(context.Context, uint, int, int) ([]*models.Post, int64, error)
	countByAuthorFn func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, int64, error) {
	return s.listByGroupFn(ctx, groupID, limit, offset)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, int64, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *postRepoStub) ListFeed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	return s.listFeedFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}

func noopPostRepo() *postRepoStub {
	empty := func(context.Context, int, int) ([]*models.Post, int64, error) { return nil, 0, nil }
	emptyBy := func(context.Context, uint, int, int) ([]*models.Post, int64, error) { return nil, 0, nil }
	return &postRepoStub{
		createFn:        func(context.Context, *models.Post) error { return nil },
		updateFn:        func(context.Context, *models.Post) error { return nil },
		getByIDFn:       func(context.Context, uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn:          empty,
		listByGroupFn:   emptyBy,
		listByAuthorFn:  emptyBy,
		listFeedFn:      emptyBy,
		countByAuthorFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

// groupRepoStub is a stub for repository.GroupRepository.
type groupRepoStub struct {
	createFn    func(context.Context, *models.Group) error
	getByIDFn   func(context.Context, uint) (*models.Group, error)
	getBySlugFn func(context.Context, string) (*models.Group, error)
	listFn      func(context.Context) ([]*models.Group, error)
}

func (s *groupRepoStub) Create(ctx context.Context, group *models.Group) error {
	return s.createFn(ctx, group)
}
func (s *groupRepoStub) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *groupRepoStub) List(ctx context.Context) ([]*models.Group, error) {
	return s.listFn(ctx)
}

func noopGroupRepo() *groupRepoStub {
	return &groupRepoStub{
		createFn:    func(context.Context, *models.Group) error { return nil },
		getByIDFn:   func(context.Context, uint) (*models.Group, error) { return &models.Group{}, nil },
		getBySlugFn: func(context.Context, string) (*models.Group, error) { return &models.Group{}, nil },
		listFn:      func(context.Context) ([]*models.Group, error) { return nil, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(context.Context, *models.User) error { return nil },
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{ID: 1}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, gorm.ErrRecordNotFound },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, gorm.ErrRecordNotFound },
		updateFn:        func(context.Context, *models.User) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(context.Context, *models.Comment) error { return nil },
		listByPostFn: func(context.Context, uint) ([]*models.Comment, error) { return nil, nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	followFn   func(context.Context, uint, uint) error
	unfollowFn func(context.Context, uint, uint) error
	existsFn   func(context.Context, uint, uint) (bool, error)
}

func (s *followRepoStub) Follow(ctx context.Context, userID, authorID uint) error {
	return s.followFn(ctx, userID, authorID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, userID, authorID uint) error {
	return s.unfollowFn(ctx, userID, authorID)
}
func (s *followRepoStub) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.existsFn(ctx, userID, authorID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:   func(context.Context, uint, uint) error { return nil },
		unfollowFn: func(context.Context, uint, uint) error { return nil },
		existsFn:   func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}

func newTestPostService(t *testing.T, posts *postRepoStub, groups *groupRepoStub, users *userRepoStub) *PostService {
	t.Helper()
	return NewPostService(posts, groups, users, noopCommentRepo(), noopFollowRepo(), NewMediaStore(t.TempDir()), 10)
}
