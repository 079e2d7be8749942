package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. All list
// methods return posts newest-first along with the total row count for the
// filter, so callers can build pagination metadata.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, int64, error)
	ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, int64, error)
	ListFeed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidateIndex(ctx)
	}
	return err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update", "posts")()
	// Select the mutable columns explicitly so zero values (a cleared group)
	// are persisted and created_at stays untouched.
	err := r.db.WithContext(ctx).Model(post).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
	if err == nil {
		cache.InvalidateIndex(ctx)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("get_by_id", "posts")()
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.Post{}), limit, offset)
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("group_id = ?", groupID)
	return r.list(ctx, q, limit, offset)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID)
	return r.list(ctx, q, limit, offset)
}

// ListFeed returns posts by authors the user follows.
func (r *postRepository) ListFeed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	sub := r.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID)
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id IN (?)", sub)
	return r.list(ctx, q, limit, offset)
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// list runs the count and the page fetch against the same filtered query.
func (r *postRepository) list(ctx context.Context, q *gorm.DB, limit, offset int) ([]*models.Post, int64, error) {
	defer observability.TrackQuery("list", "posts")()
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := q.Session(&gorm.Session{}).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
