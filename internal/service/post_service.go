// Package service implements the application's use cases on top of the
// repository layer.
package service

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/forms"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/pagination"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

type PostService struct {
	posts    repository.PostRepository
	groups   repository.GroupRepository
	users    repository.UserRepository
	comments repository.CommentRepository
	follows  repository.FollowRepository
	media    *MediaStore
	pageSize int
}

func NewPostService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	users repository.UserRepository,
	comments repository.CommentRepository,
	follows repository.FollowRepository,
	media *MediaStore,
	pageSize int,
) *PostService {
	return &PostService{
		posts:    posts,
		groups:   groups,
		users:    users,
		comments: comments,
		follows:  follows,
		media:    media,
		pageSize: pageSize,
	}
}

// GroupView is the group posts page.
type GroupView struct {
	Group *models.Group                  `json:"group"`
	Posts *pagination.Page[*models.Post] `json:"posts"`
}

// ProfileView is an author's profile page.
type ProfileView struct {
	Author    *models.User                   `json:"author"`
	Posts     *pagination.Page[*models.Post] `json:"posts"`
	PostCount int64                          `json:"post_count"`
	Following bool                           `json:"following"`
}

// DetailView is a single post page: the post, its full comment list and a
// paginated list of the author's other posts.
type DetailView struct {
	Post        *models.Post                   `json:"post"`
	Comments    []*models.Comment              `json:"comments"`
	AuthorPosts *pagination.Page[*models.Post] `json:"author_posts"`
}

func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(msg)
	}
	return err
}

// fetchPage loads one page of posts. A page number past the end is clamped
// to the last page, an empty collection yields a single empty page.
func (s *PostService) fetchPage(number int, list func(limit, offset int) ([]*models.Post, int64, error)) (*pagination.Page[*models.Post], error) {
	offset := (number - 1) * s.pageSize
	if offset < 0 {
		offset = 0
	}
	items, total, err := list(s.pageSize, offset)
	if err != nil {
		return nil, err
	}

	clampedOffset, meta := pagination.Window(int(total), number, s.pageSize)
	if len(items) == 0 && total > 0 {
		// Requested page was past the end, refetch the clamped last page.
		items, _, err = list(s.pageSize, clampedOffset)
		if err != nil {
			return nil, err
		}
	}
	page := pagination.NewPage(items, meta)
	return &page, nil
}

// IndexPage returns one page of the sitewide post list, served through the
// whole-page cache.
func (s *PostService) IndexPage(ctx context.Context, number int) (*pagination.Page[*models.Post], error) {
	var page pagination.Page[*models.Post]
	key := cache.IndexPageKey(ctx, number)
	err := cache.Aside(ctx, "posts_index", key, &page, cache.IndexTTL, func() error {
		fresh, err := s.fetchPage(number, func(limit, offset int) ([]*models.Post, int64, error) {
			return s.posts.List(ctx, limit, offset)
		})
		if err != nil {
			return err
		}
		page = *fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GroupPage returns the group and one page of its posts. Fails with NotFound
// for an unknown slug.
func (s *PostService) GroupPage(ctx context.Context, slug string, number int) (*GroupView, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err, "Group not found")
	}

	page, err := s.fetchPage(number, func(limit, offset int) ([]*models.Post, int64, error) {
		return s.posts.ListByGroup(ctx, group.ID, limit, offset)
	})
	if err != nil {
		return nil, err
	}
	return &GroupView{Group: group, Posts: page}, nil
}

// ProfilePage returns the author's profile with one page of their posts.
// viewerID of zero means an anonymous request, Following is then false.
func (s *PostService) ProfilePage(ctx context.Context, username string, number int, viewerID uint) (*ProfileView, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "User not found")
	}

	page, err := s.fetchPage(number, func(limit, offset int) ([]*models.Post, int64, error) {
		return s.posts.ListByAuthor(ctx, author.ID, limit, offset)
	})
	if err != nil {
		return nil, err
	}

	view := &ProfileView{
		Author:    author,
		Posts:     page,
		PostCount: int64(page.Meta.TotalItems),
	}
	if viewerID != 0 {
		following, err := s.follows.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
		view.Following = following
	}
	return view, nil
}

// DetailPage returns the post, its full comment list, and one page of the
// author's other posts. Fails with NotFound for an unknown id.
func (s *PostService) DetailPage(ctx context.Context, postID uint, authorPage int) (*DetailView, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "Post not found")
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	authorPosts, err := s.fetchPage(authorPage, func(limit, offset int) ([]*models.Post, int64, error) {
		return s.posts.ListByAuthor(ctx, post.AuthorID, limit, offset)
	})
	if err != nil {
		return nil, err
	}

	return &DetailView{Post: post, Comments: comments, AuthorPosts: authorPosts}, nil
}

// FeedPage returns one page of posts by authors the user follows.
func (s *PostService) FeedPage(ctx context.Context, userID uint, number int) (*pagination.Page[*models.Post], error) {
	return s.fetchPage(number, func(limit, offset int) ([]*models.Post, int64, error) {
		return s.posts.ListFeed(ctx, userID, limit, offset)
	})
}

// validateGroup checks that a submitted group id references an existing group.
func (s *PostService) validateGroup(ctx context.Context, groupID *uint) (forms.FieldErrors, error) {
	if groupID == nil {
		return nil, nil
	}
	if _, err := s.groups.GetByID(ctx, *groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errs := forms.FieldErrors{}
			errs.Add("group", "Select a valid group.")
			return errs, nil
		}
		return nil, err
	}
	return nil, nil
}

// CreatePost creates a post for the author. A non-nil FieldErrors return
// means the submission failed referential validation.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, fields forms.PostFields) (*models.Post, forms.FieldErrors, error) {
	if errs, err := s.validateGroup(ctx, fields.GroupID); err != nil || errs.HasErrors() {
		return nil, errs, err
	}

	post := &models.Post{
		Text:     fields.Text,
		AuthorID: authorID,
		GroupID:  fields.GroupID,
	}

	if len(fields.ImageContent) > 0 {
		path, err := s.media.SavePostImage(fields.ImageFilename, fields.ImageContent)
		if err != nil {
			return nil, nil, err
		}
		post.Image = path
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, nil, err
	}

	grouped := "no"
	if post.GroupID != nil {
		grouped = "yes"
	}
	observability.PostsCreated.WithLabelValues(grouped).Inc()

	return post, nil, nil
}

// GetPost fetches a post by id, mapping a missing row to NotFound.
func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "Post not found")
	}
	return post, nil
}

// GetOwnedPost fetches a post for editing. A missing post and a post owned
// by someone else are both reported as NotFound so the route does not leak
// which posts exist.
func (s *PostService) GetOwnedPost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "Post not found")
	}
	if post.AuthorID != userID {
		return nil, models.NewNotFoundError("Post not found")
	}
	return post, nil
}

// EditPost updates an owned post's text, group and image. The creation
// timestamp and author never change.
func (s *PostService) EditPost(ctx context.Context, userID, postID uint, fields forms.PostFields) (*models.Post, forms.FieldErrors, error) {
	post, err := s.GetOwnedPost(ctx, userID, postID)
	if err != nil {
		return nil, nil, err
	}

	if errs, err := s.validateGroup(ctx, fields.GroupID); err != nil || errs.HasErrors() {
		return nil, errs, err
	}

	post.Text = fields.Text
	post.GroupID = fields.GroupID

	if len(fields.ImageContent) > 0 {
		path, err := s.media.SavePostImage(fields.ImageFilename, fields.ImageContent)
		if err != nil {
			return nil, nil, err
		}
		post.Image = path
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, nil, err
	}
	return post, nil, nil
}
