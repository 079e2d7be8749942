package service

import (
	"context"

	"inkwell/internal/forms"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// AddComment attaches a comment by the user to the post. Fails with NotFound
// if the target post does not exist.
func (s *CommentService) AddComment(ctx context.Context, userID, postID uint, fields forms.CommentFields) (*models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, notFound(err, "Post not found")
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: userID,
		Text:     fields.Text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
