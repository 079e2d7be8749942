package service

import (
	"context"

	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

type FollowService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
}

func NewFollowService(follows repository.FollowRepository, users repository.UserRepository) *FollowService {
	return &FollowService{follows: follows, users: users}
}

// Follow subscribes the user to the author named by username. Fails with
// NotFound for an unknown author; repeated follows are idempotent.
func (s *FollowService) Follow(ctx context.Context, userID uint, authorUsername string) error {
	author, err := s.users.GetByUsername(ctx, authorUsername)
	if err != nil {
		return notFound(err, "User not found")
	}
	if err := s.follows.Follow(ctx, userID, author.ID); err != nil {
		return err
	}
	observability.FollowEvents.WithLabelValues("follow").Inc()
	return nil
}

// Unfollow removes the subscription. Unfollowing an author the user does not
// follow is a no-op, an unknown author is NotFound.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, authorUsername string) error {
	author, err := s.users.GetByUsername(ctx, authorUsername)
	if err != nil {
		return notFound(err, "User not found")
	}
	if err := s.follows.Unfollow(ctx, userID, author.ID); err != nil {
		return err
	}
	observability.FollowEvents.WithLabelValues("unfollow").Inc()
	return nil
}

// IsFollowing reports whether the user follows the author.
func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.follows.Exists(ctx, userID, authorID)
}
