package server

import (
	"github.com/gofiber/fiber/v2"
)

// Feed returns a paginated list of posts by authors the caller follows.
func (s *Server) Feed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	page, err := s.postService.FeedPage(c.UserContext(), userID, pageNumber(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(page)
}

// Follow subscribes the caller to the author and redirects to the author's
// profile. Following an already-followed author is a no-op.
func (s *Server) Follow(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	username := c.Params("username")

	if err := s.followService.Follow(c.UserContext(), userID, username); err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect("/profile/"+username, fiber.StatusFound)
}

// Unfollow removes the subscription and redirects to the author's profile.
// Unfollowing an author the caller does not follow is a no-op.
func (s *Server) Unfollow(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	username := c.Params("username")

	if err := s.followService.Unfollow(c.UserContext(), userID, username); err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect("/profile/"+username, fiber.StatusFound)
}
