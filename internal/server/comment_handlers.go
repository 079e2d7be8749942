package server

import (
	"fmt"

	"inkwell/internal/forms"

	"github.com/gofiber/fiber/v2"
)

// AddComment attaches a comment by the caller to the post, then redirects to
// the post's detail page. Unknown posts are 404, invalid input re-renders
// the detail page with errors.
func (s *Server) AddComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return s.NotFoundPage(c)
	}

	// The post must exist before the submission is even looked at, so an
	// invalid form against a missing post is still 404.
	if _, err := s.postService.GetPost(c.UserContext(), postID); err != nil {
		return respondServiceError(c, err)
	}

	sub := forms.CommentSubmission{Text: c.FormValue("text")}
	fields, errs := forms.ParseComment(sub)
	if errs.HasErrors() {
		return renderFormErrors(c, errs, fiber.Map{"text": sub.Text})
	}

	if _, err := s.commentService.AddComment(c.UserContext(), userID, postID, fields); err != nil {
		return respondServiceError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/posts/%d", postID), fiber.StatusFound)
}
