package server

import (
	"fmt"

	"inkwell/internal/forms"

	"github.com/gofiber/fiber/v2"
)

// Index returns the sitewide paginated post list, newest-first. The response
// for each page is served through the whole-page cache.
func (s *Server) Index(c *fiber.Ctx) error {
	page, err := s.postService.IndexPage(c.UserContext(), pageNumber(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(page)
}

// GroupPosts returns the paginated post list for one group.
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	view, err := s.postService.GroupPage(c.UserContext(), c.Params("slug"), pageNumber(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// Profile returns an author's paginated posts plus, for authenticated
// viewers, whether they follow the author.
func (s *Server) Profile(c *fiber.Ctx) error {
	viewerID, _ := s.currentUserID(c)
	view, err := s.postService.ProfilePage(c.UserContext(), c.Params("username"), pageNumber(c), viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// PostDetail returns one post, its full comment list, a blank comment form
// and a paginated list of the author's other posts.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return s.NotFoundPage(c)
	}

	view, err := s.postService.DetailPage(c.UserContext(), postID, pageNumber(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"post":         view.Post,
		"comments":     view.Comments,
		"author_posts": view.AuthorPosts,
		"comment_form": fiber.Map{"text": ""},
	})
}

// NewPostForm renders the blank post creation form with the available groups.
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"form":   fiber.Map{"text": "", "group": "", "image": ""},
		"groups": groups,
	})
}

// CreatePost validates the submission and creates a post owned by the
// caller, then redirects to the caller's profile.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	sub := postSubmissionFromRequest(c)
	fields, errs := forms.ParsePost(sub)
	if errs.HasErrors() {
		return renderFormErrors(c, errs, fiber.Map{"text": sub.Text, "group": sub.Group})
	}

	_, fieldErrs, err := s.postService.CreatePost(c.UserContext(), userID, fields)
	if err != nil {
		return respondServiceError(c, err)
	}
	if fieldErrs.HasErrors() {
		return renderFormErrors(c, fieldErrs, fiber.Map{"text": sub.Text, "group": sub.Group})
	}

	author, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect("/profile/"+author.Username, fiber.StatusFound)
}

// EditPostForm renders the edit form pre-filled with the post's current
// values. Missing posts and posts owned by someone else are both 404.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return s.NotFoundPage(c)
	}

	post, err := s.postService.GetOwnedPost(c.UserContext(), userID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	groups, err := s.groupRepo.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}

	group := ""
	if post.GroupID != nil {
		group = fmt.Sprintf("%d", *post.GroupID)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"form":   fiber.Map{"text": post.Text, "group": group, "image": post.Image},
		"groups": groups,
		"post":   post,
	})
}

// EditPost updates an owned post in place and redirects to its detail page.
func (s *Server) EditPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return s.NotFoundPage(c)
	}

	// Ownership is resolved before validation: a missing or foreign post is
	// 404 no matter what the submission contains.
	if _, err := s.postService.GetOwnedPost(c.UserContext(), userID, postID); err != nil {
		return respondServiceError(c, err)
	}

	sub := postSubmissionFromRequest(c)
	fields, errs := forms.ParsePost(sub)
	if errs.HasErrors() {
		return renderFormErrors(c, errs, fiber.Map{"text": sub.Text, "group": sub.Group})
	}

	_, fieldErrs, err := s.postService.EditPost(c.UserContext(), userID, postID, fields)
	if err != nil {
		return respondServiceError(c, err)
	}
	if fieldErrs.HasErrors() {
		return renderFormErrors(c, fieldErrs, fiber.Map{"text": sub.Text, "group": sub.Group})
	}

	return c.Redirect(fmt.Sprintf("/posts/%d", postID), fiber.StatusFound)
}
