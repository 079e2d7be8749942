package server

import (
	"errors"
	"io"
	"strconv"

	"inkwell/internal/forms"
	"inkwell/internal/models"
	"inkwell/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// pageNumber reads the ?page= query parameter, invalid values mean page 1.
func pageNumber(c *fiber.Ctx) int {
	return pagination.ParsePageNumber(c.Query("page"))
}

// parseIDParam reads a positive integer path parameter. ok is false for
// anything that is not a well-formed id.
func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// postSubmissionFromRequest collects the post form fields, including an
// optional multipart image upload.
func postSubmissionFromRequest(c *fiber.Ctx) forms.PostSubmission {
	sub := forms.PostSubmission{
		Text:  c.FormValue("text"),
		Group: c.FormValue("group"),
	}

	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return sub
	}
	f, err := file.Open()
	if err != nil {
		return sub
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return sub
	}
	sub.ImageFilename = file.Filename
	sub.ImageContent = content
	return sub
}

// renderFormErrors re-renders a submitted form with field errors and the
// caller's previous input. Validation failures are HTTP 200, the page is
// rendered again rather than rejected.
func renderFormErrors(c *fiber.Ctx, errs forms.FieldErrors, values fiber.Map) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"errors": errs,
		"values": values,
	})
}

// respondServiceError maps service-layer errors onto HTTP responses.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case models.CodeValidation:
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case models.CodeUnauthorized:
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}
