// Package forms validates and sanitizes user-submitted post and comment
// fields before they reach the domain model. Validation failures surface as
// field-level error messages; the handler re-renders the form with those
// messages and the previously entered values attached.
package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors maps a field name to its human-readable error messages.
type FieldErrors map[string][]string

// Add appends a message for the named field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// HasErrors reports whether any field failed validation.
func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

// PostSubmission carries the raw fields of a post form as received from the
// client. Group is the raw group id value and may be empty.
type PostSubmission struct {
	Text          string
	Group         string
	ImageFilename string
	ImageContent  []byte
}

// PostFields is the validated, typed result of a post submission.
type PostFields struct {
	Text          string
	GroupID       *uint
	ImageFilename string
	ImageContent  []byte
}

// CommentSubmission carries the raw fields of a comment form.
type CommentSubmission struct {
	Text string
}

// CommentFields is the validated result of a comment submission.
type CommentFields struct {
	Text string
}

type postForm struct {
	Text string `validate:"required,max=2000"`
}

type commentForm struct {
	Text string `validate:"required,max=500"`
}

// ParsePost validates a post submission. On success the returned FieldErrors
// is empty and PostFields holds values ready for persistence.
func ParsePost(raw PostSubmission) (PostFields, FieldErrors) {
	fields := PostFields{}
	errs := FieldErrors{}

	text := strings.TrimSpace(raw.Text)
	collectErrors(errs, "text", validate.Struct(postForm{Text: text}), 2000)
	fields.Text = text

	if g := strings.TrimSpace(raw.Group); g != "" {
		id, err := strconv.ParseUint(g, 10, 32)
		if err != nil || id == 0 {
			errs.Add("group", "Select a valid group.")
		} else {
			groupID := uint(id)
			fields.GroupID = &groupID
		}
	}

	if raw.ImageFilename != "" || len(raw.ImageContent) > 0 {
		if err := validateImage(raw.ImageFilename, raw.ImageContent); err != nil {
			errs.Add("image", err.Error())
		} else {
			fields.ImageFilename = raw.ImageFilename
			fields.ImageContent = raw.ImageContent
		}
	}

	return fields, errs
}

// ParseComment validates a comment submission.
func ParseComment(raw CommentSubmission) (CommentFields, FieldErrors) {
	errs := FieldErrors{}

	text := strings.TrimSpace(raw.Text)
	collectErrors(errs, "text", validate.Struct(commentForm{Text: text}), 500)

	return CommentFields{Text: text}, errs
}

// collectErrors translates validator tags into the messages shown next to
// the field.
func collectErrors(errs FieldErrors, field string, err error, maxLen int) {
	if err == nil {
		return
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add(field, "Enter a valid value.")
		return
	}
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			errs.Add(field, "This field is required.")
		case "max":
			errs.Add(field, fmt.Sprintf("Ensure this value has at most %d characters.", maxLen))
		default:
			errs.Add(field, "Enter a valid value.")
		}
	}
}
