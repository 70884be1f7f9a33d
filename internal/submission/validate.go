package submission

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError is a local, synchronous precondition failure. It is
// surfaced per assignment and never logged as exceptional.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Fixed user-facing validation messages, keyed by Draft field.
var fieldMessages = map[string]string{
	"Description": "Description must be at least 10 characters long",
	"GithubLink":  "GitHub link is required",
	"LiveLink":    "Live link is required",
}

var (
	errNotSignedIn = &ValidationError{Field: "student", Message: "You must be logged in to submit an assignment"}
	errNoDraft     = &ValidationError{Field: "draft", Message: "Fill in the submission form before submitting"}
)

// validateDraft runs the draft field checks in declaration order and
// returns the first failure. Fields are trimmed before length checks
// so whitespace padding cannot satisfy the minimum.
func validateDraft(v *validator.Validate, d Draft) *ValidationError {
	normalized := Draft{
		Description: strings.TrimSpace(d.Description),
		GithubLink:  strings.TrimSpace(d.GithubLink),
		LiveLink:    strings.TrimSpace(d.LiveLink),
		FileURL:     d.FileURL,
	}
	err := v.Struct(normalized)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &ValidationError{Field: "draft", Message: "Submission is invalid"}
	}
	first := errs[0]
	if msg, ok := fieldMessages[first.StructField()]; ok {
		return &ValidationError{Field: first.StructField(), Message: msg}
	}
	return &ValidationError{Field: first.StructField(), Message: "Submission is invalid"}
}
