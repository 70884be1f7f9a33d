package sync

import (
	"fmt"
	"strings"
)

// Category buckets a network failure into one of the user-facing
// classes. Anything unrecognized lands in CategoryGeneric.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryConnectivity
	CategorySessionExpired
	CategoryNotFound
	CategoryDuplicate
)

// Error is a classified network failure.
type Error struct {
	Category Category
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Category.name(), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (c Category) name() string {
	switch c {
	case CategoryConnectivity:
		return "connectivity"
	case CategorySessionExpired:
		return "session expired"
	case CategoryNotFound:
		return "not found"
	case CategoryDuplicate:
		return "duplicate submission"
	default:
		return "request failed"
	}
}

// UserMessage returns the human-readable message shown for this
// category.
func (c Category) UserMessage() string {
	switch c {
	case CategoryConnectivity:
		return "Network error. Check your connection and try again."
	case CategorySessionExpired:
		return "Your session has expired. Please sign in again."
	case CategoryNotFound:
		return "The requested item could not be found."
	case CategoryDuplicate:
		return "You have already submitted this assignment."
	default:
		return "Something went wrong. Please try again."
	}
}

// connectivityMarkers are substrings that identify transport-level
// failures across the http stack and resty.
var connectivityMarkers = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"network is unreachable",
	"timeout",
	"deadline exceeded",
	"broken pipe",
	"eof",
}

// Classify wraps err with its category, matching the error text
// against known substrings. Already-classified errors pass through
// unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*Error); ok {
		return se
	}

	msg := strings.ToLower(err.Error())
	switch {
	case contains(msg, "401", "unauthorized", "session expired"):
		return &Error{Category: CategorySessionExpired, Err: err}
	case contains(msg, "404", "not found"):
		return &Error{Category: CategoryNotFound, Err: err}
	case contains(msg, "already submitted", "duplicate"):
		return &Error{Category: CategoryDuplicate, Err: err}
	case contains(msg, connectivityMarkers...):
		return &Error{Category: CategoryConnectivity, Err: err}
	default:
		return &Error{Category: CategoryGeneric, Err: err}
	}
}

func contains(msg string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}
