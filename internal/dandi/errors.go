package dandi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Category classifies a failed operation for callers.
type Category int

const (
	// CategoryInvalidArguments indicates the caller supplied bad or missing arguments.
	CategoryInvalidArguments Category = iota

	// CategoryUnauthorized indicates the archive rejected the credential (or none was sent).
	CategoryUnauthorized

	// CategoryForbidden indicates the credential is valid but lacks permission.
	CategoryForbidden

	// CategoryNotFound indicates the addressed resource does not exist.
	CategoryNotFound

	// CategoryConflict indicates the operation conflicts with current resource state.
	CategoryConflict

	// CategoryUpstreamFailure indicates the archive misbehaved or was unreachable.
	CategoryUpstreamFailure

	// CategoryInternalFailure indicates a bug or unexpected condition in this server.
	CategoryInternalFailure
)

func (c Category) String() string {
	switch c {
	case CategoryInvalidArguments:
		return "InvalidArguments"
	case CategoryUnauthorized:
		return "Unauthorized"
	case CategoryForbidden:
		return "Forbidden"
	case CategoryNotFound:
		return "NotFound"
	case CategoryConflict:
		return "Conflict"
	case CategoryUpstreamFailure:
		return "UpstreamFailure"
	default:
		return "InternalFailure"
	}
}

// Error is a categorized failure. Errors produced from archive responses
// carry the upstream status and raw body alongside the extracted message.
type Error struct {
	Category Category
	Message  string
	Status   int    // upstream HTTP status, 0 when the error did not come from a response
	Body     string // raw upstream payload, when available
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Errorf builds an Error in the given category.
func Errorf(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

// Categorize maps an archive HTTP status to a failure category. The mapping
// is total: statuses outside the handled set fall through to upstream failure.
func Categorize(status int) Category {
	switch status {
	case http.StatusBadRequest:
		return CategoryInvalidArguments
	case http.StatusUnauthorized:
		return CategoryUnauthorized
	case http.StatusForbidden:
		return CategoryForbidden
	case http.StatusNotFound:
		return CategoryNotFound
	case http.StatusConflict:
		return CategoryConflict
	default:
		return CategoryUpstreamFailure
	}
}

// ResponseError builds an Error from a non-success archive response.
//
// Bad-request bodies carry field-level validation detail, so they are kept
// verbatim as the message. Unauthorized messages name the missing credential
// since that is the usual cause.
func ResponseError(status int, body []byte) *Error {
	e := &Error{
		Category: Categorize(status),
		Status:   status,
		Body:     string(body),
		Message:  extractMessage(body),
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	}

	switch status {
	case http.StatusBadRequest:
		if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
			e.Message = trimmed
		}
	case http.StatusUnauthorized:
		e.Message += " (no valid credential; is DANDI_API_KEY set?)"
	}
	return e
}

// extractMessage pulls the human-readable message out of an archive error
// body. DRF uses "detail"; some endpoints use "message".
func extractMessage(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Message
}

// Normalize coerces any error into a categorized Error. Already-categorized
// errors pass through unchanged; context expiry counts as an upstream
// failure; anything else is an internal failure.
func Normalize(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Category: CategoryUpstreamFailure, Message: err.Error()}
	}
	return &Error{Category: CategoryInternalFailure, Message: err.Error()}
}

// CategoryOf returns the category of err, treating uncategorized errors
// the way Normalize does.
func CategoryOf(err error) Category {
	return Normalize(err).Category
}

// IsNotFound reports whether err indicates the addressed resource is absent.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Category == CategoryNotFound
}
