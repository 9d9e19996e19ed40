// Package blog implements the content discovery and engagement engine:
// post catalog, taxonomy, relevance ranking, commenter identity resolution,
// and the comment thread manager. It sits between the HTTP handlers and
// the store layer and owns all domain rules.
package blog

import (
	"errors"
	"fmt"
)

// Kind is a stable error classification reported to callers alongside a
// human-readable message.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindDuplicateSlug Kind = "duplicate_slug"
	KindNotFound      Kind = "not_found"
	KindInvalidParent Kind = "invalid_parent"
	KindForbidden     Kind = "forbidden"
	KindUnauthorized  Kind = "unauthorized"
)

// Error is a domain error with a stable kind. Field carries field-level
// detail for validation failures.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf returns the domain error kind of err, or "" if err is not a
// domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func validationErr(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func duplicateSlugErr(slug string) *Error {
	return &Error{Kind: KindDuplicateSlug, Field: "slug", Message: fmt.Sprintf("slug %q is already in use", slug)}
}

func notFoundErr(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func invalidParentErr(message string) *Error {
	return &Error{Kind: KindInvalidParent, Field: "parent_id", Message: message}
}

func forbiddenErr(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func unauthorizedErr(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}
