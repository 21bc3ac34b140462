// Package errors defines the structured error type used across the search
// pipeline: a typed error carrying a stable kind plus a wrapped cause, so
// callers can branch with errors.Is/errors.As instead of string matching.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind identifies one of the error categories a DocError can carry.
type Kind string

const (
	KindLibraryNotFound             Kind = "library_not_found"
	KindLibraryInitializationFailed Kind = "library_initialization_failed"
	KindDocumentNotFound            Kind = "document_not_found"
	KindInvalidDocumentId           Kind = "invalid_document_id"
	KindTransient                   Kind = "transient"
)

// DocError is the structured error type returned across the repository,
// manager, and MCP tool layers.
type DocError struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *DocError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain support.
func (e *DocError) Unwrap() error {
	return e.Cause
}

// Is enables errors.Is(err, &DocError{Kind: ...}) comparisons by kind.
func (e *DocError) Is(target error) bool {
	t, ok := target.(*DocError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// LibraryNotFound reports a lookup against an unconfigured library id.
func LibraryNotFound(id string, availableIds []string) *DocError {
	return &DocError{
		Kind:    KindLibraryNotFound,
		Message: fmt.Sprintf("library %q not found; available: %s", id, strings.Join(availableIds, ", ")),
	}
}

// LibraryInitializationFailed wraps a failure encountered while building a
// library's repository (fetch, parse, or any other createRepository error).
func LibraryInitializationFailed(id string, cause error) *DocError {
	return &DocError{
		Kind:    KindLibraryInitializationFailed,
		Message: fmt.Sprintf("library %q failed to initialize", id),
		Cause:   cause,
	}
}

// DocumentNotFound reports an out-of-range byId lookup.
func DocumentNotFound(libraryId, id string) *DocError {
	return &DocError{
		Kind:    KindDocumentNotFound,
		Message: fmt.Sprintf("document %q not found in library %q", id, libraryId),
	}
}

// InvalidDocumentId reports an id that does not parse as a non-negative
// integer.
func InvalidDocumentId(raw string) *DocError {
	return &DocError{
		Kind:    KindInvalidDocumentId,
		Message: fmt.Sprintf("invalid document id %q", raw),
	}
}

// Transient wraps any other unexpected failure.
func Transient(cause error) *DocError {
	return &DocError{
		Kind:    KindTransient,
		Message: "unexpected error",
		Cause:   cause,
	}
}

// KindOf extracts the Kind from err if it is (or wraps) a *DocError.
func KindOf(err error) (Kind, bool) {
	var de *DocError
	if stderrors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}
