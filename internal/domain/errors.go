package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is() checking. Every user-facing failure in the
// engine wraps exactly one of these, so callers can branch on the kind
// without string matching.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrAmbiguous  = errors.New("ambiguous")
	ErrDuplicate  = errors.New("duplicate")
	ErrPermission = errors.New("permission denied")
	ErrState      = errors.New("invalid state")
	ErrUpstream   = errors.New("upstream failure")
	ErrTool       = errors.New("tool execution error")
)

// Error is a domain failure with a user-facing message and actionable
// suggestions. Kind is one of the sentinel errors above and is exposed
// through Unwrap so errors.Is works across wrapping.
//
// Domain errors are expected outcomes (not found, ambiguous, duplicate);
// they are returned, never panicked, and never retried.
type Error struct {
	Kind        error
	Message     string
	Suggestions []string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError creates a domain Error of the given kind.
func NewError(kind error, message string, suggestions ...string) *Error {
	return &Error{Kind: kind, Message: message, Suggestions: suggestions}
}

// Validation creates a validation error (bad name, bad quantity, low confidence).
func Validation(message string, suggestions ...string) *Error {
	return NewError(ErrValidation, message, suggestions...)
}

// NotFound creates a not-found error for an absent list or item.
func NotFound(message string, suggestions ...string) *Error {
	return NewError(ErrNotFound, message, suggestions...)
}

// Ambiguous creates an ambiguity error. Suggestions enumerate the candidate
// list names the caller can use to disambiguate.
func Ambiguous(message string, candidates ...string) *Error {
	return NewError(ErrAmbiguous, message, candidates...)
}

// Duplicate creates a name-collision error for create/rename/add without merge.
func Duplicate(message string, suggestions ...string) *Error {
	return NewError(ErrDuplicate, message, suggestions...)
}

// Permission creates an ownership-mismatch error.
func Permission(message string, suggestions ...string) *Error {
	return NewError(ErrPermission, message, suggestions...)
}

// State creates an error for operations against a soft-deleted target.
func State(message string, suggestions ...string) *Error {
	return NewError(ErrState, message, suggestions...)
}

// Upstream creates an error for intent-source failures (rate limit, timeout,
// auth). Upstream errors are the only retryable kind.
func Upstream(message string, suggestions ...string) *Error {
	return NewError(ErrUpstream, message, suggestions...)
}

// ToolFailure creates a tool-execution error (unsupported tool, handler timeout).
func ToolFailure(message string, suggestions ...string) *Error {
	return NewError(ErrTool, message, suggestions...)
}

// SuggestionsOf extracts the suggestions carried by a domain error, or nil
// if the error carries none.
func SuggestionsOf(err error) []string {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Suggestions
	}
	return nil
}

// Retryable reports whether an error may be retried. Only upstream failures
// qualify; validation, ambiguity, and not-found outcomes are terminal for
// the utterance that produced them.
func Retryable(err error) bool {
	return errors.Is(err, ErrUpstream)
}

// ValidationError provides programmatic access to field-level validation
// failures. Use errors.Is(err, ErrValidation) for simple checks, or
// errors.As(err, &verr) to access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
