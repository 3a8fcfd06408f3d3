package core

import (
	"errors"
	"fmt"
)

// Error is the root of every error returned by the client.
type Error interface {
	error
	// Kind reports the category of the failure.
	Kind() ErrorKind
}

// ErrorKind represents the category of an API error.
type ErrorKind int

// Error kind constants. All kinds other than KindAPI are
// specializations of the generic API kind.
const (
	// KindAPI indicates a generic or unclassified API failure.
	KindAPI ErrorKind = iota
	// KindInvalidSignature indicates the service rejected the request signature.
	KindInvalidSignature
	// KindAccessRestricted indicates the service denied access to the resource.
	KindAccessRestricted
	// KindInvalidInput indicates the caller's arguments were rejected before any I/O.
	KindInvalidInput
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	return [...]string{
		"API_ERROR",
		"INVALID_SIGNATURE",
		"ACCESS_RESTRICTED",
		"INVALID_INPUT",
	}[k]
}

// Sentinel errors for use with errors.Is.
var (
	// ErrAPI matches any APIError regardless of kind.
	ErrAPI = &APIError{kind: KindAPI, Message: "api error"}
	// ErrInvalidSignature matches any APIError of kind KindInvalidSignature.
	ErrInvalidSignature = &APIError{kind: KindInvalidSignature, Message: "invalid signature"}
	// ErrAccessRestricted matches any APIError of kind KindAccessRestricted.
	ErrAccessRestricted = &APIError{kind: KindAccessRestricted, Message: "access restricted"}
	// ErrInvalidInput matches any APIError of kind KindInvalidInput.
	ErrInvalidInput = &APIError{kind: KindInvalidInput, Message: "invalid input"}
)

// APIError is returned for every failure at signing, transport or parsing.
type APIError struct {
	kind ErrorKind
	// StatusCode is the HTTP status of the response, zero when no response was received.
	StatusCode int `json:"status_code,omitempty"`
	// Code is the service error code, empty when the service did not report one.
	Code string `json:"code,omitempty"`
	// Message is the human-readable error description.
	Message string `json:"message"`
	// Err is the underlying cause, if any.
	Err error `json:"-"`
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.Message)
}

// Kind reports the category of the failure.
func (e *APIError) Kind() ErrorKind {
	return e.kind
}

// Unwrap returns the underlying cause so transport errors such as
// context.Canceled remain visible to errors.Is.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind.
// A generic sentinel of KindAPI matches every APIError.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	if t == ErrAPI {
		return true
	}
	return t.kind == e.kind && t.kind != KindAPI
}

// NewAPIError creates a generic APIError with the given message.
func NewAPIError(message string) *APIError {
	return &APIError{kind: KindAPI, Message: message}
}

// NewAPIErrorf creates a generic APIError with a formatted message.
func NewAPIErrorf(format string, args ...any) *APIError {
	return NewAPIError(fmt.Sprintf(format, args...))
}

// NewInvalidSignature creates an APIError of kind KindInvalidSignature.
func NewInvalidSignature(code, message string) *APIError {
	return &APIError{kind: KindInvalidSignature, Code: code, Message: message}
}

// NewAccessRestricted creates an APIError of kind KindAccessRestricted.
func NewAccessRestricted(code, message string) *APIError {
	return &APIError{kind: KindAccessRestricted, Code: code, Message: message}
}

// NewInvalidInput creates an APIError of kind KindInvalidInput. err may be nil.
func NewInvalidInput(message string, err error) *APIError {
	return &APIError{kind: KindInvalidInput, Message: message, Err: err}
}

// WrapAPIError creates a generic APIError carrying err as its cause.
func WrapAPIError(message string, err error) *APIError {
	return &APIError{kind: KindAPI, Message: message, Err: err}
}

// WithStatus records the HTTP status code and returns the error for chaining.
func (e *APIError) WithStatus(status int) *APIError {
	e.StatusCode = status
	return e
}

// IsAPIError returns true if err is, or wraps, an APIError of any kind.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsInvalidSignature returns true if the service rejected the request signature.
// Check the clock and the access key secret before retrying.
func IsInvalidSignature(err error) bool {
	return kindOf(err) == KindInvalidSignature
}

// IsAccessRestricted returns true if the service denied access.
func IsAccessRestricted(err error) bool {
	return kindOf(err) == KindAccessRestricted
}

// IsInvalidInput returns true if the call was rejected before reaching the service.
func IsInvalidInput(err error) bool {
	return kindOf(err) == KindInvalidInput
}

func kindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.kind
	}
	return -1
}
