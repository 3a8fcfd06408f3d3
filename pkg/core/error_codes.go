package core

import (
	"errors"
	"strconv"
)

// ErrorCode is a numeric error identifier reported by the search service
// in the "errors" list of a failed response.
type ErrorCode int

// Service error codes that map to a specific error kind.
const (
	// CodeInvalidSignature is reported when the signature does not match.
	CodeInvalidSignature ErrorCode = 4003
	// CodeAccessRestricted is reported when the key may not access the resource.
	CodeAccessRestricted ErrorCode = 5001
)

// Kind returns the error kind the service code maps to.
// Unknown codes map to KindAPI.
func (c ErrorCode) Kind() ErrorKind {
	switch c {
	case CodeInvalidSignature:
		return KindInvalidSignature
	case CodeAccessRestricted:
		return KindAccessRestricted
	default:
		return KindAPI
	}
}

// NewErrorWithCode creates an APIError whose kind is derived from code.
func NewErrorWithCode(code ErrorCode, codeText, message string) *APIError {
	return &APIError{kind: code.Kind(), Code: codeText, Message: message}
}

// IsErrorCode checks if the error carries the specified service code.
func IsErrorCode(err error, code ErrorCode) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == strconv.Itoa(int(code))
	}
	return false
}
