package adminclient

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when no bearer token is available.
// No request is issued in that case.
var ErrUnauthenticated = errors.New("no authentication token available")

// RequestError represents a non-success HTTP outcome. The message comes from
// the structured error body when one could be parsed, otherwise a generic
// fallback.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}

// ArgumentError represents a client-side precondition failure raised before
// any network call, e.g. a malformed tenant identifier.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

// IsRequestError reports whether err is a RequestError
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

// IsArgumentError reports whether err is an ArgumentError
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}
