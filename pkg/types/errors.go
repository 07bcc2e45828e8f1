package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure by its cause.
type ErrorKind string

// Known error kinds.
const (
	KindAuth     ErrorKind = "auth"
	KindUpstream ErrorKind = "upstream"
	KindNotFound ErrorKind = "not_found"
	KindUnknown  ErrorKind = "unknown"
)

// AuthError means the credentials were missing, rejected, or the token
// exchange returned something without an access token.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// UpstreamError means the remote API could not be reached or answered
// with an unexpected status or payload.
type UpstreamError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("upstream: %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NotFoundError means the remote API rejected the requested resource,
// typically an unknown card class.
type NotFoundError struct {
	Resource string
	Name     string
	Err      error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q not found: %v", e.Resource, e.Name, e.Err)
	}

	return fmt.Sprintf("%s %q not found", e.Resource, e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// KindOf reports which class of failure err belongs to.
func KindOf(err error) ErrorKind {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return KindAuth
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return KindNotFound
	}

	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return KindUpstream
	}

	return KindUnknown
}
