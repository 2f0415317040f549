package listmonk

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors.
var (
	// ErrNotConnected is returned when a request is issued before Connect or
	// after Close. It is a programming error and is never retried.
	ErrNotConnected = errors.New("listmonk: client not connected, call Connect first")

	// ErrAlreadyConnected is returned by Connect on a connected client.
	ErrAlreadyConnected = errors.New("listmonk: client already connected")

	// ErrNotFound matches any APIError carrying a 404 status.
	ErrNotFound = errors.New("listmonk: not found")
)

// ErrorKind classifies an APIError. Callers usually only need StatusCode;
// Kind exists for logging and metrics.
type ErrorKind int

const (
	// KindRemote is a non-2xx response from the server.
	KindRemote ErrorKind = iota
	// KindTransport is a connectivity failure that exhausted the retry budget
	// or was cancelled.
	KindTransport
	// KindNotFound is a successful but empty lookup reinterpreted as absence.
	KindNotFound
	// KindInvalidRequest is a write shape rejected before any network call.
	KindInvalidRequest
)

func (k ErrorKind) String() string {
	switch k {
	case KindRemote:
		return "remote"
	case KindTransport:
		return "transport"
	case KindNotFound:
		return "not_found"
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

// APIError is the single error type returned by client operations.
type APIError struct {
	// Message is human readable; for remote errors it is the server's
	// "message" field or "HTTP <status>".
	Message string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Response is the decoded error body, nil when no response was received.
	Response Payload

	Kind ErrorKind

	// Err is the underlying cause for transport and validation failures.
	Err error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// HasStatus reports whether the error carries an HTTP status code.
func (e *APIError) HasStatus() bool { return e.StatusCode != 0 }

// Is implements errors.Is for ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

func transportError(err error) *APIError {
	return &APIError{
		Message: fmt.Sprintf("Request failed: %v", err),
		Kind:    KindTransport,
		Err:     err,
	}
}

func invalidRequest(err error) *APIError {
	return &APIError{
		Message: fmt.Sprintf("Invalid request: %v", err),
		Kind:    KindInvalidRequest,
		Err:     err,
	}
}
