package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationRequired is returned before dispatch when no bearer token is held
	ErrAuthenticationRequired = errors.New("authentication required: please sign in to continue")

	// ErrSessionExpired is returned when the backend rejects the bearer token with 401
	ErrSessionExpired = errors.New("session expired: please sign in again")
)

// RequestFailedError is any other non-2xx response
type RequestFailedError struct {
	Status   int
	Message  string
	Method   string
	Endpoint string
}

func (e *RequestFailedError) Error() string {
	return e.Message
}

func fallbackMessage(status int) string {
	return fmt.Sprintf("request failed with status %d", status)
}

// StatusCode extracts the HTTP status from a RequestFailedError, or 0
func StatusCode(err error) int {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.Status
	}
	return 0
}
