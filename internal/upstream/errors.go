package upstream

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured means the client was built without a base URL. The
	// gateway refuses to guess a host.
	ErrNotConfigured = errors.New("upstream API base URL is not configured")

	// ErrUnreachable wraps transport-level failures (DNS, refused
	// connection, timeout) as opposed to an answer from the API.
	ErrUnreachable = errors.New("upstream unreachable")
)

// APIError is a non-2xx answer from the commerce API. Message carries the
// upstream's human-readable text when the body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
}

// IsRejection reports whether the error is a definitive upstream answer
// (e.g. out of stock, invalid credentials) rather than a transport failure.
func IsRejection(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// RejectionMessage extracts the upstream message for user display, or ""
// when the error is not an upstream rejection.
func RejectionMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
