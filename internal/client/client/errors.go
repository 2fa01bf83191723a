package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized: the backend refused the credential (401/403).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable: no usable response (transport failure, 502/503/504).
	ErrUnavailable = errors.New("server unavailable")
	// ErrTimeout: the request deadline expired before a response arrived.
	ErrTimeout = errors.New("request timed out")
	// ErrRejected: any other non-success answer.
	ErrRejected = errors.New("request rejected")
	// ErrMalformedResponse: a 2xx answer that does not match the contract.
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a non-success answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
	Kind       error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Kind }

// kindForStatus maps an HTTP status code to its sentinel kind.
func kindForStatus(code int) error {
	switch code {
	case 401, 403:
		return ErrUnauthorized
	case 502, 503, 504:
		return ErrUnavailable
	case 408:
		return ErrTimeout
	default:
		return ErrRejected
	}
}

// IsTransient reports whether err may succeed on retry.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrTimeout)
}
