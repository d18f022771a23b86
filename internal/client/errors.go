// ABOUTME: Closed error taxonomy for the Tally portal client
// ABOUTME: Every transport, HTTP, and decoding failure maps to one of these

package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned for HTTP 401 responses
	ErrUnauthorized = errors.New("Unauthorized. Session may have expired.")

	// ErrInvalidResponse is returned when the peer does not speak well-formed HTTP
	ErrInvalidResponse = errors.New("Invalid response from server.")
)

// ServerError is any non-2xx status other than 401
type ServerError struct {
	Code int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("Server error: %d", e.Code)
}

// NetworkError is a transport failure before a response was obtained
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("Network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodingError means the response body did not parse into the expected shape
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("Failed to parse response: %v", e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}
