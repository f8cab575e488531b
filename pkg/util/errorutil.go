package util

import (
	"errors"
	"fmt"
)

// RequestError standardizes failures of outbound API calls. Message carries
// the server's response body text when the server sent one.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError builds a RequestError for a non-success HTTP status. An
// empty message is replaced with a synthesized one naming the status code.
func NewRequestError(status int, message string) *RequestError {
	if message == "" {
		message = fmt.Sprintf("request failed (%d)", status)
	}
	return &RequestError{Status: status, Message: message}
}

// NewTransportError wraps a network-level failure that produced no response.
func NewTransportError(err error) *RequestError {
	return &RequestError{Message: "request failed", Err: err}
}

// AsRequestError extracts a RequestError from an error chain.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}
