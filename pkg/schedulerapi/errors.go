package schedulerapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
)

const (
	ErrMsgTimeout = "request timed out"
	ErrMsgDefault = "An error occurred"
)

var ErrTimeout = errors.New("TIMEOUT")

// RequestError is the single failure type of every client operation. Message
// is always human readable and non-empty.
type RequestError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func newRequestError(message string, statusCode int, cause error) *RequestError {
	if message == "" {
		message = ErrMsgDefault
	}
	return &RequestError{Message: message, StatusCode: statusCode, Err: cause}
}

// transportError normalizes a failure that happened before any response was
// received.
func transportError(err error) *RequestError {
	if isTimeout(err) {
		return newRequestError(ErrMsgTimeout, 0, fmt.Errorf("%w: %w", ErrTimeout, err))
	}

	return newRequestError(err.Error(), 0, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// statusError builds the error for a non-2xx response, preferring the
// backend's own "error" field.
func statusError(statusCode int, body io.Reader) *RequestError {
	raw, _ := io.ReadAll(body)

	var resp ErrorResponse
	if err := json.Unmarshal(raw, &resp); err == nil && resp.Error != "" {
		return newRequestError(resp.Error, statusCode, errors.New(resp.Error))
	}

	message := fmt.Sprintf("request failed with status code %d", statusCode)
	return newRequestError(message, statusCode, errors.New(message))
}

func decodeError(statusCode int, err error) *RequestError {
	return newRequestError(fmt.Sprintf("decoding error: %v", err), statusCode, err)
}
