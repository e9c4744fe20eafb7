package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// HTTPError is returned when the backend answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return e.Message
}

func newHTTPError(status int, body []byte) *HTTPError {
	msg := extractMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("HTTP error! status: %d", status)
	}
	return &HTTPError{
		StatusCode: status,
		Message:    msg,
		Body:       body,
	}
}

// extractMessage reads message, detail or error from a JSON error body.
func extractMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	for _, key := range []string{"message", "detail", "error"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}

// AsHTTPError unwraps err to an *HTTPError.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsHTTPStatus reports whether err is an HTTP error with the given status.
func IsHTTPStatus(err error, status int) bool {
	httpErr, ok := AsHTTPError(err)
	return ok && httpErr.StatusCode == status
}
