package pushover

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StatusError is a non-200 provider response. Reasons holds the
// provider-supplied error strings, joined with spaces in the message.
type StatusError struct {
	StatusCode int
	Reasons    []string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, strings.Join(e.Reasons, " "))
}

func newStatusError(status int, payload []byte) error {
	var body struct {
		Errors []string `json:"errors"`
	}
	// A non-JSON error body still yields the status code.
	_ = json.Unmarshal(payload, &body)
	return &StatusError{StatusCode: status, Reasons: body.Errors}
}
