package dispatch

import (
	"errors"
	"fmt"
)

// Validation errors. All are raised before any network I/O is attempted.
var (
	ErrNoAppToken     = errors.New("no application token")
	ErrNoUserToken    = errors.New("no user token")
	ErrNoMessage      = errors.New("no message")
	ErrMessageTooLong = errors.New("message too long")
)

// RecipientError tags a delivery failure with the recipient it belongs to, so
// a caller aggregating a batch can correlate outcomes back to inputs.
type RecipientError struct {
	Recipient string
	Err       error
}

func (e *RecipientError) Error() string {
	return fmt.Sprintf("recipient %s: %v", e.Recipient, e.Err)
}

func (e *RecipientError) Unwrap() error { return e.Err }

// TagRecipient wraps err with the recipient it failed for. A nil err stays nil.
func TagRecipient(recipient string, err error) error {
	if err == nil {
		return nil
	}
	return &RecipientError{Recipient: recipient, Err: err}
}
