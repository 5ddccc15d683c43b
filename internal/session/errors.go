package session

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Lookup when the service has no entry.
var ErrNotFound = errors.New("word not found")

// TransportError is any other lookup failure: network, status, or decoding.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Messages shown to the user.
const (
	MessageNotFound  = "Word not found"
	MessageTransport = "Lookup failed, please try again"
)

// UserMessage maps a lookup error to what the user sees.
func UserMessage(err error) string {
	if errors.Is(err, ErrNotFound) {
		return MessageNotFound
	}
	return MessageTransport
}
