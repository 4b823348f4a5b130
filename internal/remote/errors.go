package remote

import (
	"errors"
	"fmt"
)

// ErrRemote is the single failure category for the remote todo store.
// Every error returned by Client wraps it.
var ErrRemote = errors.New("remote operation failed")

// StatusError reports a non-2xx response from the remote store.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: remote returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: remote returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrRemote }

// wrap tags a transport or decoding failure with ErrRemote.
func wrap(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrRemote, op, err)
}
