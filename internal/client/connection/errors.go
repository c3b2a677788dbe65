package connection

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrCommunication matches every CommunicationError via errors.Is
var ErrCommunication = errors.New("chat endpoint communication failure")

// CommunicationError covers network errors, non-2xx statuses and malformed
// bodies alike. Callers are not expected to branch on the cause.
type CommunicationError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *CommunicationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("chat %s (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("chat %s: %v", e.Op, e.Err)
}

func (e *CommunicationError) Unwrap() error {
	return e.Err
}

func (e *CommunicationError) Is(target error) bool {
	return target == ErrCommunication
}
