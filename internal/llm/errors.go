// Package llm provides the completion client abstraction over language-model providers.
package llm

import (
	"errors"
	"fmt"
)

// TransportErrorKind classifies a failed completion call.
type TransportErrorKind string

// Transport failure taxonomy. The client performs no internal retry;
// retry policy belongs to the orchestrator.
const (
	TransportUnreachable   TransportErrorKind = "unreachable"
	TransportTimeout       TransportErrorKind = "timeout"
	TransportServerError   TransportErrorKind = "server_error"
	TransportEmptyResponse TransportErrorKind = "empty_response"
)

// TransportError represents a failed call to the completion service.
type TransportError struct {
	Kind    TransportErrorKind
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("completion transport error (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("completion transport error (%s): %s", e.Kind, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// AsTransportError extracts a TransportError from an error chain.
func AsTransportError(err error) (*TransportError, bool) {
	var terr *TransportError
	if errors.As(err, &terr) {
		return terr, true
	}
	return nil, false
}
