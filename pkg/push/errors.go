package push

import (
	"errors"
	"fmt"
)

// ErrClosed returned by Open after Teardown
var ErrClosed = errors.New("push connection closed")

// ErrStreamEnded reported when the server ends the stream without an error
var ErrStreamEnded = errors.New("push stream ended by server")

// TransportError wraps failures to open or keep the push channel.
// Connection recovers from it by reconnecting, it is never fatal.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("push transport %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
