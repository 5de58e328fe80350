package netclient

import (
	"errors"
	"fmt"
)

// ConnectionFailed indicates the request never produced an HTTP response:
// DNS failure, connection refused, TLS handshake failure, or timeout.
type ConnectionFailed struct {
	Message string
	Err     error
}

func (e *ConnectionFailed) Error() string {
	return fmt.Sprintf("connection to the server failed: %s", e.Message)
}

func (e *ConnectionFailed) Unwrap() error { return e.Err }

// Unauthorized indicates the server answered 401. Message carries the
// server-provided body text.
type Unauthorized struct {
	Message string
}

func (e *Unauthorized) Error() string { return e.Message }

// IsConnectionFailed reports whether err is (or wraps) a ConnectionFailed.
func IsConnectionFailed(err error) bool {
	var cf *ConnectionFailed
	return errors.As(err, &cf)
}

// IsUnauthorized reports whether err is (or wraps) an Unauthorized.
func IsUnauthorized(err error) bool {
	var ua *Unauthorized
	return errors.As(err, &ua)
}
