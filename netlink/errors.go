package netlink

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrUnsupported is returned on platforms without rtnetlink.
var ErrUnsupported = errors.New("rtnetlink is only available on linux")

// TransportError wraps any failure talking to the kernel. Errno carries the
// kernel's error code when there is one.
type TransportError struct {
	Op    string
	Errno syscall.Errno
	Err   error
}

func (e *TransportError) Error() string {
	if e.Errno != 0 {
		return fmt.Sprintf("netlink %s failed (errno %d): %v", e.Op, int(e.Errno), e.Err)
	}
	return fmt.Sprintf("netlink %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func transportError(op string, err error) error {
	tErr := &TransportError{Op: op, Err: err}
	errors.As(err, &tErr.Errno)
	return tErr
}

// isErrno reports whether err carries any of the given kernel error codes.
func isErrno(err error, errnos ...syscall.Errno) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	for _, e := range errnos {
		if errno == e {
			return true
		}
	}
	return false
}
