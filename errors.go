package arbor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errno is the error type returned by every caller-facing arbor operation.
// The POSIX-named values carry their familiar errno numbers; ErrMovingAncestor
// is an arbor-specific negative value, distinct from every standard POSIX
// code in use, for the one condition (moving a node underneath its own
// descendant) that has no POSIX equivalent.
type Errno int32

const (
	// ErrInval marks a syntactically invalid path.
	ErrInval Errno = 22
	// ErrExist marks a create/move target that already exists.
	ErrExist Errno = 17
	// ErrNotFound marks a missing path component.
	ErrNotFound Errno = 2
	// ErrBusy marks an operation refused against the root.
	ErrBusy Errno = 16
	// ErrNotEmpty marks a remove of a non-empty directory.
	ErrNotEmpty Errno = 39
	// ErrMovingAncestor marks a move whose target is a descendant of its
	// source.
	ErrMovingAncestor Errno = -1
)

func (e Errno) Error() string {
	switch e {
	case ErrInval:
		return "invalid path"
	case ErrExist:
		return "already exists"
	case ErrNotFound:
		return "no such path"
	case ErrBusy:
		return "busy"
	case ErrNotEmpty:
		return "directory not empty"
	case ErrMovingAncestor:
		return "target is a descendant of source"
	default:
		return fmt.Sprintf("arbor: errno %d", int32(e))
	}
}

// annotate wraps errno with path context for logging, mirroring the
// teacher's own errors.Wrapf-at-the-call-site idiom. The returned error is
// for diagnostics only: every public operation still returns the bare
// Errno, never this wrapped form, so callers can keep comparing results
// against the Err* constants directly.
func annotate(errno Errno, format string, args ...any) error {
	return errors.Wrapf(errno, format, args...)
}
