package lookup

import (
	"context"
	"os"
	"syscall"

	"github.com/pkg/errors"

	"golang.org/x/sys/unix"

	"github.com/mutagen-io/namei/pkg/naming"
)

// ErrNotFound is returned by Index implementations when no entry matches a
// name. Resolve converts it into a negative entry rather than returning it.
var ErrNotFound = errors.New("entry not found")

// Errno converts an error surfaced by name resolution or node creation into
// the corresponding filesystem fault code. It returns 0 for nil errors.
// Unrecognized errors map to EIO.
func Errno(err error) syscall.Errno {
	if err == nil {
		return 0
	}

	// Check for an errno first.
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}

	// Map known errors.
	switch {
	case errors.Is(err, naming.ErrNameTooLong):
		return unix.ENAMETOOLONG
	case errors.Is(err, naming.ErrMalformedEncoding):
		return unix.EILSEQ
	case errors.Is(err, ErrNotFound), errors.Is(err, os.ErrNotExist):
		return unix.ENOENT
	case errors.Is(err, os.ErrExist):
		return unix.EEXIST
	case errors.Is(err, os.ErrPermission):
		return unix.EACCES
	case errors.Is(err, os.ErrInvalid):
		return unix.EINVAL
	case errors.Is(err, context.Canceled):
		return unix.EINTR
	case errors.Is(err, context.DeadlineExceeded):
		return unix.ETIMEDOUT
	default:
		return unix.EIO
	}
}
