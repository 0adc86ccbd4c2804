package stasm

import (
	"errors"
	"fmt"

	"github.com/mjszczep/stasm-go/pkg/stasm/internal/backend"
)

var (
	// ErrInvalidArgument indicates a malformed flag or enum value.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidImage indicates the image buffer is missing or cannot be
	// used as 8-bit samples.
	ErrInvalidImage = errors.New("invalid image")

	// ErrInvalidImageShape indicates the image is not a 2-D single-channel
	// grid.
	ErrInvalidImageShape = errors.New("image must be a 2-D single-channel grid")

	// ErrInvalidLandmarks indicates landmark coordinates that cannot be
	// handed to the library.
	ErrInvalidLandmarks = errors.New("invalid landmarks")

	// ErrInvalidLandmarksShape indicates a landmark buffer that is not a
	// sequence of (x, y) pairs.
	ErrInvalidLandmarksShape = errors.New("landmarks must be a sequence of (x, y) pairs")

	// ErrOutOfRange indicates a numeric parameter outside its documented
	// bounds.
	ErrOutOfRange = errors.New("out of range")

	// ErrLibrary matches every *LibraryError.
	ErrLibrary = errors.New("stasm library error")

	// ErrNotBuilt reports that the native bindings were not linked into the
	// current binary.
	ErrNotBuilt = errors.New("stasm: native bindings not built")

	// ErrSessionClosed is returned by a Session after Close.
	ErrSessionClosed = errors.New("session closed")
)

// Error wraps a validation failure with the operation that rejected it.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("stasm.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorf creates a new Error whose chain contains kind.
func errorf(op string, kind error, format string, args ...any) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}

// LibraryError is a failure reported by the native library. Message is the
// library's last-error text, unchanged.
type LibraryError struct {
	Op      string
	Message string
}

func (e *LibraryError) Error() string {
	return fmt.Sprintf("stasm.%s: %s", e.Op, e.Message)
}

// Is reports whether target is ErrLibrary.
func (e *LibraryError) Is(target error) bool {
	return target == ErrLibrary
}

// RemapError converts backend errors to public API errors.
func RemapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, backend.ErrNotBuilt) {
		return &Error{Op: op, Err: ErrNotBuilt}
	}
	var nerr *backend.Error
	if errors.As(err, &nerr) {
		return &LibraryError{Op: op, Message: nerr.Message}
	}
	return &Error{Op: op, Err: err}
}
