package backend

import "errors"

// NLandmarks mirrors stasm_NLANDMARKS from stasm_lib.h.
const NLandmarks = 77

// ErrNotBuilt reports that the native bindings were not linked into the
// current binary.
var ErrNotBuilt = errors.New("stasm/internal/backend: native bindings not built")

var errShortBuffer = errors.New("stasm/internal/backend: landmark buffer too small")

// Error is a failure reported by the native library. Message is the text of
// stasm_lasterr() captured right after the failing call.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
