//go:build cgo && !windows

package backend

/*
#cgo CFLAGS: -I${SRCDIR}
#cgo linux,!android LDFLAGS: -L/usr/local/lib
#cgo darwin LDFLAGS: -L/usr/local/lib -L/opt/homebrew/lib
#cgo LDFLAGS: -lstasm -lopencv_objdetect -lopencv_imgproc -lopencv_core -lstdc++ -lm
#include <stdlib.h>
#include <string.h>
#include "stasm_capi.h"

static const char* stasm_go_version(void) { return stasm_VERSION; }
*/
import "C"

import (
	"unsafe"
)

// The native library keeps a pointer to the pixels handed to
// stasm_open_image (and to the image of the last single or pinned search) and
// reads them again in stasm_search_auto. Go memory cannot outlive the cgo
// call, so each of those images is copied into C memory owned by a slot.
var retained struct {
	open   imageSlot
	pinned imageSlot
}

func cfree(p unsafe.Pointer) { C.free(p) }

// withImage copies pix into C memory and runs call on it. The copy replaces
// the slot's image only when call succeeds.
func withImage(slot *imageSlot, pix []byte, call func(img *C.char) bool) bool {
	p := C.CBytes(pix)
	return slot.replace(p, cfree, func() bool { return call((*C.char)(p)) })
}

func lastError() error {
	return &Error{Message: C.GoString(C.stasm_lasterr())}
}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

func floats(v []float32) *C.float {
	if len(v) == 0 {
		return nil
	}
	return (*C.float)(unsafe.Pointer(&v[0]))
}

// Version returns stasm_VERSION.
func Version() string { return C.GoString(C.stasm_go_version()) }

// LastError returns the current text of stasm_lasterr().
func LastError() string {
	return C.GoString(C.stasm_lasterr())
}

// Init calls stasm_init.
func Init(dataDir string, trace bool) error {
	cDir := C.CString(dataDir)
	defer C.free(unsafe.Pointer(cDir))

	if C.stasm_init(cDir, cbool(trace)) == 0 {
		return lastError()
	}
	return nil
}

// OpenImage calls stasm_open_image on a C copy of pix. pix must hold
// width*height row-major samples.
func OpenImage(pix []byte, width, height int, debugPath string, multiFace bool, minWidth int) error {
	cPath := C.CString(debugPath)
	defer C.free(unsafe.Pointer(cPath))

	ok := withImage(&retained.open, pix, func(img *C.char) bool {
		return C.stasm_open_image(img, C.int(width), C.int(height), cPath, cbool(multiFace), C.int(minWidth)) != 0
	})
	if !ok {
		return lastError()
	}
	return nil
}

// SearchAuto calls stasm_search_auto. out must have room for 2*NLandmarks
// floats.
func SearchAuto(out []float32) (bool, error) {
	if len(out) < 2*NLandmarks {
		return false, errShortBuffer
	}
	var found C.int
	if C.stasm_search_auto(&found, floats(out)) == 0 {
		return false, lastError()
	}
	return found != 0, nil
}

// SearchSingle calls stasm_search_single. The native library opens the image
// internally, so the pixels take over the open slot.
func SearchSingle(out []float32, pix []byte, width, height int, debugPath, dataDir string) (bool, error) {
	if len(out) < 2*NLandmarks {
		return false, errShortBuffer
	}
	cPath := C.CString(debugPath)
	defer C.free(unsafe.Pointer(cPath))
	cDir := C.CString(dataDir)
	defer C.free(unsafe.Pointer(cDir))

	var found C.int
	ok := withImage(&retained.open, pix, func(img *C.char) bool {
		return C.stasm_search_single(&found, floats(out), img, C.int(width), C.int(height), cPath, cDir) != 0
	})
	if !ok {
		return false, lastError()
	}
	return found != 0, nil
}

// SearchPinned calls stasm_search_pinned. Both out and pinned must hold
// 2*NLandmarks floats.
func SearchPinned(out, pinned []float32, pix []byte, width, height int, debugPath string) error {
	if len(out) < 2*NLandmarks || len(pinned) < 2*NLandmarks {
		return errShortBuffer
	}
	cPath := C.CString(debugPath)
	defer C.free(unsafe.Pointer(cPath))

	ok := withImage(&retained.pinned, pix, func(img *C.char) bool {
		return C.stasm_search_pinned(floats(out), floats(pinned), img, C.int(width), C.int(height), cPath) != 0
	})
	if !ok {
		return lastError()
	}
	return nil
}

// ForcePointsIntoImage calls stasm_force_points_into_image in place. pts
// must hold at least 2*NLandmarks floats since the native side always walks
// a full shape.
func ForcePointsIntoImage(pts []float32, width, height int) error {
	if len(pts) < 2*NLandmarks {
		return errShortBuffer
	}
	C.stasm_force_points_into_image(floats(pts), C.int(width), C.int(height))
	return nil
}

// ConvertShape calls stasm_convert_shape in place. pts must hold at least
// 2*NLandmarks floats.
func ConvertShape(pts []float32, format int) error {
	if len(pts) < 2*NLandmarks {
		return errShortBuffer
	}
	C.stasm_convert_shape(floats(pts), C.int(format))
	return nil
}
