package stasm

import "github.com/mjszczep/stasm-go/pkg/stasm/internal/backend"

// engine is the native surface a Session drives. Buffers are borrowed for
// the duration of one call.
type engine interface {
	Init(dataDir string, trace bool) error
	OpenImage(pix []byte, width, height int, debugPath string, multiFace bool, minWidth int) error
	SearchAuto(out []float32) (bool, error)
	SearchSingle(out []float32, pix []byte, width, height int, debugPath, dataDir string) (bool, error)
	SearchPinned(out, pinned []float32, pix []byte, width, height int, debugPath string) error
	LastError() string
	ForcePointsIntoImage(pts []float32, width, height int) error
	ConvertShape(pts []float32, format int) error
}

// nativeEngine forwards to the cgo backend.
type nativeEngine struct{}

func (nativeEngine) Init(dataDir string, trace bool) error {
	return backend.Init(dataDir, trace)
}

func (nativeEngine) OpenImage(pix []byte, width, height int, debugPath string, multiFace bool, minWidth int) error {
	return backend.OpenImage(pix, width, height, debugPath, multiFace, minWidth)
}

func (nativeEngine) SearchAuto(out []float32) (bool, error) {
	return backend.SearchAuto(out)
}

func (nativeEngine) SearchSingle(out []float32, pix []byte, width, height int, debugPath, dataDir string) (bool, error) {
	return backend.SearchSingle(out, pix, width, height, debugPath, dataDir)
}

func (nativeEngine) SearchPinned(out, pinned []float32, pix []byte, width, height int, debugPath string) error {
	return backend.SearchPinned(out, pinned, pix, width, height, debugPath)
}

func (nativeEngine) LastError() string { return backend.LastError() }

func (nativeEngine) ForcePointsIntoImage(pts []float32, width, height int) error {
	return backend.ForcePointsIntoImage(pts, width, height)
}

func (nativeEngine) ConvertShape(pts []float32, format int) error {
	return backend.ConvertShape(pts, format)
}
