//go:build !cgo || windows

package backend

// Stub implementations for non-CGO builds or Windows.
// These allow the package to compile but return ErrNotBuilt when called.

func Version() string { return "" }

func LastError() string { return "" }

func Init(string, bool) error { return ErrNotBuilt }

func OpenImage([]byte, int, int, string, bool, int) error { return ErrNotBuilt }

func SearchAuto([]float32) (bool, error) { return false, ErrNotBuilt }

func SearchSingle([]float32, []byte, int, int, string, string) (bool, error) {
	return false, ErrNotBuilt
}

func SearchPinned([]float32, []float32, []byte, int, int, string) error { return ErrNotBuilt }

func ForcePointsIntoImage([]float32, int, int) error { return ErrNotBuilt }

func ConvertShape([]float32, int) error { return ErrNotBuilt }
