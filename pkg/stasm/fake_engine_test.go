package stasm

import (
	"github.com/mjszczep/stasm-go/pkg/stasm/internal/backend"
)

// fakeEngine stands in for the native library. It counts calls per entry
// point and mimics the native boolean-plus-last-error convention.
type fakeEngine struct {
	calls   map[string]int
	fail    map[string]string // entry point -> native error message
	lastErr string

	faces    [][]float32 // queued results for SearchAuto
	single   []float32   // result for SearchSingle, nil means no face
	pinnedIn []float32
	opened   struct {
		width, height int
		multiFace     bool
		minWidth      int
		pix           []byte
	}
	convert func(pts []float32, format int)
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{calls: map[string]int{}, fail: map[string]string{}}
}

func (f *fakeEngine) total() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeEngine) enter(name string) error {
	f.calls[name]++
	if msg, ok := f.fail[name]; ok {
		f.lastErr = msg
		return &backend.Error{Message: msg}
	}
	return nil
}

func (f *fakeEngine) Init(string, bool) error { return f.enter("Init") }

func (f *fakeEngine) OpenImage(pix []byte, width, height int, _ string, multiFace bool, minWidth int) error {
	if err := f.enter("OpenImage"); err != nil {
		return err
	}
	f.opened.pix = append([]byte(nil), pix...)
	f.opened.width, f.opened.height = width, height
	f.opened.multiFace, f.opened.minWidth = multiFace, minWidth
	return nil
}

func (f *fakeEngine) SearchAuto(out []float32) (bool, error) {
	if err := f.enter("SearchAuto"); err != nil {
		return false, err
	}
	if len(f.faces) == 0 {
		return false, nil
	}
	copy(out, f.faces[0])
	f.faces = f.faces[1:]
	return true, nil
}

func (f *fakeEngine) SearchSingle(out []float32, _ []byte, _, _ int, _, _ string) (bool, error) {
	if err := f.enter("SearchSingle"); err != nil {
		return false, err
	}
	if f.single == nil {
		return false, nil
	}
	copy(out, f.single)
	return true, nil
}

func (f *fakeEngine) SearchPinned(out, pinned []float32, _ []byte, _, _ int, _ string) error {
	if err := f.enter("SearchPinned"); err != nil {
		return err
	}
	f.pinnedIn = append([]float32(nil), pinned...)
	for i := range out {
		out[i] = pinned[i] + 1
	}
	return nil
}

func (f *fakeEngine) LastError() string { return f.lastErr }

func (f *fakeEngine) ForcePointsIntoImage(pts []float32, width, height int) error {
	if err := f.enter("ForcePointsIntoImage"); err != nil {
		return err
	}
	// The library walks a full shape and nothing past it.
	for i := 0; i+1 < 2*NLandmarks; i += 2 {
		pts[i] = clamp(pts[i], 0, float32(width-1))
		pts[i+1] = clamp(pts[i+1], 0, float32(height-1))
	}
	return nil
}

func (f *fakeEngine) ConvertShape(pts []float32, format int) error {
	if err := f.enter("ConvertShape"); err != nil {
		return err
	}
	if f.convert != nil {
		f.convert(pts, format)
	}
	return nil
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// shape returns a flat buffer of n points whose coordinates encode their index.
func shape(n int) []float32 {
	buf := make([]float32, 2*n)
	for i := 0; i < n; i++ {
		buf[2*i] = float32(i) + 1
		buf[2*i+1] = float32(i) + 0.5
	}
	return buf
}

func newTestSession() (*Session, *fakeEngine) {
	eng := newFakeEngine()
	return New(Config{DataDir: "/resources"}, withEngine(eng)), eng
}
