package stasm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blankImage(t *testing.T, w, h int) *Image {
	t.Helper()
	img, err := NewImage(make([]byte, w*h), w, h)
	require.NoError(t, err)
	return img
}

func malformedImages() []struct {
	name string
	img  *Image
	want error
} {
	return []struct {
		name string
		img  *Image
		want error
	}{
		{"nil image", nil, ErrInvalidImage},
		{"nil pixels", &Image{Width: 4, Height: 4}, ErrInvalidImage},
		{"zero width", &Image{Pix: make([]byte, 4), Width: 0, Height: 4}, ErrInvalidImageShape},
		{"negative height", &Image{Pix: make([]byte, 4), Width: 4, Height: -1}, ErrInvalidImageShape},
		{"short buffer", &Image{Pix: make([]byte, 15), Width: 4, Height: 4}, ErrInvalidImageShape},
		{"stride below width", &Image{Pix: make([]byte, 16), Width: 4, Height: 4, Stride: 3}, ErrInvalidImageShape},
	}
}

func TestOpenImageRejectsMalformedImages(t *testing.T) {
	for _, tt := range malformedImages() {
		t.Run(tt.name, func(t *testing.T) {
			s, eng := newTestSession()
			err := s.OpenImage(tt.img, DefaultOpenOptions())
			require.ErrorIs(t, err, tt.want)
			assert.Zero(t, eng.total(), "no native call expected")
		})
	}
}

func TestSearchSingleRejectsMalformedImages(t *testing.T) {
	for _, tt := range malformedImages() {
		t.Run(tt.name, func(t *testing.T) {
			s, eng := newTestSession()
			_, err := s.SearchSingle(tt.img, SingleOptions{})
			require.ErrorIs(t, err, tt.want)
			assert.Zero(t, eng.total(), "no native call expected")
		})
	}
}

func TestSearchPinnedRejectsMalformedImages(t *testing.T) {
	for _, tt := range malformedImages() {
		t.Run(tt.name, func(t *testing.T) {
			s, eng := newTestSession()
			_, err := s.SearchPinned(Landmarks{{1, 1}}, tt.img, "")
			require.ErrorIs(t, err, tt.want)
			assert.Zero(t, eng.total())
		})
	}
}

func TestOpenImageMinWidth(t *testing.T) {
	tests := []struct {
		minWidth int
		wantErr  error
	}{
		{-5, ErrOutOfRange},
		{0, ErrOutOfRange},
		{1, nil},
		{10, nil},
		{100, nil},
		{101, ErrOutOfRange},
	}

	for _, tt := range tests {
		s, eng := newTestSession()
		opts := DefaultOpenOptions()
		opts.MinWidth = tt.minWidth
		err := s.OpenImage(blankImage(t, 8, 8), opts)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "minwidth %d", tt.minWidth)
			assert.Zero(t, eng.total(), "minwidth %d", tt.minWidth)
			continue
		}
		assert.NoError(t, err, "minwidth %d", tt.minWidth)
		assert.Equal(t, tt.minWidth, eng.opened.minWidth)
	}
}

func TestOpenImageFlags(t *testing.T) {
	tests := []struct {
		name      string
		multiFace any
		want      bool
		wantErr   bool
	}{
		{"true", true, true, false},
		{"false", false, false, false},
		{"one", 1, true, false},
		{"zero", 0, false, false},
		{"seven", 7, false, true},
		{"string", "yes", false, true},
		{"nil", nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, eng := newTestSession()
			err := s.OpenImageFlags(blankImage(t, 8, 8), "", tt.multiFace, 10)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				assert.Zero(t, eng.total())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, eng.opened.multiFace)
		})
	}
}

func TestOpenImageFlagsChecksImageFirst(t *testing.T) {
	s, _ := newTestSession()
	err := s.OpenImageFlags(nil, "", 7, 0)
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestOpenImagePacksStridedImage(t *testing.T) {
	s, eng := newTestSession()
	img := &Image{
		Pix:    []byte{1, 2, 0, 3, 4, 0, 5, 6},
		Width:  2,
		Height: 3,
		Stride: 3,
	}
	require.NoError(t, s.OpenImage(img, DefaultOpenOptions()))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, eng.opened.pix)
	assert.Equal(t, 2, eng.opened.width)
	assert.Equal(t, 3, eng.opened.height)
}

func TestInitScenario(t *testing.T) {
	s, eng := newTestSession()
	require.NoError(t, s.Init("/resources", false))
	assert.Equal(t, 1, eng.calls["Init"])

	// A non-boolean trace value is rejected before reaching the library.
	err := s.InitFlags("/resources", 7)
	require.ErrorIs(t, err, ErrInvalidArgument)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "Init", e.Op)
	assert.Equal(t, 1, eng.calls["Init"])

	require.NoError(t, s.InitFlags("", 1))
	require.NoError(t, s.InitFlags("", false))
	assert.Equal(t, 3, eng.calls["Init"])
}

func TestInitLibraryError(t *testing.T) {
	s, eng := newTestSession()
	eng.fail["Init"] = "Cannot load /bad/haarcascade_frontalface_alt2.xml"

	err := s.Init("/bad", true)
	require.ErrorIs(t, err, ErrLibrary)

	var lerr *LibraryError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "Init", lerr.Op)
	assert.Equal(t, eng.fail["Init"], lerr.Message)
	assert.Equal(t, lerr.Message, s.LastError())
}

func TestSearchSingleNoFace(t *testing.T) {
	s, eng := newTestSession()
	got, err := s.SearchSingle(blankImage(t, 100, 100), SingleOptions{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.True(t, got.Empty())
	assert.Equal(t, 1, eng.calls["SearchSingle"])
}

func TestSearchSingleFace(t *testing.T) {
	s, eng := newTestSession()
	eng.single = shape(NLandmarks)

	got, err := s.SearchSingle(blankImage(t, 100, 100), SingleOptions{DataDir: "/other"})
	require.NoError(t, err)
	require.Len(t, got, NLandmarks)
	assert.Equal(t, Point{X: 1, Y: 0.5}, got[0])
	assert.Equal(t, Point{X: NLandmarks, Y: NLandmarks - 0.5}, got[NLandmarks-1])
}

func TestSearchNextEnumeratesFaces(t *testing.T) {
	s, eng := newTestSession()
	eng.faces = [][]float32{shape(NLandmarks), shape(NLandmarks)}

	opts := DefaultOpenOptions()
	opts.MultiFace = true
	require.NoError(t, s.OpenImage(blankImage(t, 32, 32), opts))

	faces, err := s.SearchAll()
	require.NoError(t, err)
	assert.Len(t, faces, 2)
	assert.Equal(t, 3, eng.calls["SearchAuto"])

	next, err := s.SearchNext()
	require.NoError(t, err)
	assert.True(t, next.Empty())
}

func TestSearchAllKeepsFacesOnError(t *testing.T) {
	s, eng := newTestSession()
	eng.faces = [][]float32{shape(NLandmarks)}

	first, err := s.SearchNext()
	require.NoError(t, err)
	require.Len(t, first, NLandmarks)

	eng.faces = [][]float32{shape(NLandmarks)}
	eng.fail["SearchAuto"] = "stasm_open_image not called"
	faces, err := s.SearchAll()
	require.ErrorIs(t, err, ErrLibrary)
	assert.Empty(t, faces)
	assert.Equal(t, "stasm_open_image not called", s.LastError())
}

func TestSearchPinned(t *testing.T) {
	s, eng := newTestSession()
	pins := Landmarks{{10, 20}, {0, 0}, {30, 40}}

	got, err := s.SearchPinned(pins, blankImage(t, 64, 64), "")
	require.NoError(t, err)
	require.Len(t, got, NLandmarks)
	require.Len(t, eng.pinnedIn, 2*NLandmarks)
	assert.Equal(t, []float32{10, 20, 0, 0, 30, 40, 0, 0}, eng.pinnedIn[:8])
	assert.Equal(t, Point{X: 11, Y: 21}, got[0])
}

func TestSearchPinnedRejectsOversizedSet(t *testing.T) {
	s, eng := newTestSession()
	_, err := s.SearchPinned(make(Landmarks, NLandmarks+1), blankImage(t, 8, 8), "")
	require.ErrorIs(t, err, ErrInvalidLandmarksShape)
	assert.Zero(t, eng.total())
}

func TestForcePointsIntoImage(t *testing.T) {
	s, _ := newTestSession()
	const w, h = 40, 30
	in := Landmarks{{-5, 3}, {12, 99}, {40, 30}, {39.5, 0}}
	orig := in.Clone()

	out, err := s.ForcePointsIntoImage(in, blankImage(t, w, h))
	require.NoError(t, err)
	assert.Equal(t, orig, in, "input must not be mutated")
	require.Len(t, out, len(in))
	for i, p := range out {
		assert.GreaterOrEqual(t, p.X, float32(0), "point %d", i)
		assert.Less(t, p.X, float32(w), "point %d", i)
		assert.GreaterOrEqual(t, p.Y, float32(0), "point %d", i)
		assert.Less(t, p.Y, float32(h), "point %d", i)
	}
}

func TestForcePointsIntoImageRejectsOversizedSet(t *testing.T) {
	s, eng := newTestSession()
	in := make(Landmarks, NLandmarks+3)
	for i := range in {
		in[i] = Point{X: 500, Y: 500}
	}

	out, err := s.ForcePointsIntoImage(in, blankImage(t, 10, 10))
	require.ErrorIs(t, err, ErrInvalidLandmarksShape)
	assert.Nil(t, out)
	assert.Zero(t, eng.total())

	out, err = s.ForcePointsIntoImage(in[:NLandmarks], blankImage(t, 10, 10))
	require.NoError(t, err)
	require.Len(t, out, NLandmarks)
	assert.Equal(t, Point{X: 9, Y: 9}, out[NLandmarks-1])
}

func TestForcePointsIntoImageValidation(t *testing.T) {
	s, eng := newTestSession()

	_, err := s.ForcePointsIntoImage(Landmarks{{nan32(), 1}}, blankImage(t, 4, 4))
	assert.ErrorIs(t, err, ErrInvalidLandmarks)

	_, err = s.ForcePointsIntoImage(Landmarks{{1, 1}}, nil)
	assert.ErrorIs(t, err, ErrInvalidImage)

	assert.Zero(t, eng.total())
}

func TestConvertShape(t *testing.T) {
	t.Run("shape17 accepts any length", func(t *testing.T) {
		for _, n := range []int{5, 17, NLandmarks, 90} {
			s, eng := newTestSession()
			eng.convert = func(pts []float32, format int) {
				for i := 0; i < 2*format; i++ {
					pts[i] = float32(i + 1)
				}
			}
			in, err := LandmarksFromFlat(shape(n))
			require.NoError(t, err)

			out, err := s.ConvertShape(in, Shape17)
			require.NoError(t, err, "n=%d", n)
			assert.Len(t, out, 17, "n=%d", n)
		}
	})

	t.Run("full formats need NLandmarks points", func(t *testing.T) {
		for _, f := range []Format{BioID, AR, XM2VTS, MUCT76} {
			s, eng := newTestSession()
			in, err := LandmarksFromFlat(shape(NLandmarks - 1))
			require.NoError(t, err)

			out, err := s.ConvertShape(in, f)
			require.NoError(t, err, f.String())
			assert.NotNil(t, out)
			assert.True(t, out.Empty(), f.String())
			assert.Zero(t, eng.calls["ConvertShape"])
		}
	})

	t.Run("full formats", func(t *testing.T) {
		for _, f := range []Format{BioID, AR, XM2VTS, MUCT76} {
			s, _ := newTestSession()
			in, err := LandmarksFromFlat(shape(NLandmarks))
			require.NoError(t, err)

			out, err := s.ConvertShape(in, f)
			require.NoError(t, err)
			require.Len(t, out, f.Points())
			assert.Equal(t, in[:f.Points()], out)
		}
	})

	t.Run("native cannot convert", func(t *testing.T) {
		s, eng := newTestSession()
		eng.convert = func(pts []float32, _ int) {
			for i := range pts {
				pts[i] = 0
			}
		}
		in, err := LandmarksFromFlat(shape(NLandmarks))
		require.NoError(t, err)

		out, err := s.ConvertShape(in, XM2VTS)
		require.NoError(t, err)
		assert.True(t, out.Empty())
	})

	t.Run("shape17 keeps an all-zero result", func(t *testing.T) {
		s, eng := newTestSession()
		eng.convert = func(pts []float32, _ int) {
			for i := range pts {
				pts[i] = 0
			}
		}
		out, err := s.ConvertShape(Landmarks{{3, 4}}, Shape17)
		require.NoError(t, err)
		require.Len(t, out, 17)
		assert.Equal(t, Point{}, out[0])
		assert.Equal(t, 1, eng.calls["ConvertShape"])
	})

	t.Run("unknown format", func(t *testing.T) {
		s, eng := newTestSession()
		_, err := s.ConvertShape(Landmarks{{1, 1}}, Format(42))
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Zero(t, eng.total())
	})

	t.Run("input untouched", func(t *testing.T) {
		s, eng := newTestSession()
		eng.convert = func(pts []float32, _ int) {
			for i := range pts {
				pts[i] = -pts[i]
			}
		}
		in, err := LandmarksFromFlat(shape(NLandmarks))
		require.NoError(t, err)
		orig := in.Clone()

		_, err = s.ConvertShape(in, MUCT76)
		require.NoError(t, err)
		assert.Equal(t, orig, in)
	})
}

func TestClosedSession(t *testing.T) {
	s, eng := newTestSession()
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Close(), ErrSessionClosed)

	assert.ErrorIs(t, s.Init("", false), ErrSessionClosed)
	assert.ErrorIs(t, s.OpenImage(blankImage(t, 4, 4), DefaultOpenOptions()), ErrSessionClosed)
	_, err := s.SearchNext()
	assert.ErrorIs(t, err, ErrSessionClosed)
	_, err = s.SearchSingle(blankImage(t, 4, 4), SingleOptions{})
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Zero(t, eng.total())
}

func TestDefaultSessionSurvivesClose(t *testing.T) {
	s := Default()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.NoError(t, s.check("SearchNext"))
	assert.Same(t, s, Default())
}

func TestDataDirFallback(t *testing.T) {
	t.Setenv(DataDirEnv, "")
	assert.Equal(t, "/explicit", Config{DataDir: "/explicit"}.dataDir())
	assert.Equal(t, DefaultDataDir, Config{}.dataDir())

	t.Setenv(DataDirEnv, "/from/env")
	assert.Equal(t, "/from/env", Config{}.dataDir())
}

func TestRemapError(t *testing.T) {
	assert.NoError(t, RemapError("Init", nil))

	err := RemapError("SearchNext", errors.New("boom"))
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "SearchNext", e.Op)
	assert.Equal(t, "stasm.SearchNext: boom", err.Error())
}
