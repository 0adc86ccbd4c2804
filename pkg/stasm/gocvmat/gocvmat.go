package gocvmat

import (
	"errors"
	"fmt"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/mjszczep/stasm-go/pkg/stasm"
)

// ErrRead is returned when OpenCV cannot decode an image file.
var ErrRead = errors.New("gocvmat: cannot read image")

// FromMat copies an 8-bit single-channel mat into a stasm.Image.
func FromMat(m gocv.Mat) (*stasm.Image, error) {
	if m.Empty() {
		return nil, fmt.Errorf("gocvmat: %w: empty mat", stasm.ErrInvalidImage)
	}
	if ch := m.Channels(); ch != 1 {
		return nil, fmt.Errorf("gocvmat: %w: mat has %d channels", stasm.ErrInvalidImageShape, ch)
	}
	if m.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("gocvmat: %w: mat type %v is not 8-bit", stasm.ErrInvalidImage, m.Type())
	}

	src := m
	if !m.IsContinuous() {
		src = m.Clone()
		defer src.Close()
	}
	return stasm.NewImage(src.ToBytes(), src.Cols(), src.Rows())
}

// ToMat copies img into a new CV_8UC1 mat. The caller owns the result and
// must Close it.
func ToMat(img *stasm.Image) (gocv.Mat, error) {
	if err := img.Validate(); err != nil {
		return gocv.Mat{}, fmt.Errorf("gocvmat: %w", err)
	}
	g := img.Gray()
	m, err := gocv.NewMatFromBytes(img.Height, img.Width, gocv.MatTypeCV8UC1, g.Pix)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("gocvmat: %w", err)
	}
	defer m.Close()
	// The mat may share g.Pix; the clone owns its samples.
	return m.Clone(), nil
}

// Read decodes an image file as grayscale.
func Read(path string) (*stasm.Image, error) {
	m := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer m.Close()
	if m.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrRead, path)
	}
	return FromMat(m)
}

// DrawLandmarks draws a filled circle at every landmark.
func DrawLandmarks(m *gocv.Mat, l stasm.Landmarks, c color.RGBA, radius int) {
	for _, p := range l {
		gocv.Circle(m, p.Image(), radius, c, -1)
	}
}

// Annotate writes img to path as a colour image with the landmarks of every
// face drawn on it.
func Annotate(path string, img *stasm.Image, faces []stasm.Landmarks) error {
	gray, err := ToMat(img)
	if err != nil {
		return err
	}
	defer gray.Close()

	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(gray, &bgr, gocv.ColorGrayToBGR)

	for _, face := range faces {
		DrawLandmarks(&bgr, face, color.RGBA{G: 255, A: 255}, 2)
	}
	if !gocv.IMWrite(path, bgr) {
		return fmt.Errorf("gocvmat: cannot write %s", path)
	}
	return nil
}
