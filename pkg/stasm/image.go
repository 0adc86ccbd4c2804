package stasm

import (
	"image"
	"image/draw"
	"math"
)

// Image is a grayscale image: Height rows of Width 8-bit samples, row-major.
// Row y starts at Pix[y*Stride]. A zero Stride means Width.
type Image struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
}

// NewImage wraps pix as a width x height image. pix is not copied.
func NewImage(pix []byte, width, height int) (*Image, error) {
	img := &Image{Pix: pix, Width: width, Height: height, Stride: width}
	if err := img.validate("NewImage"); err != nil {
		return nil, err
	}
	if len(pix) != width*height {
		return nil, errorf("NewImage", ErrInvalidImageShape,
			"%d samples for a %dx%d image", len(pix), width, height)
	}
	return img, nil
}

// ImageFromRows copies a rectangular grid of samples into a new Image.
func ImageFromRows(rows [][]byte) (*Image, error) {
	if rows == nil {
		return nil, errorf("ImageFromRows", ErrInvalidImage, "nil rows")
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errorf("ImageFromRows", ErrInvalidImageShape, "empty grid")
	}
	width := len(rows[0])
	pix := make([]byte, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, errorf("ImageFromRows", ErrInvalidImageShape,
				"row %d has %d samples, want %d", y, len(row), width)
		}
		pix = append(pix, row...)
	}
	return &Image{Pix: pix, Width: width, Height: len(rows), Stride: width}, nil
}

// ImageFromGo converts a single-channel image.Image. *image.Gray is shared
// without copying; *image.Gray16 keeps the high byte of each sample. Colour
// images are rejected with ErrInvalidImageShape; convert them with ToGray
// first.
func ImageFromGo(src image.Image) (*Image, error) {
	switch m := src.(type) {
	case nil:
		return nil, errorf("ImageFromGo", ErrInvalidImage, "nil image")
	case *image.Gray:
		if m == nil {
			return nil, errorf("ImageFromGo", ErrInvalidImage, "nil image")
		}
		b := m.Rect
		if b.Empty() {
			return nil, errorf("ImageFromGo", ErrInvalidImageShape, "empty bounds %v", b)
		}
		return &Image{
			Pix:    m.Pix[m.PixOffset(b.Min.X, b.Min.Y):],
			Width:  b.Dx(),
			Height: b.Dy(),
			Stride: m.Stride,
		}, nil
	case *image.Gray16:
		if m == nil {
			return nil, errorf("ImageFromGo", ErrInvalidImage, "nil image")
		}
		b := m.Rect
		if b.Empty() {
			return nil, errorf("ImageFromGo", ErrInvalidImageShape, "empty bounds %v", b)
		}
		w, h := b.Dx(), b.Dy()
		pix := make([]byte, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				pix[y*w+x] = m.Pix[m.PixOffset(b.Min.X+x, b.Min.Y+y)]
			}
		}
		return &Image{Pix: pix, Width: w, Height: h, Stride: w}, nil
	default:
		return nil, errorf("ImageFromGo", ErrInvalidImageShape,
			"%T is not single-channel", src)
	}
}

// ToGray converts any image to *image.Gray using the standard luma weights.
func ToGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	b := src.Bounds()
	dst := image.NewGray(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

func (img *Image) stride() int {
	if img.Stride == 0 {
		return img.Width
	}
	return img.Stride
}

// Validate reports ErrInvalidImage or ErrInvalidImageShape when img cannot
// be handed to the native library.
func (img *Image) Validate() error {
	return img.validate("Validate")
}

// validate checks rank and element type before anything crosses into C.
func (img *Image) validate(op string) error {
	if img == nil || img.Pix == nil {
		return errorf(op, ErrInvalidImage, "no pixel data")
	}
	if img.Width <= 0 || img.Height <= 0 {
		return errorf(op, ErrInvalidImageShape, "dimensions %dx%d", img.Width, img.Height)
	}
	if img.Width > math.MaxInt32 || img.Height > math.MaxInt32 {
		return errorf(op, ErrInvalidImageShape, "dimensions %dx%d overflow a C int", img.Width, img.Height)
	}
	stride := img.stride()
	if stride < img.Width {
		return errorf(op, ErrInvalidImageShape, "stride %d shorter than width %d", stride, img.Width)
	}
	if need := (img.Height-1)*stride + img.Width; len(img.Pix) < need {
		return errorf(op, ErrInvalidImageShape,
			"%d samples for a %dx%d image with stride %d", len(img.Pix), img.Width, img.Height, stride)
	}
	return nil
}

// packed returns the samples as one contiguous Width*Height buffer. The
// result aliases Pix when no repacking is needed.
func (img *Image) packed() []byte {
	n := img.Width * img.Height
	stride := img.stride()
	if stride == img.Width {
		return img.Pix[:n]
	}
	out := make([]byte, n)
	for y := 0; y < img.Height; y++ {
		copy(out[y*img.Width:(y+1)*img.Width], img.Pix[y*stride:])
	}
	return out
}

// Bounds returns the image rectangle anchored at the origin.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// Gray returns a copy of the image as *image.Gray.
func (img *Image) Gray() *image.Gray {
	g := image.NewGray(img.Bounds())
	copy(g.Pix, img.packed())
	return g
}
