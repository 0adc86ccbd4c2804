package stasm

import (
	"image"
	"math"
)

// NLandmarks is the number of points in a full Stasm shape.
const NLandmarks = 77

// Point is one landmark in image coordinates.
type Point struct {
	X, Y float32
}

// Image returns the point rounded to the nearest pixel.
func (p Point) Image() image.Point {
	return image.Pt(int(math.Round(float64(p.X))), int(math.Round(float64(p.Y))))
}

// Landmarks is an ordered set of facial landmarks. A search yields either
// NLandmarks points or an empty set meaning no face was found.
type Landmarks []Point

// Empty reports whether the set holds no points.
func (l Landmarks) Empty() bool { return len(l) == 0 }

// Clone returns an independent copy.
func (l Landmarks) Clone() Landmarks {
	if l == nil {
		return nil
	}
	out := make(Landmarks, len(l))
	copy(out, l)
	return out
}

// Flat returns the points as x0, y0, x1, y1, ...
func (l Landmarks) Flat() []float32 {
	out := make([]float32, 2*len(l))
	for i, p := range l {
		out[2*i] = p.X
		out[2*i+1] = p.Y
	}
	return out
}

// Rows returns the points as [x, y] rows.
func (l Landmarks) Rows() [][]float32 {
	out := make([][]float32, len(l))
	for i, p := range l {
		out[i] = []float32{p.X, p.Y}
	}
	return out
}

// Validate reports ErrInvalidLandmarks if any coordinate is NaN or infinite.
func (l Landmarks) Validate() error {
	return l.validate("Validate")
}

func (l Landmarks) validate(op string) error {
	for i, p := range l {
		if !finite(p.X) || !finite(p.Y) {
			return errorf(op, ErrInvalidLandmarks, "point %d is (%v, %v)", i, p.X, p.Y)
		}
	}
	return nil
}

func finite(f float32) bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// LandmarksFromFlat builds a set from x0, y0, x1, y1, ... The input must have
// even length.
func LandmarksFromFlat(v []float32) (Landmarks, error) {
	if len(v)%2 != 0 {
		return nil, errorf("LandmarksFromFlat", ErrInvalidLandmarksShape, "odd length %d", len(v))
	}
	return landmarksFromBuffer(v, len(v)/2), nil
}

// LandmarksFromRows builds a set from [x, y] rows.
func LandmarksFromRows(rows [][]float32) (Landmarks, error) {
	out := make(Landmarks, len(rows))
	for i, r := range rows {
		if len(r) != 2 {
			return nil, errorf("LandmarksFromRows", ErrInvalidLandmarksShape,
				"row %d has %d values, want 2", i, len(r))
		}
		out[i] = Point{X: r[0], Y: r[1]}
	}
	return out, nil
}

// landmarksFromBuffer copies the first n points out of a native buffer.
func landmarksFromBuffer(buf []float32, n int) Landmarks {
	out := make(Landmarks, n)
	for i := range out {
		out[i] = Point{X: buf[2*i], Y: buf[2*i+1]}
	}
	return out
}

// shapeBuffer returns l as a flat buffer padded with zeros to at least n
// points. The native side always walks a full shape.
func (l Landmarks) shapeBuffer(n int) []float32 {
	if len(l) > n {
		n = len(l)
	}
	buf := make([]float32, 2*n)
	for i, p := range l {
		buf[2*i] = p.X
		buf[2*i+1] = p.Y
	}
	return buf
}
