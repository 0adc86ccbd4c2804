package stasm

import "fmt"

// Format selects an external landmark convention for ConvertShape. The value
// is the point count of the target convention.
type Format int

const (
	Shape17 Format = 17 // 17-point subset; accepts input of any length
	BioID   Format = 20 // BioID 20-point layout
	AR      Format = 22 // AR face database 22-point layout
	XM2VTS  Format = 68 // XM2VTS 68-point layout
	MUCT76  Format = 76 // MUCT / Stasm 3 76-point layout
)

// Formats lists every supported Format.
var Formats = []Format{Shape17, BioID, AR, XM2VTS, MUCT76}

// Points returns the number of points in the converted shape.
func (f Format) Points() int { return int(f) }

// RequiresFullShape reports whether the input must have exactly NLandmarks
// points. Conversion of any other length yields an empty result.
func (f Format) RequiresFullShape() bool { return f != Shape17 }

// Valid reports whether f is a supported Format.
func (f Format) Valid() bool {
	switch f {
	case Shape17, BioID, AR, XM2VTS, MUCT76:
		return true
	}
	return false
}

func (f Format) String() string {
	switch f {
	case Shape17:
		return "SHAPE17"
	case BioID:
		return "BIOID"
	case AR:
		return "AR"
	case XM2VTS:
		return "XM2VTS"
	case MUCT76:
		return "MUCT76"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat accepts a format name (case-sensitive, as printed by String).
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, errorf("ParseFormat", ErrInvalidArgument, "unknown format %q", name)
}
