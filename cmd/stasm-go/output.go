package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mjszczep/stasm-go/pkg/stasm"
)

type faceReport struct {
	Image string        `json:"image"`
	Faces [][][]float32 `json:"faces"`
}

// faces wraps a single search result; an empty set means no face.
func faces(l stasm.Landmarks) []stasm.Landmarks {
	if l.Empty() {
		return nil
	}
	return []stasm.Landmarks{l}
}

func printFaces(w io.Writer, source string, found []stasm.Landmarks) error {
	if outputJSON {
		report := faceReport{Image: source, Faces: make([][][]float32, 0, len(found))}
		for _, f := range found {
			report.Faces = append(report.Faces, f.Rows())
		}
		enc := json.NewEncoder(w)
		return enc.Encode(report)
	}

	if _, err := fmt.Fprintf(w, "# %s: %d face(s)\n", source, len(found)); err != nil {
		return err
	}
	for i, f := range found {
		fmt.Fprintf(w, "face %d\n", i)
		for j, p := range f {
			fmt.Fprintf(w, "%3d %8.2f %8.2f\n", j, p.X, p.Y)
		}
	}
	return nil
}

// clampAll forces every face into img's bounds.
func clampAll(img *stasm.Image, found []stasm.Landmarks) ([]stasm.Landmarks, error) {
	out := make([]stasm.Landmarks, 0, len(found))
	for _, f := range found {
		c, err := session.ForcePointsIntoImage(f, img)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
