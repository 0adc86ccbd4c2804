package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mjszczep/stasm-go/pkg/stasm"
	"github.com/mjszczep/stasm-go/pkg/stasm/gocvmat"
)

var batchAnnotateDir string

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".bmp": true, ".pgm": true, ".tif": true, ".tiff": true,
}

var batchCmd = &cobra.Command{
	Use:   "batch DIR",
	Short: "Run a single-face search over every image in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := listImages(args[0])
		if err != nil {
			return err
		}
		if batchAnnotateDir != "" {
			if err := os.MkdirAll(batchAnnotateDir, 0o755); err != nil {
				return err
			}
		}

		bar := progressbar.NewOptions(len(paths),
			progressbar.OptionSetDescription("Searching"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
		)

		// The native library is single-threaded, so images are processed
		// one after another.
		var withFace, failed int
		out := cmd.OutOrStdout()
		for _, path := range paths {
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			found, err := searchFile(path)
			_ = bar.Add(1)
			if err != nil {
				failed++
				logger.Sugar().Warnw("search failed", "image", path, "error", err)
				if errors.Is(err, stasm.ErrNotBuilt) {
					return err
				}
				continue
			}
			if len(found) > 0 {
				withFace++
			}
			if err := printFaces(out, path, found); err != nil {
				return err
			}
		}
		_ = bar.Finish()

		fmt.Fprintf(os.Stderr, "\n%d images, %d with a face, %d failed\n", len(paths), withFace, failed)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchAnnotateDir, "annotate", "", "Directory for copies of the images with landmarks drawn")
	rootCmd.AddCommand(batchCmd)
}

func searchFile(path string) ([]stasm.Landmarks, error) {
	img, err := gocvmat.Read(path)
	if err != nil {
		return nil, err
	}
	face, err := session.SearchSingle(img, stasm.SingleOptions{DebugPath: debugPath(path)})
	if err != nil {
		return nil, err
	}
	found := faces(face)
	if batchAnnotateDir != "" {
		dst := filepath.Join(batchAnnotateDir, filepath.Base(path))
		if err := gocvmat.Annotate(dst, img, found); err != nil {
			return nil, err
		}
	}
	return found, nil
}

// listImages returns the image files directly inside dir, sorted by name.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
