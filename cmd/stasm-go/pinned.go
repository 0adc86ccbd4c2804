package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mjszczep/stasm-go/pkg/stasm"
	"github.com/mjszczep/stasm-go/pkg/stasm/gocvmat"
)

var pinsFile string

var pinnedCmd = &cobra.Command{
	Use:   "pinned IMAGE",
	Short: "Fit landmarks around pinned points, without face detection",
	Long: `pinned reads up to 77 "x y" lines from --pins, one per Stasm landmark in
Stasm order. A line of "0 0" leaves that landmark unpinned. Blank lines and
lines starting with # are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pins, err := readPins(pinsFile)
		if err != nil {
			return err
		}
		path := args[0]
		img, err := gocvmat.Read(path)
		if err != nil {
			return err
		}
		face, err := session.SearchPinned(pins, img, debugPath(path))
		if err != nil {
			return err
		}
		return printFaces(cmd.OutOrStdout(), path, faces(face))
	},
}

func init() {
	pinnedCmd.Flags().StringVar(&pinsFile, "pins", "", "File of pinned points, one \"x y\" pair per line")
	_ = pinnedCmd.MarkFlagRequired("pins")
	rootCmd.AddCommand(pinnedCmd)
}

func readPins(path string) (stasm.Landmarks, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]float32
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		row := make([]float32, len(fields))
		for i, s := range fields {
			v, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
			row[i] = float32(v)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	pins, err := stasm.LandmarksFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pins, nil
}
