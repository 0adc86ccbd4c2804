package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mjszczep/stasm-go/pkg/stasm"
	"github.com/mjszczep/stasm-go/pkg/stasm/gocvmat"
)

var convertFormat string

var convertCmd = &cobra.Command{
	Use:   "convert IMAGE",
	Short: "Find a face and print its landmarks in another convention",
	Long: `convert runs a single-face search and remaps the 77 Stasm landmarks to
--format: SHAPE17, BIOID, AR, XM2VTS or MUCT76 (or the numeric code).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(convertFormat)
		if err != nil {
			return err
		}
		path := args[0]
		img, err := gocvmat.Read(path)
		if err != nil {
			return err
		}
		face, err := session.SearchSingle(img, stasm.SingleOptions{DebugPath: debugPath(path)})
		if err != nil {
			return err
		}
		if face.Empty() {
			return printFaces(cmd.OutOrStdout(), path, nil)
		}
		converted, err := session.ConvertShape(face, format)
		if err != nil {
			return err
		}
		if converted.Empty() {
			return fmt.Errorf("%s: shape cannot be converted to %s", path, format)
		}
		return printFaces(cmd.OutOrStdout(), path, faces(converted))
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertFormat, "format", stasm.Shape17.String(), "Target landmark convention")
	rootCmd.AddCommand(convertCmd)
}

func parseFormat(s string) (stasm.Format, error) {
	if n, err := strconv.Atoi(s); err == nil {
		f := stasm.Format(n)
		if !f.Valid() {
			return 0, fmt.Errorf("format %d: %w", n, stasm.ErrInvalidArgument)
		}
		return f, nil
	}
	return stasm.ParseFormat(s)
}
