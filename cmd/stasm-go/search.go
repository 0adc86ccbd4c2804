package main

import (
	"github.com/spf13/cobra"

	"github.com/mjszczep/stasm-go/pkg/stasm"
	"github.com/mjszczep/stasm-go/pkg/stasm/gocvmat"
)

var (
	searchClamp    bool
	searchAnnotate string
)

var searchCmd = &cobra.Command{
	Use:   "search IMAGE",
	Short: "Find the landmarks of a single face",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		img, err := gocvmat.Read(path)
		if err != nil {
			return err
		}
		face, err := session.SearchSingle(img, stasm.SingleOptions{DebugPath: debugPath(path)})
		if err != nil {
			return err
		}
		found := faces(face)
		if searchClamp {
			if found, err = clampAll(img, found); err != nil {
				return err
			}
		}
		if searchAnnotate != "" {
			if err := gocvmat.Annotate(searchAnnotate, img, found); err != nil {
				return err
			}
		}
		return printFaces(cmd.OutOrStdout(), path, found)
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchClamp, "clamp", false, "Force landmarks into the image bounds")
	searchCmd.Flags().StringVar(&searchAnnotate, "annotate", "", "Write a copy of the image with landmarks drawn to this path")
	rootCmd.AddCommand(searchCmd)
}
