package main

import (
	"github.com/spf13/cobra"

	"github.com/mjszczep/stasm-go/internal/cliconfig"
	"github.com/mjszczep/stasm-go/pkg/stasm/gocvmat"
)

var (
	multiClamp    bool
	multiAnnotate string
)

var multiCmd = &cobra.Command{
	Use:   "multi IMAGE",
	Short: "Find the landmarks of every face in an image",
	Long: `multi opens the image once and steps the native search cursor until no
further face is found. Without --multiface the library stops after the first
face. --minwidth ignores faces narrower than a percentage of the image width.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		img, err := gocvmat.Read(path)
		if err != nil {
			return err
		}
		opts := conf.Open()
		opts.DebugPath = debugPath(path)
		if err := session.OpenImage(img, opts); err != nil {
			return err
		}
		found, err := session.SearchAll()
		if err != nil {
			return err
		}
		logger.Sugar().Infow("search finished", "image", path, "faces", len(found))

		if multiClamp {
			if found, err = clampAll(img, found); err != nil {
				return err
			}
		}
		if multiAnnotate != "" {
			if err := gocvmat.Annotate(multiAnnotate, img, found); err != nil {
				return err
			}
		}
		return printFaces(cmd.OutOrStdout(), path, found)
	},
}

func init() {
	f := multiCmd.Flags()
	f.Bool(cliconfig.KeyMultiFace, false, "Allow more than one face")
	f.Int(cliconfig.KeyMinWidth, 10, "Minimum face width as a percentage of the image width (1-100)")
	f.BoolVar(&multiClamp, "clamp", false, "Force landmarks into the image bounds")
	f.StringVar(&multiAnnotate, "annotate", "", "Write a copy of the image with landmarks drawn to this path")
	_ = v.BindPFlag(cliconfig.KeyMultiFace, f.Lookup(cliconfig.KeyMultiFace))
	_ = v.BindPFlag(cliconfig.KeyMinWidth, f.Lookup(cliconfig.KeyMinWidth))
	rootCmd.AddCommand(multiCmd)
}
