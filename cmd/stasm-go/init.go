package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:         "init",
	Short:       "Load the face detectors and report the data directory used",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipInit: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session.Init(conf.DataDir, conf.Trace); err != nil {
			return err
		}
		dir := conf.DataDir
		if dir == "" {
			dir = "default data directory"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "detectors loaded from %s\n", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
