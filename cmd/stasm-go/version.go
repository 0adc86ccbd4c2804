package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mjszczep/stasm-go/pkg/stasm"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the binding and native library versions",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipInit: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "stasm-go:   %s\n", stasm.WrapperVersion())
		fmt.Fprintf(out, "stasm:      %s\n", stasm.LibraryVersion())
		fmt.Fprintf(out, "landmarks:  %d\n", stasm.NLandmarks)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
