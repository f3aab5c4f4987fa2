package main

import (
	"github.com/odvcencio/lineprogress/pkg/progress"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *appOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the recorded history as json, yaml or csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := progress.ParseFormat(format)
			if err != nil {
				return err
			}
			a, err := openApp(cmd, *opts)
			if err != nil {
				return err
			}
			return a.svc.Export(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: json, yaml or csv")
	return cmd
}
