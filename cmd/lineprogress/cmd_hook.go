package main

import (
	"fmt"

	"github.com/odvcencio/lineprogress/pkg/hook"
	"github.com/spf13/cobra"
)

func newInstallHookCmd(opts *appOptions) *cobra.Command {
	var (
		force bool
		bin   string
	)

	cmd := &cobra.Command{
		Use:   "install-hook",
		Short: "Install a git pre-commit hook that records progress on every commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, *opts)
			if err != nil {
				return err
			}
			path, err := hook.Install(a.metaDir, bin, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installed pre-commit hook at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace an existing pre-commit hook")
	cmd.Flags().StringVar(&bin, "bin", "lineprogress", "command the hook runs")
	return cmd
}
