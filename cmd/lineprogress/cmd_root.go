package main

import (
	"fmt"

	"github.com/odvcencio/lineprogress/pkg/progress"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		initMode bool
		listMode bool
		listType string
		opts     appOptions
	)

	root := &cobra.Command{
		Use:   "lineprogress",
		Short: "Track content lines of .tex files across commits",
		Long: "lineprogress records how many content lines (non-blank, non-comment) each tracked\n" +
			"file has. Without flags it records the files staged for the next commit, which\n" +
			"makes it suitable as a git pre-commit hook.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}

			switch {
			case initMode:
				res, err := a.svc.Init(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "recorded baseline for %d file(s)\n", len(res.Files))
				return nil
			case listMode:
				lt, err := progress.ParseListType(listType)
				if err != nil {
					return err
				}
				return a.svc.List(cmd.Context(), cmd.OutOrStdout(), lt)
			default:
				res, err := a.svc.Record(cmd.Context())
				if err != nil {
					return err
				}
				a.log.Info("recorded", "files", len(res.Files), "skipped", len(res.Skipped))
				return nil
			}
		},
	}

	root.Flags().BoolVar(&initMode, "init", false, "record a baseline for every tracked file in the repository")
	root.Flags().BoolVar(&listMode, "list", false, "list the recorded history of every file")
	root.Flags().StringVar(&listType, "list-type", "s", "list type: (s)hort or (l)ong")
	root.MarkFlagsMutuallyExclusive("init", "list")

	root.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "run as if started in this directory")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newExportCmd(&opts))
	root.AddCommand(newInstallHookCmd(&opts))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "lineprogress "+version)
		},
	}
}

const version = "0.1.0-dev"
