package main

import (
	"log/slog"

	"github.com/odvcencio/lineprogress/pkg/config"
	"github.com/odvcencio/lineprogress/pkg/history"
	"github.com/odvcencio/lineprogress/pkg/linecount"
	"github.com/odvcencio/lineprogress/pkg/progress"
	"github.com/odvcencio/lineprogress/pkg/scan"
	"github.com/odvcencio/lineprogress/pkg/vcs"
	"github.com/spf13/cobra"
)

type appOptions struct {
	dir     string
	verbose bool
}

// app is the per-invocation wiring of a repository to its progress service.
type app struct {
	root    string
	metaDir string
	log     *slog.Logger
	svc     *progress.Service
}

func openApp(cmd *cobra.Command, opts appOptions) (*app, error) {
	git := vcs.NewGit(opts.dir)
	root, err := git.RepoRoot(cmd.Context())
	if err != nil {
		return nil, err
	}

	metaDir, err := git.MetaDir(cmd.Context())
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(metaDir)
	if err != nil {
		return nil, err
	}
	level := cfg.Level()
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := newLogger(cmd.ErrOrStderr(), level).With("repo", root)

	classifier := linecount.Classifier{CommentMarker: cfg.CommentMarker}
	store := history.New(metaDir)
	logger.Debug("opened repository", "store", store.Path(), "suffix", cfg.Suffix)

	svc := progress.New(progress.Options{
		Root:       root,
		VCS:        git,
		Store:      store,
		Scanner:    scan.New(cfg.Suffix),
		Classifier: &classifier,
		Logger:     logger,
	})
	return &app{root: root, metaDir: metaDir, log: logger, svc: svc}, nil
}
