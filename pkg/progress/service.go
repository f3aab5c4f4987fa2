// Package progress records and reports the content-line history of the
// tracked files in a repository.
package progress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/odvcencio/lineprogress/pkg/history"
	"github.com/odvcencio/lineprogress/pkg/linecount"
	"github.com/odvcencio/lineprogress/pkg/scan"
	"github.com/odvcencio/lineprogress/pkg/vcs"
)

// Store is the persistence the service needs. *history.Store implements it.
type Store interface {
	AppendBatch(ctx context.Context, entries []history.Entry) error
	ReadAll(ctx context.Context) ([]history.FileHistory, error)
}

// Scanner selects tracked files. scan.Scanner implements it.
type Scanner interface {
	ListAll(root string) ([]string, error)
	Filter(paths []string) []string
}

// Options configures a Service. Root and VCS are required; the rest default
// to the built-in rules, a history store in Root/.git, time.Now and a
// discarding logger.
type Options struct {
	Root       string
	VCS        vcs.Client
	Store      Store
	Scanner    Scanner
	Classifier *linecount.Classifier
	Now        func() time.Time
	Logger     *slog.Logger
}

// Service runs the init, record and list operations for one repository.
type Service struct {
	root       string
	vcs        vcs.Client
	store      Store
	scanner    Scanner
	classifier linecount.Classifier
	now        func() time.Time
	log        *slog.Logger
}

// FileCount is the content-line count captured for one file.
type FileCount struct {
	Path  string
	Count int
}

// Result describes what an Init or Record call wrote. Files is empty when
// nothing was written.
type Result struct {
	Time    time.Time
	Files   []FileCount
	Skipped []string
}

// New builds a Service from opts.
func New(opts Options) *Service {
	s := &Service{
		root:       opts.Root,
		vcs:        opts.VCS,
		store:      opts.Store,
		scanner:    opts.Scanner,
		classifier: linecount.Default(),
		now:        opts.Now,
		log:        opts.Logger,
	}
	if opts.Classifier != nil {
		s.classifier = *opts.Classifier
	}
	if s.store == nil {
		s.store = history.New(filepath.Join(opts.Root, ".git"))
	}
	if s.scanner == nil {
		s.scanner = scan.New("")
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Init records a baseline snapshot for every tracked file in the working
// tree. All snapshots share one timestamp. If any file cannot be read nothing
// is written.
func (s *Service) Init(ctx context.Context) (Result, error) {
	files, err := s.scanner.ListAll(s.root)
	if err != nil {
		return Result{}, fmt.Errorf("init: %w", err)
	}

	now := s.now()
	res := Result{Time: now}
	entries := make([]history.Entry, 0, len(files))
	for _, f := range files {
		n, err := s.classifier.CountFile(s.abs(f))
		if err != nil {
			return Result{}, fmt.Errorf("init: %w", err)
		}
		entries = append(entries, history.Entry{Path: f, Snapshot: history.Snapshot{Time: now, Count: n}})
		res.Files = append(res.Files, FileCount{Path: f, Count: n})
	}

	if len(entries) == 0 {
		s.log.Info("no tracked files found", "root", s.root)
		return res, nil
	}
	if err := s.store.AppendBatch(ctx, entries); err != nil {
		return Result{}, fmt.Errorf("init: %w", err)
	}
	s.log.Debug("baseline recorded", "files", len(entries))
	return res, nil
}

// Record appends a snapshot for every tracked file in the pending change.
// Files that cannot be read are skipped and reported in Result.Skipped. When
// no tracked file changed the store is not touched.
func (s *Service) Record(ctx context.Context) (Result, error) {
	changed, err := s.vcs.ChangedFiles(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("record: %w", err)
	}

	files := s.scanner.Filter(changed)
	if len(files) == 0 {
		s.log.Debug("no tracked files in pending change", "changed", len(changed))
		return Result{}, nil
	}

	now := s.now()
	res := Result{Time: now}
	entries := make([]history.Entry, 0, len(files))
	for _, f := range files {
		n, err := s.classifier.CountFile(s.abs(f))
		if errors.Is(err, linecount.ErrFileUnreadable) {
			s.log.Warn("skipping unreadable file", "path", f, "err", err)
			res.Skipped = append(res.Skipped, f)
			continue
		}
		if err != nil {
			return Result{}, fmt.Errorf("record: %w", err)
		}
		entries = append(entries, history.Entry{Path: f, Snapshot: history.Snapshot{Time: now, Count: n}})
		res.Files = append(res.Files, FileCount{Path: f, Count: n})
	}

	if len(entries) == 0 {
		return res, nil
	}
	if err := s.store.AppendBatch(ctx, entries); err != nil {
		return Result{}, fmt.Errorf("record: %w", err)
	}
	s.log.Debug("progress recorded", "files", len(entries), "skipped", len(res.Skipped))
	return res, nil
}

// List writes every stored history to w in the given form.
func (s *Service) List(ctx context.Context, w io.Writer, lt ListType) error {
	all, err := s.store.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return Render(w, all, lt)
}

// Export writes every stored history to w in a machine-readable format.
func (s *Service) Export(ctx context.Context, w io.Writer, f Format) error {
	all, err := s.store.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return Encode(w, all, f)
}

func (s *Service) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}
