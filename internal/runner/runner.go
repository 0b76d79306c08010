// Package runner mirrors an input tree into an output tree, trimming every
// eligible file on a bounded pool of workers.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/abemedia/tokentrim"
	"github.com/abemedia/tokentrim/internal/logger"
)

// Options configures a Runner.
type Options struct {
	// Input and Output are the roots of the source and mirrored trees.
	Input  string
	Output string

	// Workers bounds how many files are processed at once. If 0,
	// runtime.NumCPU() is used instead.
	Workers int

	// Atomic writes outputs through a temporary file and a rename.
	Atomic bool
}

// Runner processes file trees with a trimmer.
type Runner struct {
	trimmer *tokentrim.Trimmer
	opts    Options
}

// New returns a Runner. The input and output roots are made absolute so the
// output tree can be recognized when it is nested inside the input tree.
func New(trimmer *tokentrim.Trimmer, opts Options) (*Runner, error) {
	if opts.Input == "" || opts.Output == "" {
		return nil, errors.New("input and output directories are required")
	}
	var err error
	if opts.Input, err = filepath.Abs(opts.Input); err != nil {
		return nil, err
	}
	if opts.Output, err = filepath.Abs(opts.Output); err != nil {
		return nil, err
	}
	if opts.Input == opts.Output {
		return nil, fmt.Errorf("output directory %s is the input directory", opts.Output)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Runner{trimmer: trimmer, opts: opts}, nil
}

// Input returns the absolute input root.
func (r *Runner) Input() string { return r.opts.Input }

// Run walks the input tree, recreates every directory in the output tree
// and processes every file. Per-file failures are logged and counted, never
// returned. When ctx is cancelled no further files are scheduled, files in
// flight finish, and the stats gathered so far are returned with ctx's
// error.
func (r *Runner) Run(ctx context.Context) (*Stats, error) {
	info, err := os.Stat(r.opts.Input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", r.opts.Input)
	}
	if err := os.MkdirAll(r.opts.Output, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	results := make(chan FileResult)
	stats := &Stats{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for res := range results {
			stats.Add(res)
			LogResult(res)
		}
	}()

	var g errgroup.Group
	sem := semaphore.NewWeighted(int64(r.opts.Workers))

	walkErr := filepath.WalkDir(r.opts.Input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && r.Skip(path) {
			return filepath.SkipDir
		}
		rel, err := filepath.Rel(r.opts.Input, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			return r.MirrorDir(rel)
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			logger.Debug("skipping special file", "path", rel)
			return nil
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		g.Go(func() error {
			defer sem.Release(1)
			results <- r.Process(rel)
			return nil
		})
		return nil
	})

	_ = g.Wait()
	close(results)
	<-done

	if walkErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(walkErr, ctxErr) {
			return stats, ctxErr
		}
		return stats, fmt.Errorf("failed to walk %s: %w", r.opts.Input, walkErr)
	}
	return stats, nil
}

// Skip reports whether path lies inside the output tree.
func (r *Runner) Skip(path string) bool {
	return path == r.opts.Output || strings.HasPrefix(path, r.opts.Output+string(filepath.Separator))
}

// MirrorDir creates the output counterpart of the input directory rel.
func (r *Runner) MirrorDir(rel string) error {
	mode := os.FileMode(0o755)
	if info, err := os.Stat(filepath.Join(r.opts.Input, rel)); err == nil {
		mode = info.Mode().Perm() | 0o700
	}
	return os.MkdirAll(filepath.Join(r.opts.Output, rel), mode)
}

// Process trims or copies the input file rel into the output tree. It runs
// the whole pipeline for the file synchronously.
func (r *Runner) Process(rel string) FileResult {
	src := filepath.Join(r.opts.Input, rel)
	dst := filepath.Join(r.opts.Output, rel)
	res := FileResult{Path: rel}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		res.Action, res.Err = Failed, err
		return res
	}

	if !r.trimmer.Config().Eligible(filepath.Ext(rel)) {
		res.Action = Copied
		if err := copyFile(src, dst, r.opts.Atomic); err != nil {
			res.Action, res.Err = Failed, err
		}
		return res
	}

	info, err := os.Stat(src)
	if err != nil {
		res.Action, res.Err = Failed, err
		return res
	}
	content, err := os.ReadFile(src)
	if err != nil {
		res.Action, res.Err = Failed, err
		return res
	}

	out, err := r.trimmer.Trim(tokentrim.NewDocument(rel, content))
	if err != nil {
		res.Action, res.Err = Fallback, err
		if err := copyFile(src, dst, r.opts.Atomic); err != nil {
			res.Action, res.Err = Failed, err
		}
		return res
	}

	if err := writeFile(dst, bytes.NewReader(out.Content), info.Mode().Perm(), r.opts.Atomic); err != nil {
		res.Action, res.Err = Failed, fmt.Errorf("failed to write %s: %w", dst, err)
		return res
	}

	res.Action = Optimized
	res.Dialect = out.Dialect
	res.Spans = out.Spans
	res.BlankLinesRemoved = out.BlankLinesRemoved
	res.WhitespaceRemoved = out.WhitespaceRemoved
	res.BytesSaved = out.BytesSaved
	return res
}

// LogResult logs the outcome of one file at a level matching its action.
func LogResult(res FileResult) {
	log := logger.With("path", res.Path)
	switch res.Action {
	case Optimized:
		log.Info("optimized", "dialect", res.Dialect, "spans", res.Spans, "bytes_saved", res.BytesSaved)
	case Copied:
		log.Info("copied")
	case Fallback:
		if errors.Is(res.Err, tokentrim.ErrUndecodable) {
			log.Warn("copied without trimming", "error", res.Err)
		} else {
			log.Error("copied without trimming", "error", res.Err)
		}
	default:
		log.Error("failed", "error", res.Err)
	}
}
