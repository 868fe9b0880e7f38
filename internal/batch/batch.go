// Package batch compares every screenshot in one folder against the
// same-named screenshot in another.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"formdiff/internal/compare"
	"formdiff/internal/imageio"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Pair is one screenshot present in both folders.
type Pair struct {
	Name  string
	PathA string
	PathB string
}

// PairFolders lists the screenshots of dirA that have a same-named file in
// dirB, sorted by name. Names found only in dirA are returned as missing.
// Files only in dirB are ignored.
func PairFolders(dirA, dirB string) (pairs []Pair, missing []string, err error) {
	entries, err := os.ReadDir(dirA)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read folder: %w", err)
	}
	if info, err := os.Stat(dirB); err != nil {
		return nil, nil, fmt.Errorf("failed to read folder: %w", err)
	} else if !info.IsDir() {
		return nil, nil, fmt.Errorf("not a folder: %s", dirB)
	}

	// os.ReadDir returns entries sorted by filename
	for _, e := range entries {
		if e.IsDir() || !imageio.IsImageFile(e.Name()) {
			continue
		}
		pathB := filepath.Join(dirB, e.Name())
		if info, err := os.Stat(pathB); err != nil || info.IsDir() {
			missing = append(missing, e.Name())
			continue
		}
		pairs = append(pairs, Pair{
			Name:  e.Name(),
			PathA: filepath.Join(dirA, e.Name()),
			PathB: pathB,
		})
	}
	return pairs, missing, nil
}

// Failure records a pair that could not be compared.
type Failure struct {
	Name string
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Name, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report is the outcome of one batch run.
type Report struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	FolderA  string
	FolderB  string

	Results  []compare.Result // Sorted by image name
	Failures []Failure
	Missing  []string // Names in FolderA without a counterpart in FolderB
}

// Passed returns the number of pairs that matched overall.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.OverallMatch {
			n++
		}
	}
	return n
}

// Failed returns the number of compared pairs that did not match.
func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// Factory creates the comparator owned by one worker, plus a function
// releasing its resources. OCR clients are not goroutine-safe, so every
// worker gets its own.
type Factory func() (*compare.Comparator, func(), error)

// Runner compares folders with a bounded number of workers.
type Runner struct {
	factory Factory
	workers int
}

// NewRunner creates a runner. workers <= 0 uses one worker per CPU.
func NewRunner(factory Factory, workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{factory: factory, workers: workers}
}

// Run compares every pair from PairFolders(dirA, dirB). A pair that fails
// does not stop the run; it is recorded in Report.Failures. Cancelling ctx
// stops scheduling new pairs and returns the partial report with ctx's error.
func (r *Runner) Run(ctx context.Context, dirA, dirB string) (*Report, error) {
	report := &Report{
		RunID:   uuid.New().String(),
		Started: time.Now(),
		FolderA: dirA,
		FolderB: dirB,
	}
	defer func() { report.Duration = time.Since(report.Started) }()

	pairs, missing, err := PairFolders(dirA, dirB)
	if err != nil {
		return nil, err
	}
	report.Missing = missing
	if len(pairs) == 0 {
		return report, nil
	}

	workers := min(r.workers, len(pairs))
	pool := make(chan *compare.Comparator, workers)
	var closers []func()
	defer func() {
		for _, c := range closers {
			c()
		}
	}()
	for i := 0; i < workers; i++ {
		c, closeFn, err := r.factory()
		if err != nil {
			return nil, fmt.Errorf("failed to create comparator: %w", err)
		}
		pool <- c
		if closeFn != nil {
			closers = append(closers, closeFn)
		}
	}

	results := make([]*compare.Result, len(pairs))
	failures := make([]error, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range pairs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c := <-pool
			defer func() { pool <- c }()

			res, err := c.Compare(p.PathA, p.PathB)
			if err != nil {
				failures[i] = err
				return nil
			}
			results[i] = &res
			return nil
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	for i, p := range pairs {
		switch {
		case results[i] != nil:
			report.Results = append(report.Results, *results[i])
		case failures[i] != nil:
			report.Failures = append(report.Failures, Failure{Name: p.Name, Err: failures[i]})
		}
	}

	if err != nil {
		return report, fmt.Errorf("batch interrupted: %w", err)
	}
	return report, nil
}

// IsUnreadable reports whether a failure was caused by an image that could
// not be decoded.
func IsUnreadable(f Failure) bool {
	return errors.Is(f, imageio.ErrUnreadable)
}
