// Package similarity computes the pairwise permutation-invariant distance
// between every two atoms' local interatomic distance environments.
//
// Grounded on original_source/src/similarity_analysis.cpp's
// SimilarityAnalysis::analyze: construct each atom's local distance
// matrix once, build the N(N-1)/2 job list, then run every job on a
// worker pool, recording -1 for any pair too large to search and the
// elapsed wall time per pair. The C++ OpenMP dynamic-schedule loop over
// a flat job vector is replaced here with an errgroup-driven pool pulling
// from the same flat job list, which gives the same work-stealing
// behavior without a hand-rolled atomic cursor.
package similarity

import (
	"context"
	"sync"
	"time"

	"github.com/lvlath-contrib/cna/densemat"
	"github.com/lvlath-contrib/cna/environs"
	"github.com/lvlath-contrib/cna/errs"
	"github.com/lvlath-contrib/cna/metric"
	"github.com/lvlath-contrib/cna/permtable"
	"github.com/lvlath-contrib/cna/runconfig"
	"github.com/lvlath-contrib/cna/state"

	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called after each pair completes with the number of
// pairs finished so far and the total pair count; calls are serialized
// and arrive in increasing order of done, letting a CLI render a
// progress bar without the engine importing a UI library.
type ProgressFunc func(done, total int)

// Result is the full N×N pairwise output of one Analyze call. Both
// matrices are symmetric with an undefined (zero) diagonal; Distance
// carries metric.Skipped for pairs whose padded size exceeds
// permtable.MaxK.
type Result struct {
	Distance *densemat.Dense
	SeconDur *densemat.Dense // elapsed wall-clock seconds per pair, symmetric
}

// Engine runs pairwise similarity analysis with a bounded worker pool.
type Engine struct {
	rc    runconfig.Options
	table *permtable.Table
}

// NewEngine constructs an Engine. Its permutation table is created empty
// and Analyze never populates or reads it: every pair search streams its
// permutations through metric.Distance instead.
func NewEngine(opts ...runconfig.Option) *Engine {
	return &Engine{rc: runconfig.New(opts...), table: permtable.NewTable()}
}

type job struct{ i, j int }

// Analyze computes pairwise distances for every atom pair in st's primary
// cell. progress, if non-nil, is invoked after each completed pair.
func (e *Engine) Analyze(ctx context.Context, st *state.State, progress ProgressFunc) (Result, error) {
	const op = "similarity.Analyze"
	if st == nil {
		return Result{}, errs.New(op, errs.InvalidState, errNilState)
	}

	n := st.NrAtoms()
	locals := make([]environs.Local, n)
	for i := 0; i < n; i++ {
		locals[i] = environs.Build(st, i)
	}

	jobs := make([]job, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			jobs = append(jobs, job{i, j})
		}
	}

	distOut, err := densemat.NewSquare(max(n, 1))
	if err != nil {
		return Result{}, errs.New(op, errs.InvalidState, err)
	}
	timeOut, err := densemat.NewSquare(max(n, 1))
	if err != nil {
		return Result{}, errs.New(op, errs.InvalidState, err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				distOut.Set(i, j, metric.Skipped)
				timeOut.Set(i, j, metric.Skipped)
			}
		}
	}

	workers := e.rc.Workers
	if workers < 1 {
		workers = 1
	}

	var progressMu sync.Mutex
	done := 0
	total := len(jobs)

	g, gctx := errgroup.WithContext(ctx)
	jobCh := make(chan job)
	g.Go(func() error {
		defer close(jobCh)
		for _, jb := range jobs {
			select {
			case jobCh <- jb:
			case <-gctx.Done():
				return gctx.Err()
			}
		}

		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for jb := range jobCh {
				start := time.Now()
				la, lb := locals[jb.i], locals[jb.j]
				d := metric.Skipped
				if la.Distances != nil && lb.Distances != nil {
					res, err := metric.Distance(gctx, la.Distances, lb.Distances, 1)
					if err != nil {
						return err
					}
					d = res.Distance
				} else if la.Distances == nil && lb.Distances == nil {
					d = 0
				}
				distOut.SetSymmetric(jb.i, jb.j, d)
				timeOut.SetSymmetric(jb.i, jb.j, elapsed(start))

				progressMu.Lock()
				done++
				if progress != nil {
					progress(done, total)
				}
				progressMu.Unlock()
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, errs.New(op, errs.InvalidState, err)
	}

	return Result{Distance: distOut, SeconDur: timeOut}, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}

	return b
}

func elapsed(start time.Time) float64 {
	return time.Since(start).Seconds()
}

var errNilState = plainError("similarity: nil state")

type plainError string

func (e plainError) Error() string { return string(e) }
