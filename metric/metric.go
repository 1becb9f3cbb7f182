// Package metric computes the permutation-invariant distance between two
// local interatomic distance matrices: the Frobenius norm of their
// difference, minimized by brute-force search over every permutation of
// the smaller matrix's rows/columns once it has been zero-padded to the
// size of the larger one.
//
// Grounded on original_source/src/similarity_analysis.cpp's
// calculate_distance_metric_single_thread / _openmp and analyze_single.
// The search itself is delegated to permtable, which streams permutations
// by direct unranking rather than materializing the factorial-size table
// the C++ PermutationGenerator holds in memory.
package metric

import (
	"context"
	"math"

	"github.com/lvlath-contrib/cna/densemat"
	"github.com/lvlath-contrib/cna/errs"
	"github.com/lvlath-contrib/cna/permtable"
)

// Skipped is the sentinel distance recorded for a pair whose padded size
// exceeds permtable.MaxK, matching the C++ convention of writing -1 into
// distance_metric_matrix for oversized pairs instead of aborting the run.
const Skipped = -1.0

// GPUKernel is the contract a hardware-accelerated permutation search
// must satisfy to stand in for the CPU search below. No implementation of
// this interface ships in this module; it exists so a future cgo/CUDA
// kernel can be wired in without touching callers, mirroring
// metric_analyzer_cuda.h's C ABI boundary in the original source.
type GPUKernel interface {
	// Evaluate returns one squared Frobenius distance between a and b
	// (both k×k) per permutation of {0,...,k-1} whose lexicographic index
	// lies in [start, stop), in index order; the permutation is applied to
	// b's rows and columns.
	Evaluate(ctx context.Context, k int, start, stop int64, a, b *densemat.Dense) ([]float64, error)
}

// Result is one pairwise distance computation's outcome.
type Result struct {
	Distance    float64
	Permutation []uint8
	Skipped     bool
}

// Distance computes the minimal Frobenius distance between a and b after
// zero-padding the smaller to K = max(a.Rows(), b.Rows()). When K exceeds
// permtable.MaxK, Result.Skipped is true and Distance is Skipped, matching
// spec.md §4.3's "refuse, don't abort" policy.
//
// Ties between permutations achieving the same minimal norm are broken by
// lowest lexicographic index, since the search walks indices ascending
// and only replaces the incumbent on a strict improvement.
func Distance(ctx context.Context, a, b *densemat.Dense, workers int) (Result, error) {
	const op = "metric.Distance"
	if a == nil || b == nil {
		return Result{}, errs.New(op, errs.InvalidState, errNilMatrix)
	}

	// Keep the larger matrix in a so the permutation acts on the smaller.
	if b.Rows() > a.Rows() {
		a, b = b, a
	}
	k := a.Rows()
	if k == 0 {
		return Result{Distance: 0, Permutation: nil}, nil
	}
	if k > permtable.MaxK {
		return Result{Distance: Skipped, Skipped: true}, nil
	}

	pa, err := a.PadSquare(k)
	if err != nil {
		return Result{}, errs.New(op, errs.InvalidState, err)
	}
	pb, err := b.PadSquare(k)
	if err != nil {
		return Result{}, errs.New(op, errs.InvalidState, err)
	}

	count, err := permtable.Count(k)
	if err != nil {
		return Result{}, errs.New(op, errs.Unsupported, err)
	}

	if workers < 1 {
		workers = 1
	}
	if int64(workers) > count {
		workers = int(count)
	}

	type partial struct {
		sqDist float64
		index  int64
		found  bool
	}
	results := make(chan partial, workers)
	chunk := (count + int64(workers) - 1) / int64(workers)

	for w := 0; w < workers; w++ {
		lo := int64(w) * chunk
		hi := lo + chunk
		if hi > count {
			hi = count
		}
		if lo >= hi {
			results <- partial{}
			continue
		}
		go func(lo, hi int64) {
			best := math.MaxFloat64
			var bestIdx int64
			found := false
			_ = permtable.Stream(k, lo, hi, func(idx int64, perm []uint8) bool {
				select {
				case <-ctx.Done():
					return false
				default:
				}
				sq := squaredNorm(pa, pb, perm)
				if sq < best {
					best = sq
					bestIdx = idx
					found = true
				}

				return true
			})
			results <- partial{sqDist: best, index: bestIdx, found: found}
		}(lo, hi)
	}

	best := math.MaxFloat64
	var bestIdx int64
	found := false
	for w := 0; w < workers; w++ {
		p := <-results
		if !p.found {
			continue
		}
		if p.sqDist < best || (p.sqDist == best && p.index < bestIdx) {
			best = p.sqDist
			bestIdx = p.index
			found = true
		}
	}
	if !found {
		return Result{}, errs.New(op, errs.InvalidState, errNoPermutation)
	}

	perm, err := permtable.Row(k, bestIdx)
	if err != nil {
		return Result{}, errs.New(op, errs.InvalidState, err)
	}

	return Result{Distance: math.Sqrt(best), Permutation: perm}, nil
}

// squaredNorm computes 2·Σ_{i<j} (a(i,j) - b(perm[i],perm[j]))², the same
// doubled-upper-triangle accumulation analyze_single performs, avoiding
// the extra factor-of-two pass over the lower triangle.
func squaredNorm(a, b *densemat.Dense, perm []uint8) float64 {
	n := len(perm)
	var sum float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := a.At(i, j) - b.At(int(perm[i]), int(perm[j]))
			sum += d * d
		}
	}

	return sum * 2.0
}

var errNilMatrix = plainError("metric: nil input matrix")
var errNoPermutation = plainError("metric: no permutation evaluated")

type plainError string

func (e plainError) Error() string { return string(e) }
