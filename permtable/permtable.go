// Package permtable enumerates the k! index permutations of {0,…,k-1}
// for k ∈ [1,12], the search space DistanceMetric drives.
//
// Rather than materializing all k! rows up front — infeasible at k=12
// (479,001,600 rows) per spec.md §9 — permutations are unranked directly
// from their lexicographic index using the factorial number system. This
// reproduces exactly the sequence std::next_permutation would walk
// starting from the identity, so Row(k, i) is O(k²) and independent of
// any other row, which is what lets Stream hand out arbitrary contiguous
// chunks to a work-stealing pool without synchronizing a cursor.
package permtable

import (
	"errors"
	"sync"
)

// MaxK is the largest permutation size this package will enumerate;
// spec.md §4.3 refuses similarity pairs beyond this.
const MaxK = 12

// ErrSizeTooLarge indicates a request for k outside [1, MaxK].
var ErrSizeTooLarge = errors.New("permtable: k must be in [1,12]")

// factorials[k] = k!, precomputed once; 12! = 479,001,600 fits comfortably
// in int64.
var factorials = func() [MaxK + 1]int64 {
	var f [MaxK + 1]int64
	f[0] = 1
	for k := 1; k <= MaxK; k++ {
		f[k] = f[k-1] * int64(k)
	}

	return f
}()

// Count returns k!.
func Count(k int) (int64, error) {
	if k < 1 || k > MaxK {
		return 0, ErrSizeTooLarge
	}

	return factorials[k], nil
}

// Row returns the index-th permutation of {0,...,k-1} in lexicographic
// order (0-indexed), as produced by the factorial number system.
func Row(k int, index int64) ([]uint8, error) {
	if k < 1 || k > MaxK {
		return nil, ErrSizeTooLarge
	}
	if index < 0 || index >= factorials[k] {
		return nil, errors.New("permtable: index out of range")
	}

	return unrank(k, index), nil
}

// unrank decodes index into the corresponding permutation via the
// factorial number system: digit d_i (from the most significant) selects
// the d_i-th smallest element still available.
func unrank(k int, index int64) []uint8 {
	available := make([]uint8, k)
	for i := range available {
		available[i] = uint8(i)
	}
	perm := make([]uint8, k)
	remaining := index
	for i := 0; i < k; i++ {
		f := factorials[k-1-i]
		sel := int(remaining / f)
		remaining %= f
		perm[i] = available[sel]
		available = append(available[:sel], available[sel+1:]...)
	}

	return perm
}

// Flat materializes the full k!·k row-major buffer. Intended for small k
// (tests, k ≤ 8); callers driving the k=12 search space should use Stream
// instead.
func Flat(k int) ([]uint8, error) {
	count, err := Count(k)
	if err != nil {
		return nil, err
	}
	out := make([]uint8, count*int64(k))
	for i := int64(0); i < count; i++ {
		row := unrank(k, i)
		copy(out[i*int64(k):(i+1)*int64(k)], row)
	}

	return out, nil
}

// Stream walks permutations of size k with index in [start, stop),
// calling yield for each. Stream returns early (without error) if yield
// returns false. The walk begins by unranking start once, then advances
// with next-permutation, which is O(k) amortized per step rather than
// O(k²) — this is the fast path a worker chunk should use.
func Stream(k int, start, stop int64, yield func(index int64, perm []uint8) bool) error {
	count, err := Count(k)
	if err != nil {
		return err
	}
	if start < 0 || stop > count || start > stop {
		return errors.New("permtable: invalid [start,stop) range")
	}
	if start == stop {
		return nil
	}

	cur := unrank(k, start)
	for idx := start; idx < stop; idx++ {
		if !yield(idx, cur) {
			return nil
		}
		if idx+1 < stop {
			cur = nextPermutation(cur)
		}
	}

	return nil
}

// nextPermutation returns the lexicographic successor of p as a new slice,
// leaving p unchanged, using std::next_permutation's algorithm. p must already
// be a permutation of distinct values; behavior for the last permutation
// (strictly descending) is unused here since Stream never asks past stop.
func nextPermutation(p []uint8) []uint8 {
	n := len(p)
	out := make([]uint8, n)
	copy(out, p)

	i := n - 2
	for i >= 0 && out[i] >= out[i+1] {
		i--
	}
	if i < 0 {
		// Wrapped past the last permutation; reset to ascending order.
		for l, r := 0, n-1; l < r; l, r = l+1, r-1 {
			out[l], out[r] = out[r], out[l]
		}

		return out
	}

	j := n - 1
	for out[j] <= out[i] {
		j--
	}
	out[i], out[j] = out[j], out[i]

	for l, r := i+1, n-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}

	return out
}

// Table lazily caches full materializations per k for the process
// lifetime, matching spec.md §3's PermutationTable lifecycle: populated
// once, then read-only and shared across worker goroutines.
type Table struct {
	mu    sync.Mutex
	cache map[int][]uint8
}

// NewTable constructs an empty, ready-to-use Table.
func NewTable() *Table {
	return &Table{cache: make(map[int][]uint8)}
}

// Ensure idempotently materializes the flat buffer for k.
func (t *Table) Ensure(k int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.cache[k]; ok {
		return nil
	}
	flat, err := Flat(k)
	if err != nil {
		return err
	}
	t.cache[k] = flat

	return nil
}

// Count returns k!.
func (t *Table) Count(k int) (int64, error) {
	return Count(k)
}

// Row returns a copy of the index-th permutation of size k, materializing
// the table for k first if needed.
func (t *Table) Row(k int, index int64) ([]uint8, error) {
	if err := t.Ensure(k); err != nil {
		return nil, err
	}
	t.mu.Lock()
	flat := t.cache[k]
	t.mu.Unlock()
	if index < 0 || (index+1)*int64(k) > int64(len(flat)) {
		return nil, errors.New("permtable: index out of range")
	}
	row := make([]uint8, k)
	copy(row, flat[index*int64(k):(index+1)*int64(k)])

	return row, nil
}

// Flat returns the cached k!·k flat buffer for k, materializing it first
// if needed.
func (t *Table) Flat(k int) ([]uint8, error) {
	if err := t.Ensure(k); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cache[k], nil
}
