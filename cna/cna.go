// Package cna implements Common Neighbor Analysis: per-atom cutoff,
// neighbor shell, reduced adjacency matrix, per-neighbor (n,e,p) triplets,
// and the canonical fingerprint string assembled from them.
//
// Grounded on original_source/src/cna.cpp's CNA::analyze /
// calculate_fingerprint / calculate_fingerprint_from_adjacency_matrix,
// parallelized the same way (one goroutine group over atom indices,
// each atom's fingerprint independent of every other's) as the
// original's #pragma omp parallel for loop over atoms is replaced with a
// goroutine-per-shard fill, mirroring state.buildDistances.
package cna

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lvlath-contrib/cna/cnatriplet"
	"github.com/lvlath-contrib/cna/environs"
	"github.com/lvlath-contrib/cna/errs"
	"github.com/lvlath-contrib/cna/pattern"
	"github.com/lvlath-contrib/cna/runconfig"
	"github.com/lvlath-contrib/cna/state"
)

// Result holds the per-atom output of one Analyze call, indexed by primary
// cell atom id.
type Result struct {
	Fingerprints []string
	Adjacency    [][][]bool
	NeighborIDs  [][]int
}

// Engine runs Common Neighbor Analysis against a pattern library used only
// to label the result when producing a report; Analyze itself never
// consults the library; it returns raw fingerprints for the caller (or
// the report package) to resolve.
type Engine struct {
	rc runconfig.Options
}

// NewEngine constructs an Engine with the given run options.
func NewEngine(opts ...runconfig.Option) *Engine {
	return &Engine{rc: runconfig.New(opts...)}
}

// Analyze computes the fingerprint, reduced adjacency matrix, and neighbor
// id list for every atom in the primary cell of st.
func (e *Engine) Analyze(st *state.State) (Result, error) {
	const op = "cna.Analyze"
	if st == nil {
		return Result{}, errs.New(op, errs.InvalidState, fmt.Errorf("nil state"))
	}

	n := st.NrAtoms()
	res := Result{
		Fingerprints: make([]string, n),
		Adjacency:    make([][][]bool, n),
		NeighborIDs:  make([][]int, n),
	}

	workers := e.rc.Workers
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				local := environs.Build(st, i)
				res.NeighborIDs[i] = local.NeighborIDs
				res.Adjacency[i] = local.Adjacency
				res.Fingerprints[i] = FingerprintFromAdjacency(local.Adjacency)
			}
		}(lo, hi)
	}
	wg.Wait()

	return res, nil
}

// FingerprintFromAdjacency computes the canonical fingerprint string of a
// reduced adjacency matrix: every neighbor's (n,e,p) triplet is computed,
// identical triplets are counted, and the groups are emitted as
// "<count><triplet>" concatenated in descending lexicographic order of the
// triplet string — exactly the order a C++ std::map<std::string, int,
// std::greater<std::string>> iterates.
func FingerprintFromAdjacency(adjacency [][]bool) string {
	k := len(adjacency)
	counts := make(map[string]int, k)
	order := make([]string, 0, k)
	for i := 0; i < k; i++ {
		s := cnatriplet.Compute(adjacency, i).String()
		if _, ok := counts[s]; !ok {
			order = append(order, s)
		}
		counts[s]++
	}

	sort.Sort(sort.Reverse(sort.StringSlice(order)))

	var b strings.Builder
	for _, s := range order {
		fmt.Fprintf(&b, "%d%s", counts[s], s)
	}

	return b.String()
}

// Label resolves fingerprint against lib, falling back to the library's
// mandatory unknown entry when no pattern matches.
func Label(lib pattern.Library, fingerprint string) pattern.Pattern {
	if p, ok := lib.Lookup(fingerprint); ok {
		return p
	}

	return lib.Unknown()
}
