// Package environs builds the local neighbor-shell geometry shared by
// both analyses: the per-atom cutoff, the ascending neighbor id list, the
// reduced local distance matrix Dₐ, and the reduced local adjacency
// matrix Aₐ.
//
// Grounded on original_source/src/cna.cpp's calculate_cutoff and
// construct_adjancy_matrix, and original_source/src/similarity_analysis.cpp's
// calculate_cutoff/construct_distance_matrix, which are the same
// computation duplicated across two C++ translation units — here they
// are consolidated into one package both cna.Engine and
// similarity.Engine call, which is the Go-idiomatic fix for that
// duplication rather than a deliberate behavior change.
package environs

import (
	"math"
	"sort"

	"github.com/lvlath-contrib/cna/densemat"
	"github.com/lvlath-contrib/cna/state"
)

// minSamples is the number of smallest non-self distances the cutoff
// formula averages, per spec.md §4.2.
const minSamples = 6

// goldenRatioFactor is (1+√2)/2, the midpoint-of-shells constant spec.md
// §4.2 fixes for every structure.
const goldenRatioFactor = (1.0 + math.Sqrt2) / 2.0

// Cutoff computes cutoff(a) = mean(first 6 of sorted non-self distances)
// · (1+√2)/2, scanning atom a's row over the full [0, st.DistanceDim())
// range (the supercell when periodic). When fewer than 6 other positions
// exist, the sorted list is padded by repeating its last entry — the
// policy spec.md §4.2 and §9 recommend for the source's unguarded
// fixed-size read.
func Cutoff(st *state.State, atomID int) float64 {
	m := st.DistanceDim()
	dists := make([]float64, 0, m-1)
	for j := 0; j < m; j++ {
		if j == atomID {
			continue
		}
		dists = append(dists, st.Distance(atomID, j))
	}
	sort.Float64s(dists)

	for len(dists) < minSamples {
		if len(dists) == 0 {
			dists = append(dists, 0)

			continue
		}
		dists = append(dists, dists[len(dists)-1])
	}

	var sum float64
	for i := 0; i < minSamples; i++ {
		sum += dists[i]
	}

	return (sum / minSamples) * goldenRatioFactor
}

// Local is one atom's neighbor-shell geometry: the ascending neighbor id
// list (over the full supercell scan range), the local distance matrix Dₐ
// and the local adjacency matrix Aₐ.
type Local struct {
	AtomID      int
	Cutoff      float64
	NeighborIDs []int
	Distances   *densemat.Dense
	Adjacency   [][]bool
}

// Build computes the full local environment of atomID: neighbor set,
// reduced distance matrix, reduced adjacency matrix, all under the same
// cutoff.
func Build(st *state.State, atomID int) Local {
	cutoff := Cutoff(st, atomID)
	m := st.DistanceDim()

	var neighborIDs []int
	for j := 0; j < m; j++ {
		if j == atomID {
			continue
		}
		if st.Distance(atomID, j) < cutoff {
			neighborIDs = append(neighborIDs, j)
		}
	}

	k := len(neighborIDs)
	adjacency := make([][]bool, k)
	for i := range adjacency {
		adjacency[i] = make([]bool, k)
	}

	var dists *densemat.Dense
	if k > 0 {
		dists, _ = densemat.NewSquare(k)
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				d := st.Distance(neighborIDs[i], neighborIDs[j])
				dists.SetSymmetric(i, j, d)
				if d < cutoff {
					adjacency[i][j] = true
					adjacency[j][i] = true
				}
			}
		}
	}

	return Local{
		AtomID:      atomID,
		Cutoff:      cutoff,
		NeighborIDs: neighborIDs,
		Distances:   dists,
		Adjacency:   adjacency,
	}
}

