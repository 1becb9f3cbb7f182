// Package cnatriplet computes the per-neighbor (n,e,p) triplet CNA's
// fingerprint assembly groups and counts: the neighbor-induced degree,
// the edge count among those neighbors, and the longest shortest path
// between them.
//
// Grounded on original_source/src/cna_triplet.cpp, which drives a Boost
// Dijkstra from every vertex of a ≤12-vertex subgraph purely to take the
// max hop count. spec.md §9 and the teacher's own preference for BFS on
// small unweighted graphs (see the traversal shape of
// graph/algorithms/bfs.go: seed a queue, mark visited, step until empty)
// both point the same direction: replace per-source Dijkstra with
// per-source BFS. The two agree exactly on unit-weight graphs, and BFS
// needs no priority queue at all.
package cnatriplet

import "fmt"

// Triplet is the (n,e,p) signature of one neighbor within an atom's
// neighbor-induced subgraph: n neighbors of that neighbor, e edges among
// them, and p the longest shortest path between any reachable pair.
type Triplet struct {
	N int
	E int
	P int
}

// String renders the triplet as "(n,e,p)", the token spec.md §3's
// fingerprint grammar concatenates.
func (t Triplet) String() string {
	return fmt.Sprintf("(%d,%d,%d)", t.N, t.E, t.P)
}

// Compute derives the triplet for neighbor index `at` within the
// symmetric, zero-diagonal local adjacency matrix `adj` (adj[i][j] == true
// iff neighbors i and j of the reference atom are themselves within
// cutoff of one another).
//
// adj is the FULL reduced adjacency matrix for the reference atom's
// neighbor shell (size K = number of neighbors); `at` identifies which
// neighbor's triplet to compute, exactly as CNATriplet(matrix, atid) does
// in the original source.
func Compute(adj [][]bool, at int) Triplet {
	k := len(adj)
	if at < 0 || at >= k {
		return Triplet{}
	}

	// neighborIDs are the indices j (within adj) such that adj[j][at] is
	// set — i.e. the neighbors of neighbor `at`.
	var neighborIDs []int
	for i := 0; i < k; i++ {
		if adj[i][at] {
			neighborIDs = append(neighborIDs, i)
		}
	}
	n := len(neighborIDs)
	if n == 0 {
		return Triplet{N: 0, E: 0, P: 0}
	}

	// Induced subgraph H over neighborIDs, reindexed to [0,n).
	h := make([][]bool, n)
	for x := range h {
		h[x] = make([]bool, n)
	}
	e := 0
	for x := 0; x < n; x++ {
		for y := x + 1; y < n; y++ {
			if adj[neighborIDs[x]][neighborIDs[y]] {
				h[x][y] = true
				h[y][x] = true
				e++
			}
		}
	}

	return Triplet{N: n, E: e, P: longestShortestPath(h)}
}

// longestShortestPath returns the maximum, over every ordered pair (s,v)
// in the n-vertex graph h, of the BFS hop distance from s to v. Per
// spec.md §9 (matching original_source's uninitialized-distance
// behavior), a vertex unreachable from s contributes 0, not infinity, so
// it never raises the max unless some other pair already does.
func longestShortestPath(h [][]bool) int {
	n := len(h)
	if n == 0 {
		return 0
	}

	longest := 0
	dist := make([]int, n)
	queue := make([]int, 0, n)
	for s := 0; s < n; s++ {
		for i := range dist {
			dist[i] = 0
		}
		visited := make([]bool, n)
		visited[s] = true
		queue = queue[:0]
		queue = append(queue, s)
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for v := 0; v < n; v++ {
				if h[u][v] && !visited[v] {
					visited[v] = true
					dist[v] = dist[u] + 1
					queue = append(queue, v)
				}
			}
		}
		for _, d := range dist {
			if d > longest {
				longest = d
			}
		}
	}

	return longest
}
