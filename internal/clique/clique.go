// Package clique implements maximum clique search by backtracking, full
// clique enumeration/counting, and maximal-clique enumeration via
// Bron-Kerbosch, all over an adjacency bitmatrix built from the graph.
package clique

import (
	"graphsuite/internal/graph"
	"graphsuite/internal/matrixpool"
)

// MaxCliqueResult is the outcome of a maximum clique search.
type MaxCliqueResult struct {
	Size     int
	Vertices []int
}

// CountResult is the outcome of full clique enumeration.
type CountResult struct {
	CountsBySize []int // index 1..n; index 0 unused
	MaxSize      int
	Total        int
}

func buildAdjacencyMatrix(g *graph.Graph) [][]bool {
	n := g.N()
	adj := matrixpool.AcquireBool(n)
	for u := 0; u < n; u++ {
		for _, e := range g.Neighbors(u) {
			if u != e.To {
				adj[u][e.To] = true
			}
		}
	}
	return adj
}

func connectedToAll(adj [][]bool, v int, clique []int) bool {
	for _, u := range clique {
		if !adj[v][u] {
			return false
		}
	}
	return true
}

// MaxClique finds a maximum clique by backtracking from every start vertex,
// in increasing vertex order, keeping the first-seen largest clique found.
func MaxClique(g *graph.Graph) MaxCliqueResult {
	n := g.N()
	if n == 0 {
		return MaxCliqueResult{}
	}
	if n == 1 {
		return MaxCliqueResult{Size: 1, Vertices: []int{0}}
	}

	adj := buildAdjacencyMatrix(g)
	defer matrixpool.ReleaseBool(adj)

	current := make([]int, 0, n)
	var best []int

	var backtrack func(start int)
	backtrack = func(start int) {
		if len(current) > len(best) {
			best = append(best[:0:0], current...)
		}
		for v := start; v < n; v++ {
			if connectedToAll(adj, v, current) {
				current = append(current, v)
				backtrack(v + 1)
				current = current[:len(current)-1]
			}
		}
	}

	for start := 0; start < n; start++ {
		current = append(current, start)
		backtrack(start + 1)
		current = current[:0]
	}

	return MaxCliqueResult{Size: len(best), Vertices: best}
}

// CountAll enumerates every clique of the graph (including singletons) and
// returns counts grouped by size.
func CountAll(g *graph.Graph) CountResult {
	n := g.N()
	if n == 0 {
		return CountResult{}
	}

	adj := buildAdjacencyMatrix(g)
	defer matrixpool.ReleaseBool(adj)
	counts := make([]int, n+1)
	current := make([]int, 0, n)

	var recurse func(start int)
	recurse = func(start int) {
		if len(current) > 0 && len(current) <= n {
			counts[len(current)]++
		}
		for v := start; v < n; v++ {
			if connectedToAll(adj, v, current) {
				current = append(current, v)
				recurse(v + 1)
				current = current[:len(current)-1]
			}
		}
	}
	recurse(0)

	total, maxSize := 0, 0
	for size := 1; size <= n; size++ {
		if counts[size] > 0 {
			total += counts[size]
			maxSize = size
		}
	}

	return CountResult{CountsBySize: counts, MaxSize: maxSize, Total: total}
}

// CountOfSize counts cliques of exactly the given size, pruning branches
// that cannot possibly reach the target size with the remaining vertices.
func CountOfSize(g *graph.Graph, size int) int {
	n := g.N()
	if size < 1 || size > n {
		return 0
	}

	adj := buildAdjacencyMatrix(g)
	defer matrixpool.ReleaseBool(adj)
	current := make([]int, 0, n)
	count := 0

	var recurse func(start int)
	recurse = func(start int) {
		if len(current) == size {
			count++
			return
		}
		if len(current)+(n-start) < size {
			return
		}
		for v := start; v < n; v++ {
			if connectedToAll(adj, v, current) {
				current = append(current, v)
				recurse(v + 1)
				current = current[:len(current)-1]
			}
		}
	}
	recurse(0)

	return count
}

// FindAllMaximal enumerates every maximal clique via Bron-Kerbosch without
// pivoting, following the original's R/P/X set recursion.
func FindAllMaximal(g *graph.Graph) [][]int {
	n := g.N()
	if n == 0 {
		return nil
	}

	adj := buildAdjacencyMatrix(g)
	defer matrixpool.ReleaseBool(adj)

	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	var cliques [][]int
	var r []int

	var bronKerbosch func(p, x []int)
	bronKerbosch = func(p, x []int) {
		if len(p) == 0 && len(x) == 0 {
			clique := append([]int(nil), r...)
			cliques = append(cliques, clique)
			return
		}

		pCopy := append([]int(nil), p...)
		for _, v := range pCopy {
			r = append(r, v)

			var pNew, xNew []int
			for _, u := range p {
				if adj[v][u] {
					pNew = append(pNew, u)
				}
			}
			for _, u := range x {
				if adj[v][u] {
					xNew = append(xNew, u)
				}
			}

			bronKerbosch(pNew, xNew)

			r = r[:len(r)-1]

			for i, u := range p {
				if u == v {
					p = append(p[:i], p[i+1:]...)
					break
				}
			}
			x = append(x, v)
		}
	}
	bronKerbosch(p, nil)

	return cliques
}
