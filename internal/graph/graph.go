// Package graph implements the undirected multigraph at the core of every
// algorithm kernel in graphsuite: an adjacency-list representation over
// vertices 0..n-1 with optional integer edge weights, a simple-graph policy
// (no parallel edges, at most one self-loop per vertex), and self-loops
// represented as two incidence entries on the same vertex.
package graph

import (
	"fmt"
	"strings"
	"sync"

	"graphsuite/pkg/apperror"
)

// Edge is one adjacency entry: a neighbour vertex and the weight of the
// edge connecting it to the owning vertex.
type Edge struct {
	To     int
	Weight int
}

// Graph is an undirected multigraph with vertices 0..n-1. An undirected
// edge u--v is stored as one Edge in adj[u] pointing to v and one in adj[v]
// pointing to u, both carrying the same weight. A self-loop on u is stored
// as exactly two Edge entries in adj[u], both pointing to u.
type Graph struct {
	n   int
	adj [][]Edge

	mu sync.RWMutex
}

// New creates a graph with n vertices and no edges. n must be positive.
func New(n int) (*Graph, error) {
	if n <= 0 {
		return nil, apperror.New(apperror.CodeOutOfBounds, "vertex count must be positive").
			WithField("n")
	}

	g := &Graph{n: n, adj: acquireAdjacency(n)}
	return g, nil
}

// Release returns the graph's backing adjacency storage to the pool. After
// calling Release, g must not be used. Callers that construct many
// short-lived graphs (benchmarks, the random-graph generator) should call
// this; a server handling one graph per connection may let the garbage
// collector reclaim it instead.
func (g *Graph) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.adj == nil {
		return
	}
	releaseAdjacency(g.adj)
	g.adj = nil
}

// N returns the number of vertices.
func (g *Graph) N() int {
	return g.n
}

func (g *Graph) inBounds(v int) bool {
	return v >= 0 && v < g.n
}

// countNeighbor counts how many entries in adj[u] point to v. Caller holds
// at least a read lock.
func (g *Graph) countNeighbor(u, v int) int {
	c := 0
	for _, e := range g.adj[u] {
		if e.To == v {
			c++
		}
	}
	return c
}

func (g *Graph) edgeExists(u, v int) bool {
	if u == v {
		return g.countNeighbor(u, u) >= 2
	}
	return g.countNeighbor(u, v) >= 1
}

// AddEdge adds an undirected edge u--v with default weight 1.
func (g *Graph) AddEdge(u, v int) error {
	return g.AddWeightedEdge(u, v, 1)
}

// AddWeightedEdge adds an undirected edge u--v with the given weight.
// It rejects out-of-range vertices and duplicate edges (which also caps
// self-loops at one per vertex, since a second loop attempt finds the pair
// of entries already present).
func (g *Graph) AddWeightedEdge(u, v, weight int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.inBounds(u) || !g.inBounds(v) {
		return apperror.New(apperror.CodeOutOfBounds, "vertex index out of range").
			WithDetails("u", u).WithDetails("v", v).WithDetails("n", g.n)
	}

	if g.edgeExists(u, v) {
		return apperror.New(apperror.CodeDuplicateEdge, "edge already present").
			WithDetails("u", u).WithDetails("v", v)
	}

	if u == v {
		g.adj[u] = append(g.adj[u], Edge{To: u, Weight: weight}, Edge{To: u, Weight: weight})
		return nil
	}

	g.adj[u] = append(g.adj[u], Edge{To: v, Weight: weight})
	g.adj[v] = append(g.adj[v], Edge{To: u, Weight: weight})
	return nil
}

// EdgeWeight returns the weight of the edge between u and v, or 0 if no
// such edge exists (or either vertex is out of range).
func (g *Graph) EdgeWeight(u, v int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.inBounds(u) || !g.inBounds(v) {
		return 0
	}
	for _, e := range g.adj[u] {
		if e.To == v {
			return e.Weight
		}
	}
	return 0
}

// Neighbors returns the adjacency entries for vertex v. The returned slice
// is owned by the graph and must not be modified.
func (g *Graph) Neighbors(v int) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.inBounds(v) {
		return nil
	}
	return g.adj[v]
}

// Degree returns the degree of vertex v, counting each self-loop entry
// individually (so a single self-loop contributes 2).
func (g *Graph) Degree(v int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.inBounds(v) {
		return 0
	}
	return len(g.adj[v])
}

// HasWeights reports whether any edge has a weight other than 1.
func (g *Graph) HasWeights() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for i := 0; i < g.n; i++ {
		for _, e := range g.adj[i] {
			if e.Weight != 1 {
				return true
			}
		}
	}
	return false
}

// String renders the adjacency lists, one line per vertex, matching the
// original's graph_print output (weights shown only when any edge carries
// a non-default weight).
func (g *Graph) String() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	showWeights := false
	for i := 0; i < g.n; i++ {
		for _, e := range g.adj[i] {
			if e.Weight != 1 {
				showWeights = true
				break
			}
		}
	}

	var sb strings.Builder
	for i := 0; i < g.n; i++ {
		fmt.Fprintf(&sb, "%d:", i)
		for _, e := range g.adj[i] {
			if showWeights {
				fmt.Fprintf(&sb, " %d(w:%d)", e.To, e.Weight)
			} else {
				fmt.Fprintf(&sb, " %d", e.To)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// adjacencyPool pools the [][]Edge backing storage for graphs, in the
// spirit of the teacher's GraphPool: a single sync.Pool (not bucketed by
// vertex count) whose New allocates a reasonably sized slice, replaced by
// a fresh allocation when a graph needs more vertices than it holds.
var adjacencyPool = sync.Pool{
	New: func() any {
		return make([][]Edge, 0, 64)
	},
}

func acquireAdjacency(n int) [][]Edge {
	adj := adjacencyPool.Get().([][]Edge)
	if cap(adj) < n {
		adj = make([][]Edge, n)
	} else {
		adj = adj[:n]
		for i := range adj {
			adj[i] = adj[i][:0]
		}
	}
	return adj
}

func releaseAdjacency(adj [][]Edge) {
	for i := range adj {
		adj[i] = nil
	}
	adjacencyPool.Put(adj[:0])
}
