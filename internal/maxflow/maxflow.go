// Package maxflow computes maximum flow between two vertices of a graph
// using Edmonds-Karp: BFS augmenting paths over a residual capacity matrix
// built from the graph's edge weights.
package maxflow

import (
	"math"

	"graphsuite/internal/graph"
	"graphsuite/internal/matrixpool"
	"graphsuite/pkg/apperror"
)

// Result is the outcome of a max flow computation.
type Result struct {
	Value  int
	Source int
	Sink   int
}

// bfsQueue is a FIFO queue of vertex indices backed by a growable slice with
// a head pointer, avoiding per-push allocation the way the teacher's BFS
// queue does for flow traversals.
type bfsQueue struct {
	data []int
	head int
}

func newBFSQueue(capacity int) *bfsQueue {
	return &bfsQueue{data: make([]int, 0, capacity)}
}

func (q *bfsQueue) push(v int) {
	q.data = append(q.data, v)
}

func (q *bfsQueue) pop() int {
	v := q.data[q.head]
	q.head++
	return v
}

func (q *bfsQueue) empty() bool {
	return q.head >= len(q.data)
}

// buildCapacityMatrix fills an n×n matrix from g's adjacency entries,
// skipping self-loops since a loop never contributes a directed flow
// capacity between distinct vertices.
func buildCapacityMatrix(g *graph.Graph) [][]int {
	n := g.N()
	capMatrix := matrixpool.AcquireInt(n)

	for u := 0; u < n; u++ {
		for _, e := range g.Neighbors(u) {
			if u != e.To {
				capMatrix[u][e.To] = e.Weight
			}
		}
	}
	return capMatrix
}

func bfsFindPath(res [][]int, n, source, sink int, parent []int) bool {
	visited := make([]bool, n)
	q := newBFSQueue(n)
	q.push(source)
	visited[source] = true
	parent[source] = -1

	for !q.empty() {
		u := q.pop()
		for v := 0; v < n; v++ {
			if !visited[v] && res[u][v] > 0 {
				parent[v] = u
				visited[v] = true
				q.push(v)
				if v == sink {
					return true
				}
			}
		}
	}
	return false
}

func findPathFlow(res [][]int, source, sink int, parent []int) int {
	pathFlow := math.MaxInt
	for v := sink; v != source; v = parent[v] {
		u := parent[v]
		if res[u][v] < pathFlow {
			pathFlow = res[u][v]
		}
	}
	return pathFlow
}

func updateResidual(res [][]int, source, sink int, parent []int, pathFlow int) {
	for v := sink; v != source; v = parent[v] {
		u := parent[v]
		res[u][v] -= pathFlow
		res[v][u] += pathFlow
	}
}

// Compute runs Edmonds-Karp from source to sink. It fails with
// CodeAlgorithmFailure if source == sink or either is out of range.
func Compute(g *graph.Graph, source, sink int) (Result, error) {
	n := g.N()
	if source < 0 || sink < 0 || source >= n || sink >= n || source == sink {
		return Result{}, apperror.New(apperror.CodeAlgorithmFailure, "invalid source/sink for max flow").
			WithDetails("source", source).WithDetails("sink", sink).WithDetails("n", n)
	}

	res := buildCapacityMatrix(g)
	defer matrixpool.ReleaseInt(res)
	parent := make([]int, n)

	total := 0
	for bfsFindPath(res, n, source, sink, parent) {
		pathFlow := findPathFlow(res, source, sink, parent)
		updateResidual(res, source, sink, parent, pathFlow)
		total += pathFlow
	}

	return Result{Value: total, Source: source, Sink: sink}, nil
}

// ComputeDefault runs Compute with source=0 and sink=n-1.
func ComputeDefault(g *graph.Graph) (Result, error) {
	if g.N() < 2 {
		return Result{}, apperror.New(apperror.CodeAlgorithmFailure, "graph needs at least 2 vertices for max flow")
	}
	return Compute(g, 0, g.N()-1)
}
