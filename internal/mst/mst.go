// Package mst computes a minimum spanning tree with Prim's algorithm over a
// container/heap priority queue, following the teacher's Dijkstra heap shape
// re-keyed from float64 distance to integer edge weight, with lazy deletion
// of stale heap entries performed by the caller's loop rather than the heap.
package mst

import (
	"container/heap"
	"math"

	"graphsuite/internal/graph"
	"graphsuite/internal/matrixpool"
)

// Edge is one spanning-tree edge.
type Edge struct {
	U, V, Weight int
}

// Result is the outcome of an MST computation.
type Result struct {
	Connected   bool
	Edges       []Edge
	TotalWeight int
}

type pqItem struct {
	vertex int
	key    int
	index  int
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].key != pq[j].key {
		return pq[i].key < pq[j].key
	}
	return pq[i].vertex < pq[j].vertex
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

func buildWeightMatrix(g *graph.Graph) [][]int {
	n := g.N()
	w := matrixpool.AcquireInt(n)
	for u := 0; u < n; u++ {
		for _, e := range g.Neighbors(u) {
			if u != e.To {
				w[u][e.To] = e.Weight
			}
		}
	}
	return w
}

// Compute runs Prim's algorithm from vertex 0. A single-vertex graph is
// trivially connected with no edges.
func Compute(g *graph.Graph) Result {
	n := g.N()
	if n == 1 {
		return Result{Connected: true}
	}

	weight := buildWeightMatrix(g)
	defer matrixpool.ReleaseInt(weight)

	inMST := make([]bool, n)
	key := make([]int, n)
	parent := make([]int, n)
	for i := range key {
		key[i] = math.MaxInt
		parent[i] = -1
	}
	key[0] = 0

	pq := make(priorityQueue, 0, n)
	heap.Init(&pq)
	heap.Push(&pq, &pqItem{vertex: 0, key: 0})

	for pq.Len() > 0 {
		current := heap.Pop(&pq).(*pqItem)
		u := current.vertex

		if inMST[u] {
			continue
		}
		inMST[u] = true

		for v := 0; v < n; v++ {
			w := weight[u][v]
			if w > 0 && !inMST[v] && w < key[v] {
				key[v] = w
				parent[v] = u
				heap.Push(&pq, &pqItem{vertex: v, key: w})
			}
		}
	}

	connectedCount := 0
	for _, in := range inMST {
		if in {
			connectedCount++
		}
	}
	if connectedCount != n {
		return Result{Connected: false}
	}

	edges := make([]Edge, 0, n-1)
	total := 0
	for v := 1; v < n; v++ {
		if parent[v] != -1 {
			w := weight[parent[v]][v]
			edges = append(edges, Edge{U: parent[v], V: v, Weight: w})
			total += w
		}
	}

	return Result{Connected: true, Edges: edges, TotalWeight: total}
}
