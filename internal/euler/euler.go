// Package euler extracts Euler circuits from an undirected multigraph using
// Hierholzer's algorithm, following the edge-view-plus-cursor construction
// of the original graph_find_euler_circuit.
package euler

import "graphsuite/internal/graph"

// edgeID identifies one undirected edge (including a self-loop, which owns
// a single id even though it occupies two incidence slots on its vertex).
type edgeID int

type edge struct {
	u, v int
}

// edgeView is a deduplicated list of undirected edges plus, per vertex, the
// incidence list of edge ids touching it. A self-loop's id appears twice in
// its owner's incidence list.
type edgeView struct {
	edges []edge
	incid [][]edgeID
}

func buildEdgeView(g *graph.Graph) edgeView {
	n := g.N()
	ev := edgeView{incid: make([][]edgeID, n)}

	loopSeen := make([]int, n)
	for u := 0; u < n; u++ {
		for _, e := range g.Neighbors(u) {
			v := e.To
			switch {
			case u == v:
				loopSeen[u]++
				if loopSeen[u]%2 == 0 {
					id := edgeID(len(ev.edges))
					ev.edges = append(ev.edges, edge{u, u})
					ev.incid[u] = append(ev.incid[u], id, id)
				}
			case u < v:
				id := edgeID(len(ev.edges))
				ev.edges = append(ev.edges, edge{u, v})
				ev.incid[u] = append(ev.incid[u], id)
				ev.incid[v] = append(ev.incid[v], id)
			}
		}
	}
	return ev
}

func degree(g *graph.Graph, v int) int {
	return g.Degree(v)
}

// isConnectedIgnoringIsolated reports whether every vertex with nonzero
// degree is reachable from some such vertex, ignoring vertices with no
// incident edges entirely.
func isConnectedIgnoringIsolated(g *graph.Graph) bool {
	n := g.N()
	start := -1
	for i := 0; i < n; i++ {
		if degree(g, i) > 0 {
			start = i
			break
		}
	}
	if start == -1 {
		return true
	}

	visited := make([]bool, n)
	stack := []int{start}
	visited[start] = true

	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.Neighbors(u) {
			if !visited[e.To] {
				visited[e.To] = true
				stack = append(stack, e.To)
			}
		}
	}

	for i := 0; i < n; i++ {
		if degree(g, i) > 0 && !visited[i] {
			return false
		}
	}
	return true
}

// HasCircuit reports whether g has an Euler circuit: at least one edge,
// every vertex of even degree, and the non-isolated subgraph connected.
func HasCircuit(g *graph.Graph) bool {
	if !isConnectedIgnoringIsolated(g) {
		return false
	}

	sumDeg := 0
	for i := 0; i < g.N(); i++ {
		d := degree(g, i)
		if d%2 != 0 {
			return false
		}
		sumDeg += d
	}
	return sumDeg > 0
}

// FindCircuit returns an Euler circuit over g, built by Hierholzer's
// algorithm: a stack of vertices, a per-vertex incidence cursor, and a
// used-flag per edge id, with the walked path reversed at the end. ok is
// false if g has no Euler circuit.
func FindCircuit(g *graph.Graph) (cycle []int, ok bool) {
	if !HasCircuit(g) {
		return nil, false
	}

	ev := buildEdgeView(g)

	start := -1
	for i, incid := range ev.incid {
		if len(incid) > 0 {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, false
	}

	used := make([]bool, len(ev.edges))
	cursor := make([]int, g.N())
	stack := []int{start}
	var path []int

	for len(stack) > 0 {
		u := stack[len(stack)-1]

		for cursor[u] < len(ev.incid[u]) && used[ev.incid[u][cursor[u]]] {
			cursor[u]++
		}

		if cursor[u] == len(ev.incid[u]) {
			path = append(path, u)
			stack = stack[:len(stack)-1]
			continue
		}

		id := ev.incid[u][cursor[u]]
		cursor[u]++
		if used[id] {
			continue
		}
		used[id] = true

		e := ev.edges[id]
		next := e.v
		if u == e.v {
			next = e.u
		}
		stack = append(stack, next)
	}

	if len(path) < 1 {
		return nil, false
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
