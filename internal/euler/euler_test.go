package euler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"graphsuite/internal/graph"
)

func mustGraph(t *testing.T, n int, edges [][2]int) *graph.Graph {
	t.Helper()
	g, err := graph.New(n)
	require.NoError(t, err)
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

func TestHasCircuit_Triangle(t *testing.T) {
	g := mustGraph(t, 3, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	require.True(t, HasCircuit(g))
}

func TestHasCircuit_NoEdges(t *testing.T) {
	g, err := graph.New(3)
	require.NoError(t, err)
	require.False(t, HasCircuit(g))
}

func TestHasCircuit_OddDegree(t *testing.T) {
	g := mustGraph(t, 3, [][2]int{{0, 1}, {1, 2}})
	require.False(t, HasCircuit(g))
}

func TestHasCircuit_IgnoresIsolatedVertex(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	require.True(t, HasCircuit(g))
}

func TestHasCircuit_Disconnected(t *testing.T) {
	g := mustGraph(t, 6, [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}})
	require.False(t, HasCircuit(g))
}

func TestFindCircuit_Triangle(t *testing.T) {
	g := mustGraph(t, 3, [][2]int{{0, 1}, {1, 2}, {2, 0}})

	cycle, ok := FindCircuit(g)
	require.True(t, ok)
	require.Len(t, cycle, 4)
	require.Equal(t, cycle[0], cycle[len(cycle)-1])
}

func TestFindCircuit_SelfLoop(t *testing.T) {
	// Triangle 0-1-2 plus a self-loop on 0: vertex 0 has degree 4, m = 4.
	g, err := graph.New(3)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 0))
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(1, 2))
	require.NoError(t, g.AddEdge(2, 0))

	require.True(t, HasCircuit(g))

	cycle, ok := FindCircuit(g)
	require.True(t, ok)
	require.Equal(t, cycle[0], cycle[len(cycle)-1])
	require.Len(t, cycle, 5)
}

func TestFindCircuit_NoneWhenDisconnected(t *testing.T) {
	g := mustGraph(t, 6, [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}})

	cycle, ok := FindCircuit(g)
	require.False(t, ok)
	require.Nil(t, cycle)
}

func TestFindCircuit_FourCycle(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})

	cycle, ok := FindCircuit(g)
	require.True(t, ok)
	require.Len(t, cycle, 5)

	visitedEdges := make(map[[2]int]bool)
	for i := 0; i+1 < len(cycle); i++ {
		a, b := cycle[i], cycle[i+1]
		if a > b {
			a, b = b, a
		}
		visitedEdges[[2]int{a, b}] = true
	}
	require.Len(t, visitedEdges, 4)
}
