package mst

import (
	"testing"

	"github.com/stretchr/testify/require"

	"graphsuite/internal/graph"
)

func mustGraph(t *testing.T, n int, edges [][3]int) *graph.Graph {
	t.Helper()
	g, err := graph.New(n)
	require.NoError(t, err)
	for _, e := range edges {
		require.NoError(t, g.AddWeightedEdge(e[0], e[1], e[2]))
	}
	return g
}

func TestCompute_SingleVertex(t *testing.T) {
	g, err := graph.New(1)
	require.NoError(t, err)
	res := Compute(g)
	require.True(t, res.Connected)
	require.Empty(t, res.Edges)
}

func TestCompute_Disconnected(t *testing.T) {
	g := mustGraph(t, 4, [][3]int{{0, 1, 1}, {2, 3, 1}})
	res := Compute(g)
	require.False(t, res.Connected)
}

func TestCompute_KnownMST(t *testing.T) {
	// Classic 5-vertex example, MST total weight = 16.
	g := mustGraph(t, 5, [][3]int{
		{0, 1, 2}, {0, 3, 6},
		{1, 2, 3}, {1, 3, 8}, {1, 4, 5},
		{2, 4, 7},
		{3, 4, 9},
	})

	res := Compute(g)
	require.True(t, res.Connected)
	require.Len(t, res.Edges, 4)
	require.Equal(t, 16, res.TotalWeight)
}

func TestCompute_SkipsSelfLoops(t *testing.T) {
	g, err := graph.New(3)
	require.NoError(t, err)
	require.NoError(t, g.AddWeightedEdge(0, 0, 50))
	require.NoError(t, g.AddWeightedEdge(0, 1, 1))
	require.NoError(t, g.AddWeightedEdge(1, 2, 2))

	res := Compute(g)
	require.True(t, res.Connected)
	require.Equal(t, 3, res.TotalWeight)
}

func TestCompute_PicksMinimalWeight(t *testing.T) {
	g := mustGraph(t, 3, [][3]int{{0, 1, 10}, {1, 2, 1}, {0, 2, 1}})
	res := Compute(g)
	require.True(t, res.Connected)
	require.Equal(t, 2, res.TotalWeight)
}
