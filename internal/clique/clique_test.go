package clique

import (
	"sort"
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

func TestMaxClique_SingleVertex(t *testing.T) {
	g, err := graph.New(1)
	require.NoError(t, err)
	res := MaxClique(g)
	require.Equal(t, 1, res.Size)
	require.Equal(t, []int{0}, res.Vertices)
}

func TestMaxClique_Triangle(t *testing.T) {
	g := mustGraph(t, 3, [][2]int{{0, 1}, {1, 2}, {0, 2}})
	res := MaxClique(g)
	require.Equal(t, 3, res.Size)
}

func TestMaxClique_NoEdges(t *testing.T) {
	g, err := graph.New(4)
	require.NoError(t, err)
	res := MaxClique(g)
	require.Equal(t, 1, res.Size)
}

func TestMaxClique_SkipsSelfLoops(t *testing.T) {
	g, err := graph.New(3)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 0))
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(1, 2))
	require.NoError(t, g.AddEdge(0, 2))

	res := MaxClique(g)
	require.Equal(t, 3, res.Size)
}

func TestCountAll_Triangle(t *testing.T) {
	g := mustGraph(t, 3, [][2]int{{0, 1}, {1, 2}, {0, 2}})
	res := CountAll(g)

	require.Equal(t, 3, res.MaxSize)
	require.Equal(t, 3, res.CountsBySize[1])
	require.Equal(t, 3, res.CountsBySize[2])
	require.Equal(t, 1, res.CountsBySize[3])
	require.Equal(t, 7, res.Total)
}

func TestCountAll_Empty(t *testing.T) {
	g, err := graph.New(0)
	require.Error(t, err)
	_ = g

	g2, err := graph.New(2)
	require.NoError(t, err)
	res := CountAll(g2)
	require.Equal(t, 2, res.Total)
	require.Equal(t, 1, res.MaxSize)
}

func TestCountOfSize_MatchesCountAll(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {0, 2}, {2, 3}})
	all := CountAll(g)
	for size := 1; size <= 4; size++ {
		require.Equal(t, all.CountsBySize[size], CountOfSize(g, size), "size %d", size)
	}
}

func TestCountOfSize_TooLarge(t *testing.T) {
	g := mustGraph(t, 2, [][2]int{{0, 1}})
	require.Equal(t, 0, CountOfSize(g, 5))
}

func TestCountOfSize_InvalidSize(t *testing.T) {
	g := mustGraph(t, 2, [][2]int{{0, 1}})
	require.Equal(t, 0, CountOfSize(g, 0))
}

func TestFindAllMaximal_Triangle(t *testing.T) {
	g := mustGraph(t, 3, [][2]int{{0, 1}, {1, 2}, {0, 2}})
	cliques := FindAllMaximal(g)
	require.Len(t, cliques, 1)
	require.ElementsMatch(t, []int{0, 1, 2}, cliques[0])
}

func TestFindAllMaximal_TwoTriangleSharingEdge(t *testing.T) {
	// 0-1-2 triangle and 1-2-3 triangle sharing edge 1-2: maximal cliques
	// are {0,1,2} and {1,2,3}.
	g := mustGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {0, 2}, {2, 3}, {1, 3}})
	cliques := FindAllMaximal(g)

	var sizes []int
	for _, c := range cliques {
		sizes = append(sizes, len(c))
	}
	sort.Ints(sizes)
	require.Equal(t, []int{3, 3}, sizes)

	maxFound := 0
	for _, c := range cliques {
		if len(c) > maxFound {
			maxFound = len(c)
		}
	}
	require.Equal(t, MaxClique(g).Size, maxFound)
}

func TestFindAllMaximal_NoEdges(t *testing.T) {
	g, err := graph.New(3)
	require.NoError(t, err)
	cliques := FindAllMaximal(g)
	require.Len(t, cliques, 3)
}
