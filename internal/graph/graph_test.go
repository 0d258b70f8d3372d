package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"graphsuite/pkg/apperror"
)

func TestNew_RejectsNonPositive(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)
	require.True(t, apperror.Is(err, apperror.CodeOutOfBounds))

	_, err = New(-3)
	require.Error(t, err)
}

func TestAddEdge_Simple(t *testing.T) {
	g, err := New(3)
	require.NoError(t, err)

	require.NoError(t, g.AddEdge(0, 1))
	require.Equal(t, 1, g.EdgeWeight(0, 1))
	require.Equal(t, 1, g.EdgeWeight(1, 0))
	require.Equal(t, 0, g.EdgeWeight(0, 2))
}

func TestAddWeightedEdge_SelfLoop(t *testing.T) {
	g, err := New(2)
	require.NoError(t, err)

	require.NoError(t, g.AddWeightedEdge(0, 0, 5))
	require.Equal(t, 2, g.Degree(0))
	require.Equal(t, 5, g.EdgeWeight(0, 0))

	err = g.AddWeightedEdge(0, 0, 1)
	require.Error(t, err)
	require.True(t, apperror.Is(err, apperror.CodeDuplicateEdge))
}

func TestAddEdge_OutOfBounds(t *testing.T) {
	g, err := New(2)
	require.NoError(t, err)

	err = g.AddEdge(0, 5)
	require.Error(t, err)
	require.True(t, apperror.Is(err, apperror.CodeOutOfBounds))
}

func TestAddEdge_Duplicate(t *testing.T) {
	g, err := New(2)
	require.NoError(t, err)

	require.NoError(t, g.AddEdge(0, 1))
	err = g.AddEdge(0, 1)
	require.Error(t, err)
	require.True(t, apperror.Is(err, apperror.CodeDuplicateEdge))

	err = g.AddEdge(1, 0)
	require.Error(t, err)
}

func TestDegree_CountsBothEndpoints(t *testing.T) {
	g, err := New(3)
	require.NoError(t, err)

	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(0, 2))

	require.Equal(t, 2, g.Degree(0))
	require.Equal(t, 1, g.Degree(1))
	require.Equal(t, 1, g.Degree(2))
	require.Equal(t, 0, g.Degree(99))
}

func TestHasWeights(t *testing.T) {
	g, err := New(2)
	require.NoError(t, err)

	require.False(t, g.HasWeights())

	require.NoError(t, g.AddWeightedEdge(0, 1, 7))
	require.True(t, g.HasWeights())
}

func TestString_ShowsWeightsOnlyWhenNonDefault(t *testing.T) {
	g, err := New(2)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1))

	require.NotContains(t, g.String(), "w:")

	g2, err := New(2)
	require.NoError(t, err)
	require.NoError(t, g2.AddWeightedEdge(0, 1, 9))

	require.Contains(t, g2.String(), "w:9")
}

func TestNeighbors_OutOfRangeReturnsNil(t *testing.T) {
	g, err := New(2)
	require.NoError(t, err)

	require.Nil(t, g.Neighbors(-1))
	require.Nil(t, g.Neighbors(9))
}

func TestRelease_AllowsReuse(t *testing.T) {
	g, err := New(4)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1))
	g.Release()

	g2, err := New(4)
	require.NoError(t, err)
	require.Equal(t, 0, g2.Degree(0))
}
