// Package matrixpool pools the transient n×n matrices and bitmatrices that
// internal/maxflow, internal/mst, and internal/clique build once per
// invocation and discard, following the same sync.Pool shape
// internal/graph's adjacencyPool uses for its adjacency-list backing
// storage (itself adapted from the teacher's GraphPool).
package matrixpool

import "sync"

var intPool = sync.Pool{
	New: func() any {
		return make([][]int, 0, 64)
	},
}

var boolPool = sync.Pool{
	New: func() any {
		return make([][]bool, 0, 64)
	},
}

// AcquireInt returns an n×n zeroed [][]int matrix, reusing pooled backing
// storage when it is large enough.
func AcquireInt(n int) [][]int {
	m := intPool.Get().([][]int)
	if cap(m) < n {
		m = make([][]int, n)
	} else {
		m = m[:n]
	}
	for i := range m {
		if cap(m[i]) < n {
			m[i] = make([]int, n)
		} else {
			m[i] = m[i][:n]
			for j := range m[i] {
				m[i][j] = 0
			}
		}
	}
	return m
}

// ReleaseInt returns a matrix acquired from AcquireInt to the pool.
func ReleaseInt(m [][]int) {
	intPool.Put(m[:0])
}

// AcquireBool returns an n×n zeroed [][]bool matrix, reusing pooled backing
// storage when it is large enough.
func AcquireBool(n int) [][]bool {
	m := boolPool.Get().([][]bool)
	if cap(m) < n {
		m = make([][]bool, n)
	} else {
		m = m[:n]
	}
	for i := range m {
		if cap(m[i]) < n {
			m[i] = make([]bool, n)
		} else {
			m[i] = m[i][:n]
			for j := range m[i] {
				m[i][j] = false
			}
		}
	}
	return m
}

// ReleaseBool returns a matrix acquired from AcquireBool to the pool.
func ReleaseBool(m [][]bool) {
	boolPool.Put(m[:0])
}
