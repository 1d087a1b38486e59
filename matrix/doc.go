// Package matrix provides the two matrix backends the rest of this module
// is built on: a generic sparse Matrix[T]/Sparse[T] (sparse.go) consumed by
// deltamatrix for the delta-overlay base/pending matrices, and a small
// dense float64 Matrix (impl_dense.go) with one numeric routine,
// FloydWarshall (impl_floydwarshall.go), consumed by the analytics
// package's all-pairs shortest-distance query.
package matrix
