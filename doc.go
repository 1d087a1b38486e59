// Package graphcore is a matrix-backed property-graph storage and query core.
//
// A graph is stored as a family of sparse adjacency matrices over a
// semiring: one boolean matrix per node label, one uint64 matrix per
// relation type (entries encode one or many edge ids), a global adjacency
// matrix, and a node-to-labels matrix. Query traversals compile down to
// chains of matrix multiplication, addition and transpose (package expr),
// ordered for selectivity (package orderer), and executed against the
// matrices (package store) via an iterator (package deltamatrix) or a
// DFS/BFS path walk (package path).
//
// Sub-packages, leaves first:
//
//	ids         - NodeId/EdgeId/LabelId/RelationId/AttributeId and attribute sets
//	matrix      - sparse/dense matrix backend, semirings, dense numeric ops
//	deltamatrix - mutable versioned sparse matrix: base + pending add/remove overlays
//	mvcc        - multi-version concurrency broker
//	store       - the graph storage engine built on deltamatrix
//	path        - path/neighbor enumeration over store
//	expr        - algebraic expression trees (MUL/ADD/TRANSPOSE)
//	orderer     - scores and orders expr trees for execution
//	graphcfg    - functional-option configuration for store/deltamatrix
//	graphlog    - structured logging facade
//	analytics   - small matrix-backed analytics conveniences
//	concurrency - bounded worker pool for bulk-loading operations
//	fixture     - YAML graph fixture loader, used by cmd/graphctl and tests
//
// This module implements only the core: the query parser/AST, command
// dispatcher, RESP layer, RDB/AOF serialization and secondary indices are
// external collaborators, referenced only through the narrow interfaces
// this core consumes or exposes.
package graphcore
