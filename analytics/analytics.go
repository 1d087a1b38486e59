// Package analytics layers a small set of graph analytics conveniences on
// top of the store's exported matrices (spec §4.7, supplementing features
// the distilled core dropped): connected components via union-find, degree
// centrality via a row/column reduce, and all-pairs shortest distances via
// the dense Floyd-Warshall backend. None of these are part of C1-C7's
// contract; all are thin, read-only consumers that never grow
// deltamatrix's own interface.
package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/graphcore/deltamatrix"
	"github.com/katalvlaran/graphcore/ids"
	"github.com/katalvlaran/graphcore/matrix"
	"github.com/katalvlaran/graphcore/store"
)

// unionFind is the disjoint-set structure ConnectedComponents runs over
// the relation's flattened adjacency export.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}

// ConnectedComponents returns the weakly-connected-component id of every
// live node (a node with no edge under relation forms its own component),
// by running a union-find over
// relation's flattened adjacency export (treating each stored edge as
// undirected, matching the usual notion of a weakly connected component).
func ConnectedComponents(s *store.Store, relation ids.RelationId) (map[ids.NodeId]int, error) {
	rm, err := s.GetRelationMatrix(relation)
	if err != nil {
		return nil, fmt.Errorf("analytics: connected_components: %w", err)
	}

	flat := rm.Export()
	n := flat.Rows()
	uf := newUnionFind(n)
	if n > 0 {
		it := flat.RowIterator(0, n-1)
		for {
			i, j, _, ok := it.Next()
			if !ok {
				break
			}
			uf.union(i, j)
		}
	}

	// Renumber roots into a dense, deterministic 0..k-1 component id space
	// so results are stable across calls regardless of slot reuse.
	roots := make([]int, 0, n)
	seen := make(map[int]bool, n)
	out := make(map[ids.NodeId]int, n)
	for i := 0; i < n; i++ {
		if !s.NodeExists(ids.NodeId(i)) {
			continue
		}
		r := uf.find(i)
		if !seen[r] {
			seen[r] = true
			roots = append(roots, r)
		}
	}
	sort.Ints(roots)
	componentOf := make(map[int]int, len(roots))
	for idx, r := range roots {
		componentOf[r] = idx
	}
	for i := 0; i < n; i++ {
		if !s.NodeExists(ids.NodeId(i)) {
			continue
		}
		out[ids.NodeId(i)] = componentOf[uf.find(i)]
	}
	return out, nil
}

// DegreeCentrality returns each live node's degree under relation and
// direction dir (Out: outgoing edge count, In: incoming, Both: the sum),
// counted directly off relation's flattened sparse export.
func DegreeCentrality(s *store.Store, relation ids.RelationId, dir store.Direction) (map[ids.NodeId]float64, error) {
	rm, err := s.GetRelationMatrix(relation)
	if err != nil {
		return nil, fmt.Errorf("analytics: degree_centrality: %w", err)
	}

	var out map[ids.NodeId]float64
	switch dir {
	case store.Out:
		out, err = degreeFromExport(rm.Export())
	case store.In:
		twin := rm.Twin()
		if twin == nil {
			return nil, fmt.Errorf("analytics: degree_centrality: relation matrix has no transpose twin")
		}
		out, err = degreeFromExport(twin.Export())
	case store.Both:
		outDeg, oerr := degreeFromExport(rm.Export())
		if oerr != nil {
			return nil, oerr
		}
		twin := rm.Twin()
		if twin == nil {
			return nil, fmt.Errorf("analytics: degree_centrality: relation matrix has no transpose twin")
		}
		inDeg, ierr := degreeFromExport(twin.Export())
		if ierr != nil {
			return nil, ierr
		}
		out = make(map[ids.NodeId]float64, len(outDeg))
		for n, v := range outDeg {
			out[n] = v
		}
		for n, v := range inDeg {
			out[n] += v
		}
	default:
		return nil, fmt.Errorf("analytics: degree_centrality: unknown direction %d", dir)
	}
	if err != nil {
		return nil, err
	}

	live := make(map[ids.NodeId]float64, len(out))
	for n, v := range out {
		if s.NodeExists(n) {
			live[n] = v
		}
	}
	return live, nil
}

// degreeFromExport counts edges per row of a relation's flattened export;
// a multi-edge cell contributes one per stored edge id.
func degreeFromExport(flat *matrix.Sparse[deltamatrix.Entry]) (map[ids.NodeId]float64, error) {
	n := flat.Rows()
	counts := make(map[ids.NodeId]float64, n)
	if n == 0 {
		return counts, nil
	}

	it := flat.RowIterator(0, n-1)
	for {
		i, _, v, ok := it.Next()
		if !ok {
			break
		}
		counts[ids.NodeId(i)] += float64(len(v.EdgeIds()))
	}
	return counts, nil
}

// ShortestPathDistances returns the shortest-path distance, in hop count,
// from every live node to every other live node reachable under relation
// (treating each stored edge as directed, weight 1), via the dense
// Floyd-Warshall backend (matrix.Dense, matrix.FloydWarshall). A missing
// inner map entry means the destination is unreachable from that source.
// Deleted node slots are excluded from both the row and column space
// before the O(n^3) pass runs, so dense graph ids stay compact; live nodes
// with no edge under relation are kept.
func ShortestPathDistances(s *store.Store, relation ids.RelationId) (map[ids.NodeId]map[ids.NodeId]float64, error) {
	rm, err := s.GetRelationMatrix(relation)
	if err != nil {
		return nil, fmt.Errorf("analytics: shortest_path_distances: %w", err)
	}
	flat := rm.Export()
	n := flat.Rows()

	live := make([]ids.NodeId, 0, n)
	index := make(map[ids.NodeId]int, n)
	for i := 0; i < n; i++ {
		if s.NodeExists(ids.NodeId(i)) {
			index[ids.NodeId(i)] = len(live)
			live = append(live, ids.NodeId(i))
		}
	}
	if len(live) == 0 {
		return map[ids.NodeId]map[ids.NodeId]float64{}, nil
	}

	dense, err := matrix.NewDense(len(live), len(live))
	if err != nil {
		return nil, fmt.Errorf("analytics: shortest_path_distances: %w", err)
	}
	if n > 0 {
		it := flat.RowIterator(0, n-1)
		for {
			i, j, _, ok := it.Next()
			if !ok {
				break
			}
			ri, rok := index[ids.NodeId(i)]
			rj, cok := index[ids.NodeId(j)]
			if !rok || !cok {
				continue
			}
			if err := dense.Set(ri, rj, 1); err != nil {
				return nil, fmt.Errorf("analytics: shortest_path_distances: %w", err)
			}
		}
	}

	matrix.InitDistances(dense)
	if err := matrix.FloydWarshall(dense); err != nil {
		return nil, fmt.Errorf("analytics: shortest_path_distances: %w", err)
	}

	out := make(map[ids.NodeId]map[ids.NodeId]float64, len(live))
	for ri, srcID := range live {
		row := make(map[ids.NodeId]float64, len(live))
		for rj, dstID := range live {
			d, _ := dense.At(ri, rj)
			if math.IsInf(d, 1) {
				continue
			}
			row[dstID] = d
		}
		out[srcID] = row
	}
	return out, nil
}
