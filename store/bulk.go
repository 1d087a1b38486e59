package store

import (
	"sort"

	"github.com/katalvlaran/graphcore/ids"
)

// BulkDeleteResult reports how many nodes and edges a BulkDelete actually
// removed (as opposed to how many were requested — duplicates and
// already-dead ids are silently absorbed).
type BulkDeleteResult struct {
	NodesDeleted int
	EdgesDeleted int
}

// BulkDelete implements spec §4.3's bulk_delete: it deduplicates and sorts
// both input lists, removes from the edge list anything incident on a
// to-be-deleted node (those are removed, and counted, together with every
// other edge incident on that node), applies the remaining explicit edge
// deletions, then deletes the nodes.
func (s *Store) BulkDelete(nodes []ids.NodeId, edges []ids.EdgeId) (BulkDeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodeSet := dedupeSortNodes(nodes)
	edgeList := dedupeSortEdges(edges)

	doomed := make(map[ids.NodeId]struct{}, len(nodeSet))
	for _, n := range nodeSet {
		doomed[n] = struct{}{}
	}

	filtered := edgeList[:0]
	for _, e := range edgeList {
		if int(e) < 0 || int(e) >= len(s.edges) || !s.edges[e].alive {
			continue
		}
		slot := s.edges[e]
		if _, srcDoomed := doomed[slot.src]; srcDoomed {
			continue
		}
		if _, dstDoomed := doomed[slot.dst]; dstDoomed {
			continue
		}
		filtered = append(filtered, e)
	}

	var result BulkDeleteResult
	for _, e := range filtered {
		if err := s.deleteEdgeLocked(e); err != nil {
			continue
		}
		result.EdgesDeleted++
	}

	// Phase 1: remove every edge incident on a doomed node (in either
	// direction, across every relation) before the node itself goes.
	for n := range doomed {
		for r, rm := range s.relations {
			before := s.relationCounts[r]
			s.removeIncidentEdgesLocked(n, ids.RelationId(r), rm)
			result.EdgesDeleted += int(before - s.relationCounts[r])
		}
	}

	// Phase 2: remove the node slots themselves.
	for _, n := range nodeSet {
		if err := s.deleteNodeLocked(n); err != nil {
			continue
		}
		result.NodesDeleted++
	}
	return result, nil
}

func dedupeSortNodes(in []ids.NodeId) []ids.NodeId {
	seen := make(map[ids.NodeId]struct{}, len(in))
	out := make([]ids.NodeId, 0, len(in))
	for _, n := range in {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func dedupeSortEdges(in []ids.EdgeId) []ids.EdgeId {
	seen := make(map[ids.EdgeId]struct{}, len(in))
	out := make([]ids.EdgeId, 0, len(in))
	for _, e := range in {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
