// Package path implements the Path Engine (spec §4.6): All-paths DFS,
// All-shortest-paths, and bounded BFS reachability over a store.Store.
package path

import (
	"github.com/katalvlaran/graphcore/ids"
	"github.com/katalvlaran/graphcore/store"
)

// Path is a materialised traversal: Nodes[0] is the source, Edges[i]
// connects Nodes[i] and Nodes[i+1]. A Path returned by an iterator's Next
// is aliased to the iterator's internal buffer — callers must Clone before
// holding onto it past the following Next call.
type Path struct {
	Nodes []ids.NodeId
	Edges []ids.EdgeId
}

// Clone returns a deep copy, safe to retain across further iteration.
func (p Path) Clone() Path {
	nodes := make([]ids.NodeId, len(p.Nodes))
	copy(nodes, p.Nodes)
	edges := make([]ids.EdgeId, len(p.Edges))
	copy(edges, p.Edges)
	return Path{Nodes: nodes, Edges: edges}
}

// FilterFunc evaluates a candidate edge at position edgeIdx of the
// in-progress path (nodes/edges built so far, not including the candidate).
// Returning false rejects the candidate before it is ever added to the path.
type FilterFunc func(nodes []ids.NodeId, edges []ids.EdgeId, edgeIdx int, candidate store.Edge) bool

// Options configures an All-paths or All-shortest-paths traversal.
type Options struct {
	MinLen    int
	MaxLen    int
	Direction store.Direction
	Relations []ids.RelationId // empty means every registered relation
	Dest      *ids.NodeId      // nil means unconstrained
	Filter    FilterFunc
}

func (o Options) relations(s *store.Store) []ids.RelationId {
	if len(o.Relations) > 0 {
		return o.Relations
	}
	return s.RelationIDs()
}

func (o Options) destMatches(n ids.NodeId) bool {
	return o.Dest == nil || *o.Dest == n
}

// candidate is one not-yet-taken (neighbour, edge) pair at a given depth.
type candidate struct {
	node ids.NodeId
	edge ids.EdgeId
}

// expand gathers every neighbour of node reachable in opts.Direction across
// opts.relations, in "incoming first, then outgoing" order for BOTH (spec
// §4.6's bidirectional expansion order), applying opts.Filter if set.
func expand(s *store.Store, node ids.NodeId, nodesSoFar []ids.NodeId, edgesSoFar []ids.EdgeId, depth int, opts Options) []candidate {
	var out []candidate
	collect := func(dir store.Direction) {
		for _, r := range opts.relations(s) {
			edges, err := s.NodeEdges(node, dir, r)
			if err != nil {
				continue
			}
			for _, e := range edges {
				if opts.Filter != nil && !opts.Filter(nodesSoFar, edgesSoFar, depth, e) {
					continue
				}
				other := e.Dst
				if dir == store.In {
					other = e.Src
				}
				out = append(out, candidate{node: other, edge: e.ID})
			}
		}
	}
	switch opts.Direction {
	case store.Out:
		collect(store.Out)
	case store.In:
		collect(store.In)
	default:
		collect(store.In)
		collect(store.Out)
	}
	return out
}

func containsNode(nodes []ids.NodeId, n ids.NodeId) bool {
	for _, x := range nodes {
		if x == n {
			return true
		}
	}
	return false
}
