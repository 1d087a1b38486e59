package path

import (
	"github.com/katalvlaran/graphcore/deltamatrix"
	"github.com/katalvlaran/graphcore/ids"
	"github.com/katalvlaran/graphcore/matrix"
	"github.com/katalvlaran/graphcore/store"
)

// Reachable is the result of a bounded BFS from one source node.
type Reachable struct {
	Nodes  []ids.NodeId
	Depth  map[ids.NodeId]int
	Parent map[ids.NodeId]ids.NodeId // nil unless withParent was requested
}

// flatAdjacency snapshots the out-edges (and, for IN/BOTH, in-edges) of
// relation r into plain Sparse matrices once, up front — spec §4.6's "the
// interface pre-extracts flat matrices ... for the duration of the call" —
// so the BFS loop below never re-acquires the relation's mutex per step.
func flatAdjacency(s *store.Store, r ids.RelationId, dir store.Direction) (out, in *matrix.Sparse[deltamatrix.Entry], err error) {
	rm, err := s.GetRelationMatrix(r)
	if err != nil {
		return nil, nil, err
	}
	if dir == store.Out || dir == store.Both {
		out = rm.Export()
	}
	if dir == store.In || dir == store.Both {
		if twin := rm.Twin(); twin != nil {
			in = twin.Export()
		} else {
			in = matrix.NewSparse[deltamatrix.Entry](rm.Rows(), rm.Cols())
		}
	}
	return out, in, nil
}

func neighboursOf(node ids.NodeId, out, in *matrix.Sparse[deltamatrix.Entry]) []ids.NodeId {
	var result []ids.NodeId
	row := int(node)
	if out != nil {
		it := out.RowIterator(row, row)
		for {
			_, j, _, ok := it.Next()
			if !ok {
				break
			}
			result = append(result, ids.NodeId(j))
		}
	}
	if in != nil {
		it := in.RowIterator(row, row)
		for {
			_, j, _, ok := it.Next()
			if !ok {
				break
			}
			result = append(result, ids.NodeId(j))
		}
	}
	return result
}

// BFSReachability runs a single-source BFS over relation r (in the given
// direction), clipping results beyond maxDepth (0 means unbounded). Parent
// links are only recorded when withParent is true.
func BFSReachability(s *store.Store, src ids.NodeId, dir store.Direction, r ids.RelationId, maxDepth int, withParent bool) (*Reachable, error) {
	out, in, err := flatAdjacency(s, r, dir)
	if err != nil {
		return nil, err
	}

	res := &Reachable{Depth: map[ids.NodeId]int{src: 0}}
	if withParent {
		res.Parent = make(map[ids.NodeId]ids.NodeId)
	}
	res.Nodes = append(res.Nodes, src)

	queue := []ids.NodeId{src}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		d := res.Depth[n]
		if maxDepth > 0 && d >= maxDepth {
			continue
		}
		for _, nb := range neighboursOf(n, out, in) {
			if _, seen := res.Depth[nb]; seen {
				continue
			}
			res.Depth[nb] = d + 1
			if withParent {
				res.Parent[nb] = n
			}
			res.Nodes = append(res.Nodes, nb)
			queue = append(queue, nb)
		}
	}
	return res, nil
}
