package path

import (
	"github.com/katalvlaran/graphcore/ids"
	"github.com/katalvlaran/graphcore/store"
)

func flip(d store.Direction) store.Direction {
	switch d {
	case store.Out:
		return store.In
	case store.In:
		return store.Out
	default:
		return store.Both
	}
}

// ShortestPaths enumerates every shortest path from src to dest via
// spec §4.6's two-phase algorithm: a forward BFS (Phase A) records each
// reachable node's distance from src, then a reverse DFS (Phase B) walks
// back from dest, at each step only following edges into a neighbour whose
// forward distance is exactly one less than the current node's — which
// guarantees every enumerated path has minimum length, and that all of
// them do.
type ShortestPaths struct {
	s       *store.Store
	opts    Options
	dest    ids.NodeId
	reach   *Reachable
	nodes   []ids.NodeId
	edges   []ids.EdgeId
	frames  []frame
	done    bool
	noPaths bool
	trivial bool
}

// NewShortestPaths runs Phase A and prepares the Phase B iterator. If dest
// is unreachable from src within opts.MaxLen, the returned iterator's Next
// immediately reports ids.ErrExhausted.
func NewShortestPaths(s *store.Store, src, dest ids.NodeId, opts Options) (*ShortestPaths, error) {
	reach, err := forwardReachability(s, src, opts)
	if err != nil {
		return nil, err
	}
	sp := &ShortestPaths{s: s, opts: opts, dest: dest, reach: reach}
	if _, ok := reach.Depth[dest]; !ok {
		sp.noPaths = true
		return sp, nil
	}
	if src == dest {
		sp.trivial = true
		return sp, nil
	}
	sp.nodes = []ids.NodeId{dest}
	sp.frames = []frame{{candidates: sp.expandBackward(dest)}}
	return sp, nil
}

// forwardReachability is Phase A: a BFS from src over opts.Direction and
// opts.Relations, bounded by opts.MaxLen.
func forwardReachability(s *store.Store, src ids.NodeId, opts Options) (*Reachable, error) {
	res := &Reachable{Depth: map[ids.NodeId]int{src: 0}, Nodes: []ids.NodeId{src}}
	queue := []ids.NodeId{src}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		d := res.Depth[n]
		if opts.MaxLen > 0 && d >= opts.MaxLen {
			continue
		}
		for _, c := range expand(s, n, nil, nil, d, opts) {
			if _, seen := res.Depth[c.node]; seen {
				continue
			}
			res.Depth[c.node] = d + 1
			res.Nodes = append(res.Nodes, c.node)
			queue = append(queue, c.node)
		}
	}
	return res, nil
}

// expandBackward gathers every neighbour of node whose forward distance is
// exactly one less than node's — the only neighbours a shortest path may
// step through on the way back to src.
func (sp *ShortestPaths) expandBackward(node ids.NodeId) []candidate {
	want := sp.reach.Depth[node] - 1
	reverseOpts := sp.opts
	reverseOpts.Direction = flip(sp.opts.Direction)
	raw := expand(sp.s, node, nil, nil, 0, reverseOpts)
	out := raw[:0]
	for _, c := range raw {
		if d, ok := sp.reach.Depth[c.node]; ok && d == want {
			out = append(out, c)
		}
	}
	return out
}

// Next returns the next shortest path, or ids.ErrExhausted once every
// shortest path from src to dest has been produced.
func (sp *ShortestPaths) Next() (Path, error) {
	if sp.noPaths {
		return Path{}, ids.ErrExhausted
	}
	if sp.trivial {
		sp.trivial = false
		return Path{Nodes: []ids.NodeId{sp.dest}}, nil
	}
	for {
		if sp.done || len(sp.nodes) == 0 {
			sp.done = true
			return Path{}, ids.ErrExhausted
		}

		depth := len(sp.edges)
		top := &sp.frames[depth]

		if len(top.candidates) == 0 {
			sp.frames = sp.frames[:depth]
			if depth == 0 {
				sp.nodes = nil
				continue
			}
			sp.nodes = sp.nodes[:len(sp.nodes)-1]
			sp.edges = sp.edges[:len(sp.edges)-1]
			continue
		}

		c := top.candidates[len(top.candidates)-1]
		top.candidates = top.candidates[:len(top.candidates)-1]

		sp.nodes = append(sp.nodes, c.node)
		sp.edges = append(sp.edges, c.edge)

		if sp.reach.Depth[c.node] == 0 {
			// Reached src: reverse nodes/edges into src-to-dest order and
			// emit. The path stays live only until the next Next call.
			rn := make([]ids.NodeId, len(sp.nodes))
			re := make([]ids.EdgeId, len(sp.edges))
			for i, n := range sp.nodes {
				rn[len(rn)-1-i] = n
			}
			for i, e := range sp.edges {
				re[len(re)-1-i] = e
			}
			sp.frames = append(sp.frames, frame{})
			return Path{Nodes: rn, Edges: re}, nil
		}

		sp.frames = append(sp.frames, frame{candidates: sp.expandBackward(c.node)})
	}
}
