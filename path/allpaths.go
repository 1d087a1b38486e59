package path

import (
	"github.com/katalvlaran/graphcore/ids"
	"github.com/katalvlaran/graphcore/store"
)

// frame holds the not-yet-tried candidates at one depth of the DFS stack.
type frame struct {
	candidates []candidate
}

// AllPaths is a resumable, stack-based DFS over store: each call to Next
// either returns the next path in depth-first order or ids.ErrExhausted
// once every path admitted by Options has been produced.
//
// A node may appear at most twice on any returned path — closing a cycle is
// allowed, but the engine never expands past a node it has already visited
// once on the current path (spec §4.6's cycle-closure-once rule).
type AllPaths struct {
	s    *store.Store
	opts Options

	nodes     []ids.NodeId
	edges     []ids.EdgeId
	frames    []frame
	done      bool
	rootAsked bool
}

// NewAllPaths starts an All-paths DFS rooted at src.
func NewAllPaths(s *store.Store, src ids.NodeId, opts Options) *AllPaths {
	a := &AllPaths{s: s, opts: opts, nodes: []ids.NodeId{src}}
	a.frames = []frame{{candidates: expand(s, src, a.nodes, a.edges, 0, opts)}}
	return a
}

// Next advances the DFS and returns the next admissible path. The returned
// Path aliases internal state; clone it before the following Next call.
func (a *AllPaths) Next() (Path, error) {
	if !a.rootAsked {
		a.rootAsked = true
		if a.opts.MinLen <= 0 && 0 <= a.opts.MaxLen && a.opts.destMatches(a.nodes[0]) {
			return Path{Nodes: a.nodes, Edges: a.edges}, nil
		}
	}
	for {
		if a.done || len(a.nodes) == 0 {
			a.done = true
			return Path{}, ids.ErrExhausted
		}

		depth := len(a.edges)
		top := &a.frames[depth]

		if len(top.candidates) == 0 {
			// No unexpanded neighbours remain at this depth: backtrack.
			a.frames = a.frames[:depth]
			if depth == 0 {
				a.nodes = nil
				continue
			}
			a.nodes = a.nodes[:len(a.nodes)-1]
			a.edges = a.edges[:len(a.edges)-1]
			continue
		}

		c := top.candidates[len(top.candidates)-1]
		top.candidates = top.candidates[:len(top.candidates)-1]

		cycleClosed := containsNode(a.nodes, c.node)
		a.nodes = append(a.nodes, c.node)
		a.edges = append(a.edges, c.edge)
		newDepth := depth + 1

		canExpand := newDepth < a.opts.MaxLen && !cycleClosed
		if canExpand {
			a.frames = append(a.frames, frame{candidates: expand(a.s, c.node, a.nodes, a.edges, newDepth, a.opts)})
		} else {
			a.frames = append(a.frames, frame{})
		}

		if newDepth >= a.opts.MinLen && newDepth <= a.opts.MaxLen && a.opts.destMatches(c.node) {
			return Path{Nodes: a.nodes, Edges: a.edges}, nil
		}
		// Not a valid return point: if it couldn't be expanded either,
		// backtrack immediately instead of looping through an empty frame.
		if !canExpand {
			a.frames = a.frames[:len(a.frames)-1]
			a.nodes = a.nodes[:len(a.nodes)-1]
			a.edges = a.edges[:len(a.edges)-1]
		}
	}
}
