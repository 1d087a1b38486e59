package store

import "github.com/katalvlaran/graphcore/ids"

// Direction selects which side of a relation matrix NodeEdges walks: OUT
// reads R_r itself (row n = outgoing edges), IN reads its transpose twin
// (row n = incoming edges), BOTH merges both.
type Direction int

const (
	Out Direction = iota
	In
	Both
)

// Edge is a resolved, read-only view of one stored edge.
type Edge struct {
	ID       ids.EdgeId
	Src      ids.NodeId
	Dst      ids.NodeId
	Relation ids.RelationId
}

// nodeSlot is one entry of the node slab. A dead slot (alive == false) sits
// on the free-list awaiting reuse by a later CreateNode.
type nodeSlot struct {
	alive bool
	attrs ids.AttributeSet
}

// edgeSlot is one entry of the edge slab, caching the endpoints and relation
// so DeleteEdge and EdgesConnecting don't need a matrix scan to find them.
type edgeSlot struct {
	alive    bool
	src      ids.NodeId
	dst      ids.NodeId
	relation ids.RelationId
	attrs    ids.AttributeSet
}

// Stats is a point-in-time snapshot of the store's size, mirroring the
// per-label/per-relation counters spec §4.3 keeps incrementally.
type Stats struct {
	NodeCount      int
	EdgeCount      int
	LabelCounts    map[string]int64
	RelationCounts map[string]int64
}
