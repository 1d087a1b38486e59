// Package store implements the Graph Store (spec §4.3): the catalog of
// nodes and edges, the label/relation/adjacency Delta-Matrices that encode
// the graph's structure, and the sync-policy machinery that resizes and
// flushes those matrices on access.
//
// Concurrency: Store.mu is a writer-preference sync.RWMutex guarding the
// node/edge slabs and matrix-list growth (spec §5's "acquire_read_lock" /
// "acquire_write_lock"); the finer-grained locking inside each
// deltamatrix.DeltaMatrix handles cell-level mutation independently. Store
// declares a writelocked flag, but no method sets or reads it; writers are
// excluded from readers by Store.mu alone.
package store

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/katalvlaran/graphcore/deltamatrix"
	"github.com/katalvlaran/graphcore/graphlog"
	"github.com/katalvlaran/graphcore/ids"
	"github.com/katalvlaran/graphcore/mvcc"
)

// Store is the graph's structural state: node/edge catalogs plus the
// boolean/uint64 Delta-Matrices that encode labels, relations, and
// adjacency.
type Store struct {
	mu          sync.RWMutex
	writelocked atomic.Bool

	broker *mvcc.Broker

	nodes     []nodeSlot
	freeNodes []ids.NodeId
	edges     []edgeSlot
	freeEdges []ids.EdgeId

	labelNames  []string
	labelByName map[string]ids.LabelId
	labels      []*deltamatrix.DeltaMatrix[bool]
	labelCounts []int64

	relationNames  []string
	relationByName map[string]ids.RelationId
	relations      []*deltamatrix.RelationMatrix
	relationCounts []int64

	adjacency  *deltamatrix.DeltaMatrix[bool]
	nodeLabels *deltamatrix.DeltaMatrix[bool]

	syncPolicy     atomic.Int32
	flushThreshold int

	metrics *storeMetrics
	log     *graphlog.Logger
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithBroker installs the mvcc.Broker returned by Broker(); if omitted,
// NewStore allocates a private one. The store's write paths do not commit
// versions on it.
func WithBroker(b *mvcc.Broker) Option {
	return func(s *Store) { s.broker = b }
}

// WithMetrics creates the store's per-label/per-relation gauges under
// namespace; it does not register them (Collectors returns them for
// registration). See metrics.go.
func WithMetrics(namespace string) Option {
	return func(s *Store) { s.metrics = newStoreMetrics(namespace) }
}

// WithFlushThreshold overrides the flush threshold every matrix the store
// allocates (adjacency, node-labels, and every label/relation matrix) is
// constructed with.
func WithFlushThreshold(n int) Option {
	return func(s *Store) { s.flushThreshold = n }
}

// WithLogger attaches a structured logger the store uses for debug-level
// tracing of structural mutations; omit this to log nowhere.
func WithLogger(l *graphlog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore constructs an empty Store with FLUSH_RESIZE as its initial sync
// policy.
func NewStore(opts ...Option) *Store {
	s := &Store{
		labelByName:    make(map[string]ids.LabelId),
		relationByName: make(map[string]ids.RelationId),
		adjacency:      deltamatrix.NewBool(0, 0, true),
		nodeLabels:     deltamatrix.NewBool(0, 0, false),
	}
	s.syncPolicy.Store(int32(FlushResize))
	for _, opt := range opts {
		opt(s)
	}
	if s.broker == nil {
		s.broker = mvcc.NewBroker()
	}
	if s.flushThreshold > 0 {
		s.adjacency.SetFlushThreshold(s.flushThreshold)
		s.nodeLabels.SetFlushThreshold(s.flushThreshold)
	}
	if s.log == nil {
		s.log = graphlog.NewNop()
	}
	return s
}

// Broker returns the store's version broker.
func (s *Store) Broker() *mvcc.Broker { return s.broker }

// SyncPolicy reports the currently installed policy.
func (s *Store) SyncPolicy() SyncPolicy { return SyncPolicy(s.syncPolicy.Load()) }

// SetSyncPolicy installs p atomically; per spec §4.3 this is callable
// without the store's lock held since it is a single atomic store.
func (s *Store) SetSyncPolicy(p SyncPolicy) { s.syncPolicy.Store(int32(p)) }

// capacityLocked returns N, the current node-id capacity (slab length, including
// dead slots pending reuse). Callers must hold s.mu.
func (s *Store) capacityLocked() int { return len(s.nodes) }

// AddLabel registers a new label name and allocates its diagonal
// Delta-Matrix sized to the store's current capacity.
func (s *Store) AddLabel(name string) ids.LabelId {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.labelByName[name]; ok {
		return id
	}
	id := ids.LabelId(len(s.labelNames))
	s.labelNames = append(s.labelNames, name)
	s.labelByName[name] = id
	n := s.capacityLocked()
	lm := deltamatrix.NewBool(n, n, false)
	if s.flushThreshold > 0 {
		lm.SetFlushThreshold(s.flushThreshold)
	}
	s.labels = append(s.labels, lm)
	s.labelCounts = append(s.labelCounts, 0)
	return id
}

// AddRelation registers a new relation name and allocates its
// multi-edge-capable, transpose-maintained Delta-Matrix.
func (s *Store) AddRelation(name string) ids.RelationId {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.relationByName[name]; ok {
		return id
	}
	id := ids.RelationId(len(s.relationNames))
	s.relationNames = append(s.relationNames, name)
	s.relationByName[name] = id
	n := s.capacityLocked()
	rm := deltamatrix.NewRelationMatrix(n, n)
	if s.flushThreshold > 0 {
		rm.SetFlushThreshold(s.flushThreshold)
	}
	s.relations = append(s.relations, rm)
	s.relationCounts = append(s.relationCounts, 0)
	return id
}

// LabelName / RelationName resolve a registered id back to its name.
func (s *Store) LabelName(id ids.LabelId) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(s.labelNames) {
		return ""
	}
	return s.labelNames[id]
}

// LabelID resolves a label name to its id, if registered.
func (s *Store) LabelID(name string) (ids.LabelId, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.labelByName[name]
	return id, ok
}

// RelationID resolves a relation name to its id, if registered.
func (s *Store) RelationID(name string) (ids.RelationId, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.relationByName[name]
	return id, ok
}

// RelationIDs returns every currently registered relation id, in
// registration order.
func (s *Store) RelationIDs() []ids.RelationId {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ids.RelationId, len(s.relations))
	for i := range s.relations {
		out[i] = ids.RelationId(i)
	}
	return out
}

// NodeExists reports whether n currently names a live node.
func (s *Store) NodeExists(n ids.NodeId) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int(n) >= 0 && int(n) < len(s.nodes) && s.nodes[n].alive
}

func (s *Store) RelationName(id ids.RelationId) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(s.relationNames) {
		return ""
	}
	return s.relationNames[id]
}

// growLocked grows every matrix to n x n (node-labels included, since spec
// §4.3 keeps it "square physically by N"). Callers must hold s.mu for
// writing.
func (s *Store) growLocked(n int) {
	s.adjacency.Resize(n, n)
	s.nodeLabels.Resize(n, n)
	for _, l := range s.labels {
		l.Resize(n, n)
	}
	for _, r := range s.relations {
		r.Resize(n, n)
	}
}

// CreateNode allocates a node slot (reusing a free one if available), sets
// its diagonal label-matrix cells and node-labels row, and bumps per-label
// counts. Ensures every matrix is sized to at least n+1.
func (s *Store) CreateNode(labels []ids.LabelId) (ids.NodeId, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n ids.NodeId
	if len(s.freeNodes) > 0 {
		n = s.freeNodes[len(s.freeNodes)-1]
		s.freeNodes = s.freeNodes[:len(s.freeNodes)-1]
		s.nodes[n] = nodeSlot{alive: true}
	} else {
		n = ids.NodeId(len(s.nodes))
		s.nodes = append(s.nodes, nodeSlot{alive: true})
		s.growLocked(len(s.nodes))
	}

	row := int(n)
	for _, l := range labels {
		if int(l) < 0 || int(l) >= len(s.labels) {
			return 0, fmt.Errorf("store: create_node: %w: unregistered label %d", ids.ErrInvalidArgument, l)
		}
		s.labels[l].Set(row, row, true)
		s.nodeLabels.Set(row, int(l), true)
		s.labelCounts[l]++
	}
	s.updateLabelGauges()
	s.log.Debug("create_node", zap.Uint64("node", uint64(n)), zap.Int("labels", len(labels)))
	return n, nil
}

// DeleteNode returns node n's slot to the free-list. Precondition: the
// caller has already removed every edge incident on n (spec §4.3); this is
// a caller-error assertion, not a recoverable condition, when violated —
// DeleteNode does not scan the adjacency matrix to verify it.
func (s *Store) DeleteNode(n ids.NodeId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteNodeLocked(n)
}

func (s *Store) deleteNodeLocked(n ids.NodeId) error {
	if int(n) < 0 || int(n) >= len(s.nodes) || !s.nodes[n].alive {
		return fmt.Errorf("store: delete_node: %w", ids.ErrNotFound)
	}
	row := int(n)
	for l, lm := range s.labels {
		if _, ok := lm.Get(row, row); ok {
			lm.Remove(row, row)
			s.labelCounts[l]--
		}
	}
	it := deltamatrix.Attach(s.nodeLabels, row, row)
	for {
		_, col, _, err := it.Next()
		if err != nil {
			break
		}
		s.nodeLabels.Remove(row, col)
	}
	s.nodes[n] = nodeSlot{alive: false}
	s.freeNodes = append(s.freeNodes, n)
	s.updateLabelGauges()
	s.log.Debug("delete_node", zap.Uint64("node", uint64(n)))
	return nil
}

// CreateEdge allocates an edge slot between existing nodes s and d under a
// registered relation r, sets A[s,d] and accumulates the new EdgeId into
// R_r[s,d] (promoting to multi-edge as needed).
func (s *Store) CreateEdge(src, dst ids.NodeId, r ids.RelationId) (ids.EdgeId, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if int(src) < 0 || int(src) >= len(s.nodes) || !s.nodes[src].alive {
		return 0, fmt.Errorf("store: create_edge: %w: src", ids.ErrNotFound)
	}
	if int(dst) < 0 || int(dst) >= len(s.nodes) || !s.nodes[dst].alive {
		return 0, fmt.Errorf("store: create_edge: %w: dst", ids.ErrNotFound)
	}
	if int(r) < 0 || int(r) >= len(s.relations) {
		return 0, fmt.Errorf("store: create_edge: %w: unregistered relation %d", ids.ErrInvalidArgument, r)
	}

	var e ids.EdgeId
	if len(s.freeEdges) > 0 {
		e = s.freeEdges[len(s.freeEdges)-1]
		s.freeEdges = s.freeEdges[:len(s.freeEdges)-1]
		s.edges[e] = edgeSlot{alive: true, src: src, dst: dst, relation: r}
	} else {
		e = ids.EdgeId(len(s.edges))
		s.edges = append(s.edges, edgeSlot{alive: true, src: src, dst: dst, relation: r})
	}

	s.adjacency.Set(int(src), int(dst), true)
	s.relations[r].AccumulateEdge(int(src), int(dst), e)
	s.relationCounts[r]++
	s.updateRelationGauges()
	s.log.Debug("create_edge",
		zap.Uint64("edge", uint64(e)),
		zap.Uint64("src", uint64(src)),
		zap.Uint64("dst", uint64(dst)),
		zap.Int("relation", int(r)),
	)
	return e, nil
}

// DeleteEdge removes e from its relation matrix cell; if the cell becomes
// empty and no other relation still connects src→dst, clears A[src,dst].
func (s *Store) DeleteEdge(e ids.EdgeId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteEdgeLocked(e)
}

func (s *Store) deleteEdgeLocked(e ids.EdgeId) error {
	if int(e) < 0 || int(e) >= len(s.edges) || !s.edges[e].alive {
		return fmt.Errorf("store: delete_edge: %w", ids.ErrNotFound)
	}
	slot := s.edges[e]
	if err := s.relations[slot.relation].RemoveEdge(int(slot.src), int(slot.dst), e); err != nil {
		return fmt.Errorf("store: delete_edge: %w", err)
	}
	s.relationCounts[slot.relation]--

	stillConnected := false
	for _, r := range s.relations {
		if _, ok := r.Get(int(slot.src), int(slot.dst)); ok {
			stillConnected = true
			break
		}
	}
	if !stillConnected {
		s.adjacency.Remove(int(slot.src), int(slot.dst))
	}

	s.edges[e] = edgeSlot{alive: false}
	s.freeEdges = append(s.freeEdges, e)
	s.updateRelationGauges()
	s.log.Debug("delete_edge", zap.Uint64("edge", uint64(e)))
	return nil
}

// EdgesConnecting extracts edges s→d for relation r, or across every
// registered relation when r is ids.NoRelation.
func (s *Store) EdgesConnecting(src, dst ids.NodeId, r ids.RelationId) ([]Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Edge
	resolve := func(rel ids.RelationId, rm *deltamatrix.RelationMatrix) {
		entry, ok := rm.Get(int(src), int(dst))
		if !ok {
			return
		}
		for _, eid := range entry.EdgeIds() {
			out = append(out, Edge{ID: eid, Src: src, Dst: dst, Relation: rel})
		}
	}

	if r == ids.NoRelation {
		for i, rm := range s.relations {
			resolve(ids.RelationId(i), rm)
		}
		return out, nil
	}
	if int(r) < 0 || int(r) >= len(s.relations) {
		return nil, fmt.Errorf("store: edges_connecting: %w: unregistered relation %d", ids.ErrInvalidArgument, r)
	}
	resolve(r, s.relations[r])
	return out, nil
}

// NodeEdges attaches an iterator at row n of R_r (OUT), its transpose twin
// (IN), or both, resolving each neighbour column to its edges.
func (s *Store) NodeEdges(n ids.NodeId, dir Direction, r ids.RelationId) ([]Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if int(r) < 0 || int(r) >= len(s.relations) {
		return nil, fmt.Errorf("store: node_edges: %w: unregistered relation %d", ids.ErrInvalidArgument, r)
	}
	row := int(n)
	var out []Edge

	walk := func(rm *deltamatrix.RelationMatrix, outgoing bool) {
		it := deltamatrix.Attach(rm.DeltaMatrix, row, row)
		for {
			i, j, entry, err := it.Next()
			if err != nil {
				break
			}
			src, dst := ids.NodeId(i), ids.NodeId(j)
			if !outgoing {
				src, dst = dst, src
			}
			for _, eid := range entry.EdgeIds() {
				out = append(out, Edge{ID: eid, Src: src, Dst: dst, Relation: r})
			}
		}
	}

	rm := s.relations[r]
	if dir == Out || dir == Both {
		walk(rm, true)
	}
	if dir == In || dir == Both {
		walk(&deltamatrix.RelationMatrix{DeltaMatrix: rm.Twin()}, false)
	}
	return out, nil
}

// LabelsOf returns every label id set on node n (iterates row n of NL).
func (s *Store) LabelsOf(n ids.NodeId) ([]ids.LabelId, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if int(n) < 0 || int(n) >= len(s.nodes) || !s.nodes[n].alive {
		return nil, fmt.Errorf("store: labels_of: %w", ids.ErrNotFound)
	}
	var out []ids.LabelId
	it := deltamatrix.Attach(s.nodeLabels, int(n), int(n))
	for {
		_, col, _, err := it.Next()
		if err != nil {
			break
		}
		out = append(out, ids.LabelId(col))
	}
	return out, nil
}

// ApplyPending walks every matrix the store owns and calls Wait(forceSync)
// on it: each is flushed when forceSync is set or its pending count has
// reached its flush threshold.
func (s *Store) ApplyPending(forceSync bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.adjacency.Wait(forceSync)
	s.nodeLabels.Wait(forceSync)
	for _, l := range s.labels {
		l.Wait(forceSync)
	}
	for _, r := range s.relations {
		r.Wait(forceSync)
	}
}

// Stats returns a point-in-time snapshot of node/edge/label/relation counts.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{
		LabelCounts:    make(map[string]int64, len(s.labelNames)),
		RelationCounts: make(map[string]int64, len(s.relationNames)),
	}
	for _, n := range s.nodes {
		if n.alive {
			st.NodeCount++
		}
	}
	for _, e := range s.edges {
		if e.alive {
			st.EdgeCount++
		}
	}
	for i, name := range s.labelNames {
		st.LabelCounts[name] = s.labelCounts[i]
	}
	for i, name := range s.relationNames {
		st.RelationCounts[name] = s.relationCounts[i]
	}
	return st
}

func (s *Store) updateLabelGauges() {
	if s.metrics == nil {
		return
	}
	for i, name := range s.labelNames {
		s.metrics.nodesByLabel.WithLabelValues(name).Set(float64(s.labelCounts[i]))
	}
}

func (s *Store) updateRelationGauges() {
	if s.metrics == nil {
		return
	}
	for i, name := range s.relationNames {
		s.metrics.edgesByRelation.WithLabelValues(name).Set(float64(s.relationCounts[i]))
	}
}
