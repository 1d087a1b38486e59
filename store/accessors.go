package store

import (
	"github.com/katalvlaran/graphcore/deltamatrix"
	"github.com/katalvlaran/graphcore/ids"
)

// applySyncPolicyLocked resizes (and, under FLUSH_RESIZE, flushes) d
// according to the store's installed SyncPolicy. Callers must hold at
// least s.mu.RLock — matrix-level synchronization is d's own mutex.
func (s *Store) applySyncPolicyLocked(d *deltamatrix.DeltaMatrix[bool]) {
	n := s.capacityLocked()
	switch s.SyncPolicy() {
	case NOP:
		return
	case ResizeOnly:
		d.Resize(n, n)
	case FlushResize:
		d.Resize(n, n)
		d.Wait(false)
	}
}

func (s *Store) applyRelationSyncPolicyLocked(r *deltamatrix.RelationMatrix) {
	n := s.capacityLocked()
	switch s.SyncPolicy() {
	case NOP:
		return
	case ResizeOnly:
		r.Resize(n, n)
	case FlushResize:
		r.Resize(n, n)
		r.Wait(false)
	}
}

// GetLabelMatrix returns the Delta-Matrix backing label, after applying the
// store's current sync policy.
func (s *Store) GetLabelMatrix(l ids.LabelId) (*deltamatrix.DeltaMatrix[bool], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(l) < 0 || int(l) >= len(s.labels) {
		return nil, ids.ErrInvalidArgument
	}
	m := s.labels[l]
	s.applySyncPolicyLocked(m)
	return m, nil
}

// GetRelationMatrix returns the Delta-Matrix backing relation r, after
// applying the store's current sync policy.
func (s *Store) GetRelationMatrix(r ids.RelationId) (*deltamatrix.RelationMatrix, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(r) < 0 || int(r) >= len(s.relations) {
		return nil, ids.ErrInvalidArgument
	}
	rm := s.relations[r]
	s.applyRelationSyncPolicyLocked(rm)
	return rm, nil
}

// GetAdjacencyMatrix returns the store's global adjacency matrix, after
// applying the store's current sync policy.
func (s *Store) GetAdjacencyMatrix() *deltamatrix.DeltaMatrix[bool] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.applySyncPolicyLocked(s.adjacency)
	return s.adjacency
}
