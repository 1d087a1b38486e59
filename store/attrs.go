package store

import (
	"fmt"

	"github.com/katalvlaran/graphcore/ids"
)

// NodeAttribute returns the value stored under id on node n (spec §3.2's
// "attributes (ordered sequence of (AttributeId, Value))").
func (s *Store) NodeAttribute(n ids.NodeId, id ids.AttributeId) (ids.Value, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(n) < 0 || int(n) >= len(s.nodes) || !s.nodes[n].alive {
		return ids.Value{}, false, fmt.Errorf("store: node_attribute: %w", ids.ErrNotFound)
	}
	v, ok := s.nodes[n].attrs.Get(id)
	return v, ok, nil
}

// SetNodeAttribute assigns value under id on node n, copy-on-write at this
// API boundary (ids.AttributeSet.Set clones container-typed values).
// Setting value to NULL removes the attribute (spec §3.2 invariant).
func (s *Store) SetNodeAttribute(n ids.NodeId, id ids.AttributeId, value ids.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(n) < 0 || int(n) >= len(s.nodes) || !s.nodes[n].alive {
		return fmt.Errorf("store: set_node_attribute: %w", ids.ErrNotFound)
	}
	s.nodes[n].attrs.Set(id, value)
	return nil
}

// RemoveNodeAttribute deletes the attribute under id on node n, if present.
// Idempotent.
func (s *Store) RemoveNodeAttribute(n ids.NodeId, id ids.AttributeId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(n) < 0 || int(n) >= len(s.nodes) || !s.nodes[n].alive {
		return fmt.Errorf("store: remove_node_attribute: %w", ids.ErrNotFound)
	}
	s.nodes[n].attrs.Remove(id)
	return nil
}

// NodeAttributes calls fn for every (AttributeId, Value) pair on node n, in
// insertion order. Returning false from fn stops iteration early.
func (s *Store) NodeAttributes(n ids.NodeId, fn func(ids.AttributeId, ids.Value) bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(n) < 0 || int(n) >= len(s.nodes) || !s.nodes[n].alive {
		return fmt.Errorf("store: node_attributes: %w", ids.ErrNotFound)
	}
	s.nodes[n].attrs.Each(fn)
	return nil
}

// EdgeAttribute returns the value stored under id on edge e.
func (s *Store) EdgeAttribute(e ids.EdgeId, id ids.AttributeId) (ids.Value, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(e) < 0 || int(e) >= len(s.edges) || !s.edges[e].alive {
		return ids.Value{}, false, fmt.Errorf("store: edge_attribute: %w", ids.ErrNotFound)
	}
	v, ok := s.edges[e].attrs.Get(id)
	return v, ok, nil
}

// SetEdgeAttribute assigns value under id on edge e; setting value to NULL
// removes the attribute.
func (s *Store) SetEdgeAttribute(e ids.EdgeId, id ids.AttributeId, value ids.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(e) < 0 || int(e) >= len(s.edges) || !s.edges[e].alive {
		return fmt.Errorf("store: set_edge_attribute: %w", ids.ErrNotFound)
	}
	s.edges[e].attrs.Set(id, value)
	return nil
}

// RemoveEdgeAttribute deletes the attribute under id on edge e, if present.
func (s *Store) RemoveEdgeAttribute(e ids.EdgeId, id ids.AttributeId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(e) < 0 || int(e) >= len(s.edges) || !s.edges[e].alive {
		return fmt.Errorf("store: remove_edge_attribute: %w", ids.ErrNotFound)
	}
	s.edges[e].attrs.Remove(id)
	return nil
}

// EdgeAttributes calls fn for every (AttributeId, Value) pair on edge e, in
// insertion order.
func (s *Store) EdgeAttributes(e ids.EdgeId, fn func(ids.AttributeId, ids.Value) bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(e) < 0 || int(e) >= len(s.edges) || !s.edges[e].alive {
		return fmt.Errorf("store: edge_attributes: %w", ids.ErrNotFound)
	}
	s.edges[e].attrs.Each(fn)
	return nil
}
