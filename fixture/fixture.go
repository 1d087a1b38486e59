// Package fixture loads a small YAML description of a graph into a
// store.Store, for cmd/graphctl and for tests that want a larger graph
// than a handful of inline CreateNode calls.
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/graphcore/ids"
	"github.com/katalvlaran/graphcore/store"
)

// Graph is the on-disk fixture shape: a flat node/edge list referencing
// each other by the fixture's own small integer ids, which need not match
// the ids.NodeId the store ultimately assigns.
type Graph struct {
	Labels    []string   `yaml:"labels"`
	Relations []string   `yaml:"relations"`
	Nodes     []NodeSpec `yaml:"nodes"`
	Edges     []EdgeSpec `yaml:"edges"`
}

// NodeSpec is one fixture node. ID is the fixture-local reference used by
// EdgeSpec.Src/Dst below; it plays no role in the store once loaded.
type NodeSpec struct {
	ID     int      `yaml:"id"`
	Labels []string `yaml:"labels"`
}

// EdgeSpec is one fixture edge, referencing NodeSpec.ID on both ends.
type EdgeSpec struct {
	Src      int    `yaml:"src"`
	Dst      int    `yaml:"dst"`
	Relation string `yaml:"relation"`
}

// Load reads a YAML fixture from path and parses it without touching a
// store; callers needing the parsed shape alone (e.g. validation tooling)
// can call this directly instead of Populate.
func Load(path string) (*Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: load %s: %w", path, err)
	}
	var g Graph
	if err := yaml.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("fixture: parse %s: %w", path, err)
	}
	return &g, nil
}

// Populate registers g's labels and relations against s, creates every
// node and edge, and returns the fixture-id -> store-id node mapping so
// a caller can pick a concrete src/dest for a traversal by fixture id.
func Populate(s *store.Store, g *Graph) (map[int]ids.NodeId, error) {
	labelIDs := make(map[string]ids.LabelId, len(g.Labels))
	for _, name := range g.Labels {
		labelIDs[name] = s.AddLabel(name)
	}
	relationIDs := make(map[string]ids.RelationId, len(g.Relations))
	for _, name := range g.Relations {
		relationIDs[name] = s.AddRelation(name)
	}

	nodeIDs := make(map[int]ids.NodeId, len(g.Nodes))
	for _, spec := range g.Nodes {
		labels := make([]ids.LabelId, len(spec.Labels))
		for i, name := range spec.Labels {
			l, ok := labelIDs[name]
			if !ok {
				return nil, fmt.Errorf("fixture: node %d: %w: label %q not declared", spec.ID, ids.ErrInvalidArgument, name)
			}
			labels[i] = l
		}
		n, err := s.CreateNode(labels)
		if err != nil {
			return nil, fmt.Errorf("fixture: node %d: %w", spec.ID, err)
		}
		nodeIDs[spec.ID] = n
	}

	for i, spec := range g.Edges {
		src, ok := nodeIDs[spec.Src]
		if !ok {
			return nil, fmt.Errorf("fixture: edge %d: %w: unknown src node %d", i, ids.ErrInvalidArgument, spec.Src)
		}
		dst, ok := nodeIDs[spec.Dst]
		if !ok {
			return nil, fmt.Errorf("fixture: edge %d: %w: unknown dst node %d", i, ids.ErrInvalidArgument, spec.Dst)
		}
		r, ok := relationIDs[spec.Relation]
		if !ok {
			return nil, fmt.Errorf("fixture: edge %d: %w: relation %q not declared", i, ids.ErrInvalidArgument, spec.Relation)
		}
		if _, err := s.CreateEdge(src, dst, r); err != nil {
			return nil, fmt.Errorf("fixture: edge %d: %w", i, err)
		}
	}

	return nodeIDs, nil
}
