package store

import (
	"context"
	"fmt"

	"github.com/katalvlaran/graphcore/concurrency"
	"github.com/katalvlaran/graphcore/ids"
)

// NodeSpec describes one node a bulk load should create, by label name
// rather than pre-resolved id — the names still need registry lookups,
// which is the part BulkCreateNodes parallelizes.
type NodeSpec struct {
	Labels []string
}

// BulkCreateNodes resolves every spec's label names against the store's
// registry concurrently (bounded by pool), then creates the nodes
// sequentially under the store's own lock — label lookup is read-only and
// embarrassingly parallel, while the node slab mutation it feeds into
// is not, so only the first half is handed to the pool. Returns
// ids.ErrInvalidArgument wrapped with the offending spec's index if any
// spec names an unregistered label.
func (s *Store) BulkCreateNodes(ctx context.Context, pool concurrency.Pool, specs []NodeSpec) ([]ids.NodeId, error) {
	resolved := make([][]ids.LabelId, len(specs))
	for i, spec := range specs {
		i, spec := i, spec
		pool.Go(func(ctx context.Context) error {
			labels := make([]ids.LabelId, len(spec.Labels))
			for j, name := range spec.Labels {
				id, ok := s.LabelID(name)
				if !ok {
					return fmt.Errorf("store: bulk_create_nodes: spec %d: %w: unregistered label %q", i, ids.ErrInvalidArgument, name)
				}
				labels[j] = id
			}
			resolved[i] = labels
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}

	out := make([]ids.NodeId, len(specs))
	for i, labels := range resolved {
		n, err := s.CreateNode(labels)
		if err != nil {
			return nil, fmt.Errorf("store: bulk_create_nodes: spec %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}
