package store

import (
	"github.com/katalvlaran/graphcore/deltamatrix"
	"github.com/katalvlaran/graphcore/ids"
)

// removeIncidentEdgesLocked deletes every edge of relation r touching node
// n, in either direction. Called by BulkDelete's phase 1 before a doomed
// node's slot is reclaimed. Callers must hold s.mu for writing.
func (s *Store) removeIncidentEdgesLocked(n ids.NodeId, r ids.RelationId, rm *deltamatrix.RelationMatrix) {
	row := int(n)

	var toDelete []ids.EdgeId
	outIt := deltamatrix.Attach(rm.DeltaMatrix, row, row)
	for {
		_, _, entry, err := outIt.Next()
		if err != nil {
			break
		}
		toDelete = append(toDelete, entry.EdgeIds()...)
	}
	if twin := rm.Twin(); twin != nil {
		inIt := deltamatrix.Attach(twin, row, row)
		for {
			_, _, entry, err := inIt.Next()
			if err != nil {
				break
			}
			toDelete = append(toDelete, entry.EdgeIds()...)
		}
	}

	for _, e := range toDelete {
		_ = s.deleteEdgeLocked(e)
	}
}
