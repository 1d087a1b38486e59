package fixture_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphcore/fixture"
	"github.com/katalvlaran/graphcore/store"
)

const sampleYAML = `
labels: [Person, Admin]
relations: [KNOWS]
nodes:
  - id: 0
    labels: [Person]
  - id: 1
    labels: [Person, Admin]
  - id: 2
    labels: [Person]
edges:
  - src: 0
    dst: 1
    relation: KNOWS
  - src: 1
    dst: 2
    relation: KNOWS
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	return path
}

func TestLoadAndPopulate(t *testing.T) {
	path := writeSample(t)
	g, err := fixture.Load(path)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 3)
	require.Len(t, g.Edges, 2)

	s := store.NewStore()
	nodeIDs, err := fixture.Populate(s, g)
	require.NoError(t, err)
	require.Len(t, nodeIDs, 3)

	st := s.Stats()
	require.Equal(t, 3, st.NodeCount)
	require.Equal(t, 2, st.EdgeCount)
	require.EqualValues(t, 3, st.LabelCounts["Person"])
	require.EqualValues(t, 1, st.LabelCounts["Admin"])

	edges, err := s.NodeEdges(nodeIDs[1], store.Both, 0)
	require.NoError(t, err)
	require.Len(t, edges, 2)
}

func TestPopulate_UnknownLabelFails(t *testing.T) {
	g := &fixture.Graph{
		Labels: []string{"Person"},
		Nodes:  []fixture.NodeSpec{{ID: 0, Labels: []string{"Ghost"}}},
	}
	s := store.NewStore()
	_, err := fixture.Populate(s, g)
	require.Error(t, err)
}

func TestPopulate_UnknownEdgeRelationFails(t *testing.T) {
	g := &fixture.Graph{
		Nodes: []fixture.NodeSpec{{ID: 0}, {ID: 1}},
		Edges: []fixture.EdgeSpec{{Src: 0, Dst: 1, Relation: "MISSING"}},
	}
	s := store.NewStore()
	_, err := fixture.Populate(s, g)
	require.Error(t, err)
}
