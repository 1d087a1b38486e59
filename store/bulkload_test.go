package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphcore/concurrency"
	"github.com/katalvlaran/graphcore/ids"
	"github.com/katalvlaran/graphcore/store"
)

func TestBulkCreateNodes_ResolvesLabelsConcurrently(t *testing.T) {
	s := store.NewStore()
	person := s.AddLabel("Person")
	admin := s.AddLabel("Admin")
	_ = admin

	specs := []store.NodeSpec{
		{Labels: []string{"Person"}},
		{Labels: []string{"Person", "Admin"}},
		{Labels: nil},
	}

	pool := concurrency.New(context.Background(), 4)
	created, err := s.BulkCreateNodes(context.Background(), pool, specs)
	require.NoError(t, err)
	require.Len(t, created, 3)

	labels, err := s.LabelsOf(created[0])
	require.NoError(t, err)
	require.Equal(t, []ids.LabelId{person}, labels)

	st := s.Stats()
	require.Equal(t, 3, st.NodeCount)
	require.EqualValues(t, 2, st.LabelCounts["Person"])
	require.EqualValues(t, 1, st.LabelCounts["Admin"])
}

func TestBulkCreateNodes_UnregisteredLabelFails(t *testing.T) {
	s := store.NewStore()
	specs := []store.NodeSpec{{Labels: []string{"DoesNotExist"}}}

	pool := concurrency.New(context.Background(), 2)
	_, err := s.BulkCreateNodes(context.Background(), pool, specs)
	require.ErrorIs(t, err, ids.ErrInvalidArgument)
}
