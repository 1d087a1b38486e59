package graphcfg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphcore/store"
)

func TestNewAppliesDefaultsThenOptions(t *testing.T) {
	c := New()
	require.Equal(t, 1000, c.FlushThreshold)
	require.Equal(t, store.FlushResize, c.DefaultSync)

	c = New(WithFlushThreshold(50), WithDefaultSyncPolicy(store.NOP))
	require.Equal(t, 50, c.FlushThreshold)
	require.Equal(t, store.NOP, c.DefaultSync)
}

func TestWithFlushThresholdPanicsOnNonPositive(t *testing.T) {
	require.Panics(t, func() { WithFlushThreshold(0) })
	require.Panics(t, func() { WithFlushThreshold(-1) })
}

func TestNewStoreWiresSyncPolicy(t *testing.T) {
	c := New(WithDefaultSyncPolicy(store.ResizeOnly))
	s := c.NewStore()
	require.Equal(t, store.ResizeOnly, s.SyncPolicy())
}

func TestLoadWithNoFileUsesDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 1000, c.FlushThreshold)
	require.Equal(t, store.FlushResize, c.DefaultSync)
}

func TestLoadOverridesWinOverFileDefaults(t *testing.T) {
	c, err := Load("", WithFlushThreshold(7))
	require.NoError(t, err)
	require.Equal(t, 7, c.FlushThreshold)
}
