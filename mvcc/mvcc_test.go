package mvcc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBrokerCommitMonotonic(t *testing.T) {
	b := NewBroker()
	require.EqualValues(t, 0, b.Latest())
	v1 := b.Commit()
	v2 := b.Commit()
	require.EqualValues(t, 1, v1)
	require.EqualValues(t, 2, v2)
	require.Equal(t, v2, b.Latest())
}

func TestBrokerAcquireReleaseFinalizes(t *testing.T) {
	b := NewBroker()
	v := b.Commit()

	snap := b.Acquire(v)
	finalized := false
	b.OnFinalized(v, func(Version) { finalized = true })
	require.False(t, finalized)

	snap.Release()
	require.True(t, finalized)

	// Releasing twice must not panic or double-run the callback.
	snap.Release()
}

func TestBrokerOnFinalizedInlineWhenAlreadyUnpinned(t *testing.T) {
	b := NewBroker()
	v := b.Commit()

	ran := false
	b.OnFinalized(v, func(Version) { ran = true })
	require.True(t, ran, "no snapshot ever pinned v, callback should run inline")
}

func TestBrokerAwaitFinalizationSucceeds(t *testing.T) {
	b := NewBroker()
	v := b.Commit()
	snap := b.Acquire(v)

	go func() {
		time.Sleep(10 * time.Millisecond)
		snap.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, b.AwaitFinalization(ctx, v))
}

func TestBrokerAwaitFinalizationCancelled(t *testing.T) {
	b := NewBroker()
	v := b.Commit()
	snap := b.Acquire(v)
	defer snap.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := b.AwaitFinalization(ctx, v)
	require.Error(t, err)
}

func TestBrokerMultipleReadersShareRefcount(t *testing.T) {
	b := NewBroker()
	v := b.Commit()

	s1 := b.Acquire(v)
	s2 := b.Acquire(v)
	finalized := false
	b.OnFinalized(v, func(Version) { finalized = true })

	s1.Release()
	require.False(t, finalized, "one reader remains pinned")
	s2.Release()
	require.True(t, finalized)
}

func TestBrokerAcquireZeroVersionIsNoop(t *testing.T) {
	b := NewBroker()
	snap := b.Acquire(0)
	require.EqualValues(t, 0, snap.Version())
	snap.Release() // must not panic
}
