// Package mvcc implements the version broker described in spec §3.5: a
// monotonically increasing counter handed out to every writer commit, a
// refcount per still-referenced version, and a drain mechanism so a delta
// matrix flush (or a label/relation matrix resize) can wait until no reader
// is still pinned to an older snapshot before reclaiming it.
//
// Errors:
//
//	ids.ErrVersionConflict - AwaitFinalization gave up before the version drained.
package mvcc

import (
	"context"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/graphcore/ids"
)

// Version identifies one committed snapshot of the graph.
type Version uint64

// FinalizeFunc runs once a version's refcount has dropped to zero, whatever
// the state of older versions — the hook for reclaiming a DeltaMatrix's
// overlays (spec §3.5's "finalize-and-free" step).
type FinalizeFunc func(v Version)

// Broker is the process-wide version authority. One Broker is shared by a
// Store and everything it hands out snapshot handles to.
type Broker struct {
	mu sync.Mutex

	latest  Version
	refs    map[Version]int
	waiting map[Version][]FinalizeFunc

	activeGauge prometheus.Gauge
}

// Option configures a Broker at construction time.
type Option func(*Broker)

// WithGauge installs a Prometheus gauge tracking the number of currently
// pinned (refcount > 0) versions; passing nil (the default) disables the
// metric.
func WithGauge(g prometheus.Gauge) Option {
	return func(b *Broker) { b.activeGauge = g }
}

// NewBroker constructs a Broker starting at version 0 (the empty graph).
func NewBroker(opts ...Option) *Broker {
	b := &Broker{
		refs:    make(map[Version]int),
		waiting: make(map[Version][]FinalizeFunc),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Latest returns the most recently committed version without pinning it.
func (b *Broker) Latest() Version {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest
}

// Commit advances the broker to a new version and returns it. Callers invoke
// Commit once per write-transaction boundary (spec §3.5's "latest_version"
// monotonic counter); the new version starts unpinned.
func (b *Broker) Commit() Version {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.latest++
	return b.latest
}

// Acquire pins v, incrementing its refcount, and returns a Snapshot the
// caller must Release exactly once. Acquiring the zero Version (no commits
// yet) is always valid and pins nothing.
func (b *Broker) Acquire(v Version) *Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	if v == 0 {
		return &Snapshot{broker: b, version: 0}
	}
	b.refs[v]++
	b.updateGaugeLocked()
	return &Snapshot{broker: b, version: v}
}

// AcquireLatest pins whatever Latest() currently is, atomically with respect
// to concurrent Commit calls.
func (b *Broker) AcquireLatest() *Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := b.latest
	if v != 0 {
		b.refs[v]++
		b.updateGaugeLocked()
	}
	return &Snapshot{broker: b, version: v}
}

func (b *Broker) release(v Version) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if v == 0 {
		return
	}
	b.refs[v]--
	if b.refs[v] > 0 {
		return
	}
	delete(b.refs, v)
	b.updateGaugeLocked()
	b.drainLocked(v)
}

// drainLocked runs and clears every FinalizeFunc registered for v once v's
// refcount has reached zero. Must be called with b.mu held.
func (b *Broker) drainLocked(v Version) {
	fns := b.waiting[v]
	delete(b.waiting, v)
	for _, fn := range fns {
		fn(v)
	}
}

// OnFinalized registers fn to run once v is no longer pinned by any reader.
// If v is already unpinned (or was never pinned), fn runs inline before
// OnFinalized returns.
func (b *Broker) OnFinalized(v Version, fn FinalizeFunc) {
	b.mu.Lock()
	if b.refs[v] > 0 {
		b.waiting[v] = append(b.waiting[v], fn)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	fn(v)
}

// AwaitFinalization blocks, retrying with exponential backoff, until v's
// refcount reaches zero or ctx is cancelled. The store package does not
// call it.
func (b *Broker) AwaitFinalization(ctx context.Context, v Version) error {
	done := make(chan struct{})
	b.OnFinalized(v, func(Version) { close(done) })

	select {
	case <-done:
		return nil
	default:
	}

	bo := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	return backoff.Retry(func() error {
		select {
		case <-done:
			return nil
		default:
			return ids.ErrVersionConflict
		}
	}, bo)
}

func (b *Broker) updateGaugeLocked() {
	if b.activeGauge == nil {
		return
	}
	b.activeGauge.Set(float64(len(b.refs)))
}

// Snapshot is a read pin on one Version. The zero value is not usable;
// obtain one via Broker.Acquire or Broker.AcquireLatest.
type Snapshot struct {
	broker *Broker

	once    sync.Once
	version Version
}

// Version returns the pinned version number.
func (s *Snapshot) Version() Version { return s.version }

// Release unpins the snapshot. Safe to call more than once; only the first
// call has effect.
func (s *Snapshot) Release() {
	s.once.Do(func() { s.broker.release(s.version) })
}
