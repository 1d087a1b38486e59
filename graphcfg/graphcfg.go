// Package graphcfg provides the store's tunables as a functional-options
// Config, with file/env/flag layering via viper for the cmd/graphctl CLI and
// any other host process embedding the core.
//
// Following the teacher's functional-options contract: option constructors
// validate and panic on meaningless input (a programmer error caught at
// wiring time); the algorithms they configure never panic at runtime.
package graphcfg

import (
	"github.com/katalvlaran/graphcore/deltamatrix"
	"github.com/katalvlaran/graphcore/store"
)

// Config is the resolved, immutable-after-construction set of tunables
// handed to store.NewStore and the Delta-Matrix constructors it uses.
type Config struct {
	FlushThreshold  int
	DefaultSync     store.SyncPolicy
	MetricsNS       string
	PlanCacheSize   int
	BulkWorkerCount int
}

// Option customizes a Config before it is resolved by New.
type Option func(*Config)

// WithFlushThreshold overrides deltamatrix.DefaultFlushThreshold for every
// matrix the store constructs. Panics if n <= 0.
func WithFlushThreshold(n int) Option {
	if n <= 0 {
		panic("graphcfg: WithFlushThreshold(n<=0)")
	}
	return func(c *Config) { c.FlushThreshold = n }
}

// WithDefaultSyncPolicy sets the SyncPolicy a Store starts with.
func WithDefaultSyncPolicy(p store.SyncPolicy) Option {
	return func(c *Config) { c.DefaultSync = p }
}

// WithMetricsNamespace enables Prometheus metrics under the given
// namespace. Passing "" disables metrics (the zero-value default).
func WithMetricsNamespace(ns string) Option {
	return func(c *Config) { c.MetricsNS = ns }
}

// WithPlanCacheSize sets the orderer's compiled-expression LRU cache
// capacity. Panics if n < 0.
func WithPlanCacheSize(n int) Option {
	if n < 0 {
		panic("graphcfg: WithPlanCacheSize(n<0)")
	}
	return func(c *Config) { c.PlanCacheSize = n }
}

// WithBulkWorkerCount sets the bulk-loader pool's worker concurrency.
// Panics if n <= 0.
func WithBulkWorkerCount(n int) Option {
	if n <= 0 {
		panic("graphcfg: WithBulkWorkerCount(n<=0)")
	}
	return func(c *Config) { c.BulkWorkerCount = n }
}

// defaultConfig mirrors deltamatrix.DefaultFlushThreshold and store's
// FLUSH_RESIZE default so a zero-option New() behaves like a bare
// store.NewStore().
func defaultConfig() Config {
	return Config{
		FlushThreshold:  deltamatrix.DefaultFlushThreshold,
		DefaultSync:     store.FlushResize,
		PlanCacheSize:   256,
		BulkWorkerCount: 4,
	}
}

// New resolves opts, left-to-right, against the package defaults.
func New(opts ...Option) Config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// NewStore builds a store.Store wired to this Config: its sync policy and
// (if MetricsNS is set) its Prometheus gauges.
func (c Config) NewStore() *store.Store {
	storeOpts := []store.Option{store.WithFlushThreshold(c.FlushThreshold)}
	if c.MetricsNS != "" {
		storeOpts = append(storeOpts, store.WithMetrics(c.MetricsNS))
	}
	s := store.NewStore(storeOpts...)
	s.SetSyncPolicy(c.DefaultSync)
	return s
}
