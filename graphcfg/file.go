package graphcfg

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/katalvlaran/graphcore/ids"
	"github.com/katalvlaran/graphcore/store"
)

// Load layers a YAML config file (if path is non-empty), environment
// variables prefixed GRAPHCORE_, and the given overrides (applied last, so
// callers can let CLI flags win) into a resolved Config.
func Load(path string, overrides ...Option) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GRAPHCORE")
	v.AutomaticEnv()
	v.SetDefault("flush_threshold", 1000)
	v.SetDefault("default_sync", "FLUSH_RESIZE")
	v.SetDefault("metrics_namespace", "")
	v.SetDefault("plan_cache_size", 256)
	v.SetDefault("bulk_worker_count", 4)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("graphcfg: load %s: %w", path, err)
		}
	}

	sync, err := parseSyncPolicy(v.GetString("default_sync"))
	if err != nil {
		return Config{}, err
	}

	opts := []Option{
		WithFlushThreshold(v.GetInt("flush_threshold")),
		WithDefaultSyncPolicy(sync),
		WithMetricsNamespace(v.GetString("metrics_namespace")),
		WithPlanCacheSize(v.GetInt("plan_cache_size")),
		WithBulkWorkerCount(v.GetInt("bulk_worker_count")),
	}
	opts = append(opts, overrides...)
	return New(opts...), nil
}

func parseSyncPolicy(s string) (store.SyncPolicy, error) {
	switch s {
	case "FLUSH_RESIZE", "":
		return store.FlushResize, nil
	case "RESIZE_ONLY":
		return store.ResizeOnly, nil
	case "NOP":
		return store.NOP, nil
	default:
		return 0, fmt.Errorf("graphcfg: %w: unknown sync policy %q", ids.ErrInvalidArgument, s)
	}
}
