package store

import "github.com/prometheus/client_golang/prometheus"

// storeMetrics holds the per-label/per-relation gauges spec §4.3's
// "stats: per-label node counts, per-relation edge counts" are exported as.
type storeMetrics struct {
	nodesByLabel    *prometheus.GaugeVec
	edgesByRelation *prometheus.GaugeVec
}

func newStoreMetrics(namespace string) *storeMetrics {
	m := &storeMetrics{
		nodesByLabel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes_total",
			Help:      "Number of live nodes carrying a given label.",
		}, []string{"label"}),
		edgesByRelation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges_total",
			Help:      "Number of live edges of a given relation type.",
		}, []string{"relation"}),
	}
	return m
}

// Collectors returns the gauges for registration with a
// prometheus.Registerer, e.g. prometheus.MustRegister(s.Collectors()...).
func (s *Store) Collectors() []prometheus.Collector {
	if s.metrics == nil {
		return nil
	}
	return []prometheus.Collector{s.metrics.nodesByLabel, s.metrics.edgesByRelation}
}
