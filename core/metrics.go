package core

import "github.com/prometheus/client_golang/prometheus"

type storeMetrics struct {
	sets          prometheus.Counter
	gets          prometheus.Counter
	bytesAppended prometheus.Counter
	keys          prometheus.Gauge
}

func newStoreMetrics(registerer prometheus.Registerer) *storeMetrics {
	m := &storeMetrics{
		sets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "caskdb_sets_total",
			Help: "Total number of set operations.",
		}),
		gets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "caskdb_gets_total",
			Help: "Total number of get operations, including misses.",
		}),
		bytesAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "caskdb_appended_bytes_total",
			Help: "Total bytes appended to the datafile.",
		}),
		keys: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "caskdb_keydir_keys",
			Help: "Number of live keys in the in-memory KeyDir.",
		}),
	}

	if registerer != nil {
		registerer.MustRegister(m.sets, m.gets, m.bytesAppended, m.keys)
	}

	return m
}
