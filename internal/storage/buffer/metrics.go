package buffer

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects buffer pool counters. All fields are registered on
// the Registerer passed to NewMetrics; a nil *Metrics on the pool
// disables collection.
type Metrics struct {
	Hits         prometheus.Counter
	Misses       prometheus.Counter
	Evictions    prometheus.Counter
	Flushes      prometheus.Counter
	PinnedFrames prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "framedb",
			Subsystem: "buffer_pool",
			Name:      "hits_total",
			Help:      "Page requests served from a resident frame.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "framedb",
			Subsystem: "buffer_pool",
			Name:      "misses_total",
			Help:      "Page requests that required a disk read.",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "framedb",
			Subsystem: "buffer_pool",
			Name:      "evictions_total",
			Help:      "Frames recycled through victim selection.",
		}),
		Flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "framedb",
			Subsystem: "buffer_pool",
			Name:      "flushes_total",
			Help:      "Dirty pages written back to disk.",
		}),
		PinnedFrames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "framedb",
			Subsystem: "buffer_pool",
			Name:      "pinned_frames",
			Help:      "Frames with a non-zero pin count.",
		}),
	}
	reg.MustRegister(m.Hits, m.Misses, m.Evictions, m.Flushes, m.PinnedFrames)
	return m
}
