package circularbuffer

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// queueMetrics holds Prometheus metrics for Queue operations.
type queueMetrics struct {
	adds      prometheus.Counter
	gets      prometheus.Counter
	evictions prometheus.Counter
	size      prometheus.Gauge
}

// newQueueMetrics creates and registers queue metrics with registerer.
func newQueueMetrics(registerer prometheus.Registerer, name string) (*queueMetrics, error) {
	labels := prometheus.Labels{"queue": name}
	m := &queueMetrics{
		adds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "circularbuffer",
			Subsystem:   "queue",
			Name:        "adds_total",
			ConstLabels: labels,
			Help:        "Total number of items added to the queue",
		}),
		gets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "circularbuffer",
			Subsystem:   "queue",
			Name:        "gets_total",
			ConstLabels: labels,
			Help:        "Total number of items retrieved from the queue",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "circularbuffer",
			Subsystem:   "queue",
			Name:        "evictions_total",
			ConstLabels: labels,
			Help:        "Total number of items evicted because the queue was full",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "circularbuffer",
			Subsystem:   "queue",
			Name:        "size",
			ConstLabels: labels,
			Help:        "Current number of items in the queue",
		}),
	}

	collectors := []prometheus.Collector{m.adds, m.gets, m.evictions, m.size}
	for i, c := range collectors {
		if err := registerer.Register(c); err != nil {
			for _, registered := range collectors[:i] {
				registerer.Unregister(registered)
			}
			return nil, errors.Wrapf(err, "register metrics for queue %q", name)
		}
	}
	return m, nil
}

func (m *queueMetrics) recordAdd(size int) {
	m.adds.Inc()
	m.size.Set(float64(size))
}

func (m *queueMetrics) recordGet(n, size int) {
	m.gets.Add(float64(n))
	m.size.Set(float64(size))
}
