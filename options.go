package circularbuffer

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// QueueOption configures a Queue.
type QueueOption[T any] func(*queueOptions[T])

type queueOptions[T any] struct {
	logger        log.FieldLogger
	registerer    prometheus.Registerer
	metricsName   string
	evictCallback func(T)
}

// WithLogger sets the logger used for debug messages about evictions and
// shutdown. By default nothing is logged.
func WithLogger[T any](logger log.FieldLogger) QueueOption[T] {
	return func(opts *queueOptions[T]) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithMetrics registers the queue's Prometheus metrics with registerer,
// labelled with name. If registerer is nil, this option is ignored.
func WithMetrics[T any](registerer prometheus.Registerer, name string) QueueOption[T] {
	return func(opts *queueOptions[T]) {
		opts.registerer = registerer
		opts.metricsName = name
	}
}

// WithEvictCallback sets a function that is called with every item evicted
// because the queue was full. It runs on the queue's goroutine, before the
// item's Cleanup, and must not call back into the queue.
func WithEvictCallback[T any](callback func(T)) QueueOption[T] {
	return func(opts *queueOptions[T]) {
		opts.evictCallback = callback
	}
}

func applyQueueOptions[T any](options ...QueueOption[T]) *queueOptions[T] {
	discard := log.New()
	discard.SetOutput(io.Discard)

	opts := &queueOptions[T]{
		logger: discard,
	}
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}
	return opts
}
