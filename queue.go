package circularbuffer

import (
	"context"
	"sync"
)

// Cleanable is an interface for types that require explicit cleanup
// when they are dropped from a Queue (either by being evicted
// or when Stop() is called).
type Cleanable interface {
	// Cleanup performs any necessary resource release.
	Cleanup()
}

// tryGetResponse is a private struct used to send the result
// of a TryGet operation back to the caller.
type tryGetResponse[T any] struct {
	item T
	ok   bool
}

// Queue is a thread-safe FIFO built on a CircularBuffer. A background
// goroutine owns the buffer and serializes access through channels. When the
// queue is full, Add evicts the oldest item.
type Queue[T any] struct {
	buf     *CircularBuffer[T]
	opts    *queueOptions[T]
	metrics *queueMetrics

	// Channels for thread-safe operations
	addChan    chan T
	getChan    chan T
	tryGetChan chan chan tryGetResponse[T] // Channel for non-blocking get requests
	getAllChan chan chan []T               // Channel for getting all items
	lenChan    chan chan int
	done       chan struct{}
	// stopped is closed once run has returned and every remaining item has
	// been cleaned up.
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewQueue creates a new Queue with the given size. If the provided size
// is less than 1, it defaults to a size of 1. The only error is a failure to
// register the metrics requested with WithMetrics.
func NewQueue[T any](size int, options ...QueueOption[T]) (*Queue[T], error) {
	opts := applyQueueOptions(options...)

	var metrics *queueMetrics
	if opts.registerer != nil {
		var err error
		metrics, err = newQueueMetrics(opts.registerer, opts.metricsName)
		if err != nil {
			return nil, err
		}
	}

	q := &Queue[T]{
		buf:        New[T](size),
		opts:       opts,
		metrics:    metrics,
		addChan:    make(chan T),
		getChan:    make(chan T),
		tryGetChan: make(chan chan tryGetResponse[T]),
		getAllChan: make(chan chan []T),
		lenChan:    make(chan chan int),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}

	go q.run()

	return q, nil
}

// Add adds an item to the queue. This operation is thread-safe. If the
// queue has been stopped, the item is cleaned up and dropped.
func (q *Queue[T]) Add(item T) {
	select {
	case q.addChan <- item:
	case <-q.done:
		cleanup(item)
	}
}

// Get retrieves an item from the queue. This operation is thread-safe and
// will block until an item is available. After Stop it returns the zero
// value.
func (q *Queue[T]) Get() T {
	item, _ := q.GetContext(context.Background())
	return item
}

// GetContext is like Get but gives up when ctx is done, returning ctx.Err(),
// or when the queue is stopped, returning ErrStopped.
func (q *Queue[T]) GetContext(ctx context.Context) (T, error) {
	var zero T
	select {
	case item := <-q.getChan:
		return item, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-q.done:
		return zero, ErrStopped
	}
}

// TryGet attempts to retrieve an item from the queue without blocking.
// If the queue is not empty, it returns the oldest item and true.
// If the queue is empty or stopped, it returns the zero value for the type
// and false.
func (q *Queue[T]) TryGet() (T, bool) {
	respChan := make(chan tryGetResponse[T], 1)
	select {
	case q.tryGetChan <- respChan:
	case <-q.done:
		var zero T
		return zero, false
	}
	resp := <-respChan
	return resp.item, resp.ok
}

// GetAll retrieves and removes all items currently in the queue, returning them
// as a slice ordered from oldest to newest. It does not block. The queue will
// be empty after this call. This operation does not trigger the Cleanup method
// on the retrieved items.
func (q *Queue[T]) GetAll() []T {
	respChan := make(chan []T, 1)
	select {
	case q.getAllChan <- respChan:
	case <-q.done:
		return nil
	}
	return <-respChan
}

// Len returns the number of items currently queued.
func (q *Queue[T]) Len() int {
	respChan := make(chan int, 1)
	select {
	case q.lenChan <- respChan:
	case <-q.done:
		return 0
	}
	return <-respChan
}

// Stop gracefully shuts down the queue's background goroutine and waits for
// it to exit. It will also call Cleanup() on any remaining items that
// implement the Cleanable interface. Stop may be called more than once.
func (q *Queue[T]) Stop() {
	q.stopOnce.Do(func() {
		close(q.done)
	})
	<-q.stopped
}

// run is the core loop that serializes access to the buffer.
// It uses a nil channel to disable the 'get' case when the buffer is empty,
// preventing deadlocks and ensuring the 'done' signal is always received.
func (q *Queue[T]) run() {
	defer close(q.stopped)

	var outputChan chan T
	var currentItem T

	for {
		// Before the select, determine if the buffer has items to send.
		if front, err := q.buf.Front(); err != nil {
			// A send to a nil channel blocks forever.
			var zero T
			currentItem = zero
			outputChan = nil
		} else {
			currentItem = front
			outputChan = q.getChan
		}

		select {
		case item := <-q.addChan:
			if evicted, ok := q.buf.PushBack(item); ok {
				q.evict(evicted)
			}
			if q.metrics != nil {
				q.metrics.recordAdd(q.buf.Len())
			}

		case outputChan <- currentItem:
			// The front item was handed to a 'Get' consumer.
			_, _ = q.buf.PopFront()
			if q.metrics != nil {
				q.metrics.recordGet(1, q.buf.Len())
			}

		case respChan := <-q.tryGetChan:
			item, err := q.buf.PopFront()
			if err == nil && q.metrics != nil {
				q.metrics.recordGet(1, q.buf.Len())
			}
			respChan <- tryGetResponse[T]{item: item, ok: err == nil}

		case respChan := <-q.getAllChan:
			if q.buf.IsEmpty() {
				respChan <- nil
				continue
			}
			items := q.buf.ToSlice()
			q.buf.Clear()
			if q.metrics != nil {
				q.metrics.recordGet(len(items), 0)
			}
			respChan <- items

		case respChan := <-q.lenChan:
			respChan <- q.buf.Len()

		case <-q.done:
			// Clean up any remaining items in the buffer before exiting.
			remaining := q.buf.Len()
			for !q.buf.IsEmpty() {
				item, _ := q.buf.PopFront()
				cleanup(item)
			}
			if q.metrics != nil {
				q.metrics.size.Set(0)
			}
			q.opts.logger.WithField("remaining", remaining).Debug("queue stopped")
			return
		}
	}
}

// evict handles an item pushed out of a full buffer.
func (q *Queue[T]) evict(item T) {
	q.opts.logger.WithField("capacity", q.buf.Cap()).Debug("queue full, evicted oldest item")
	if q.metrics != nil {
		q.metrics.evictions.Inc()
	}
	if q.opts.evictCallback != nil {
		q.opts.evictCallback(item)
	}
	cleanup(item)
}

func cleanup[T any](item T) {
	if cleanable, ok := any(item).(Cleanable); ok {
		cleanable.Cleanup()
	}
}
