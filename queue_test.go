package circularbuffer

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue[T any](t *testing.T, size int, opts ...QueueOption[T]) *Queue[T] {
	t.Helper()
	q, err := NewQueue[T](size, opts...)
	require.NoError(t, err)
	return q
}

// TestQueueAddAndGet tests basic addition and retrieval of items.
func TestQueueAddAndGet(t *testing.T) {
	q := newTestQueue[string](t, 3)
	defer q.Stop()

	q.Add("hello")
	assert.Equal(t, "hello", q.Get())

	q.Add("world")
	q.Add("foo")
	q.Add("bar")
	q.Add("baz") // "world" is evicted

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, "foo", q.Get())
	assert.Equal(t, "bar", q.Get())
	assert.Equal(t, "baz", q.Get())
}

// TestQueueOverwrite verifies that the queue correctly overwrites old items when full.
func TestQueueOverwrite(t *testing.T) {
	size := 3
	q := newTestQueue[int](t, size)
	defer q.Stop()

	for i := 0; i < size; i++ {
		q.Add(i)
	}
	q.Add(3)
	q.Add(4)

	assert.Equal(t, []int{2, 3, 4}, q.GetAll())
	assert.Equal(t, 0, q.Len())
}

// TestQueueGetBlocksUntilAdd confirms that Get() blocks until an item is available.
func TestQueueGetBlocksUntilAdd(t *testing.T) {
	q := newTestQueue[int](t, 2)
	defer q.Stop()

	c := make(chan int)
	go func() {
		c <- q.Get()
	}()

	// Give the goroutine a moment to start and block on Get().
	time.Sleep(20 * time.Millisecond)
	q.Add(123)

	select {
	case item := <-c:
		assert.Equal(t, 123, item)
	case <-time.After(time.Second):
		t.Fatal("Get() did not unblock in time")
	}
}

func TestQueueGetContext(t *testing.T) {
	q := newTestQueue[int](t, 2)
	defer q.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.GetContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	q.Add(7)
	item, err := q.GetContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, item)
}

func TestQueueTryGet(t *testing.T) {
	q := newTestQueue[int](t, 2)
	defer q.Stop()

	_, ok := q.TryGet()
	assert.False(t, ok)

	q.Add(1)
	item, ok := q.TryGet()
	assert.True(t, ok)
	assert.Equal(t, 1, item)
	assert.Nil(t, q.GetAll())
}

// TestQueueStop ensures the background goroutine terminates gracefully.
func TestQueueStop(t *testing.T) {
	initialGoRoutines := runtime.NumGoroutine()

	q := newTestQueue[int](t, 5)
	q.Add(1)
	q.Stop()

	// Give the runtime a moment to reap the goroutine.
	time.Sleep(50 * time.Millisecond)

	finalGoRoutines := runtime.NumGoroutine()
	if finalGoRoutines > initialGoRoutines {
		t.Errorf("Stop() did not terminate the background goroutine; initial: %d, final: %d", initialGoRoutines, finalGoRoutines)
	}

	// Stopping is idempotent and every call returns instead of blocking.
	q.Stop()
	_, err := q.GetContext(context.Background())
	assert.ErrorIs(t, err, ErrStopped)
	assert.Zero(t, q.Get())
	_, ok := q.TryGet()
	assert.False(t, ok)
	assert.Nil(t, q.GetAll())
	assert.Equal(t, 0, q.Len())
	q.Add(2)
}

// TestQueueConcurrentAddAndGet tests the thread-safety of Add and Get operations.
func TestQueueConcurrentAddAndGet(t *testing.T) {
	numProducers := 5
	numConsumers := 5
	itemsPerProducer := 20
	totalItems := numProducers * itemsPerProducer

	// Large enough that nothing is evicted.
	q := newTestQueue[int](t, totalItems)
	defer q.Stop()

	var wg sync.WaitGroup

	wg.Add(numProducers)
	for i := 0; i < numProducers; i++ {
		go func(producerID int) {
			defer wg.Done()
			for j := 0; j < itemsPerProducer; j++ {
				q.Add(producerID*itemsPerProducer + j)
			}
		}(i)
	}

	results := make(chan int, totalItems)
	wg.Add(numConsumers)
	for i := 0; i < numConsumers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < totalItems/numConsumers; j++ {
				results <- q.Get()
			}
		}()
	}

	wg.Wait()
	close(results)

	received := make(map[int]bool)
	for item := range results {
		if received[item] {
			t.Errorf("duplicate item received: %d", item)
		}
		received[item] = true
	}
	assert.Len(t, received, totalItems)
}

// --- Tests for Cleanable Interface ---

// resource is a test struct that implements the Cleanable interface.
type resource struct {
	ID        int
	cleanedUp chan int // A channel to signal when Cleanup is called.
}

// Cleanup implements the Cleanable interface.
func (r *resource) Cleanup() {
	r.cleanedUp <- r.ID
}

// TestQueueCleanupOnEvict verifies that Cleanup() is called on the oldest item when the queue is full.
func TestQueueCleanupOnEvict(t *testing.T) {
	cleanedUp := make(chan int, 1)
	r1 := &resource{ID: 1, cleanedUp: cleanedUp}
	r2 := &resource{ID: 2, cleanedUp: cleanedUp}

	var evicted []int
	q := newTestQueue(t, 1, WithEvictCallback(func(r *resource) {
		evicted = append(evicted, r.ID)
	}))

	q.Add(r1) // Queue is now full.
	q.Add(r2) // This should evict r1 and trigger its Cleanup.

	select {
	case id := <-cleanedUp:
		assert.Equal(t, 1, id)
	case <-time.After(time.Second):
		t.Fatal("Cleanup() was not called on evict")
	}

	assert.Same(t, r2, q.Get())
	q.Stop()
	assert.Equal(t, []int{1}, evicted)
}

// TestQueueCleanupOnStop verifies that Cleanup() is called for all remaining items when Stop() is called.
func TestQueueCleanupOnStop(t *testing.T) {
	size := 5
	cleanedUp := make(chan int, size+1)

	q := newTestQueue[*resource](t, size)
	for i := 0; i < size; i++ {
		q.Add(&resource{ID: i, cleanedUp: cleanedUp})
	}
	q.Stop()

	// Stop waits for cleanup, so every ID is already queued.
	require.Len(t, cleanedUp, size)
	cleanedIDs := make(map[int]bool)
	for i := 0; i < size; i++ {
		cleanedIDs[<-cleanedUp] = true
	}
	assert.Len(t, cleanedIDs, size)

	// Items added after Stop are cleaned up straight away.
	q.Add(&resource{ID: 99, cleanedUp: cleanedUp})
	assert.Equal(t, 99, <-cleanedUp)
}

func TestQueueGetAllSkipsCleanup(t *testing.T) {
	cleanedUp := make(chan int, 2)
	q := newTestQueue[*resource](t, 2)
	q.Add(&resource{ID: 1, cleanedUp: cleanedUp})
	q.Add(&resource{ID: 2, cleanedUp: cleanedUp})

	items := q.GetAll()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 2, items[1].ID)

	q.Stop()
	assert.Len(t, cleanedUp, 0)
}

func TestQueueMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	q := newTestQueue(t, 2, WithMetrics[int](reg, "test"))

	q.Add(1)
	q.Add(2)
	q.Add(3) // evicts 1
	assert.Equal(t, 2, q.Get())
	item, ok := q.TryGet()
	assert.True(t, ok)
	assert.Equal(t, 3, item)
	q.Add(4)
	assert.Equal(t, []int{4}, q.GetAll())

	m := q.metrics
	assert.Equal(t, 4.0, testutil.ToFloat64(m.adds))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.gets))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evictions))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.size))

	q.Stop()

	// A second queue with the same name collides with the registered metrics.
	_, err := NewQueue[int](2, WithMetrics[int](reg, "test"))
	assert.Error(t, err)
}

func TestQueueLogsEvictions(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	q := newTestQueue(t, 1, WithLogger[int](logger))
	q.Add(1)
	q.Add(2)
	q.Stop()

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "queue full, evicted oldest item", entries[0].Message)
	assert.Equal(t, 1, entries[0].Data["capacity"])
	assert.Equal(t, "queue stopped", entries[1].Message)
	assert.Equal(t, 1, entries[1].Data["remaining"])
}
