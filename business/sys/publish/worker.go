package publish

import (
	"context"
	"sync"
	"time"

	"github.com/ardanlabs/fraudledger/foundation/ledger/state"
)

// maxQueuedEvents is the number of events that can wait for delivery before
// new events are dropped.
const maxQueuedEvents = 1024

// publishTimeout bounds the time spent handing one event to one publisher.
const publishTimeout = 5 * time.Second

// Worker delivers queued events to the publishers in commit order.
type Worker struct {
	publishers []Publisher
	evHandler  state.EventHandler
	wg         sync.WaitGroup
	shut       chan struct{}
	queue      chan state.Event
}

// Run creates a worker and starts the delivery goroutine.
func Run(evHandler state.EventHandler, publishers ...Publisher) *Worker {
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}

	w := Worker{
		publishers: publishers,
		evHandler:  evHandler,
		shut:       make(chan struct{}),
		queue:      make(chan state.Event, maxQueuedEvents),
	}

	w.wg.Add(1)

	// We don't want to return until we know the G is up and running.
	hasStarted := make(chan bool)

	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.deliveryOperations()
	}()

	<-hasStarted

	return &w
}

// Signal queues the event for delivery. If the queue is full the event is
// dropped so the ledger is never blocked by a slow consumer.
func (w *Worker) Signal(evt state.Event) {
	select {
	case w.queue <- evt:
	default:
		w.evHandler("publish: Signal: queue full, event dropped: kind[%s]", evt.Kind)
	}
}

// Shutdown delivers any queued events, stops the goroutine and closes
// the publishers.
func (w *Worker) Shutdown() {
	w.evHandler("publish: shutdown: started")
	defer w.evHandler("publish: shutdown: completed")

	w.evHandler("publish: shutdown: terminate goroutines")
	close(w.shut)
	w.wg.Wait()

	for _, pub := range w.publishers {
		if err := pub.Close(); err != nil {
			w.evHandler("publish: shutdown: close: ERROR: %s", err)
		}
	}
}

// =============================================================================

// deliveryOperations handles delivery of queued events.
func (w *Worker) deliveryOperations() {
	w.evHandler("publish: deliveryOperations: G started")
	defer w.evHandler("publish: deliveryOperations: G completed")

	for {
		select {
		case evt := <-w.queue:
			w.deliver(evt)

		case <-w.shut:
			w.drain()
			return
		}
	}
}

// drain delivers what is left in the queue at shutdown.
func (w *Worker) drain() {
	for {
		select {
		case evt := <-w.queue:
			w.deliver(evt)
		default:
			return
		}
	}
}

// deliver hands the event to every publisher. A failing publisher does not
// stop delivery to the others.
func (w *Worker) deliver(evt state.Event) {
	for _, pub := range w.publishers {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err := pub.Publish(ctx, evt)
		cancel()

		if err != nil {
			w.evHandler("publish: deliver: kind[%s]: ERROR: %s", evt.Kind, err)
		}
	}
}
