package publish

import (
	"context"

	"github.com/ardanlabs/fraudledger/foundation/events"
	"github.com/ardanlabs/fraudledger/foundation/ledger/state"
)

// Events sends ledger events to the websocket subscribers.
type Events struct {
	evts *events.Events
}

// NewEvents constructs a publisher over the subscriber set.
func NewEvents(evts *events.Events) *Events {
	return &Events{evts: evts}
}

// Publish sends the encoded event to every subscriber.
func (e *Events) Publish(ctx context.Context, evt state.Event) error {
	data, err := marshal(evt)
	if err != nil {
		return err
	}

	e.evts.Send(data)
	return nil
}

// Close is a no-op; the subscriber set is shut down by its owner.
func (e *Events) Close() error {
	return nil
}
