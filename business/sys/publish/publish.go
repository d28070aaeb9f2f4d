// Package publish delivers committed ledger events to outside consumers.
// Events are queued by the ledger after a mutation completes and handed to
// the configured publishers on a background goroutine.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
	"github.com/ardanlabs/fraudledger/foundation/ledger/state"
)

// Publisher defines the behavior of a destination for ledger events.
type Publisher interface {
	Publish(ctx context.Context, evt state.Event) error
	Close() error
}

// Envelope is the wire form of a published event.
type Envelope struct {
	Type string    `json:"type"`
	Data any       `json:"data"`
	Time time.Time `json:"time"`
}

// NewEnvelope wraps the event for the wire.
func NewEnvelope(evt state.Event, now time.Time) (Envelope, error) {
	env := Envelope{
		Type: evt.Kind,
		Time: now.UTC(),
	}

	switch evt.Kind {
	case state.EventTransaction:
		env.Data = database.NewTransactionData(evt.Transaction)
	case state.EventBlock:
		env.Data = database.NewBlockData(evt.Block)
	default:
		return Envelope{}, fmt.Errorf("unknown event kind %q", evt.Kind)
	}

	return env, nil
}

// key returns the partition key for the event.
func key(evt state.Event) string {
	if evt.Kind == state.EventBlock {
		return evt.Block.Hash
	}
	return evt.Transaction.Hash
}

// marshal encodes the envelope for the event.
func marshal(evt state.Event) ([]byte, error) {
	env, err := NewEnvelope(evt, time.Now())
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal %s event: %w", evt.Kind, err)
	}

	return data, nil
}
