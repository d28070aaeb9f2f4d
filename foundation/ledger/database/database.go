// Package database defines the records held by the ledger: transactions,
// actors with their trust scores, trust score history and sealed blocks.
package database

import "errors"

// Set of errors the ledger can produce.
var (
	// ErrNotFound is returned when a lookup by id or address has no match.
	ErrNotFound = errors.New("not found")

	// ErrInvariant is the panic value used when the chain is found in a
	// state correct sequencing can never produce.
	ErrInvariant = errors.New("ledger invariant violated")
)

// BlockBatch is the number of accepted transactions that triggers sealing.
const BlockBatch = 5

// Snapshot is a consistent copy of the ledger contents taken under a
// single read of the store.
type Snapshot struct {
	Transactions []Transaction
	Actors       []Actor
}
