package state

import (
	"time"

	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
	"github.com/ardanlabs/fraudledger/foundation/ledger/scoring"
)

// SubmitTransaction scores and accepts a new transaction. The originator's
// trust score and history are updated and a block is sealed when the number
// of accepted transactions reaches a multiple of the block batch. The input
// is expected to be validated already.
func (s *State) SubmitTransaction(sub database.SubmitTx) database.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, events := s.submit(sub)

	for _, evt := range events {
		s.onCommit(evt)
	}

	return tx
}

// submit performs the whole mutation. It must be called while holding the
// write lock.
func (s *State) submit(sub database.SubmitTx) (database.Transaction, []Event) {
	res := scoring.Score(sub.Candidate())
	accepted := s.acceptInstant()

	tx := database.NewTransaction(s.newID(), sub, res, accepted)
	s.transactions[tx.ID] = tx
	s.accepted = append(s.accepted, tx.ID)

	s.evHandler("state: SubmitTransaction: accepted: tx[%s]: score[%s]", tx, tx.FraudScore.StringFixed(2))

	actor := s.getOrCreateActor(sub.Originator, accepted)
	actor = actor.Record(tx.Flagged, accepted)
	s.putActor(actor)
	s.appendHistory(actor, accepted)

	s.evHandler("state: SubmitTransaction: actor[%s]: trust[%s]", actor.Address, actor.TrustScore.StringFixed(2))

	events := []Event{{Kind: EventTransaction, Transaction: tx}}

	if len(s.accepted)%database.BlockBatch == 0 {
		blk := s.sealBlock(accepted)
		events = append(events, Event{Kind: EventBlock, Block: blk})
	}

	return tx, events
}

// acceptInstant returns the acceptance time for the next transaction. The
// value is strictly after the previous acceptance so timestamps never go
// backwards and content hashes stay unique.
func (s *State) acceptInstant() time.Time {
	now := s.now()
	if !now.After(s.lastAccepted) {
		now = s.lastAccepted.Add(time.Nanosecond)
	}
	s.lastAccepted = now

	return now
}
