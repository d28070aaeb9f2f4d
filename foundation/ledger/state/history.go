package state

import (
	"time"

	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
)

// DefaultHistoryLimit is used when a history query provides no limit.
const DefaultHistoryLimit = 10

// QueryTrustHistory returns up to limit of the most recent trust entries for
// the actor, ordered oldest to newest.
func (s *State) QueryTrustHistory(address string, limit int) []database.TrustEntry {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	h, exists := s.history[address]
	if !exists {
		return nil
	}

	return h.Last(limit)
}

// appendHistory must be called while holding the write lock.
func (s *State) appendHistory(actor database.Actor, now time.Time) {
	h, exists := s.history[actor.Address]
	if !exists {
		h = &database.History{}
		s.history[actor.Address] = h
	}

	h.Push(database.TrustEntry{
		ID:        s.newID(),
		Address:   actor.Address,
		Score:     actor.TrustScore,
		TimeStamp: now,
	})
}
