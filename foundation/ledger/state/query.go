package state

import (
	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
)

// QueryTransaction returns the transaction with the specified id.
func (s *State) QueryTransaction(id string) (database.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, exists := s.transactions[id]
	if !exists {
		return database.Transaction{}, database.ErrNotFound
	}

	return tx, nil
}

// QueryTransactions returns the transactions newest first. An empty status
// returns every transaction.
func (s *State) QueryTransactions(status database.Status) []database.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterTransactions(func(tx database.Transaction) bool {
		return status == "" || tx.Status == status
	})
}

// QueryTransactionsByActor returns the transactions originated by the
// actor, newest first.
func (s *State) QueryTransactionsByActor(address string) []database.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterTransactions(func(tx database.Transaction) bool {
		return tx.Originator == address
	})
}

// filterTransactions walks the acceptance order backwards, which is newest
// first since acceptance instants strictly increase. It must be called while
// holding a lock.
func (s *State) filterTransactions(keep func(database.Transaction) bool) []database.Transaction {
	var out []database.Transaction
	for i := len(s.accepted) - 1; i >= 0; i-- {
		tx := s.transactions[s.accepted[i]]
		if keep(tx) {
			out = append(out, tx)
		}
	}

	return out
}
