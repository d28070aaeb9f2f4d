package database

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ardanlabs/fraudledger/foundation/ledger/hash"
	"github.com/ardanlabs/fraudledger/foundation/ledger/scoring"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a transaction.
type Status string

// Set of known transaction statuses.
const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusFlagged  Status = "flagged"
)

// ParseStatus converts the string into a known status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusVerified, StatusFlagged:
		return st, nil
	}

	return "", fmt.Errorf("unknown status %q", s)
}

// =============================================================================

// SubmitTx is the validated input for a new transaction. Optional caller
// assertions are folded into the fraud score by the scoring rules.
type SubmitTx struct {
	Originator    string
	Recipient     string
	Amount        decimal.Decimal
	Description   string
	Status        Status
	AssertedScore *decimal.Decimal
	AssertedFraud bool
}

// Candidate returns the scoring view of the submission.
func (tx SubmitTx) Candidate() scoring.Candidate {
	return scoring.Candidate{
		Originator:    tx.Originator,
		Recipient:     tx.Recipient,
		Amount:        tx.Amount,
		AssertedScore: tx.AssertedScore,
		AssertedFraud: tx.AssertedFraud,
	}
}

// Transaction is an accepted transaction. It is never modified once created.
type Transaction struct {
	ID          string
	Originator  string
	Recipient   string
	Amount      decimal.Decimal
	TimeStamp   time.Time
	FraudScore  decimal.Decimal
	Flagged     bool
	Status      Status
	Hash        string
	Description string
}

// NewTransaction constructs the transaction accepted at the specified instant
// using the result of scoring the submission.
func NewTransaction(id string, tx SubmitTx, res scoring.Result, accepted time.Time) Transaction {
	status := tx.Status
	switch {
	case res.Flagged:
		status = StatusFlagged
	case status == "" || status == StatusFlagged:
		status = StatusVerified
	}

	return Transaction{
		ID:          id,
		Originator:  tx.Originator,
		Recipient:   tx.Recipient,
		Amount:      tx.Amount,
		TimeStamp:   accepted,
		FraudScore:  res.Score,
		Flagged:     res.Flagged,
		Status:      status,
		Hash:        TransactionHash(tx.Originator, tx.Amount, accepted),
		Description: tx.Description,
	}
}

// TransactionHash derives the content hash for a transaction from the
// originator, the amount and the nanosecond acceptance instant.
func TransactionHash(originator string, amount decimal.Decimal, accepted time.Time) string {
	return hash.Hash(hash.Join(originator, amount.String(), strconv.FormatInt(accepted.UnixNano(), 10)))
}

// String implements the fmt.Stringer interface for logging.
func (tx Transaction) String() string {
	return fmt.Sprintf("%s:%s->%s:%s:%s", tx.ID, tx.Originator, tx.Recipient, tx.Amount.StringFixed(2), tx.Status)
}
