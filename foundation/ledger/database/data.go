package database

import "time"

// TransactionData is the external form of a transaction. Decimal values are
// fixed point strings with two places.
type TransactionData struct {
	ID          string    `json:"id"`
	Originator  string    `json:"originator"`
	Recipient   string    `json:"recipient"`
	Amount      string    `json:"amount"`
	TimeStamp   time.Time `json:"timestamp"`
	FraudScore  string    `json:"fraudScore"`
	Fraudulent  bool      `json:"isFraudulent"`
	Status      Status    `json:"status"`
	Hash        string    `json:"transactionHash"`
	Description string    `json:"description,omitempty"`
}

// NewTransactionData constructs the value to serialize.
func NewTransactionData(tx Transaction) TransactionData {
	return TransactionData{
		ID:          tx.ID,
		Originator:  tx.Originator,
		Recipient:   tx.Recipient,
		Amount:      tx.Amount.StringFixed(2),
		TimeStamp:   tx.TimeStamp.UTC(),
		FraudScore:  tx.FraudScore.StringFixed(2),
		Fraudulent:  tx.Flagged,
		Status:      tx.Status,
		Hash:        tx.Hash,
		Description: tx.Description,
	}
}

// ActorData is the external form of an actor.
type ActorData struct {
	Address          string    `json:"address"`
	Name             string    `json:"name,omitempty"`
	TrustScore       string    `json:"trustScore"`
	TransactionCount int       `json:"transactionCount"`
	FlaggedCount     int       `json:"flaggedCount"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

// NewActorData constructs the value to serialize.
func NewActorData(a Actor) ActorData {
	return ActorData{
		Address:          a.Address,
		TrustScore:       a.TrustScore.StringFixed(2),
		TransactionCount: a.TransactionCount,
		FlaggedCount:     a.FlaggedCount,
		LastUpdated:      a.LastUpdated.UTC(),
	}
}

// BlockData is the external form of a block.
type BlockData struct {
	Number           uint64    `json:"blockNumber"`
	PrevBlockHash    string    `json:"previousHash"`
	Hash             string    `json:"blockHash"`
	TransactionCount int       `json:"transactionCount"`
	MerkleRoot       string    `json:"merkleRoot"`
	TimeStamp        time.Time `json:"timestamp"`
}

// NewBlockData constructs the value to serialize.
func NewBlockData(b Block) BlockData {
	return BlockData{
		Number:           b.Number,
		PrevBlockHash:    b.PrevBlockHash,
		Hash:             b.Hash,
		TransactionCount: b.TransactionCount,
		MerkleRoot:       b.MerkleRoot,
		TimeStamp:        b.TimeStamp.UTC(),
	}
}

// TrustEntryData is the external form of a trust history entry.
type TrustEntryData struct {
	ID         string    `json:"id"`
	Address    string    `json:"address"`
	TrustScore string    `json:"trustScore"`
	TimeStamp  time.Time `json:"timestamp"`
}

// NewTrustEntryData constructs the value to serialize.
func NewTrustEntryData(e TrustEntry) TrustEntryData {
	return TrustEntryData{
		ID:         e.ID,
		Address:    e.Address,
		TrustScore: e.Score.StringFixed(2),
		TimeStamp:  e.TimeStamp.UTC(),
	}
}
