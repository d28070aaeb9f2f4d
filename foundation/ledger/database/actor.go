package database

import (
	"time"

	"github.com/ardanlabs/fraudledger/foundation/ledger/scoring"
	"github.com/shopspring/decimal"
)

// Trust score adjustments applied for every transaction an actor originates.
var (
	DefaultTrust = decimal.NewFromInt(100)
	FlaggedDrop  = decimal.NewFromInt(10)
	VerifiedGain = decimal.RequireFromString("0.5")
)

// Actor represents a ledger participant identified by address.
type Actor struct {
	Address          string
	TrustScore       decimal.Decimal
	TransactionCount int
	FlaggedCount     int
	LastUpdated      time.Time
}

// NewActor constructs an actor with the default trust score.
func NewActor(address string, now time.Time) Actor {
	return Actor{
		Address:     address,
		TrustScore:  DefaultTrust,
		LastUpdated: now,
	}
}

// Record returns a copy of the actor updated for one originated transaction.
func (a Actor) Record(flagged bool, now time.Time) Actor {
	switch flagged {
	case true:
		a.TrustScore = scoring.Clamp(a.TrustScore.Sub(FlaggedDrop))
		a.FlaggedCount++

	default:
		a.TrustScore = scoring.Clamp(a.TrustScore.Add(VerifiedGain))
	}

	a.TransactionCount++
	a.LastUpdated = now

	return a
}

// ActorPatch carries the optional fields of an actor to merge.
type ActorPatch struct {
	TrustScore       *decimal.Decimal
	TransactionCount *int
	FlaggedCount     *int
}

// Apply returns a copy of the actor with the patch merged in.
func (a Actor) Apply(p ActorPatch, now time.Time) Actor {
	if p.TrustScore != nil {
		a.TrustScore = scoring.Clamp(*p.TrustScore)
	}
	if p.TransactionCount != nil {
		a.TransactionCount = *p.TransactionCount
	}
	if p.FlaggedCount != nil {
		a.FlaggedCount = *p.FlaggedCount
	}
	a.LastUpdated = now

	return a
}
