package public

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
	"github.com/ardanlabs/fraudledger/foundation/ledger/scoring"
	"github.com/ardanlabs/fraudledger/foundation/validate"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// newTransaction is the request to submit a transaction.
type newTransaction struct {
	Originator   string  `json:"originator" validate:"required"`
	Recipient    string  `json:"recipient" validate:"required"`
	Amount       string  `json:"amount" validate:"required"`
	FraudScore   *string `json:"fraudScore"`
	IsFraudulent bool    `json:"isFraudulent"`
	Status       string  `json:"status" validate:"omitempty,oneof=pending verified flagged"`
	Description  string  `json:"description" validate:"max=1024"`
}

// toSubmitTx converts the request into the value the ledger accepts. Amount
// and score are parsed here so the ledger only ever sees valid numbers.
func (nt newTransaction) toSubmitTx(strict bool) (database.SubmitTx, error) {
	if strict {
		if !common.IsHexAddress(nt.Originator) {
			return database.SubmitTx{}, validate.NewFieldsError("originator", errors.New("originator must be a hex address"))
		}
		if !common.IsHexAddress(nt.Recipient) {
			return database.SubmitTx{}, validate.NewFieldsError("recipient", errors.New("recipient must be a hex address"))
		}
	}

	amount, err := decimal.NewFromString(nt.Amount)
	if err != nil {
		return database.SubmitTx{}, validate.NewFieldsError("amount", errors.New("amount must be a decimal number"))
	}
	if amount.IsNegative() {
		return database.SubmitTx{}, validate.NewFieldsError("amount", errors.New("amount must not be negative"))
	}

	sub := database.SubmitTx{
		Originator:    nt.Originator,
		Recipient:     nt.Recipient,
		Amount:        amount,
		Description:   nt.Description,
		AssertedFraud: nt.IsFraudulent,
	}

	if nt.Status != "" {
		status, err := database.ParseStatus(nt.Status)
		if err != nil {
			return database.SubmitTx{}, validate.NewFieldsError("status", err)
		}
		sub.Status = status
	}

	if nt.FraudScore != nil {
		score, err := decimal.NewFromString(*nt.FraudScore)
		if err != nil {
			return database.SubmitTx{}, validate.NewFieldsError("fraudScore", errors.New("fraudScore must be a decimal number"))
		}
		if score.LessThan(scoring.MinScore) || score.GreaterThan(scoring.MaxScore) {
			return database.SubmitTx{}, validate.NewFieldsError("fraudScore", fmt.Errorf("fraudScore must be between %s and %s", scoring.MinScore, scoring.MaxScore))
		}
		sub.AssertedScore = &score
	}

	return sub, nil
}

// actorUpdate is the request to change an actor's values. Fields left out
// of the document are not changed.
type actorUpdate struct {
	TrustScore       *string `json:"trustScore"`
	TransactionCount *int    `json:"transactionCount" validate:"omitempty,min=0"`
	FlaggedCount     *int    `json:"flaggedCount" validate:"omitempty,min=0"`
}

func (au actorUpdate) toActorPatch() (database.ActorPatch, error) {
	patch := database.ActorPatch{
		TransactionCount: au.TransactionCount,
		FlaggedCount:     au.FlaggedCount,
	}

	if au.TrustScore != nil {
		trust, err := decimal.NewFromString(*au.TrustScore)
		if err != nil {
			return database.ActorPatch{}, validate.NewFieldsError("trustScore", errors.New("trustScore must be a decimal number"))
		}
		if trust.LessThan(scoring.MinScore) || trust.GreaterThan(scoring.MaxScore) {
			return database.ActorPatch{}, validate.NewFieldsError("trustScore", fmt.Errorf("trustScore must be between %s and %s", scoring.MinScore, scoring.MaxScore))
		}
		patch.TrustScore = &trust
	}

	return patch, nil
}

// unknownActor is returned by the trust score lookup when the ledger has
// no actors at all.
var unknownActor = database.ActorData{
	Address:    "0x0000...0000",
	TrustScore: "100.00",
}
