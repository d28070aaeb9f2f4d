// Package scoring implements the rule based fraud scoring for transactions.
// Rules stack additively on top of any score the caller already asserted and
// the result is clamped into the range [0, 100].
package scoring

import "github.com/shopspring/decimal"

// Set of thresholds and weights applied by the rules.
var (
	FlagThreshold = decimal.NewFromInt(70)
	FraudFloor    = decimal.NewFromInt(85)
	MinScore      = decimal.Zero
	MaxScore      = decimal.NewFromInt(100)
)

// amountRule adds weight when the amount is strictly above the limit.
type amountRule struct {
	limit  decimal.Decimal
	weight decimal.Decimal
}

// amountRules are ordered largest limit first; only the first match applies.
var amountRules = []amountRule{
	{limit: decimal.NewFromInt(10_000), weight: decimal.NewFromInt(30)},
	{limit: decimal.NewFromInt(5_000), weight: decimal.NewFromInt(15)},
	{limit: decimal.NewFromInt(1_000), weight: decimal.NewFromInt(5)},
}

var selfTransferWeight = decimal.NewFromInt(50)

// =============================================================================

// Candidate is a transaction waiting to be scored.
type Candidate struct {
	Originator    string
	Recipient     string
	Amount        decimal.Decimal
	AssertedScore *decimal.Decimal
	AssertedFraud bool
}

// Result is the output of scoring a candidate.
type Result struct {
	Score   decimal.Decimal
	Flagged bool
}

// Score computes the fraud score for the candidate. It has no side effects
// and is defined for every input.
func Score(c Candidate) Result {
	score := decimal.Zero
	if c.AssertedScore != nil {
		score = *c.AssertedScore
	}

	for _, rule := range amountRules {
		if c.Amount.GreaterThan(rule.limit) {
			score = score.Add(rule.weight)
			break
		}
	}

	if c.Originator == c.Recipient {
		score = score.Add(selfTransferWeight)
	}

	// A caller marking the transaction as fraud only ever raises the score.
	if c.AssertedFraud {
		score = decimal.Max(score, FraudFloor)
	}

	score = Clamp(score)

	return Result{
		Score:   score,
		Flagged: IsFlagged(score),
	}
}

// IsFlagged reports whether the score reaches the flag threshold.
func IsFlagged(score decimal.Decimal) bool {
	return score.GreaterThanOrEqual(FlagThreshold)
}

// Clamp bounds the value into [0, 100].
func Clamp(v decimal.Decimal) decimal.Decimal {
	return decimal.Min(decimal.Max(v, MinScore), MaxScore)
}
