package scoring_test

import (
	"testing"

	"github.com/ardanlabs/fraudledger/foundation/ledger/scoring"
	"github.com/shopspring/decimal"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func score(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestScore(t *testing.T) {
	type table struct {
		name    string
		cand    scoring.Candidate
		score   string
		flagged bool
	}

	tt := []table{
		{
			name:    "small",
			cand:    scoring.Candidate{Originator: "A", Recipient: "B", Amount: decimal.NewFromInt(500)},
			score:   "0",
			flagged: false,
		},
		{
			name:    "boundary1000",
			cand:    scoring.Candidate{Originator: "A", Recipient: "B", Amount: decimal.NewFromInt(1000)},
			score:   "0",
			flagged: false,
		},
		{
			name:    "over1000",
			cand:    scoring.Candidate{Originator: "A", Recipient: "B", Amount: decimal.RequireFromString("1000.01")},
			score:   "5",
			flagged: false,
		},
		{
			name:    "over5000",
			cand:    scoring.Candidate{Originator: "A", Recipient: "B", Amount: decimal.NewFromInt(7500)},
			score:   "15",
			flagged: false,
		},
		{
			name:    "over10000",
			cand:    scoring.Candidate{Originator: "A", Recipient: "B", Amount: decimal.NewFromInt(15000)},
			score:   "30",
			flagged: false,
		},
		{
			name:    "selfTransfer",
			cand:    scoring.Candidate{Originator: "A", Recipient: "A", Amount: decimal.NewFromInt(15000)},
			score:   "80",
			flagged: true,
		},
		{
			name:    "selfTransferAsserted",
			cand:    scoring.Candidate{Originator: "A", Recipient: "A", Amount: decimal.NewFromInt(15000), AssertedFraud: true},
			score:   "85",
			flagged: true,
		},
		{
			name:    "selfTransferScoreClamped",
			cand:    scoring.Candidate{Originator: "A", Recipient: "A", Amount: decimal.NewFromInt(15000), AssertedScore: score("40"), AssertedFraud: true},
			score:   "100",
			flagged: true,
		},
		{
			name:    "assertedFloor",
			cand:    scoring.Candidate{Originator: "A", Recipient: "B", Amount: decimal.NewFromInt(10), AssertedFraud: true},
			score:   "85",
			flagged: true,
		},
		{
			name:    "assertedScoreKept",
			cand:    scoring.Candidate{Originator: "A", Recipient: "B", Amount: decimal.NewFromInt(10), AssertedScore: score("92.5"), AssertedFraud: true},
			score:   "92.5",
			flagged: true,
		},
		{
			name:    "assertedScoreOnly",
			cand:    scoring.Candidate{Originator: "A", Recipient: "B", Amount: decimal.NewFromInt(6000), AssertedScore: score("55")},
			score:   "70",
			flagged: true,
		},
		{
			name:    "negativeClamped",
			cand:    scoring.Candidate{Originator: "A", Recipient: "B", Amount: decimal.NewFromInt(10), AssertedScore: score("-20")},
			score:   "0",
			flagged: false,
		},
	}

	t.Log("Given the need to score candidate transactions.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen scoring %s.", testID, tst.name)
				{
					res := scoring.Score(tst.cand)

					exp := decimal.RequireFromString(tst.score)
					if !res.Score.Equal(exp) {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, res.Score)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, exp)
						t.Fatalf("\t%s\tTest %d:\tShould get the expected score.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected score.", success, testID)

					if res.Flagged != tst.flagged {
						t.Fatalf("\t%s\tTest %d:\tShould have flagged set to %v.", failed, testID, tst.flagged)
					}
					t.Logf("\t%s\tTest %d:\tShould have flagged set to %v.", success, testID, tst.flagged)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func TestScoreIsPure(t *testing.T) {
	cand := scoring.Candidate{Originator: "A", Recipient: "A", Amount: decimal.NewFromInt(2000), AssertedScore: score("10")}

	t.Log("Given the need to score the same candidate twice.")
	{
		r1 := scoring.Score(cand)
		r2 := scoring.Score(cand)

		if !r1.Score.Equal(r2.Score) || r1.Flagged != r2.Flagged {
			t.Fatalf("\t%s\tShould get identical results.", failed)
		}
		t.Logf("\t%s\tShould get identical results.", success)

		if !cand.AssertedScore.Equal(decimal.NewFromInt(10)) {
			t.Fatalf("\t%s\tShould not modify the asserted score.", failed)
		}
		t.Logf("\t%s\tShould not modify the asserted score.", success)
	}
}
