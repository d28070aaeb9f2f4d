package database_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
	"github.com/ardanlabs/fraudledger/foundation/ledger/hash"
	"github.com/ardanlabs/fraudledger/foundation/ledger/scoring"
	"github.com/shopspring/decimal"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

var epoch = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func Test_ActorRecord(t *testing.T) {
	type table struct {
		name    string
		start   string
		flagged bool
		exp     string
	}

	tt := []table{
		{name: "ceiling", start: "100", flagged: false, exp: "100"},
		{name: "gain", start: "90", flagged: false, exp: "90.5"},
		{name: "nearCeiling", start: "99.8", flagged: false, exp: "100"},
		{name: "drop", start: "100", flagged: true, exp: "90"},
		{name: "floor", start: "4", flagged: true, exp: "0"},
		{name: "atFloor", start: "0", flagged: true, exp: "0"},
	}

	t.Log("Given the need to adjust trust scores per transaction.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen starting at %s with flagged %v.", testID, tst.start, tst.flagged)
				{
					a := database.NewActor("0xA", epoch)
					a.TrustScore = decimal.RequireFromString(tst.start)

					got := a.Record(tst.flagged, epoch.Add(time.Second))
					if !got.TrustScore.Equal(decimal.RequireFromString(tst.exp)) {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, got.TrustScore)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould get the expected trust score.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected trust score.", success, testID)

					if got.TransactionCount != 1 {
						t.Fatalf("\t%s\tTest %d:\tShould count the transaction.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould count the transaction.", success, testID)

					expFlagged := 0
					if tst.flagged {
						expFlagged = 1
					}
					if got.FlaggedCount != expFlagged {
						t.Fatalf("\t%s\tTest %d:\tShould have flagged count %d.", failed, testID, expFlagged)
					}
					t.Logf("\t%s\tTest %d:\tShould have flagged count %d.", success, testID, expFlagged)

					if !got.LastUpdated.Equal(epoch.Add(time.Second)) {
						t.Fatalf("\t%s\tTest %d:\tShould stamp last updated.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould stamp last updated.", success, testID)

					if !a.TrustScore.Equal(decimal.RequireFromString(tst.start)) {
						t.Fatalf("\t%s\tTest %d:\tShould not modify the original actor.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould not modify the original actor.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_ActorApply(t *testing.T) {
	t.Log("Given the need to merge partial actor updates.")
	{
		a := database.NewActor("0xA", epoch)

		score := decimal.NewFromInt(150)
		count := 7
		got := a.Apply(database.ActorPatch{TrustScore: &score, TransactionCount: &count}, epoch.Add(time.Minute))

		if !got.TrustScore.Equal(scoring.MaxScore) {
			t.Fatalf("\t%s\tShould clamp the trust score into range: %s", failed, got.TrustScore)
		}
		t.Logf("\t%s\tShould clamp the trust score into range.", success)

		if got.TransactionCount != 7 || got.FlaggedCount != 0 {
			t.Fatalf("\t%s\tShould only change provided fields.", failed)
		}
		t.Logf("\t%s\tShould only change provided fields.", success)

		if !got.LastUpdated.Equal(epoch.Add(time.Minute)) {
			t.Fatalf("\t%s\tShould refresh last updated.", failed)
		}
		t.Logf("\t%s\tShould refresh last updated.", success)
	}
}

func Test_History(t *testing.T) {
	t.Log("Given the need to keep a bounded trust history.")
	{
		var h database.History

		if got := h.Last(5); len(got) != 0 {
			t.Fatalf("\t%s\tShould return nothing when empty.", failed)
		}
		t.Logf("\t%s\tShould return nothing when empty.", success)

		for i := 0; i < 25; i++ {
			h.Push(database.TrustEntry{ID: fmt.Sprint(i), Score: decimal.NewFromInt(int64(i))})
		}

		if n := len(h.Last(100)); n != database.HistoryLimit {
			t.Fatalf("\t%s\tShould retain %d entries, got %d.", failed, database.HistoryLimit, n)
		}
		t.Logf("\t%s\tShould retain %d entries.", success, database.HistoryLimit)

		all := h.Last(100)
		if all[0].ID != "5" || all[len(all)-1].ID != "24" {
			t.Fatalf("\t%s\tShould evict the oldest entries first, got %s..%s.", failed, all[0].ID, all[len(all)-1].ID)
		}
		t.Logf("\t%s\tShould evict the oldest entries first.", success)

		last := h.Last(3)
		if len(last) != 3 || last[0].ID != "22" || last[2].ID != "24" {
			t.Fatalf("\t%s\tShould return the most recent window oldest to newest.", failed)
		}
		t.Logf("\t%s\tShould return the most recent window oldest to newest.", success)
	}
}

func Test_Blocks(t *testing.T) {
	t.Log("Given the need to chain blocks.")
	{
		genesis := database.GenesisBlock(epoch)

		if genesis.Number != 0 || genesis.PrevBlockHash != hash.ZeroHash {
			t.Fatalf("\t%s\tShould have a genesis block at zero with the zero hash parent.", failed)
		}
		t.Logf("\t%s\tShould have a genesis block at zero with the zero hash parent.", success)

		if genesis.Hash != hash.Hash("genesis") || genesis.MerkleRoot != hash.Hash("genesis-merkle") {
			t.Fatalf("\t%s\tShould have the well known genesis digests.", failed)
		}
		t.Logf("\t%s\tShould have the well known genesis digests.", success)

		b1 := database.NextBlock(genesis, database.BlockBatch, epoch.Add(time.Second))
		if err := b1.ValidateNext(genesis); err != nil {
			t.Fatalf("\t%s\tShould produce a valid successor: %v", failed, err)
		}
		t.Logf("\t%s\tShould produce a valid successor.", success)

		if b1.MerkleRoot != hash.Hash("merkle-1") || b1.TransactionCount != database.BlockBatch {
			t.Fatalf("\t%s\tShould carry the placeholder digest and batch size.", failed)
		}
		t.Logf("\t%s\tShould carry the placeholder digest and batch size.", success)

		exp := hash.Hash(fmt.Sprintf("1-%s-%d", genesis.Hash, epoch.Add(time.Second).UnixNano()))
		if b1.Hash != exp {
			t.Fatalf("\t%s\tShould hash number, parent hash and sealing instant.", failed)
		}
		t.Logf("\t%s\tShould hash number, parent hash and sealing instant.", success)

		b2 := database.NextBlock(b1, database.BlockBatch, epoch.Add(2*time.Second))
		if err := b2.ValidateNext(genesis); err == nil {
			t.Fatalf("\t%s\tShould detect a gap in numbering.", failed)
		}
		t.Logf("\t%s\tShould detect a gap in numbering.", success)

		bad := database.NextBlock(genesis, database.BlockBatch, epoch.Add(time.Second))
		bad.Hash = "not-a-hash"
		if err := bad.ValidateNext(genesis); err == nil {
			t.Fatalf("\t%s\tShould detect a malformed block hash.", failed)
		}
		t.Logf("\t%s\tShould detect a malformed block hash.", success)
	}
}

func Test_TransactionStatus(t *testing.T) {
	type table struct {
		name    string
		status  database.Status
		flagged bool
		exp     database.Status
	}

	tt := []table{
		{name: "default", status: "", flagged: false, exp: database.StatusVerified},
		{name: "pending", status: database.StatusPending, flagged: false, exp: database.StatusPending},
		{name: "overridePending", status: database.StatusPending, flagged: true, exp: database.StatusFlagged},
		{name: "callerFlagged", status: database.StatusFlagged, flagged: false, exp: database.StatusVerified},
	}

	t.Log("Given the need to derive a transaction status.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				sub := database.SubmitTx{Originator: "0xA", Recipient: "0xB", Amount: decimal.NewFromInt(10), Status: tst.status}
				res := scoring.Result{Score: decimal.Zero, Flagged: tst.flagged}

				tx := database.NewTransaction("id", sub, res, epoch)
				if tx.Status != tst.exp {
					t.Fatalf("\t%s\tTest %d:\tShould have status %s, got %s.", failed, testID, tst.exp, tx.Status)
				}
				t.Logf("\t%s\tTest %d:\tShould have status %s.", success, testID, tst.exp)

				if tx.Hash != database.TransactionHash("0xA", sub.Amount, epoch) {
					t.Fatalf("\t%s\tTest %d:\tShould derive the content hash.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould derive the content hash.", success, testID)
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_TransactionData(t *testing.T) {
	t.Log("Given the need to serialize a transaction.")
	{
		sub := database.SubmitTx{Originator: "0xA", Recipient: "0xB", Amount: decimal.RequireFromString("12.5")}
		tx := database.NewTransaction("id", sub, scoring.Score(sub.Candidate()), epoch)

		data, err := json.Marshal(database.NewTransactionData(tx))
		if err != nil {
			t.Fatalf("\t%s\tShould be able to marshal: %v", failed, err)
		}

		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("\t%s\tShould be able to unmarshal: %v", failed, err)
		}

		if m["amount"] != "12.50" || m["fraudScore"] != "0.00" {
			t.Fatalf("\t%s\tShould use fixed point strings, got %v / %v.", failed, m["amount"], m["fraudScore"])
		}
		t.Logf("\t%s\tShould use fixed point strings.", success)

		if m["timestamp"] != "2026-03-01T12:00:00Z" {
			t.Fatalf("\t%s\tShould use an ISO-8601 instant, got %v.", failed, m["timestamp"])
		}
		t.Logf("\t%s\tShould use an ISO-8601 instant.", success)
	}
}
