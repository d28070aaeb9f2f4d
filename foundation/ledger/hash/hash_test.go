package hash_test

import (
	"testing"

	"github.com/ardanlabs/fraudledger/foundation/ledger/hash"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestHash(t *testing.T) {
	type table struct {
		name  string
		parts []string
		exp   string
	}

	tt := []table{
		{
			name:  "empty",
			parts: nil,
			exp:   "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:  "abc",
			parts: []string{"abc"},
			exp:   "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:  "split",
			parts: []string{"a", "bc"},
			exp:   "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	t.Log("Given the need to hash ledger content.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen hashing %q.", testID, tst.parts)
				{
					got := hash.Hash(tst.parts...)
					if got != tst.exp {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, got)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould get the expected digest.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected digest.", success, testID)

					if !hash.IsHash(got) {
						t.Fatalf("\t%s\tTest %d:\tShould be recognized as a hash.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould be recognized as a hash.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func TestZeroHash(t *testing.T) {
	t.Log("Given the need to use the genesis sentinel.")
	{
		if !hash.IsHash(hash.ZeroHash) {
			t.Fatalf("\t%s\tShould be a valid 64 character hex value.", failed)
		}
		t.Logf("\t%s\tShould be a valid 64 character hex value.", success)

		if hash.Join("1", hash.ZeroHash, "5") != "1-"+hash.ZeroHash+"-5" {
			t.Fatalf("\t%s\tShould join parts with dashes.", failed)
		}
		t.Logf("\t%s\tShould join parts with dashes.", success)
	}
}
