package events_test

import (
	"testing"

	"github.com/ardanlabs/fraudledger/foundation/events"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestEvents(t *testing.T) {
	t.Log("Given the need to fan out ledger events.")
	{
		evts := events.New()

		ch1 := evts.Acquire("1")
		ch2 := evts.Acquire("2")
		if evts.Subscribers() != 2 {
			t.Fatalf("\t%s\tShould have two subscribers.", failed)
		}
		t.Logf("\t%s\tShould have two subscribers.", success)

		evts.Send([]byte("block"))
		if string(<-ch1) != "block" || string(<-ch2) != "block" {
			t.Fatalf("\t%s\tShould deliver to every subscriber.", failed)
		}
		t.Logf("\t%s\tShould deliver to every subscriber.", success)

		if err := evts.Release("1"); err != nil {
			t.Fatalf("\t%s\tShould release a subscriber: %v", failed, err)
		}
		if _, open := <-ch1; open {
			t.Fatalf("\t%s\tShould close a released channel.", failed)
		}
		t.Logf("\t%s\tShould close a released channel.", success)

		if err := evts.Release("1"); err == nil {
			t.Fatalf("\t%s\tShould fail to release twice.", failed)
		}
		t.Logf("\t%s\tShould fail to release twice.", success)

		for i := 0; i < 200; i++ {
			evts.Send([]byte("tx"))
		}
		t.Logf("\t%s\tShould not block on a full subscriber.", success)

		evts.Shutdown()
		if evts.Subscribers() != 0 {
			t.Fatalf("\t%s\tShould remove every subscriber on shutdown.", failed)
		}
		t.Logf("\t%s\tShould remove every subscriber on shutdown.", success)
	}
}
