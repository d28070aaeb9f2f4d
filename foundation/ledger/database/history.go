package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryLimit is the number of trust entries retained per actor.
const HistoryLimit = 20

// TrustEntry records an actor's trust score at a point in time.
type TrustEntry struct {
	ID        string
	Address   string
	Score     decimal.Decimal
	TimeStamp time.Time
}

// History is a fixed size ring of trust entries. Once full, the oldest
// entry is overwritten.
type History struct {
	entries [HistoryLimit]TrustEntry
	start   int
	size    int
}

// Push appends the entry, evicting the oldest one when full.
func (h *History) Push(e TrustEntry) {
	if h.size < HistoryLimit {
		h.entries[(h.start+h.size)%HistoryLimit] = e
		h.size++
		return
	}

	h.entries[h.start] = e
	h.start = (h.start + 1) % HistoryLimit
}

// Last returns up to n of the most recent entries ordered oldest to newest.
func (h *History) Last(n int) []TrustEntry {
	if n > h.size {
		n = h.size
	}
	if n <= 0 {
		return nil
	}

	out := make([]TrustEntry, n)
	first := h.size - n
	for i := 0; i < n; i++ {
		out[i] = h.entries[(h.start+first+i)%HistoryLimit]
	}

	return out
}
