// Package state is the core API for the fraud ledger. It owns every
// transaction, actor, trust history entry and block, and applies the scoring
// and sealing rules as one atomic unit per submitted transaction.
package state

import (
	"sync"
	"time"

	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
	"github.com/ardanlabs/fraudledger/foundation/ledger/genesis"
	"github.com/google/uuid"
)

// EventHandler defines a function that is called when events
// occur in the processing of transactions and blocks.
type EventHandler func(v string, args ...any)

// Set of event kinds delivered to the commit handler.
const (
	EventTransaction = "transaction"
	EventBlock       = "block"
)

// Event describes a committed change to the ledger. Only the field matching
// the kind is set.
type Event struct {
	Kind        string
	Transaction database.Transaction
	Block       database.Block
}

// CommitHandler is called with the events of a mutation while the store
// lock is still held, so events arrive in commit order. A handler must not
// block and must not call back into the State.
type CommitHandler func(evt Event)

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis   genesis.Genesis
	EvHandler EventHandler
	OnCommit  CommitHandler
	Now       func() time.Time
	NewID     func() string
}

// State manages the ledger data.
type State struct {
	mu sync.RWMutex

	evHandler EventHandler
	onCommit  CommitHandler
	now       func() time.Time
	newID     func() string

	transactions map[string]database.Transaction
	accepted     []string
	actors       map[string]database.Actor
	actorOrder   []string
	history      map[string]*database.History
	blocks       []database.Block
	lastAccepted time.Time
}

// New constructs the ledger, seeding the genesis actors and block.
func New(cfg Config) *State {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	onCommit := cfg.OnCommit
	if onCommit == nil {
		onCommit = func(Event) {}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	newID := cfg.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	s := State{
		evHandler:    ev,
		onCommit:     onCommit,
		now:          now,
		newID:        newID,
		transactions: make(map[string]database.Transaction),
		actors:       make(map[string]database.Actor),
		history:      make(map[string]*database.History),
	}

	// The genesis block exists exactly once and is created here. It carries
	// the genesis date when the file provides one.
	created := cfg.Genesis.Date
	if created.IsZero() {
		created = now()
	}
	genesisBlock := database.GenesisBlock(created)
	s.blocks = append(s.blocks, genesisBlock)
	ev("state: New: genesis: blk[%d]: date[%s]: hash[%s]", genesisBlock.Number, created.UTC().Format(time.RFC3339), genesisBlock.Hash)

	for _, ga := range cfg.Genesis.Actors {
		actor := database.NewActor(ga.Address, now())
		actor.TrustScore = ga.TrustScore
		s.putActor(actor)
		ev("state: New: genesis: actor[%s]: trust[%s]", actor.Address, actor.TrustScore.StringFixed(2))
	}

	return &s
}

// Snapshot returns a consistent copy of the transactions, newest first, and
// the actors in creation order.
func (s *State) Snapshot() database.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return database.Snapshot{
		Transactions: s.filterTransactions(func(database.Transaction) bool { return true }),
		Actors:       s.copyActors(),
	}
}
