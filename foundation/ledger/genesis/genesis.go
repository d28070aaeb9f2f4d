// Package genesis maintains access to the genesis file that seeds the ledger.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultActor is the actor seeded when no genesis file is provided.
const DefaultActor = "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0"

// Actor is an actor seeded into the ledger at startup.
type Actor struct {
	Address    string          `json:"address"`
	TrustScore decimal.Decimal `json:"trust_score"`
}

// Genesis represents the genesis file.
type Genesis struct {
	Date   time.Time `json:"date"`
	Actors []Actor   `json:"actors"` // Seeded in order, so the first actor is the fallback actor.
}

// Default returns the genesis used when no file is configured.
func Default() Genesis {
	return Genesis{
		Actors: []Actor{
			{Address: DefaultActor, TrustScore: decimal.NewFromInt(100)},
		},
	}
}

// =============================================================================

// Load opens and consumes the genesis file. An empty path returns the
// default genesis.
func Load(path string) (Genesis, error) {
	if path == "" {
		return Default(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	for _, a := range genesis.Actors {
		if a.Address == "" {
			return Genesis{}, fmt.Errorf("genesis actor missing address")
		}
		if a.TrustScore.IsNegative() || a.TrustScore.GreaterThan(decimal.NewFromInt(100)) {
			return Genesis{}, fmt.Errorf("genesis actor %s trust score %s out of range", a.Address, a.TrustScore)
		}
	}

	return genesis, nil
}
