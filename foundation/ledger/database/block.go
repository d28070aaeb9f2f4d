package database

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ardanlabs/fraudledger/foundation/ledger/hash"
)

// Block is a sealed, numbered summary record chained to its predecessor.
type Block struct {
	Number           uint64
	PrevBlockHash    string
	Hash             string
	TransactionCount int
	MerkleRoot       string // Placeholder digest, not a merkle tree over the transactions.
	TimeStamp        time.Time
}

// GenesisBlock constructs block zero.
func GenesisBlock(now time.Time) Block {
	return Block{
		Number:        0,
		PrevBlockHash: hash.ZeroHash,
		Hash:          hash.Hash("genesis"),
		MerkleRoot:    hash.Hash("genesis-merkle"),
		TimeStamp:     now,
	}
}

// NextBlock constructs the block that follows the latest block, sealed at
// the specified instant and representing count transactions.
func NextBlock(latest Block, count int, sealed time.Time) Block {
	number := latest.Number + 1
	num := strconv.FormatUint(number, 10)

	return Block{
		Number:           number,
		PrevBlockHash:    latest.Hash,
		Hash:             hash.Hash(hash.Join(num, latest.Hash, strconv.FormatInt(sealed.UnixNano(), 10))),
		TransactionCount: count,
		MerkleRoot:       hash.Hash("merkle-" + num),
		TimeStamp:        sealed,
	}
}

// ValidateNext checks the block is the direct successor of the previous block.
func (b Block) ValidateNext(prev Block) error {
	if !hash.IsHash(b.Hash) || !hash.IsHash(b.PrevBlockHash) {
		return fmt.Errorf("block hashes are malformed, hash %q, prev %q", b.Hash, b.PrevBlockHash)
	}

	if b.Number != prev.Number+1 {
		return fmt.Errorf("block is not the next number, got %d, exp %d", b.Number, prev.Number+1)
	}

	if b.PrevBlockHash != prev.Hash {
		return fmt.Errorf("parent block hash doesn't match, got %s, exp %s", b.PrevBlockHash, prev.Hash)
	}

	return nil
}
