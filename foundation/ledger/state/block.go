package state

import (
	"fmt"
	"time"

	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
)

// sealBlock appends the block following the latest block. It must be called
// while holding the write lock. A numbering gap means the chain was corrupted
// by a programming error and there is no recovery from that.
func (s *State) sealBlock(sealed time.Time) database.Block {
	latest := s.blocks[len(s.blocks)-1]

	blk := database.NextBlock(latest, database.BlockBatch, sealed)
	if err := blk.ValidateNext(latest); err != nil {
		panic(fmt.Errorf("%w: state: sealBlock: %s", database.ErrInvariant, err))
	}

	s.blocks = append(s.blocks, blk)

	s.evHandler("state: sealBlock: sealed: blk[%d]: prev[%s]: hash[%s]", blk.Number, blk.PrevBlockHash, blk.Hash)

	return blk
}

// RetrieveBlocks returns all blocks in ascending block number order.
func (s *State) RetrieveBlocks() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks := make([]database.Block, len(s.blocks))
	copy(blocks, s.blocks)

	return blocks
}

// RetrieveLatestBlock returns the block with the highest number.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.blocks[len(s.blocks)-1]
}
