// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package chain

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/optakt/pow-ledger/models/ledger"
	"github.com/optakt/pow-ledger/service/mempool"
)

// Ledger owns the chain of blocks and the pool of pending transactions.
type Ledger struct {
	log   zerolog.Logger
	cfg   Config
	miner ledger.Miner

	// forge serializes block creation from selection to commit. Only forging
	// appends blocks, so the last block can't change while we are mining.
	forge *sync.Mutex

	// mutex guards the blocks and the transaction pool against concurrent
	// submissions and commits.
	mutex  *sync.RWMutex
	blocks []ledger.Block
	pool   *mempool.Mempool
}

// New creates a ledger with a genesis block and an empty mempool.
func New(log zerolog.Logger, miner ledger.Miner, options ...func(*Config)) (*Ledger, error) {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	l := Ledger{
		log:    log.With().Str("component", "ledger").Logger(),
		cfg:    cfg,
		miner:  miner,
		forge:  &sync.Mutex{},
		mutex:  &sync.RWMutex{},
		blocks: nil,
		pool:   mempool.New(),
	}

	genesis := ledger.Genesis(cfg.Clock())
	err := l.index(&genesis, true)
	if err != nil {
		return nil, fmt.Errorf("could not index genesis block: %w", err)
	}
	l.blocks = append(l.blocks, genesis)

	l.log.Info().Str("hash", ledger.HashBlock(genesis)).Msg("genesis block created")

	return &l, nil
}

// Submit adds a transaction to the mempool. It returns the index of the block
// that the transaction would be included in if the next block included it;
// this is only a hint. If fields are missing, the returned error wraps a
// ValidationError and the mempool is left unchanged.
func (l *Ledger) Submit(sub ledger.Submission) (uint64, error) {

	tx, err := sub.Transaction()
	if err != nil {
		return 0, fmt.Errorf("could not validate transaction: %w", err)
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.pool.Add(tx)
	next := uint64(len(l.blocks)) + 1

	l.log.Debug().
		Str("sender", tx.Sender).
		Str("recipient", tx.Recipient).
		Uint64("amount", tx.Amount).
		Uint64("nonce", tx.Nonce).
		Uint64("next", next).
		Msg("transaction submitted")

	return next, nil
}

// Pending returns a snapshot of the transactions in the mempool.
func (l *Ledger) Pending() []ledger.Transaction {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.pool.List()
}

// Forge creates a new block containing the selected transactions followed by
// a coinbase transaction paying the subsidy to the given miner. The selected
// transactions are not checked against the mempool; the proof-of-work is
// bound to exactly the selected list, without the coinbase. Once sealed, the
// block is indexed, the selected transactions are removed from the mempool
// and the block is appended to the chain. With WithPendingSelection, the
// given selection is ignored and the mempool contents are used instead.
//
// Mining blocks until a proof is found, unless the context is canceled first;
// in that case the ledger is left unchanged and the error wraps
// ledger.ErrNotConverged.
func (l *Ledger) Forge(ctx context.Context, selected []ledger.Transaction, miner string, options ...func(*ForgeConfig)) (*ledger.Block, error) {

	if miner == "" {
		return nil, &ledger.ValidationError{Fields: []string{"miner"}}
	}

	var cfg ForgeConfig
	for _, option := range options {
		option(&cfg)
	}

	l.forge.Lock()
	defer l.forge.Unlock()

	if cfg.Pending {
		selected = l.Pending()
	}

	// Copy the selection, so that changes by the caller don't affect the
	// transactions we mine against and seal.
	transactions := make([]ledger.Transaction, 0, len(selected)+1)
	transactions = append(transactions, selected...)

	last := l.Last()
	proof, err := l.miner.Mine(ctx, last.Proof, transactions)
	if err != nil {
		return nil, fmt.Errorf("could not mine block: %w", err)
	}

	index := l.Height() + 1
	nonce := uint64(0)
	if l.cfg.IndexedCoinbase {
		nonce = index
	}
	coinbase := ledger.Coinbase(miner, nonce)

	previous := cfg.PreviousHash
	if previous == "" {
		previous = ledger.HashBlock(last)
	}

	block := ledger.Block{
		Index:        index,
		Timestamp:    ledger.Timestamp(l.cfg.Clock()),
		Transactions: append(transactions, coinbase),
		Proof:        proof,
		PreviousHash: previous,
	}

	err = l.index(&block, false)
	if err != nil {
		return nil, fmt.Errorf("could not index block: %w", err)
	}

	l.mutex.Lock()
	for _, tx := range selected {
		ok := l.pool.Remove(tx)
		if !ok {
			l.log.Warn().Str("sender", tx.Sender).Uint64("nonce", tx.Nonce).Msg("forged transaction was not pending")
		}
	}
	l.blocks = append(l.blocks, block)
	l.mutex.Unlock()

	l.log.Info().
		Uint64("index", block.Index).
		Uint64("proof", block.Proof).
		Int("transactions", len(block.Transactions)).
		Str("hash", ledger.HashBlock(block)).
		Msg("new block forged")

	forged := block.Copy()

	return &forged, nil
}

// Blocks returns a copy of the chain, from genesis to the last block.
func (l *Ledger) Blocks() []ledger.Block {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	blocks := make([]ledger.Block, 0, len(l.blocks))
	for _, block := range l.blocks {
		blocks = append(blocks, block.Copy())
	}

	return blocks
}

// Last returns the most recently appended block.
func (l *Ledger) Last() ledger.Block {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.blocks[len(l.blocks)-1].Copy()
}

// Height returns the number of blocks in the chain.
func (l *Ledger) Height() uint64 {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return uint64(len(l.blocks))
}

func (l *Ledger) index(block *ledger.Block, first bool) error {
	if l.cfg.Index == nil {
		return nil
	}

	if first {
		err := l.cfg.Index.First(block.Index)
		if err != nil {
			return fmt.Errorf("could not index first block: %w", err)
		}
	}
	err := l.cfg.Index.Block(block)
	if err != nil {
		return fmt.Errorf("could not index block data: %w", err)
	}
	err = l.cfg.Index.Last(block.Index)
	if err != nil {
		return fmt.Errorf("could not index last block: %w", err)
	}

	return nil
}
