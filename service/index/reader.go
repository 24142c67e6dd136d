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

package index

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/dgraph-io/ristretto"

	"github.com/optakt/pow-ledger/models/ledger"
)

// Reader reads blocks from the block index.
type Reader struct {
	db    *badger.DB
	lib   ledger.ReadLibrary
	cache *ristretto.Cache
}

// NewReader creates a new index reader for the given Badger database.
func NewReader(db *badger.DB, lib ledger.ReadLibrary, options ...func(*Config)) (*Reader, error) {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	r := Reader{
		db:  db,
		lib: lib,
	}

	if cfg.CacheSize == 0 {
		return &r, nil
	}

	// Blocks are immutable once indexed, so cached entries never go stale.
	// Ristretto recommends keeping ten times as many counters as items in the
	// cache when full.
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.CacheSize) * 10,
		MaxCost:     int64(cfg.CacheSize),
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("could not initialize cache: %w", err)
	}
	r.cache = cache

	return &r, nil
}

// First returns the height of the first indexed block.
func (r *Reader) First() (uint64, error) {
	var height uint64
	err := r.db.View(r.lib.RetrieveFirst(&height))
	if err != nil {
		return 0, notFound(err)
	}
	return height, nil
}

// Last returns the height of the last indexed block.
func (r *Reader) Last() (uint64, error) {
	var height uint64
	err := r.db.View(r.lib.RetrieveLast(&height))
	if err != nil {
		return 0, notFound(err)
	}
	return height, nil
}

// Block returns the block at the given height.
func (r *Reader) Block(height uint64) (*ledger.Block, error) {
	if r.cache != nil {
		cached, ok := r.cache.Get(height)
		if ok {
			block := cached.(ledger.Block).Copy()
			return &block, nil
		}
	}

	var block ledger.Block
	err := r.db.View(r.lib.RetrieveBlock(height, &block))
	if err != nil {
		return nil, notFound(err)
	}

	if r.cache != nil {
		_ = r.cache.Set(height, block.Copy(), 1)
	}

	return &block, nil
}

// HeightForHash returns the height of the block with the given hash.
func (r *Reader) HeightForHash(hash string) (uint64, error) {
	var height uint64
	err := r.db.View(r.lib.LookupHeightForHash(hash, &height))
	if err != nil {
		return 0, notFound(err)
	}
	return height, nil
}

// Transactions returns the transactions of the block at the given height that
// were sent by any of the given senders, or all of them if none are given.
func (r *Reader) Transactions(height uint64, senders ...string) ([]ledger.Transaction, error) {
	first, err := r.First()
	if err != nil {
		return nil, fmt.Errorf("could not get first height: %w", err)
	}
	last, err := r.Last()
	if err != nil {
		return nil, fmt.Errorf("could not get last height: %w", err)
	}
	if height < first || height > last {
		return nil, fmt.Errorf("unknown height (height: %d, first: %d, last: %d): %w", height, first, last, ledger.ErrNotFound)
	}

	var transactions []ledger.Transaction
	err = r.db.View(r.lib.RetrieveTransactions(height, senders, &transactions))
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

func notFound(err error) error {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%v: %w", err, ledger.ErrNotFound)
	}
	return err
}
