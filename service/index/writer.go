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
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/optakt/pow-ledger/models/ledger"
	"github.com/optakt/pow-ledger/service/storage"
)

// Writer writes blocks to the block index.
type Writer struct {
	db  *badger.DB
	lib ledger.WriteLibrary
}

// NewWriter creates a new index writer that writes to the given Badger database.
func NewWriter(db *badger.DB, lib ledger.WriteLibrary) *Writer {

	w := Writer{
		db:  db,
		lib: lib,
	}

	return &w
}

// First indexes the height of the first block.
func (w *Writer) First(height uint64) error {
	return w.db.Update(w.lib.SaveFirst(height))
}

// Last indexes the height of the last block.
func (w *Writer) Last(height uint64) error {
	return w.db.Update(w.lib.SaveLast(height))
}

// Block indexes the block at its height, its height for its hash and its
// transactions by sender, all within one transaction.
func (w *Writer) Block(block *ledger.Block) error {

	ops := []func(*badger.Txn) error{
		w.lib.SaveBlock(block),
		w.lib.IndexHeightForHash(ledger.HashBlock(*block), block.Index),
	}

	buckets := make(map[string][]ledger.Transaction)
	for _, tx := range block.Transactions {
		buckets[tx.Sender] = append(buckets[tx.Sender], tx)
	}
	for _, sender := range block.Senders() {
		ops = append(ops, w.lib.SaveTransactions(block.Index, sender, buckets[sender]))
	}

	err := w.db.Update(storage.Combine(ops...))
	if err != nil {
		return fmt.Errorf("could not index block (index: %d): %w", block.Index, err)
	}

	return nil
}

// Close closes the writer. Every write is committed right away, so there is
// nothing left to flush.
func (w *Writer) Close() error {
	return nil
}
