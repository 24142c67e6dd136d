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

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/OneOfOne/xxhash"
	"github.com/dgraph-io/badger/v2"

	"github.com/optakt/pow-ledger/models/ledger"
)

// SaveFirst is an operation that writes the height of the first indexed block.
func (l *Library) SaveFirst(height uint64) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixFirst), height)
}

// SaveLast is an operation that writes the height of the last indexed block.
func (l *Library) SaveLast(height uint64) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixLast), height)
}

// SaveBlock is an operation that writes a block at its height.
func (l *Library) SaveBlock(block *ledger.Block) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixBlock, block.Index), block)
}

// IndexHeightForHash is an operation that indexes the height of the block with
// the given hash.
func (l *Library) IndexHeightForHash(hash string, height uint64) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixIndexForHash, hash), height)
}

// SaveTransactions is an operation that writes the transactions of a single
// sender within the block at the given height.
func (l *Library) SaveTransactions(height uint64, sender string, transactions []ledger.Transaction) func(*badger.Txn) error {
	hash := xxhash.ChecksumString64(sender)
	return l.save(EncodeKey(PrefixTransactions, height, hash), transactions)
}

// RetrieveFirst retrieves the first indexed height.
func (l *Library) RetrieveFirst(height *uint64) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixFirst), height)
}

// RetrieveLast retrieves the last indexed height.
func (l *Library) RetrieveLast(height *uint64) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixLast), height)
}

// RetrieveBlock retrieves the block at the given height.
func (l *Library) RetrieveBlock(height uint64, block *ledger.Block) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixBlock, height), block)
}

// LookupHeightForHash retrieves the height of the block with the given hash.
func (l *Library) LookupHeightForHash(hash string, height *uint64) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixIndexForHash, hash), height)
}

// RetrieveTransactions retrieves the transactions at the given height that
// were sent by one of the given senders. If no senders were provided, all
// transactions are retrieved. Transactions are grouped by sender, so the
// order of the block is not preserved.
func (l *Library) RetrieveTransactions(height uint64, senders []string, transactions *[]ledger.Transaction) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		lookup := make(map[uint64]struct{})
		for _, sender := range senders {
			hash := xxhash.ChecksumString64(sender)
			lookup[hash] = struct{}{}
		}

		prefix := EncodeKey(PrefixTransactions, height)
		opts := badger.DefaultIteratorOptions
		// NOTE: this is an optimization only, it does not enforce that all
		// results in the iteration have this prefix.
		opts.Prefix = prefix

		it := tx.NewIterator(opts)
		defer it.Close()

		// Iterate on all keys with the right prefix.
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			// If senders were given for filtering, skip the other senders.
			hash := binary.BigEndian.Uint64(it.Item().Key()[1+8:])
			_, ok := lookup[hash]
			if len(lookup) != 0 && !ok {
				continue
			}

			// Unmarshal transaction batch and append them to result slice.
			var txs []ledger.Transaction
			err := it.Item().Value(func(val []byte) error {
				return l.codec.Unmarshal(val, &txs)
			})
			if err != nil {
				return fmt.Errorf("could not unmarshal transactions: %w", err)
			}

			*transactions = append(*transactions, txs...)
		}

		return nil
	}
}
