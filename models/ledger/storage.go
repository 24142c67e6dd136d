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

package ledger

import (
	"github.com/dgraph-io/badger/v2"
)

// Library represents the set of Badger operations of the block index.
type Library interface {
	ReadLibrary
	WriteLibrary
}

type ReadLibrary interface {
	RetrieveFirst(height *uint64) func(*badger.Txn) error
	RetrieveLast(height *uint64) func(*badger.Txn) error

	RetrieveBlock(height uint64, block *Block) func(*badger.Txn) error
	LookupHeightForHash(hash string, height *uint64) func(*badger.Txn) error
	RetrieveTransactions(height uint64, senders []string, transactions *[]Transaction) func(*badger.Txn) error
}

type WriteLibrary interface {
	SaveFirst(height uint64) func(*badger.Txn) error
	SaveLast(height uint64) func(*badger.Txn) error

	SaveBlock(block *Block) func(*badger.Txn) error
	IndexHeightForHash(hash string, height uint64) func(*badger.Txn) error
	SaveTransactions(height uint64, sender string, transactions []Transaction) func(*badger.Txn) error
}
