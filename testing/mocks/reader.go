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

package mocks

import (
	"testing"

	"github.com/optakt/pow-ledger/models/ledger"
)

type Reader struct {
	FirstFunc         func() (uint64, error)
	LastFunc          func() (uint64, error)
	BlockFunc         func(height uint64) (*ledger.Block, error)
	HeightForHashFunc func(hash string) (uint64, error)
	TransactionsFunc  func(height uint64, senders ...string) ([]ledger.Transaction, error)
}

func BaselineReader(t *testing.T) *Reader {
	t.Helper()

	r := Reader{
		FirstFunc: func() (uint64, error) {
			return ledger.GenesisIndex, nil
		},
		LastFunc: func() (uint64, error) {
			return GenericHeight, nil
		},
		BlockFunc: func(uint64) (*ledger.Block, error) {
			block := GenericBlock.Copy()
			return &block, nil
		},
		HeightForHashFunc: func(string) (uint64, error) {
			return GenericHeight, nil
		},
		TransactionsFunc: func(uint64, ...string) ([]ledger.Transaction, error) {
			return GenericTransactions(4), nil
		},
	}

	return &r
}

func (r *Reader) First() (uint64, error) {
	return r.FirstFunc()
}

func (r *Reader) Last() (uint64, error) {
	return r.LastFunc()
}

func (r *Reader) Block(height uint64) (*ledger.Block, error) {
	return r.BlockFunc(height)
}

func (r *Reader) HeightForHash(hash string) (uint64, error) {
	return r.HeightForHashFunc(hash)
}

func (r *Reader) Transactions(height uint64, senders ...string) ([]ledger.Transaction, error) {
	return r.TransactionsFunc(height, senders...)
}
