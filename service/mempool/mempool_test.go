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

package mempool_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optakt/pow-ledger/models/ledger"
	"github.com/optakt/pow-ledger/service/mempool"
	"github.com/optakt/pow-ledger/testing/mocks"
)

func TestMempool_Add(t *testing.T) {
	pool := mempool.New()
	assert.Equal(t, 0, pool.Len())
	assert.Empty(t, pool.List())

	transactions := mocks.GenericTransactions(4)
	for _, tx := range transactions {
		pool.Add(tx)
	}

	assert.Equal(t, 4, pool.Len())
	assert.Equal(t, transactions, pool.List())
}

func TestMempool_List(t *testing.T) {
	pool := mempool.New()
	pool.Add(mocks.GenericTransaction)

	list := pool.List()
	list[0].Amount = 1000

	assert.Equal(t, mocks.GenericTransaction, pool.List()[0])
}

func TestMempool_Remove(t *testing.T) {
	transactions := mocks.GenericTransactions(4)

	tests := []struct {
		name    string
		initial []ledger.Transaction
		remove  ledger.Transaction
		found   bool
		want    []ledger.Transaction
	}{
		{
			name:    "first transaction",
			initial: transactions,
			remove:  transactions[0],
			found:   true,
			want:    transactions[1:],
		},
		{
			name:    "middle transaction",
			initial: transactions,
			remove:  transactions[2],
			found:   true,
			want:    []ledger.Transaction{transactions[0], transactions[1], transactions[3]},
		},
		{
			name:    "last transaction",
			initial: transactions,
			remove:  transactions[3],
			found:   true,
			want:    transactions[:3],
		},
		{
			name:    "duplicates keep later copies",
			initial: []ledger.Transaction{transactions[0], transactions[1], transactions[0]},
			remove:  transactions[0],
			found:   true,
			want:    []ledger.Transaction{transactions[1], transactions[0]},
		},
		{
			name:    "transaction not pending",
			initial: transactions[:2],
			remove:  transactions[3],
			found:   false,
			want:    transactions[:2],
		},
		{
			name:    "empty mempool",
			initial: nil,
			remove:  transactions[0],
			found:   false,
			want:    []ledger.Transaction{},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			pool := mempool.New()
			for _, tx := range test.initial {
				pool.Add(tx)
			}

			found := pool.Remove(test.remove)

			assert.Equal(t, test.found, found)
			assert.Equal(t, test.want, pool.List())
		})
	}
}

func TestMempool_Concurrency(t *testing.T) {
	pool := mempool.New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, tx := range mocks.GenericTransactions(8) {
				pool.Add(tx)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 128, pool.Len())
}
