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

package mempool

import (
	"sync"

	"github.com/gammazero/deque"

	"github.com/optakt/pow-ledger/models/ledger"
)

// Mempool holds the transactions that were submitted but not yet included in
// a block, in order of submission.
type Mempool struct {
	mutex *sync.Mutex
	queue *deque.Deque
}

// New creates an empty mempool.
func New() *Mempool {
	m := Mempool{
		mutex: &sync.Mutex{},
		queue: deque.New(),
	}
	return &m
}

// Len returns the number of pending transactions.
func (m *Mempool) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.queue.Len()
}

// Add appends a transaction at the end of the mempool.
func (m *Mempool) Add(tx ledger.Transaction) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.queue.PushBack(tx)
}

// List returns a copy of the pending transactions in submission order.
func (m *Mempool) List() []ledger.Transaction {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	transactions := make([]ledger.Transaction, 0, m.queue.Len())
	for i := 0; i < m.queue.Len(); i++ {
		transactions = append(transactions, m.queue.At(i).(ledger.Transaction))
	}

	return transactions
}

// Remove removes the earliest submitted transaction that is equal to the given
// one. When duplicates are pending, the others stay in the mempool. It returns
// false if no equal transaction is pending.
func (m *Mempool) Remove(tx ledger.Transaction) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i := 0; i < m.queue.Len(); i++ {
		if m.queue.At(i).(ledger.Transaction) != tx {
			continue
		}

		// Rotating brings the match to the front without disturbing the
		// relative order of the others; rotating back restores it.
		m.queue.Rotate(i)
		_ = m.queue.PopFront()
		m.queue.Rotate(-i)
		return true
	}

	return false
}
