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
	"time"
)

// Block is a sealed set of transactions, linked to its predecessor through
// the previous block's hash. Blocks are never modified once appended.
type Block struct {
	Index        uint64        `json:"index" cbor:"index"`
	Timestamp    float64       `json:"timestamp" cbor:"timestamp"`
	Transactions []Transaction `json:"transactions" cbor:"transactions"`
	Proof        uint64        `json:"proof" cbor:"proof"`
	PreviousHash string        `json:"previous_hash" cbor:"previous_hash"`
}

// Genesis returns the first block of a chain, created at the given time.
func Genesis(timestamp time.Time) Block {
	genesis := Block{
		Index:        GenesisIndex,
		Timestamp:    Timestamp(timestamp),
		Transactions: []Transaction{},
		Proof:        0,
		PreviousHash: GenesisHash,
	}

	return genesis
}

// Timestamp converts a time into fractional seconds since the Unix epoch.
func Timestamp(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}

// Hash returns the block's hash. It is a shortcut for HashBlock.
func (b Block) Hash() string {
	return HashBlock(b)
}

// Senders returns the distinct senders of the block's transactions, in order
// of first appearance.
func (b Block) Senders() []string {
	seen := make(map[string]struct{}, len(b.Transactions))
	senders := make([]string, 0, len(b.Transactions))
	for _, tx := range b.Transactions {
		_, ok := seen[tx.Sender]
		if ok {
			continue
		}
		seen[tx.Sender] = struct{}{}
		senders = append(senders, tx.Sender)
	}

	return senders
}

// Reward returns the block's trailing coinbase transaction, if it has one.
func (b Block) Reward() (Transaction, bool) {
	if len(b.Transactions) == 0 {
		return Transaction{}, false
	}
	last := b.Transactions[len(b.Transactions)-1]
	if !last.IsCoinbase() {
		return Transaction{}, false
	}
	return last, true
}

// Payload returns the transactions the block's proof-of-work is bound to. The
// coinbase reward is appended after the proof is found, so it is excluded.
func (b Block) Payload() []Transaction {
	_, ok := b.Reward()
	if !ok {
		return b.Transactions
	}
	return b.Transactions[:len(b.Transactions)-1]
}

// Copy returns a copy of the block that does not share its transaction list.
func (b Block) Copy() Block {
	transactions := make([]Transaction, len(b.Transactions))
	copy(transactions, b.Transactions)
	b.Transactions = transactions
	return b
}
