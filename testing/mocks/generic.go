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
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/optakt/pow-ledger/models/ledger"
)

// Offset used as a seed for deterministic fixtures.
const offset = 1_634_000_000

var (
	NoopLogger = zerolog.New(io.Discard)

	GenericError = errors.New("dummy error")

	GenericHeight = uint64(42)

	GenericBytes = []byte(`test`)

	GenericMiner = "6d1c5b2cf5c24e4f9cfe6c1e0a9b7f3d"

	GenericProof = uint64(35293)

	GenericHash = "5b0a8f31c3d6e7a1f4b2c9d8e0a7b6c5d4e3f2a1b0c9d8e7f6a5b4c3d2e1f0a9"

	GenericTimestamp = float64(offset) + 0.5

	GenericSenders = []string{"alice", "bob", "carol", "dave"}

	GenericTransaction = GenericTransactions(1)[0]

	GenericSubmission = ledger.NewSubmission(
		GenericTransaction.Sender,
		GenericTransaction.Recipient,
		GenericTransaction.Amount,
		GenericTransaction.Nonce,
	)

	GenericBlock = ledger.Block{
		Index:        GenericHeight,
		Timestamp:    GenericTimestamp,
		Transactions: append(GenericTransactions(4), ledger.Coinbase(GenericMiner, 0)),
		Proof:        GenericProof,
		PreviousHash: GenericHash,
	}
)

// GenericTransactions returns a deterministic list of transfers between the
// generic senders.
func GenericTransactions(number int) []ledger.Transaction {
	var transactions []ledger.Transaction
	for i := 0; i < number; i++ {
		tx := ledger.Transaction{
			Sender:    GenericSenders[i%len(GenericSenders)],
			Recipient: GenericSenders[(i+1)%len(GenericSenders)],
			Amount:    uint64(i + 5),
			Nonce:     uint64(i + 1),
		}
		transactions = append(transactions, tx)
	}

	return transactions
}

// GenericChain returns a chain of the given number of blocks that only links
// blocks by hash. Its proofs are not valid.
func GenericChain(number int) []ledger.Block {
	genesis := ledger.Block{
		Index:        ledger.GenesisIndex,
		Timestamp:    float64(offset),
		Transactions: []ledger.Transaction{},
		Proof:        0,
		PreviousHash: ledger.GenesisHash,
	}
	blocks := []ledger.Block{genesis}
	for i := 1; i < number; i++ {
		previous := blocks[i-1]
		block := ledger.Block{
			Index:        previous.Index + 1,
			Timestamp:    float64(offset + i),
			Transactions: append(GenericTransactions(i), ledger.Coinbase(GenericMiner, 0)),
			Proof:        uint64(i),
			PreviousHash: ledger.HashBlock(previous),
		}
		blocks = append(blocks, block)
	}

	return blocks
}
