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

package chain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/pow-ledger/models/ledger"
	"github.com/optakt/pow-ledger/service/chain"
	"github.com/optakt/pow-ledger/service/work"
	"github.com/optakt/pow-ledger/testing/mocks"
)

func minedChain(t *testing.T) []ledger.Block {
	t.Helper()

	l, err := chain.New(mocks.NoopLogger, work.NewProver(mocks.NoopLogger))
	require.NoError(t, err)

	for i := 1; i <= 2; i++ {
		_, err = l.Forge(context.Background(), mocks.GenericTransactions(i), mocks.GenericMiner)
		require.NoError(t, err)
	}

	return l.Blocks()
}

func TestVerify(t *testing.T) {
	blocks := minedChain(t)

	tests := []struct {
		name   string
		blocks func() []ledger.Block
		index  uint64
		reason string
	}{
		{
			name:   "empty chain",
			blocks: func() []ledger.Block { return nil },
		},
		{
			name:   "genesis only",
			blocks: func() []ledger.Block { return blocks[:1] },
		},
		{
			name:   "mined chain",
			blocks: func() []ledger.Block { return blocks },
		},
		{
			name: "tampered previous hash",
			blocks: func() []ledger.Block {
				tampered := copyChain(blocks)
				tampered[1].PreviousHash = mocks.GenericHash
				return tampered
			},
			index:  2,
			reason: "previous hash mismatch",
		},
		{
			name: "tampered earlier block",
			blocks: func() []ledger.Block {
				tampered := copyChain(blocks)
				tampered[1].Transactions[0].Amount++
				return tampered
			},
			index:  3,
			reason: "previous hash mismatch",
		},
		{
			name: "missing coinbase",
			blocks: func() []ledger.Block {
				tampered := copyChain(blocks)
				last := tampered[2]
				last.Transactions = last.Payload()
				tampered[2] = last
				return tampered
			},
			index:  3,
			reason: "missing coinbase reward",
		},
		{
			name: "tampered proof",
			blocks: func() []ledger.Block {
				tampered := copyChain(blocks)
				tampered[2].Proof++
				return tampered
			},
			index:  3,
			reason: "invalid proof",
		},
		{
			name: "tampered nonce",
			blocks: func() []ledger.Block {
				tampered := copyChain(blocks)
				tampered[2].Transactions[0].Nonce += 100
				return tampered
			},
			index:  3,
			reason: "invalid proof",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := chain.Verify(test.blocks())

			if test.reason == "" {
				assert.NoError(t, err)
				assert.True(t, chain.Validate(test.blocks()))
				return
			}

			var chainErr *ledger.InvalidChainError
			require.True(t, errors.As(err, &chainErr))
			assert.Equal(t, test.index, chainErr.Index)
			assert.Equal(t, test.reason, chainErr.Reason)
			assert.False(t, chain.Validate(test.blocks()))
		})
	}
}

func copyChain(blocks []ledger.Block) []ledger.Block {
	copied := make([]ledger.Block, 0, len(blocks))
	for _, block := range blocks {
		copied = append(copied, block.Copy())
	}
	return copied
}
