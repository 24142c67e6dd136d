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
	"context"
	"testing"

	"github.com/optakt/pow-ledger/models/ledger"
	"github.com/optakt/pow-ledger/service/chain"
)

type Ledger struct {
	SubmitFunc  func(sub ledger.Submission) (uint64, error)
	PendingFunc func() []ledger.Transaction
	ForgeFunc   func(ctx context.Context, selected []ledger.Transaction, miner string, options ...func(*chain.ForgeConfig)) (*ledger.Block, error)
	BlocksFunc  func() []ledger.Block
}

func BaselineLedger(t *testing.T) *Ledger {
	t.Helper()

	l := Ledger{
		SubmitFunc: func(ledger.Submission) (uint64, error) {
			return 2, nil
		},
		PendingFunc: func() []ledger.Transaction {
			return GenericTransactions(2)
		},
		ForgeFunc: func(context.Context, []ledger.Transaction, string, ...func(*chain.ForgeConfig)) (*ledger.Block, error) {
			block := GenericBlock.Copy()
			return &block, nil
		},
		BlocksFunc: func() []ledger.Block {
			return GenericChain(3)
		},
	}

	return &l
}

func (l *Ledger) Submit(sub ledger.Submission) (uint64, error) {
	return l.SubmitFunc(sub)
}

func (l *Ledger) Pending() []ledger.Transaction {
	return l.PendingFunc()
}

func (l *Ledger) Forge(ctx context.Context, selected []ledger.Transaction, miner string, options ...func(*chain.ForgeConfig)) (*ledger.Block, error) {
	return l.ForgeFunc(ctx, selected, miner, options...)
}

func (l *Ledger) Blocks() []ledger.Block {
	return l.BlocksFunc()
}
