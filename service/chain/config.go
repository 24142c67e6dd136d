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

package chain

import (
	"time"

	"github.com/optakt/pow-ledger/models/ledger"
)

// DefaultConfig is the default configuration for a ledger.
var DefaultConfig = Config{
	Index:           nil,      // no block index
	IndexedCoinbase: false,    // coinbase nonce is always zero
	Clock:           time.Now, // block timestamps use wall time
}

// Config is the configuration of a ledger.
type Config struct {
	Index           ledger.Writer
	IndexedCoinbase bool
	Clock           func() time.Time
}

// WithIndex makes the ledger write every block it appends to the given index.
func WithIndex(index ledger.Writer) func(*Config) {
	return func(cfg *Config) {
		cfg.Index = index
	}
}

// WithIndexedCoinbase sets the nonce of coinbase transactions to the index of
// the block they reward, which makes rewards to the same miner distinct.
func WithIndexedCoinbase(indexed bool) func(*Config) {
	return func(cfg *Config) {
		cfg.IndexedCoinbase = indexed
	}
}

// WithClock sets the function used to timestamp blocks.
func WithClock(clock func() time.Time) func(*Config) {
	return func(cfg *Config) {
		cfg.Clock = clock
	}
}

// ForgeConfig is the configuration of a single block creation.
type ForgeConfig struct {
	Pending      bool
	PreviousHash string
}

// WithPendingSelection makes the forged block include every transaction that
// is pending once forging starts, instead of the given selection. The pool is
// read under the forge lock, so concurrent forges never select the same
// pending transaction twice.
func WithPendingSelection() func(*ForgeConfig) {
	return func(cfg *ForgeConfig) {
		cfg.Pending = true
	}
}

// WithPreviousHash overrides the previous hash recorded in the forged block,
// which otherwise is the hash of the current last block.
func WithPreviousHash(hash string) func(*ForgeConfig) {
	return func(cfg *ForgeConfig) {
		cfg.PreviousHash = hash
	}
}
