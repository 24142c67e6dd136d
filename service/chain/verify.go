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
	"github.com/optakt/pow-ledger/models/ledger"
	"github.com/optakt/pow-ledger/service/work"
)

// Verify checks the integrity of the given chain and returns an
// InvalidChainError for the first block that breaks it. Each block after the
// first needs to reference the hash of its predecessor, end with a coinbase
// reward and carry a proof that is valid for its predecessor's proof and its
// other transactions. Empty and genesis-only chains are valid.
func Verify(blocks []ledger.Block) error {
	for i := 1; i < len(blocks); i++ {
		previous := blocks[i-1]
		block := blocks[i]

		if block.PreviousHash != ledger.HashBlock(previous) {
			return &ledger.InvalidChainError{Index: block.Index, Reason: "previous hash mismatch"}
		}

		_, ok := block.Reward()
		if !ok {
			return &ledger.InvalidChainError{Index: block.Index, Reason: "missing coinbase reward"}
		}

		if !work.Valid(previous.Proof, block.Proof, block.Payload()) {
			return &ledger.InvalidChainError{Index: block.Index, Reason: "invalid proof"}
		}
	}

	return nil
}

// Validate returns whether the given chain is valid. See Verify for the rules.
func Validate(blocks []ledger.Block) bool {
	return Verify(blocks) == nil
}
