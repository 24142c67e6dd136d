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

const (
	// CoinbaseSender is the reserved sender of block reward transactions.
	CoinbaseSender = "coinbase"

	// Subsidy is the fixed reward paid to the miner of each block.
	Subsidy = 1

	// GenesisHash is the previous hash recorded in the genesis block.
	GenesisHash = "0"

	// GenesisIndex is the index of the first block of every chain.
	GenesisIndex = 1

	// Difficulty is the number of leading zero hex digits a proof-of-work hash
	// needs to have.
	Difficulty = 4
)
