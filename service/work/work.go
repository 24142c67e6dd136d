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

package work

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/optakt/pow-ledger/models/ledger"
)

var target = strings.Repeat("0", ledger.Difficulty)

// Digest returns the string that binds a proof to a list of transactions. It
// is the concatenation of each transaction's sender and nonce, in order.
func Digest(transactions []ledger.Transaction) string {
	var digest strings.Builder
	for _, tx := range transactions {
		digest.WriteString(tx.Sender)
		digest.WriteString(strconv.FormatUint(tx.Nonce, 10))
	}
	return digest.String()
}

// Valid returns whether the proof is valid for the given previous proof and
// transactions.
func Valid(lastProof uint64, proof uint64, transactions []ledger.Transaction) bool {
	return valid(lastProof, proof, Digest(transactions))
}

func valid(lastProof uint64, proof uint64, digest string) bool {
	guess := make([]byte, 0, 40+len(digest))
	guess = strconv.AppendUint(guess, lastProof, 10)
	guess = strconv.AppendUint(guess, proof, 10)
	guess = append(guess, digest...)

	hash := sha256.Sum256(guess)

	return strings.HasPrefix(hex.EncodeToString(hash[:]), target)
}
