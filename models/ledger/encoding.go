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
	"crypto/sha256"
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
)

// Encoding is the canonical CBOR encoding used for hashing. Map keys and
// struct fields are sorted, so equal values always produce equal bytes, while
// arrays keep their order.
var Encoding = canonicalEncoding()

func canonicalEncoding() cbor.EncMode {

	// The canonical options are static, so failing here is a programming error.
	options := cbor.CanonicalEncOptions()
	encoding, err := options.EncMode()
	if err != nil {
		panic(err)
	}

	return encoding
}

// HashBlock returns the lowercase hex SHA-256 digest of the block's canonical
// encoding. It is used for the previous hash linkage, for validation and as
// the block's external fingerprint.
func HashBlock(block Block) string {

	// A nil transaction list would be encoded as CBOR null instead of an empty
	// array, so we normalize it to keep the hash independent of how the block
	// was constructed.
	if block.Transactions == nil {
		block.Transactions = []Transaction{}
	}

	data, err := Encoding.Marshal(block)
	if err != nil {
		// Blocks only consist of strings, integers and floats, which can always
		// be encoded.
		panic(err)
	}

	hash := sha256.Sum256(data)

	return hex.EncodeToString(hash[:])
}
