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

package storage

import (
	"fmt"
)

// Key prefixes of the block index. Each prefix is followed by the segments
// given in its comment.
const (
	PrefixFirst = 1 // none
	PrefixLast  = 2 // none

	PrefixBlock        = 3 // height
	PrefixIndexForHash = 4 // block hash
	PrefixTransactions = 5 // height, xxhash of sender
)

var prefixNames = map[byte]string{
	PrefixFirst:        "first height",
	PrefixLast:         "last height",
	PrefixBlock:        "block",
	PrefixIndexForHash: "height for hash",
	PrefixTransactions: "sender transactions",
}

func describeKey(key []byte) string {
	if len(key) == 0 {
		return "empty key"
	}
	name, ok := prefixNames[key[0]]
	if !ok {
		name = "unknown prefix"
	}
	return fmt.Sprintf("%s (key: %x)", name, key[1:])
}
