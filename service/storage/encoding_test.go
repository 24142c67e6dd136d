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

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optakt/pow-ledger/service/storage"
)

func TestEncodeKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   uint8
		segments []interface{}
		want     []byte
	}{
		{
			name:   "prefix only",
			prefix: storage.PrefixFirst,
			want:   []byte{1},
		},
		{
			name:     "height",
			prefix:   storage.PrefixBlock,
			segments: []interface{}{uint64(258)},
			want:     []byte{3, 0, 0, 0, 0, 0, 0, 1, 2},
		},
		{
			name:     "hash",
			prefix:   storage.PrefixIndexForHash,
			segments: []interface{}{"ab"},
			want:     []byte{4, 'a', 'b'},
		},
		{
			name:     "height and bytes",
			prefix:   storage.PrefixTransactions,
			segments: []interface{}{uint64(1), []byte{7}},
			want:     []byte{5, 0, 0, 0, 0, 0, 0, 0, 1, 7},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := storage.EncodeKey(test.prefix, test.segments...)
			assert.Equal(t, test.want, got)
		})
	}

	t.Run("unsupported segment", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			storage.EncodeKey(storage.PrefixBlock, 42)
		})
	})
}
