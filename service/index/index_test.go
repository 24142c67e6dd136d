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

package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/pow-ledger/codec/zbor"
	"github.com/optakt/pow-ledger/models/ledger"
	"github.com/optakt/pow-ledger/service/index"
	"github.com/optakt/pow-ledger/service/storage"
	"github.com/optakt/pow-ledger/testing/helpers"
	"github.com/optakt/pow-ledger/testing/mocks"
)

func TestIndex(t *testing.T) {
	db := helpers.InMemoryDB(t)
	lib := storage.New(zbor.NewCodec())

	writer := index.NewWriter(db, lib)
	reader, err := index.NewReader(db, lib)
	require.NoError(t, err)

	blocks := mocks.GenericChain(3)
	require.NoError(t, writer.First(blocks[0].Index))
	for i := range blocks {
		block := blocks[i]
		require.NoError(t, writer.Block(&block))
		require.NoError(t, writer.Last(block.Index))
	}
	require.NoError(t, writer.Close())

	t.Run("heights", func(t *testing.T) {
		t.Parallel()

		first, err := reader.First()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), first)

		last, err := reader.Last()
		require.NoError(t, err)
		assert.Equal(t, uint64(3), last)
	})

	t.Run("block by height", func(t *testing.T) {
		t.Parallel()

		for _, want := range blocks {
			got, err := reader.Block(want.Index)
			require.NoError(t, err)
			assert.Equal(t, want, *got)

			// Second read may be served from cache and must still be equal.
			got, err = reader.Block(want.Index)
			require.NoError(t, err)
			assert.Equal(t, want, *got)
		}
	})

	t.Run("height by hash", func(t *testing.T) {
		t.Parallel()

		for _, want := range blocks {
			height, err := reader.HeightForHash(ledger.HashBlock(want))
			require.NoError(t, err)
			assert.Equal(t, want.Index, height)
		}
	})

	t.Run("transactions by sender", func(t *testing.T) {
		t.Parallel()

		transactions, err := reader.Transactions(3, "alice")
		require.NoError(t, err)
		assert.Equal(t, []ledger.Transaction{blocks[2].Transactions[0]}, transactions)

		transactions, err = reader.Transactions(3)
		require.NoError(t, err)
		assert.ElementsMatch(t, blocks[2].Transactions, transactions)
	})

	t.Run("genesis has no transactions", func(t *testing.T) {
		t.Parallel()

		transactions, err := reader.Transactions(1)
		require.NoError(t, err)
		assert.Empty(t, transactions)
	})

	t.Run("unknown block", func(t *testing.T) {
		t.Parallel()

		_, err := reader.Block(4)
		assert.ErrorIs(t, err, ledger.ErrNotFound)

		_, err = reader.HeightForHash(mocks.GenericHash)
		assert.ErrorIs(t, err, ledger.ErrNotFound)

		_, err = reader.Transactions(4)
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})

	t.Run("height below first", func(t *testing.T) {
		t.Parallel()

		_, err := reader.Transactions(0)
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})
}

func TestReader_Empty(t *testing.T) {
	db := helpers.InMemoryDB(t)
	lib := storage.New(zbor.NewCodec())

	reader, err := index.NewReader(db, lib, index.WithCacheSize(0))
	require.NoError(t, err)

	_, err = reader.First()
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	_, err = reader.Last()
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	_, err = reader.Transactions(1)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestWriter_Block(t *testing.T) {
	db := helpers.InMemoryDB(t)
	codec := mocks.BaselineCodec(t)
	codec.MarshalFunc = func(interface{}) ([]byte, error) {
		return nil, mocks.GenericError
	}
	writer := index.NewWriter(db, storage.New(codec))

	block := mocks.GenericBlock.Copy()
	err := writer.Block(&block)

	assert.ErrorIs(t, err, mocks.GenericError)
}
