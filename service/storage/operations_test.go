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

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/pow-ledger/codec/zbor"
	"github.com/optakt/pow-ledger/models/ledger"
	"github.com/optakt/pow-ledger/service/storage"
	"github.com/optakt/pow-ledger/testing/helpers"
	"github.com/optakt/pow-ledger/testing/mocks"
)

func TestLibrary_Heights(t *testing.T) {
	db := helpers.InMemoryDB(t)
	lib := storage.New(zbor.NewCodec())

	err := db.Update(storage.Combine(lib.SaveFirst(1), lib.SaveLast(mocks.GenericHeight)))
	require.NoError(t, err)

	var first, last uint64
	err = db.View(storage.Combine(lib.RetrieveFirst(&first), lib.RetrieveLast(&last)))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), first)
	assert.Equal(t, mocks.GenericHeight, last)
}

func TestLibrary_Block(t *testing.T) {
	db := helpers.InMemoryDB(t)
	lib := storage.New(zbor.NewCodec())

	block := mocks.GenericBlock.Copy()
	hash := ledger.HashBlock(block)

	err := db.Update(storage.Combine(
		lib.SaveBlock(&block),
		lib.IndexHeightForHash(hash, block.Index),
	))
	require.NoError(t, err)

	t.Run("retrieve by height", func(t *testing.T) {
		t.Parallel()

		var got ledger.Block
		err := db.View(lib.RetrieveBlock(block.Index, &got))
		require.NoError(t, err)
		assert.Equal(t, block, got)
		assert.Equal(t, hash, ledger.HashBlock(got))
	})

	t.Run("lookup height by hash", func(t *testing.T) {
		t.Parallel()

		var height uint64
		err := db.View(lib.LookupHeightForHash(hash, &height))
		require.NoError(t, err)
		assert.Equal(t, block.Index, height)
	})

	t.Run("missing block", func(t *testing.T) {
		t.Parallel()

		var got ledger.Block
		err := db.View(lib.RetrieveBlock(block.Index+1, &got))
		assert.ErrorIs(t, err, badger.ErrKeyNotFound)
	})
}

func TestLibrary_Transactions(t *testing.T) {
	db := helpers.InMemoryDB(t)
	lib := storage.New(zbor.NewCodec())

	transactions := mocks.GenericTransactions(6)
	bySender := make(map[string][]ledger.Transaction)
	for _, tx := range transactions {
		bySender[tx.Sender] = append(bySender[tx.Sender], tx)
	}

	var ops []func(*badger.Txn) error
	for sender, txs := range bySender {
		ops = append(ops, lib.SaveTransactions(mocks.GenericHeight, sender, txs))
	}
	ops = append(ops, lib.SaveTransactions(mocks.GenericHeight+1, "alice", transactions[:1]))
	err := db.Update(storage.Combine(ops...))
	require.NoError(t, err)

	t.Run("all senders", func(t *testing.T) {
		t.Parallel()

		var got []ledger.Transaction
		err := db.View(lib.RetrieveTransactions(mocks.GenericHeight, nil, &got))
		require.NoError(t, err)
		assert.ElementsMatch(t, transactions, got)
	})

	t.Run("filtered by sender", func(t *testing.T) {
		t.Parallel()

		var got []ledger.Transaction
		err := db.View(lib.RetrieveTransactions(mocks.GenericHeight, []string{"alice", "carol"}, &got))
		require.NoError(t, err)

		want := append(append([]ledger.Transaction{}, bySender["alice"]...), bySender["carol"]...)
		assert.ElementsMatch(t, want, got)
	})

	t.Run("unknown sender", func(t *testing.T) {
		t.Parallel()

		var got []ledger.Transaction
		err := db.View(lib.RetrieveTransactions(mocks.GenericHeight, []string{"mallory"}, &got))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("other height", func(t *testing.T) {
		t.Parallel()

		var got []ledger.Transaction
		err := db.View(lib.RetrieveTransactions(mocks.GenericHeight+1, nil, &got))
		require.NoError(t, err)
		assert.Equal(t, transactions[:1], got)
	})
}

func TestLibrary_Codec(t *testing.T) {
	t.Run("handles encoding failure", func(t *testing.T) {
		t.Parallel()

		db := helpers.InMemoryDB(t)
		codec := mocks.BaselineCodec(t)
		codec.MarshalFunc = func(interface{}) ([]byte, error) {
			return nil, mocks.GenericError
		}
		lib := storage.New(codec)

		err := db.Update(lib.SaveLast(mocks.GenericHeight))
		assert.ErrorIs(t, err, mocks.GenericError)
	})

	t.Run("handles decoding failure", func(t *testing.T) {
		t.Parallel()

		db := helpers.InMemoryDB(t)
		codec := mocks.BaselineCodec(t)
		codec.UnmarshalFunc = func([]byte, interface{}) error {
			return mocks.GenericError
		}
		lib := storage.New(codec)

		err := db.Update(lib.SaveLast(mocks.GenericHeight))
		require.NoError(t, err)

		var last uint64
		err = db.View(lib.RetrieveLast(&last))
		assert.ErrorIs(t, err, mocks.GenericError)
	})
}

func TestFallback(t *testing.T) {
	db := helpers.InMemoryDB(t)
	lib := storage.New(zbor.NewCodec())

	err := db.Update(lib.SaveFirst(3))
	require.NoError(t, err)

	t.Run("falls back to working operation", func(t *testing.T) {
		t.Parallel()

		var height uint64
		err := db.View(storage.Fallback(lib.RetrieveLast(&height), lib.RetrieveFirst(&height)))
		require.NoError(t, err)
		assert.Equal(t, uint64(3), height)
	})

	t.Run("all operations fail", func(t *testing.T) {
		t.Parallel()

		var height uint64
		err := db.View(storage.Fallback(lib.RetrieveLast(&height), lib.RetrieveBlock(1, &ledger.Block{})))
		assert.ErrorIs(t, err, badger.ErrKeyNotFound)
	})
}
