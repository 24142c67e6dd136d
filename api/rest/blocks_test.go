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

package rest_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/pow-ledger/api/rest"
	"github.com/optakt/pow-ledger/models/ledger"
	"github.com/optakt/pow-ledger/testing/mocks"
)

func TestController_Block(t *testing.T) {
	tests := []struct {
		desc  string
		index string

		block func(uint64) (*ledger.Block, error)

		wantStatus int
	}{
		{
			desc:       "nominal case",
			index:      "42",
			wantStatus: http.StatusOK,
		},
		{
			desc:       "invalid index",
			index:      "forty-two",
			wantStatus: http.StatusBadRequest,
		},
		{
			desc:  "unknown block",
			index: "43",
			block: func(uint64) (*ledger.Block, error) {
				return nil, fmt.Errorf("could not get block: %w", ledger.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			desc:  "index failure",
			index: "42",
			block: func(uint64) (*ledger.Block, error) {
				return nil, mocks.GenericError
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			ctx := echo.New().NewContext(req, rec)
			ctx.SetPath("/blocks/:index")
			ctx.SetParamNames("index")
			ctx.SetParamValues(test.index)

			index := mocks.BaselineReader(t)
			if test.block != nil {
				index.BlockFunc = test.block
			}

			c := rest.NewController(mocks.BaselineLedger(t), index, mocks.GenericMiner)

			err := c.Block(ctx)

			if test.wantStatus != http.StatusOK {
				httpErr, ok := err.(*echo.HTTPError)
				require.True(t, ok)
				assert.Equal(t, test.wantStatus, httpErr.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.wantStatus, rec.Code)

			var got rest.BlockResponse
			err = json.Unmarshal(rec.Body.Bytes(), &got)
			require.NoError(t, err)

			want := mocks.GenericBlock
			assert.Equal(t, &want, got.Block)
			assert.Equal(t, ledger.HashBlock(want), got.Hash)
		})
	}
}

func TestController_BlockByHash(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := echo.New().NewContext(req, rec)
		ctx.SetPath("/hashes/:hash")
		ctx.SetParamNames("hash")
		ctx.SetParamValues(mocks.GenericHash)

		index := mocks.BaselineReader(t)
		index.HeightForHashFunc = func(hash string) (uint64, error) {
			assert.Equal(t, mocks.GenericHash, hash)
			return mocks.GenericHeight, nil
		}

		c := rest.NewController(mocks.BaselineLedger(t), index, mocks.GenericMiner)

		err := c.BlockByHash(ctx)
		require.NoError(t, err)

		var got rest.BlockResponse
		err = json.Unmarshal(rec.Body.Bytes(), &got)
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericHash, got.Hash)
		assert.Equal(t, mocks.GenericHeight, got.Block.Index)
	})

	t.Run("unknown hash", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := echo.New().NewContext(req, rec)
		ctx.SetPath("/hashes/:hash")
		ctx.SetParamNames("hash")
		ctx.SetParamValues("deadbeef")

		index := mocks.BaselineReader(t)
		index.HeightForHashFunc = func(string) (uint64, error) {
			return 0, ledger.ErrNotFound
		}

		c := rest.NewController(mocks.BaselineLedger(t), index, mocks.GenericMiner)

		err := c.BlockByHash(ctx)

		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})
}

func TestController_Transactions(t *testing.T) {
	tests := []struct {
		desc    string
		index   string
		senders []string

		transactions func(uint64, ...string) ([]ledger.Transaction, error)

		wantStatus int
	}{
		{
			desc:       "all senders",
			index:      "42",
			wantStatus: http.StatusOK,
		},
		{
			desc:       "filtered by senders",
			index:      "42",
			senders:    []string{"alice", "bob"},
			wantStatus: http.StatusOK,
		},
		{
			desc:       "invalid index",
			index:      "-1",
			wantStatus: http.StatusBadRequest,
		},
		{
			desc:  "unknown block",
			index: "43",
			transactions: func(uint64, ...string) ([]ledger.Transaction, error) {
				return nil, ledger.ErrNotFound
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			u, err := url.Parse("/blocks/" + test.index + "/transactions")
			require.NoError(t, err)
			q := u.Query()
			for _, sender := range test.senders {
				q.Add("sender", sender)
			}
			u.RawQuery = q.Encode()

			req := httptest.NewRequest(http.MethodGet, u.String(), nil)
			rec := httptest.NewRecorder()
			ctx := echo.New().NewContext(req, rec)
			ctx.SetPath("/blocks/:index/transactions")
			ctx.SetParamNames("index")
			ctx.SetParamValues(test.index)

			index := mocks.BaselineReader(t)
			index.TransactionsFunc = func(height uint64, senders ...string) ([]ledger.Transaction, error) {
				assert.Equal(t, mocks.GenericHeight, height)
				assert.Equal(t, test.senders, senders)
				return mocks.GenericTransactions(2), nil
			}
			if test.transactions != nil {
				index.TransactionsFunc = test.transactions
			}

			c := rest.NewController(mocks.BaselineLedger(t), index, mocks.GenericMiner)

			err = c.Transactions(ctx)

			if test.wantStatus != http.StatusOK {
				httpErr, ok := err.(*echo.HTTPError)
				require.True(t, ok)
				assert.Equal(t, test.wantStatus, httpErr.Code)
				return
			}

			require.NoError(t, err)

			var got rest.TransactionsResponse
			err = json.Unmarshal(rec.Body.Bytes(), &got)
			require.NoError(t, err)
			assert.Equal(t, mocks.GenericHeight, got.Index)
			assert.Equal(t, mocks.GenericTransactions(2), got.Transactions)
		})
	}
}
