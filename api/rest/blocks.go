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

package rest

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/optakt/pow-ledger/models/ledger"
)

type BlockResponse struct {
	Block *ledger.Block `json:"block"`
	Hash  string        `json:"hash"`
}

type TransactionsResponse struct {
	Index        uint64               `json:"index"`
	Transactions []ledger.Transaction `json:"transactions"`
}

// Block returns the indexed block with the index given in the path.
func (c *Controller) Block(ctx echo.Context) error {

	index, err := strconv.ParseUint(ctx.Param("index"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	block, err := c.index.Block(index)
	if err != nil {
		return echo.NewHTTPError(statusFor(err), err)
	}

	res := BlockResponse{
		Block: block,
		Hash:  ledger.HashBlock(*block),
	}

	return ctx.JSON(http.StatusOK, res)
}

// BlockByHash returns the indexed block with the hash given in the path.
func (c *Controller) BlockByHash(ctx echo.Context) error {

	hash := ctx.Param("hash")
	index, err := c.index.HeightForHash(hash)
	if err != nil {
		return echo.NewHTTPError(statusFor(err), err)
	}

	block, err := c.index.Block(index)
	if err != nil {
		return echo.NewHTTPError(statusFor(err), err)
	}

	res := BlockResponse{
		Block: block,
		Hash:  hash,
	}

	return ctx.JSON(http.StatusOK, res)
}

// Transactions returns the transactions of the indexed block with the index
// given in the path. The `sender` query parameter can be repeated to filter
// the transactions by sender.
func (c *Controller) Transactions(ctx echo.Context) error {

	index, err := strconv.ParseUint(ctx.Param("index"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	senders := ctx.QueryParams()["sender"]
	transactions, err := c.index.Transactions(index, senders...)
	if err != nil {
		return echo.NewHTTPError(statusFor(err), err)
	}

	res := TransactionsResponse{
		Index:        index,
		Transactions: transactions,
	}

	return ctx.JSON(http.StatusOK, res)
}
