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
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/optakt/pow-ledger/models/ledger"
	"github.com/optakt/pow-ledger/service/chain"
)

// MineRequest selects the transactions to include in the next block. When
// no transactions are given, all pending transactions are selected.
type MineRequest struct {
	Transactions []ledger.Submission `json:"transactions"`
	PreviousHash string              `json:"previous_hash"`
}

type MineResponse struct {
	Message      string               `json:"message"`
	Index        uint64               `json:"index"`
	Transactions []ledger.Transaction `json:"transactions"`
	Proof        uint64               `json:"proof"`
	PreviousHash string               `json:"previous_hash"`
	Hash         string               `json:"hash"`
}

// Mine forges a new block paying the reward to this node.
func (c *Controller) Mine(ctx echo.Context) error {

	var req MineRequest
	err := ctx.Bind(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	var options []func(*chain.ForgeConfig)
	var selected []ledger.Transaction
	if req.Transactions == nil {
		options = append(options, chain.WithPendingSelection())
	} else {
		selected = make([]ledger.Transaction, 0, len(req.Transactions))
		for _, sub := range req.Transactions {
			tx, err := sub.Transaction()
			if err != nil {
				return echo.NewHTTPError(statusFor(err), err)
			}
			selected = append(selected, tx)
		}
	}

	if req.PreviousHash != "" {
		options = append(options, chain.WithPreviousHash(req.PreviousHash))
	}

	mineCtx := ctx.Request().Context()
	if c.cfg.MiningTimeout > 0 {
		var cancel context.CancelFunc
		mineCtx, cancel = context.WithTimeout(mineCtx, c.cfg.MiningTimeout)
		defer cancel()
	}

	block, err := c.ledger.Forge(mineCtx, selected, c.miner, options...)
	if err != nil {
		return echo.NewHTTPError(statusFor(err), err)
	}

	res := MineResponse{
		Message:      "New Block Forged",
		Index:        block.Index,
		Transactions: block.Transactions,
		Proof:        block.Proof,
		PreviousHash: block.PreviousHash,
		Hash:         ledger.HashBlock(*block),
	}

	return ctx.JSON(http.StatusOK, res)
}
