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
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/optakt/pow-ledger/models/ledger"
)

type TransactionResponse struct {
	Message string `json:"message"`
	Index   uint64 `json:"index"`
}

type MempoolResponse struct {
	Transactions []ledger.Transaction `json:"transactions"`
}

// CreateTransaction adds the transaction in the request body to the mempool.
func (c *Controller) CreateTransaction(ctx echo.Context) error {

	var sub ledger.Submission
	err := ctx.Bind(&sub)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	index, err := c.ledger.Submit(sub)
	if err != nil {
		return echo.NewHTTPError(statusFor(err), err)
	}

	res := TransactionResponse{
		Message: fmt.Sprintf("Transaction will be added to Block %d", index),
		Index:   index,
	}

	return ctx.JSON(http.StatusCreated, res)
}

// Mempool returns the pending transactions.
func (c *Controller) Mempool(ctx echo.Context) error {

	res := MempoolResponse{
		Transactions: c.ledger.Pending(),
	}

	return ctx.JSON(http.StatusOK, res)
}
