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

	"github.com/labstack/echo/v4"

	"github.com/optakt/pow-ledger/models/ledger"
	"github.com/optakt/pow-ledger/service/chain"
)

type ChainResponse struct {
	Chain  []ledger.Block `json:"chain"`
	Length int            `json:"length"`
}

type ValidateRequest struct {
	Chain []ledger.Block `json:"chain"`
}

type ValidateResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Chain returns all blocks of the chain.
func (c *Controller) Chain(ctx echo.Context) error {

	blocks := c.ledger.Blocks()
	res := ChainResponse{
		Chain:  blocks,
		Length: len(blocks),
	}

	return ctx.JSON(http.StatusOK, res)
}

// ValidateChain checks the integrity of the chain in the request body. An
// invalid chain is a normal outcome and is reported with a success status.
func (c *Controller) ValidateChain(ctx echo.Context) error {

	var req ValidateRequest
	err := ctx.Bind(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	res := ValidateResponse{
		Valid: true,
	}
	err = chain.Verify(req.Chain)
	if err != nil {
		res.Valid = false
		res.Error = err.Error()
	}

	return ctx.JSON(http.StatusOK, res)
}
