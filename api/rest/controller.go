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
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/optakt/pow-ledger/models/ledger"
	"github.com/optakt/pow-ledger/service/chain"
)

// Ledger represents the ledger operations exposed by the API.
type Ledger interface {
	Submit(sub ledger.Submission) (uint64, error)
	Pending() []ledger.Transaction
	Forge(ctx context.Context, selected []ledger.Transaction, miner string, options ...func(*chain.ForgeConfig)) (*ledger.Block, error)
	Blocks() []ledger.Block
}

// DefaultConfig is the default configuration of the API controller.
var DefaultConfig = Config{
	MiningTimeout: 0, // mining is not bounded
}

// Config is the configuration of the API controller.
type Config struct {
	MiningTimeout time.Duration
}

// WithMiningTimeout bounds the time a mining request can spend searching for
// a proof-of-work. Zero means no bound.
func WithMiningTimeout(timeout time.Duration) func(*Config) {
	return func(cfg *Config) {
		cfg.MiningTimeout = timeout
	}
}

// Controller handles the HTTP requests of the ledger API.
type Controller struct {
	cfg    Config
	ledger Ledger
	index  ledger.Reader
	miner  string
}

// NewController creates a controller that serves the given ledger and index,
// and forges blocks on behalf of the given miner identity.
func NewController(ledger Ledger, index ledger.Reader, miner string, options ...func(*Config)) *Controller {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	c := Controller{
		cfg:    cfg,
		ledger: ledger,
		index:  index,
		miner:  miner,
	}

	return &c
}

// Register adds the routes of the controller to the given server.
func (c *Controller) Register(server *echo.Echo) {
	server.POST("/transactions/new", c.CreateTransaction)
	server.GET("/mempool", c.Mempool)
	server.POST("/mine", c.Mine)
	server.GET("/chain", c.Chain)
	server.POST("/chain/validate", c.ValidateChain)
	server.GET("/blocks/:index", c.Block)
	server.GET("/blocks/:index/transactions", c.Transactions)
	server.GET("/hashes/:hash", c.BlockByHash)
}

func statusFor(err error) int {
	var validationErr *ledger.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrNotConverged):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
