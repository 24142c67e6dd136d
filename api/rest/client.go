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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/optakt/pow-ledger/models/ledger"
)

// Client reads from the API of a remote node.
type Client struct {
	api  string
	http *http.Client
}

// NewClient creates a client for the node API at the given base URL.
func NewClient(api string, timeout time.Duration) *Client {

	c := Client{
		api: strings.TrimRight(api, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}

	return &c
}

// Chain retrieves all blocks of the remote node's chain.
func (c *Client) Chain(ctx context.Context) ([]ledger.Block, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.api+"/chain", nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not execute request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code (status: %d)", res.StatusCode)
	}

	var chain ChainResponse
	err = json.NewDecoder(res.Body).Decode(&chain)
	if err != nil {
		return nil, fmt.Errorf("could not decode chain: %w", err)
	}
	if chain.Length != len(chain.Chain) {
		return nil, fmt.Errorf("mismatching chain length (length: %d, blocks: %d)", chain.Length, len(chain.Chain))
	}

	return chain.Chain, nil
}
