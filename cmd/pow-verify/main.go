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

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/pow-ledger/api/rest"
	"github.com/optakt/pow-ledger/models/ledger"
	"github.com/optakt/pow-ledger/service/chain"
)

const (
	success = 0
	failure = 1
	invalid = 2
)

func main() {
	os.Exit(run())
}

func run() int {

	// Command line parameter initialization.
	var (
		flagAPI     string
		flagLevel   string
		flagTimeout time.Duration
	)

	pflag.StringVarP(&flagAPI, "api", "a", "http://127.0.0.1:1234", "base URL of the node API to verify")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.DurationVarP(&flagTimeout, "timeout", "t", 30*time.Second, "timeout for retrieving the chain")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	// Interrupting cancels the retrieval.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	client := rest.NewClient(flagAPI, flagTimeout)
	blocks, err := client.Chain(ctx)
	if err != nil {
		log.Error().Str("api", flagAPI).Err(err).Msg("could not retrieve chain")
		return failure
	}

	log.Info().Int("blocks", len(blocks)).Msg("chain retrieved")

	err = chain.Verify(blocks)
	var chainErr *ledger.InvalidChainError
	if errors.As(err, &chainErr) {
		log.Warn().Uint64("index", chainErr.Index).Str("reason", chainErr.Reason).Msg("chain is invalid")
		return invalid
	}
	if err != nil {
		log.Error().Err(err).Msg("could not verify chain")
		return failure
	}

	if len(blocks) > 0 {
		last := blocks[len(blocks)-1]
		log.Info().Uint64("height", last.Index).Str("hash", ledger.HashBlock(last)).Msg("chain is valid")
	}

	return success
}
