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
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/ziflex/lecho/v2"

	"github.com/optakt/pow-ledger/api/rest"
	"github.com/optakt/pow-ledger/codec/zbor"
	"github.com/optakt/pow-ledger/engine"
	"github.com/optakt/pow-ledger/models/ledger"
	"github.com/optakt/pow-ledger/service/chain"
	"github.com/optakt/pow-ledger/service/index"
	"github.com/optakt/pow-ledger/service/metrics"
	"github.com/optakt/pow-ledger/service/profiler"
	"github.com/optakt/pow-ledger/service/storage"
	"github.com/optakt/pow-ledger/service/work"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var (
		flagAddress string
		flagCache   uint64
		flagIndexed bool
		flagLevel   string
		flagMetrics string
		flagMiner   string
		flagProfile string
		flagTimeout time.Duration
	)

	pflag.StringVarP(&flagAddress, "address", "a", "0.0.0.0:1234", "bind address for serving the ledger API")
	pflag.Uint64VarP(&flagCache, "cache", "c", index.DefaultConfig.CacheSize, "maximum number of blocks cached by the index reader")
	pflag.BoolVar(&flagIndexed, "indexed-coinbase", false, "use the block index as nonce of coinbase transactions")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagMetrics, "metrics", "m", "", "address on which to expose metrics (no metrics are exposed when left empty)")
	pflag.StringVarP(&flagMiner, "miner", "n", "", "identity credited with block rewards (random when left empty)")
	pflag.StringVarP(&flagProfile, "profiler", "p", "", "address on which to expose pprof endpoints (disabled when left empty)")
	pflag.DurationVarP(&flagTimeout, "timeout", "t", 0, "maximum duration of a proof-of-work search (unbounded when zero)")

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

	// The node identity is a random UUID without dashes, unless configured.
	miner := flagMiner
	if miner == "" {
		miner = strings.ReplaceAll(uuid.New().String(), "-", "")
	}
	log.Info().Str("miner", miner).Msg("node identity initialized")

	// Initialize the block index. It lives in memory only, so the chain starts
	// over from genesis whenever the node is restarted.
	db, err := badger.Open(ledger.DefaultOptions())
	if err != nil {
		log.Error().Err(err).Msg("could not open index database")
		return failure
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	codec := zbor.NewCodec()
	lib := storage.New(codec)
	write := index.NewMetricsWriter(index.NewWriter(db, lib), reg)
	defer write.Close()
	read, err := index.NewReader(db, lib, index.WithCacheSize(flagCache))
	if err != nil {
		log.Error().Err(err).Msg("could not initialize index reader")
		return failure
	}

	// Initialize the ledger itself.
	prover := work.NewMetricsMiner(work.NewProver(log), reg)
	chainLedger, err := chain.New(log, prover,
		chain.WithIndex(write),
		chain.WithIndexedCoinbase(flagIndexed),
	)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize ledger")
		return failure
	}

	// Initialize the API server.
	elog := lecho.From(log)
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger = elog
	server.Use(lecho.Middleware(lecho.Config{Logger: elog}))

	ctrl := rest.NewController(chainLedger, read, miner, rest.WithMiningTimeout(flagTimeout))
	ctrl.Register(server)

	nodeEngine := engine.New(log, "PoW Ledger Node", sig).
		Component(
			"ledger api",
			func() error {
				log.Info().Str("address", flagAddress).Msg("ledger api starting")
				err := server.Start(flagAddress)
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			},
			func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				err := server.Shutdown(ctx)
				if err != nil {
					log.Error().Err(err).Msg("could not shut down ledger api")
				}
			},
		)

	// The metrics server is optional.
	if flagMetrics != "" {
		msvr := metrics.NewServer(log, flagMetrics, reg)
		nodeEngine.Component(
			"metrics server",
			msvr.Start,
			func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				err := msvr.Stop(ctx)
				if err != nil {
					log.Error().Err(err).Msg("could not shut down metrics server")
				}
			},
		)
	}

	if flagProfile != "" {
		prof := profiler.NewServer(log, flagProfile)
		nodeEngine.Component(
			"profiler",
			prof.Start,
			func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				err := prof.Stop(ctx)
				if err != nil {
					log.Error().Err(err).Msg("could not shut down profiler")
				}
			},
		)
	}

	err = nodeEngine.Run()
	if err != nil {
		log.Error().Err(err).Msg("node failed")
		return failure
	}

	return success
}
