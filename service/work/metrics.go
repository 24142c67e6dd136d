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

package work

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/optakt/pow-ledger/models/ledger"
)

const (
	labelOutcome = "outcome"

	outcomeFound   = "found"
	outcomeAborted = "aborted"
)

// MetricsMiner wraps a miner and records metrics about its proof searches.
type MetricsMiner struct {
	miner ledger.Miner

	searches *prometheus.CounterVec
	attempts prometheus.Counter
	duration prometheus.Histogram
}

// NewMetricsMiner creates a new miner that records metrics on the given
// registerer and forwards proof searches to the given miner.
func NewMetricsMiner(miner ledger.Miner, reg prometheus.Registerer) *MetricsMiner {
	factory := promauto.With(reg)

	searchOpts := prometheus.CounterOpts{
		Name: "pow_searches",
		Help: "the number of proof-of-work searches by outcome",
	}
	searches := factory.NewCounterVec(searchOpts, []string{labelOutcome})

	attemptOpts := prometheus.CounterOpts{
		Name: "pow_hashes",
		Help: "the number of hashes evaluated by successful proof-of-work searches",
	}
	attempts := factory.NewCounter(attemptOpts)

	durationOpts := prometheus.HistogramOpts{
		Name:    "pow_search_seconds",
		Help:    "the duration of proof-of-work searches",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	}
	duration := factory.NewHistogram(durationOpts)

	m := MetricsMiner{
		miner: miner,

		searches: searches,
		attempts: attempts,
		duration: duration,
	}

	return &m
}

// Mine forwards the search to the wrapped miner. Since the search is linear
// and starts at zero, a proof of N means that N+1 hashes were evaluated.
func (m *MetricsMiner) Mine(ctx context.Context, lastProof uint64, transactions []ledger.Transaction) (uint64, error) {
	start := time.Now()
	proof, err := m.miner.Mine(ctx, lastProof, transactions)
	m.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.searches.With(prometheus.Labels{labelOutcome: outcomeAborted}).Inc()
		return 0, err
	}

	m.searches.With(prometheus.Labels{labelOutcome: outcomeFound}).Inc()
	m.attempts.Add(float64(proof + 1))

	return proof, nil
}
