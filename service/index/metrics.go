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

package index

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/optakt/pow-ledger/models/ledger"
)

const (
	labelKind = "kind"

	kindTransfer = "transfer"
	kindCoinbase = "coinbase"
)

// MetricsWriter wraps the writer and records metrics for the data it writes.
type MetricsWriter struct {
	write ledger.Writer

	blocks       prometheus.Counter
	transactions *prometheus.CounterVec
	last         prometheus.Gauge
}

// NewMetricsWriter creates a new index writer that records metrics on the given
// registerer and forwards writes to the given writer.
func NewMetricsWriter(write ledger.Writer, reg prometheus.Registerer) *MetricsWriter {
	factory := promauto.With(reg)

	blockOpts := prometheus.CounterOpts{
		Name: "indexed_blocks",
		Help: "the number of indexed blocks",
	}
	blocks := factory.NewCounter(blockOpts)

	transactionOpts := prometheus.CounterOpts{
		Name: "indexed_transactions",
		Help: "the number of indexed transactions by kind",
	}
	transactions := factory.NewCounterVec(transactionOpts, []string{labelKind})

	lastOpts := prometheus.GaugeOpts{
		Name: "indexed_last_height",
		Help: "the height of the last indexed block",
	}
	last := factory.NewGauge(lastOpts)

	w := MetricsWriter{
		write: write,

		blocks:       blocks,
		transactions: transactions,
		last:         last,
	}

	return &w
}

// First indexes the height of the first block.
func (w *MetricsWriter) First(height uint64) error {
	return w.write.First(height)
}

// Last indexes the height of the last block.
func (w *MetricsWriter) Last(height uint64) error {
	w.last.Set(float64(height))
	return w.write.Last(height)
}

// Block indexes the given block.
func (w *MetricsWriter) Block(block *ledger.Block) error {
	w.blocks.Inc()
	for _, tx := range block.Transactions {
		kind := kindTransfer
		if tx.IsCoinbase() {
			kind = kindCoinbase
		}
		w.transactions.With(prometheus.Labels{labelKind: kind}).Inc()
	}
	return w.write.Block(block)
}

// Close closes the underlying writer.
func (w *MetricsWriter) Close() error {
	return w.write.Close()
}
