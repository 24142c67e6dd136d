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
	"fmt"

	"github.com/rs/zerolog"

	"github.com/optakt/pow-ledger/models/ledger"
)

// checkInterval is the number of hash evaluations between two checks of the
// context.
const checkInterval = 1024

// Prover searches for proofs-of-work.
type Prover struct {
	log zerolog.Logger
}

// NewProver creates a new prover.
func NewProver(log zerolog.Logger) *Prover {

	p := Prover{
		log: log.With().Str("component", "prover").Logger(),
	}

	return &p
}

// Mine searches linearly for the first proof, starting at zero, that is valid
// for the given previous proof and transactions. Given the same inputs it
// always returns the same proof. The search has no upper bound; it only stops
// early when the context is canceled or expires, in which case the returned
// error wraps ledger.ErrNotConverged.
func (p *Prover) Mine(ctx context.Context, lastProof uint64, transactions []ledger.Transaction) (uint64, error) {

	// The digest does not depend on the proof, so we only compute it once.
	digest := Digest(transactions)

	for proof := uint64(0); ; proof++ {
		if proof%checkInterval == 0 {
			select {
			case <-ctx.Done():
				p.log.Debug().Uint64("attempts", proof).Err(ctx.Err()).Msg("proof search stopped")
				return 0, fmt.Errorf("could not find proof after %d attempts (%s): %w", proof, ctx.Err(), ledger.ErrNotConverged)
			default:
			}
		}

		if valid(lastProof, proof, digest) {
			p.log.Debug().Uint64("last_proof", lastProof).Uint64("proof", proof).Msg("proof found")
			return proof, nil
		}
	}
}
