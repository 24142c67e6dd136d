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

package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConverged is returned when the proof-of-work search was stopped
	// before it found a valid proof.
	ErrNotConverged = errors.New("mining did not converge within budget")

	// ErrNotFound is returned when a block is not in the index.
	ErrNotFound = errors.New("not found")
)

// ValidationError is returned when a submitted transaction misses required fields.
type ValidationError struct {
	Fields []string
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("missing values: %s", strings.Join(v.Fields, ", "))
}

// InvalidChainError describes the first block that breaks the integrity of a chain.
type InvalidChainError struct {
	Index  uint64
	Reason string
}

func (i *InvalidChainError) Error() string {
	return fmt.Sprintf("invalid block (index: %d): %s", i.Index, i.Reason)
}
