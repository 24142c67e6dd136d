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

package storage

import (
	"github.com/optakt/pow-ledger/models/ledger"
)

// Library is the storage library.
type Library struct {
	codec ledger.Codec
}

// New returns a new storage library using the given codec.
func New(codec ledger.Codec) *Library {
	lib := Library{
		codec: codec,
	}

	return &lib
}
