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

package mocks

import (
	"testing"

	"github.com/optakt/pow-ledger/models/ledger"
)

type Writer struct {
	FirstFunc func(height uint64) error
	LastFunc  func(height uint64) error
	BlockFunc func(block *ledger.Block) error
	CloseFunc func() error
}

func BaselineWriter(t *testing.T) *Writer {
	t.Helper()

	w := Writer{
		FirstFunc: func(uint64) error {
			return nil
		},
		LastFunc: func(uint64) error {
			return nil
		},
		BlockFunc: func(*ledger.Block) error {
			return nil
		},
		CloseFunc: func() error {
			return nil
		},
	}

	return &w
}

func (w *Writer) First(height uint64) error {
	return w.FirstFunc(height)
}

func (w *Writer) Last(height uint64) error {
	return w.LastFunc(height)
}

func (w *Writer) Block(block *ledger.Block) error {
	return w.BlockFunc(block)
}

func (w *Writer) Close() error {
	return w.CloseFunc()
}
