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
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/hashicorp/go-multierror"
)

// Fallback tries the given operations in order and stops at the first one that
// succeeds. When all of them fail, the errors of all attempts are returned
// together.
func Fallback(ops ...func(*badger.Txn) error) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		var result *multierror.Error
		for _, op := range ops {
			err := op(tx)
			if err == nil {
				return nil
			}
			result = multierror.Append(result, err)
		}

		return result.ErrorOrNil()
	}
}

// Combine runs the given operations in order within the same transaction and
// aborts on the first failure.
func Combine(ops ...func(*badger.Txn) error) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		for _, op := range ops {
			err := op(tx)
			if err != nil {
				return err
			}
		}

		return nil
	}
}

// retrieve decodes the value stored under the key into v. Callers retrieving
// in a loop need a fresh v for every iteration.
func (l *Library) retrieve(key []byte, v interface{}) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if err != nil {
			return fmt.Errorf("could not get %s: %w", describeKey(key), err)
		}

		err = item.Value(func(val []byte) error {
			return l.codec.Unmarshal(val, v)
		})
		if err != nil {
			return fmt.Errorf("could not decode %s: %w", describeKey(key), err)
		}

		return nil
	}
}

// save encodes the value immediately, so that the stored bytes don't depend on
// when Badger runs the operation.
func (l *Library) save(key []byte, value interface{}) func(*badger.Txn) error {
	val, encErr := l.codec.Marshal(value)
	return func(tx *badger.Txn) error {
		if encErr != nil {
			return fmt.Errorf("could not encode %s: %w", describeKey(key), encErr)
		}

		err := tx.Set(key, val)
		if err != nil {
			return fmt.Errorf("could not set %s: %w", describeKey(key), err)
		}

		return nil
	}
}
