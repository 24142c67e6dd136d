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

// DefaultConfig is the default configuration for the block index.
var DefaultConfig = Config{
	CacheSize: 1024, // number of decoded blocks kept in memory by readers
}

// Config is the configuration of a block index.
type Config struct {
	CacheSize uint64
}

// WithCacheSize specifies the maximum number of blocks a reader caches. A size
// of zero disables the cache.
func WithCacheSize(size uint64) func(*Config) {
	return func(cfg *Config) {
		cfg.CacheSize = size
	}
}
