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

package zbor

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/optakt/pow-ledger/models/ledger"
)

// Codec stores index values as canonical CBOR compressed with Zstandard. It
// uses the same CBOR encoding as block hashing, so a stored block re-encodes
// to the bytes its hash was computed over.
type Codec struct {
	encoding     cbor.EncMode
	decoding     cbor.DecMode
	compressor   *zstd.Encoder
	decompressor *zstd.Decoder
}

// NewCodec creates a new codec. The given options are applied to the Zstandard
// encoder on top of the default compression level.
func NewCodec(options ...zstd.EOption) *Codec {

	// Stored values are only ever written by this codec, so duplicate map keys
	// mean that the data was corrupted.
	decOpts := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}
	decoding, err := decOpts.DecMode()
	if err != nil {
		panic(err)
	}

	options = append([]zstd.EOption{zstd.WithEncoderLevel(zstd.SpeedDefault)}, options...)
	compressor, err := zstd.NewWriter(nil, options...)
	if err != nil {
		panic(err)
	}
	decompressor, err := zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}

	c := Codec{
		encoding:     ledger.Encoding,
		decoding:     decoding,
		compressor:   compressor,
		decompressor: decompressor,
	}

	return &c
}

// Encode returns the canonical CBOR encoding of the value.
func (c *Codec) Encode(value interface{}) ([]byte, error) {
	return c.encoding.Marshal(value)
}

// Compress compresses already encoded data.
func (c *Codec) Compress(data []byte) ([]byte, error) {
	return c.compressor.EncodeAll(data, make([]byte, 0, len(data))), nil
}

func (c *Codec) Marshal(value interface{}) ([]byte, error) {
	data, err := c.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("could not encode value: %w", err)
	}

	compressed, err := c.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("could not compress value: %w", err)
	}

	return compressed, nil
}

func (c *Codec) Unmarshal(compressed []byte, value interface{}) error {
	data, err := c.decompressor.DecodeAll(compressed, nil)
	if err != nil {
		return fmt.Errorf("could not decompress value: %w", err)
	}

	err = c.decoding.Unmarshal(data, value)
	if err != nil {
		return fmt.Errorf("could not decode value: %w", err)
	}

	return nil
}
