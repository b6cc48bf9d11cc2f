// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package packers implements the blob-compression backends an encoder can
// pick between: raw (no compression) and zlib (the two a decoder in this
// module will read back), and lz4/zstd for producing blobs meant for other
// readers.
package packers

import "io"

// base funnels every packer's Write/Close through the one compressing
// io.WriteCloser it wraps, so each concrete packer need only implement
// SaveTo.
type base struct {
	io.WriteCloser
}

func newBasePacker(w io.WriteCloser) *base {
	return &base{WriteCloser: w}
}
