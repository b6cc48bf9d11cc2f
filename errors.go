// Copyright 2017-25 the original author or authors.
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

package pbf

import (
	"errors"

	"github.com/willtemperley/gopbf/internal/core"
)

// The error sentinels below form the taxonomy a Parser surfaces. Use
// errors.Is to classify a failure returned from Parse. Every sentinel here
// except ErrEndOfStream is the exact internal/core value that
// internal/decoder and the Parser raise and wrap, so errors.Is succeeds
// against the error actually produced, not just a look-alike string.
var (
	// ErrEndOfStream marks a clean termination at a frame boundary. It is
	// not itself returned from Parse; it only ever ends a decode loop
	// internally, and a successful Parse returns nil.
	ErrEndOfStream = errors.New("pbf: end of stream")

	// ErrMalformedFrame is returned when a BlobHeader length prefix exceeds
	// 64 KiB, a Blob exceeds 32 MiB, or either is truncated.
	ErrMalformedFrame = core.ErrMalformedFrame

	// ErrUnsupportedCompression is returned when a Blob sets any
	// compression field other than raw or zlib_data.
	ErrUnsupportedCompression = core.ErrUnsupportedCompression

	// ErrDecompressionFailed is returned when zlib inflation errors or the
	// inflated size disagrees with the blob's declared raw_size.
	ErrDecompressionFailed = core.ErrDecompressionFailed

	// ErrMalformedBlock is returned for protobuf decode failures inside a
	// blob payload, out-of-range string-table indices, or parallel-array
	// length mismatches within a primitive group.
	ErrMalformedBlock = core.ErrMalformedBlock

	// ErrSequenceViolation marks an OSMData blob observed before any
	// OSMHeader blob. It is logged and the block is skipped; it is not a
	// fatal Parse error.
	ErrSequenceViolation = core.ErrSequenceViolation

	// ErrParserBusy is returned when Parse is called while a prior call on
	// the same Parser is still Running or draining its in-flight workers.
	ErrParserBusy = core.ErrParserBusy

	// ErrWorkerFailed wraps the first failure returned by a submitted
	// decode task (decompression, block or header decoding), surfaced to
	// the caller after in-flight peers are cancelled.
	ErrWorkerFailed = core.ErrWorkerFailed
)
