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

package core

import "errors"

// These sentinels are the shared vocabulary between internal/decoder and
// the root package's Parser. The root package
// re-exports every one of them directly so callers never need to import
// internal/core, and errors.Is works end to end from a Parse call down to
// the frame where the error actually originated.
var (
	ErrMalformedFrame         = errors.New("pbf: malformed frame")
	ErrUnsupportedCompression = errors.New("pbf: unsupported blob compression")
	ErrDecompressionFailed    = errors.New("pbf: blob decompression failed")
	ErrMalformedBlock         = errors.New("pbf: malformed primitive block")
	ErrSequenceViolation      = errors.New("pbf: data blob before header")
	ErrParserBusy             = errors.New("pbf: parser is already running")
	ErrWorkerFailed           = errors.New("pbf: worker failed")
)
