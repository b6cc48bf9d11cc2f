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

package encoder

// BlobCompression selects the packer used to compress a Blob's payload
// when writing a PBF stream. Only ZLIB and RAW round-trip through this
// module's own decoder; LZ4 and ZSTD are offered for producing blobs meant
// for other readers of the format.
type BlobCompression int

const (
	RAW BlobCompression = iota
	ZLIB
	LZ4
	ZSTD
)
