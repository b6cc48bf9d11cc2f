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

package decoder

import (
	"bytes"
	"compress/zlib"
	"fmt"

	"github.com/willtemperley/gopbf/internal/core"
	"github.com/willtemperley/gopbf/internal/pb"
)

// ErrUnsupportedCompression marks a Blob with any compression field other
// than raw or zlib_data set. Only these two are specified for decode; the
// format reserves lzma, OBSOLETE bzip2, lz4 and zstd fields that no OSM
// producer in the wild actually emits for planet dumps.
var ErrUnsupportedCompression = core.ErrUnsupportedCompression

// ErrDecompressionFailed marks a zlib inflate error or a size mismatch
// between the inflated payload and the blob's declared raw_size.
var ErrDecompressionFailed = core.ErrDecompressionFailed

// unpack uncompresses the blob.
//
// This method is not "buried" within the readBlobData function so that decompression
// of blobs can be performed concurrently.
func unpack(buf *core.PooledBuffer, blob *pb.Blob) ([]byte, error) {
	switch {
	case blob.Raw != nil:
		return blob.GetRaw(), nil

	case blob.ZlibData != nil:
		return inflate(buf, blob)

	case blob.LzmaData != nil, blob.Bzip2 != nil, blob.Lz4Data != nil, blob.ZstdData != nil:
		return nil, fmt.Errorf("%w", ErrUnsupportedCompression)

	default:
		// No Data field set at all: a zero-byte Blob message (e.g. a
		// BlobHeader declaring datasize == 0) decodes to an empty payload.
		return nil, nil
	}
}

func inflate(buf *core.PooledBuffer, blob *pb.Blob) ([]byte, error) {
	rawBufferSize := int(blob.GetRawSize() + bytes.MinRead)
	if rawBufferSize > buf.Cap() {
		buf.Grow(rawBufferSize)
	}

	rdr, err := zlib.NewReader(bytes.NewReader(blob.GetZlibData()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompressionFailed, err)
	}
	defer rdr.Close()

	n, err := buf.ReadFrom(rdr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompressionFailed, err)
	}

	if n != int64(blob.GetRawSize()) {
		return nil, fmt.Errorf("%w: inflated %d bytes but raw_size declared %d", ErrDecompressionFailed, n, blob.GetRawSize())
	}

	return buf.Bytes(), nil
}
