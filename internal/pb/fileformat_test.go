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

package pb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/willtemperley/gopbf/internal/pb"
)

// TestBlobUnmarshalPreservesPresentButEmptyRaw checks that a raw field
// present on the wire with zero length decodes to a non-nil empty slice,
// not nil: nil means "field absent" throughout this package, and collapsing
// the two would make an empty raw payload indistinguishable from a Blob
// that never set raw at all.
func TestBlobUnmarshalPreservesPresentButEmptyRaw(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte{})

	var bl pb.Blob
	require.NoError(t, bl.Unmarshal(b))

	assert.NotNil(t, bl.Raw)
	assert.Empty(t, bl.Raw)
	assert.Nil(t, bl.ZlibData)
}

// TestBlobUnmarshalPreservesPresentButEmptyZlibData mirrors the raw-field
// case for zlib_data, the other field unpack() branches on.
func TestBlobUnmarshalPreservesPresentButEmptyZlibData(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte{})

	var bl pb.Blob
	require.NoError(t, bl.Unmarshal(b))

	assert.Nil(t, bl.Raw)
	assert.NotNil(t, bl.ZlibData)
	assert.Empty(t, bl.ZlibData)
}

// TestBlobUnmarshalEmptyMessageSetsNoField checks the BlobHeader.datasize ==
// 0 boundary case: a zero-byte Blob message leaves every field nil.
func TestBlobUnmarshalEmptyMessageSetsNoField(t *testing.T) {
	var bl pb.Blob
	require.NoError(t, bl.Unmarshal(nil))

	assert.Nil(t, bl.Raw)
	assert.Nil(t, bl.ZlibData)
	assert.Nil(t, bl.LzmaData)
	assert.Nil(t, bl.Bzip2)
	assert.Nil(t, bl.Lz4Data)
	assert.Nil(t, bl.ZstdData)
}
