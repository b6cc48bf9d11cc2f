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

package decoder_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/willtemperley/gopbf/internal/decoder"
	"github.com/willtemperley/gopbf/internal/pb"
)

func writeFrame(t *testing.T, w *bytes.Buffer, blobType string, blob *pb.Blob) {
	t.Helper()

	bb, err := blob.Marshal()
	require.NoError(t, err)

	hdr := &pb.BlobHeader{
		Type:     proto.String(blobType),
		Datasize: proto.Int32(int32(len(bb))),
	}

	hb, err := hdr.Marshal()
	require.NoError(t, err)

	require.NoError(t, binary.Write(w, binary.BigEndian, uint32(len(hb))))
	_, err = w.Write(hb)
	require.NoError(t, err)
	_, err = w.Write(bb)
	require.NoError(t, err)
}

func TestReadFrameReportsTypeAndSize(t *testing.T) {
	var buf bytes.Buffer
	writeFrame(t, &buf, decoder.BlobTypeData, &pb.Blob{Raw: []byte("hello")})

	frame, err := decoder.ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, decoder.BlobTypeData, frame.Type)
	assert.Positive(t, frame.Datasize)

	payload, err := decoder.ReadPayload(&buf, frame.Datasize)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), payload.GetRaw())
}

func TestSkipPayloadAdvancesPastBlob(t *testing.T) {
	var buf bytes.Buffer
	writeFrame(t, &buf, decoder.BlobTypeData, &pb.Blob{Raw: []byte("skip-me")})
	writeFrame(t, &buf, decoder.BlobTypeData, &pb.Blob{Raw: []byte("keep-me")})

	frame, err := decoder.ReadFrame(&buf)
	require.NoError(t, err)
	require.NoError(t, decoder.SkipPayload(&buf, frame.Datasize))

	frame, err = decoder.ReadFrame(&buf)
	require.NoError(t, err)

	payload, err := decoder.ReadPayload(&buf, frame.Datasize)
	require.NoError(t, err)
	assert.Equal(t, []byte("keep-me"), payload.GetRaw())
}

func TestDecodeEntitiesRejectsUnsupportedCompression(t *testing.T) {
	blob := &pb.Blob{Bzip2: []byte("legacy-bzip2-payload")}

	_, err := decoder.DecodeEntities(blob)
	assert.ErrorIs(t, err, decoder.ErrUnsupportedCompression)
}

// TestDecodeEntitiesAcceptsEmptyBlob checks the datasize == 0 boundary case:
// a Blob with no Data field set at all decodes successfully to an empty
// block rather than ErrUnsupportedCompression.
func TestDecodeEntitiesAcceptsEmptyBlob(t *testing.T) {
	entities, err := decoder.DecodeEntities(&pb.Blob{})
	require.NoError(t, err)
	assert.Empty(t, entities)
}

// TestDecodeEntitiesAcceptsPresentButEmptyRaw checks that a raw field
// present on the wire with zero length (as opposed to the field being
// entirely absent) also decodes successfully.
func TestDecodeEntitiesAcceptsPresentButEmptyRaw(t *testing.T) {
	entities, err := decoder.DecodeEntities(&pb.Blob{Raw: []byte{}})
	require.NoError(t, err)
	assert.Empty(t, entities)
}
