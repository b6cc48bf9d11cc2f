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

package decoder

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/willtemperley/gopbf/internal/core"
	"github.com/willtemperley/gopbf/internal/pb"
	"github.com/willtemperley/gopbf/model"
)

// Blob type names as they appear in the BlobHeader.type field.
const (
	BlobTypeHeader = "OSMHeader"
	BlobTypeData   = "OSMData"
)

// Frame is a BlobHeader's type and size, read without touching the payload
// that follows it. A scheduler uses this to decide whether to read or skip
// the payload before allocating anything for it.
type Frame struct {
	Type     string
	Datasize int32
}

// ReadFrame reads and unmarshals the next BlobHeader off rdr, leaving the
// payload that follows unread. A clean end of stream is reported as io.EOF.
func ReadFrame(rdr io.Reader) (*Frame, error) {
	h, err := readBlobHeader(rdr)
	if err != nil {
		return nil, err
	}

	return &Frame{Type: h.GetType(), Datasize: h.GetDatasize()}, nil
}

// ReadPayload reads and unmarshals a Blob of the given size off rdr.
func ReadPayload(rdr io.Reader, size int32) (*pb.Blob, error) {
	return readBlobData(rdr, int64(size))
}

// SkipPayload discards size bytes of a blob payload without allocating,
// used to bypass a blob belonging to a shard this reader does not own.
func SkipPayload(rdr io.Reader, size int32) error {
	n, err := io.CopyN(io.Discard, rdr, int64(size))
	if err != nil {
		return fmt.Errorf("%w: error skipping blob: %w", core.ErrMalformedFrame, err)
	}

	if n != int64(size) {
		return fmt.Errorf("%w: expected to skip %d bytes, skipped %d", core.ErrMalformedFrame, size, n)
	}

	return nil
}

// DecodeEntities unpacks blob and parses its PrimitiveBlock into entities.
func DecodeEntities(blob *pb.Blob) ([]model.Entity, error) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	raw, err := unpack(buf, blob)
	if err != nil {
		return nil, err
	}

	return parsePrimitiveBlock(raw)
}

// DecodeHeaderBlob unpacks blob and parses its HeaderBlock into a model.Header.
func DecodeHeaderBlob(blob *pb.Blob) (*model.Header, error) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	raw, err := unpack(buf, blob)
	if err != nil {
		return nil, err
	}

	return DecodeHeader(raw)
}

// maxBlobHeaderSize and maxBlobSize bound the two framing length fields: a
// BlobHeader length prefix over 64 KiB, or a Blob datasize over 32 MiB, can
// only be a corrupt or hostile stream and is rejected before any read.
const (
	maxBlobHeaderSize = 64 * 1024
	maxBlobSize       = 32 * 1024 * 1024
)

// readBlobHeader unmarshals a header from an array of protobuf encoded bytes.
// The header is used when decoding blobs into OSM elements.
func readBlobHeader(rdr io.Reader) (header *pb.BlobHeader, err error) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	var size uint32

	err = binary.Read(rdr, binary.BigEndian, &size)
	if err != nil {
		return nil, fmt.Errorf("error reading blob size: %w", err)
	}

	if size > maxBlobHeaderSize {
		return nil, fmt.Errorf("%w: blob header length %d exceeds %d byte limit", core.ErrMalformedFrame, size, maxBlobHeaderSize)
	}

	if n, err := io.CopyN(buf, rdr, int64(size)); err != nil {
		return nil, fmt.Errorf("%w: error reading blob header: %w", core.ErrMalformedFrame, err)
	} else if n != int64(size) {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", core.ErrMalformedFrame, size, n)
	}

	header = &pb.BlobHeader{}

	if err := header.Unmarshal(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: error unmarshalling blob header: %w", core.ErrMalformedFrame, err)
	}

	if header.GetDatasize() < 0 || header.GetDatasize() > maxBlobSize {
		return nil, fmt.Errorf("%w: blob datasize %d exceeds %d byte limit", core.ErrMalformedFrame, header.GetDatasize(), maxBlobSize)
	}

	return header, nil
}

// readBlobData unmarshals a blob from an array of protobuf encoded bytes.  The
// blob still needs to be decoded into OSM elements.
func readBlobData(rdr io.Reader, size int64) (*pb.Blob, error) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	if n, err := io.CopyN(buf, rdr, size); err != nil {
		return nil, fmt.Errorf("%w: error reading blob: %w", core.ErrMalformedFrame, err)
	} else if n != size {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", core.ErrMalformedFrame, size, n)
	}

	blob := &pb.Blob{}

	if err := blob.Unmarshal(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: error unmarshalling blob: %w", core.ErrMalformedFrame, err)
	}

	return blob, nil
}
