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

package pb

import (
	"bytes"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// cloneBytes copies v, preserving non-nil-ness even when v is zero-length.
// append([]byte(nil), v...) would collapse to nil in that case, erasing
// the wire-level distinction between "field absent" and "field present
// but empty" for Blob's compression variants.
func cloneBytes(v []byte) []byte {
	return bytes.Clone(v)
}

// BlobHeader mirrors fileformat.proto's BlobHeader message.
type BlobHeader struct {
	Type      *string
	Indexdata []byte
	Datasize  *int32
}

func (h *BlobHeader) GetType() string {
	if h == nil || h.Type == nil {
		return ""
	}

	return *h.Type
}

func (h *BlobHeader) GetDatasize() int32 {
	if h == nil || h.Datasize == nil {
		return 0
	}

	return *h.Datasize
}

func (h *BlobHeader) Marshal() ([]byte, error) {
	var b []byte

	if h.Type != nil {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, *h.Type)
	}

	if h.Indexdata != nil {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, h.Indexdata)
	}

	if h.Datasize != nil {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(uint32(*h.Datasize)))
	}

	return b, nil
}

func (h *BlobHeader) Unmarshal(b []byte) error {
	*h = BlobHeader{}

	return unmarshal(b, h)
}

func (h *BlobHeader) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		s, n := protowire.ConsumeString(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: BlobHeader.type: %w", ErrMalformed, protowire.ParseError(n))
		}

		h.Type = &s

		return n, nil

	case 2:
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: BlobHeader.indexdata: %w", ErrMalformed, protowire.ParseError(n))
		}

		h.Indexdata = cloneBytes(v)

		return n, nil

	case 3:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: BlobHeader.datasize: %w", ErrMalformed, protowire.ParseError(n))
		}

		sz := int32(v)
		h.Datasize = &sz

		return n, nil

	default:
		return -1, nil
	}
}

// Blob mirrors fileformat.proto's Blob message. Exactly one of the Data
// fields is populated on a well-formed message.
type Blob struct {
	Raw      []byte
	RawSize  *int32
	ZlibData []byte
	LzmaData []byte
	Bzip2    []byte
	Lz4Data  []byte
	ZstdData []byte
}

func (b *Blob) GetRaw() []byte      { return b.Raw }
func (b *Blob) GetZlibData() []byte { return b.ZlibData }

func (b *Blob) GetRawSize() int32 {
	if b == nil || b.RawSize == nil {
		return 0
	}

	return *b.RawSize
}

func (bl *Blob) Marshal() ([]byte, error) {
	var b []byte

	switch {
	case bl.Raw != nil:
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, bl.Raw)
	case bl.ZlibData != nil:
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, bl.ZlibData)
	case bl.LzmaData != nil:
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, bl.LzmaData)
	case bl.Bzip2 != nil:
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, bl.Bzip2)
	case bl.Lz4Data != nil:
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendBytes(b, bl.Lz4Data)
	case bl.ZstdData != nil:
		b = protowire.AppendTag(b, 7, protowire.BytesType)
		b = protowire.AppendBytes(b, bl.ZstdData)
	}

	if bl.RawSize != nil {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(uint32(*bl.RawSize)))
	}

	return b, nil
}

func (bl *Blob) Unmarshal(b []byte) error {
	*bl = Blob{}

	return unmarshal(b, bl)
}

func (bl *Blob) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Blob.raw: %w", ErrMalformed, protowire.ParseError(n))
		}

		bl.Raw = cloneBytes(v)

		return n, nil

	case 2:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Blob.raw_size: %w", ErrMalformed, protowire.ParseError(n))
		}

		sz := int32(v)
		bl.RawSize = &sz

		return n, nil

	case 3:
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Blob.zlib_data: %w", ErrMalformed, protowire.ParseError(n))
		}

		bl.ZlibData = cloneBytes(v)

		return n, nil

	case 4:
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Blob.lzma_data: %w", ErrMalformed, protowire.ParseError(n))
		}

		bl.LzmaData = cloneBytes(v)

		return n, nil

	case 5:
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Blob.OBSOLETE_bzip2_data: %w", ErrMalformed, protowire.ParseError(n))
		}

		bl.Bzip2 = cloneBytes(v)

		return n, nil

	case 6:
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Blob.lz4_data: %w", ErrMalformed, protowire.ParseError(n))
		}

		bl.Lz4Data = cloneBytes(v)

		return n, nil

	case 7:
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Blob.zstd_data: %w", ErrMalformed, protowire.ParseError(n))
		}

		bl.ZstdData = cloneBytes(v)

		return n, nil

	default:
		return -1, nil
	}
}
