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

// Package pb is a narrow, hand-maintained codec for the two OSM PBF wire
// schemas, fileformat.proto and osmformat.proto. Rather than depending on
// protoc-generated bindings, it reads and writes the documented field
// numbers directly with google.golang.org/protobuf/encoding/protowire,
// which keeps the decode path allocation-light and avoids carrying a
// generated-code toolchain step for two small, stable schemas.
package pb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrMalformed is wrapped by every wire-decode failure in this package.
var ErrMalformed = fmt.Errorf("malformed protobuf message")

// unmarshaler is implemented by every message type in this package.
type unmarshaler interface {
	unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error)
}

// Marshaler is implemented by every message type in this package.
type Marshaler interface {
	Marshal() ([]byte, error)
}

// Unmarshaler is implemented by every message type in this package.
type Unmarshaler interface {
	Unmarshal(b []byte) error
}

// Marshal encodes m using its own wire encoding. It mirrors the shape of
// google.golang.org/protobuf/proto.Marshal for the hand-rolled messages in
// this package, so callers can swap one for the other without restructuring.
func Marshal(m Marshaler) ([]byte, error) {
	return m.Marshal()
}

// Unmarshal decodes b into m using its own wire decoding.
func Unmarshal(b []byte, m Unmarshaler) error {
	return m.Unmarshal(b)
}

// unmarshal drives the generic tag/field loop shared by every message,
// dispatching each field to the message's own unmarshalField.
func unmarshal(b []byte, m unmarshaler) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: bad tag: %w", ErrMalformed, protowire.ParseError(n))
		}

		b = b[n:]

		consumed, err := m.unmarshalField(num, typ, b)
		if err != nil {
			return err
		}

		if consumed < 0 {
			m2 := protowire.ConsumeFieldValue(num, typ, b)
			if m2 < 0 {
				return fmt.Errorf("%w: field %d: %w", ErrMalformed, num, protowire.ParseError(m2))
			}

			consumed = m2
		}

		b = b[consumed:]
	}

	return nil
}

// consumeVarintSlice decodes a packed-or-scalar varint field, appending to
// dst. OSM PBF packs these arrays, but a lone scalar occurrence (wire type
// VarInt) is also accepted for robustness.
func consumeVarintSlice(typ protowire.Type, b []byte, dst []uint64) ([]uint64, int, error) {
	switch typ {
	case protowire.BytesType:
		buf, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, 0, fmt.Errorf("%w: packed varint array: %w", ErrMalformed, protowire.ParseError(n))
		}

		for len(buf) > 0 {
			v, m := protowire.ConsumeVarint(buf)
			if m < 0 {
				return nil, 0, fmt.Errorf("%w: packed varint element: %w", ErrMalformed, protowire.ParseError(m))
			}

			dst = append(dst, v)
			buf = buf[m:]
		}

		return dst, n, nil

	case protowire.VarintType:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, 0, fmt.Errorf("%w: varint: %w", ErrMalformed, protowire.ParseError(n))
		}

		return append(dst, v), n, nil

	default:
		return nil, 0, fmt.Errorf("%w: unexpected wire type %d for varint field", ErrMalformed, typ)
	}
}

func appendPackedVarint(b []byte, num protowire.Number, values []uint64) []byte {
	if len(values) == 0 {
		return b
	}

	var inner []byte
	for _, v := range values {
		inner = protowire.AppendVarint(inner, v)
	}

	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendBytes(b, inner)

	return b
}

func zigzagSlice(values []int64) []uint64 {
	out := make([]uint64, len(values))
	for i, v := range values {
		out[i] = protowire.EncodeZigZag(v)
	}

	return out
}

func unzigzagSlice(values []uint64) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = protowire.DecodeZigZag(v)
	}

	return out
}

func uint64sToUint32s(values []uint64) []uint32 {
	out := make([]uint32, len(values))
	for i, v := range values {
		out[i] = uint32(v)
	}

	return out
}

func uint32sToUint64s(values []uint32) []uint64 {
	out := make([]uint64, len(values))
	for i, v := range values {
		out[i] = uint64(v)
	}

	return out
}

func uint64sToInt32s(values []uint64) []int32 {
	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = int32(v)
	}

	return out
}

func int32sToUint64s(values []int32) []uint64 {
	out := make([]uint64, len(values))
	for i, v := range values {
		out[i] = uint64(uint32(v))
	}

	return out
}
