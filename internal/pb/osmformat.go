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
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// HeaderBBox mirrors osmformat.proto's HeaderBBox.
type HeaderBBox struct {
	Left, Right, Top, Bottom *int64
}

func (x *HeaderBBox) GetLeft() int64   { return derefI64(x.Left) }
func (x *HeaderBBox) GetRight() int64  { return derefI64(x.Right) }
func (x *HeaderBBox) GetTop() int64    { return derefI64(x.Top) }
func (x *HeaderBBox) GetBottom() int64 { return derefI64(x.Bottom) }

func derefI64(p *int64) int64 {
	if p == nil {
		return 0
	}

	return *p
}

func (x *HeaderBBox) Marshal() ([]byte, error) {
	var b []byte
	b = appendZigzagField(b, 1, x.Left)
	b = appendZigzagField(b, 2, x.Right)
	b = appendZigzagField(b, 3, x.Top)
	b = appendZigzagField(b, 4, x.Bottom)

	return b, nil
}

func appendZigzagField(b []byte, num protowire.Number, v *int64) []byte {
	if v == nil {
		return b
	}

	b = protowire.AppendTag(b, num, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(*v))

	return b
}

func (x *HeaderBBox) Unmarshal(b []byte) error {
	*x = HeaderBBox{}

	return unmarshal(b, x)
}

func (x *HeaderBBox) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	var dst **int64

	switch num {
	case 1:
		dst = &x.Left
	case 2:
		dst = &x.Right
	case 3:
		dst = &x.Top
	case 4:
		dst = &x.Bottom
	default:
		return -1, nil
	}

	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, fmt.Errorf("%w: HeaderBBox field %d: %w", ErrMalformed, num, protowire.ParseError(n))
	}

	sv := protowire.DecodeZigZag(v)
	*dst = &sv

	return n, nil
}

// HeaderBlock mirrors osmformat.proto's HeaderBlock.
type HeaderBlock struct {
	Bbox                             *HeaderBBox
	RequiredFeatures                 []string
	OptionalFeatures                 []string
	Writingprogram                   *string
	Source                           *string
	OsmosisReplicationTimestamp      *int64
	OsmosisReplicationSequenceNumber *int64
	OsmosisReplicationBaseUrl        *string
}

func (x *HeaderBlock) GetBbox() *HeaderBBox          { return x.Bbox }
func (x *HeaderBlock) GetRequiredFeatures() []string { return x.RequiredFeatures }
func (x *HeaderBlock) GetOptionalFeatures() []string { return x.OptionalFeatures }

func (x *HeaderBlock) GetOsmosisReplicationTimestamp() int64 {
	return derefI64(x.OsmosisReplicationTimestamp)
}

func (x *HeaderBlock) GetWritingprogram() string {
	if x.Writingprogram == nil {
		return ""
	}

	return *x.Writingprogram
}

func (x *HeaderBlock) GetSource() string {
	if x.Source == nil {
		return ""
	}

	return *x.Source
}

func (x *HeaderBlock) GetOsmosisReplicationBaseUrl() string {
	if x.OsmosisReplicationBaseUrl == nil {
		return ""
	}

	return *x.OsmosisReplicationBaseUrl
}

func (x *HeaderBlock) GetOsmosisReplicationSequenceNumber() int64 {
	return derefI64(x.OsmosisReplicationSequenceNumber)
}

func (x *HeaderBlock) Marshal() ([]byte, error) {
	var b []byte

	if x.Bbox != nil {
		inner, err := x.Bbox.Marshal()
		if err != nil {
			return nil, err
		}

		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}

	for _, s := range x.RequiredFeatures {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}

	for _, s := range x.OptionalFeatures {
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}

	if x.Writingprogram != nil {
		b = protowire.AppendTag(b, 16, protowire.BytesType)
		b = protowire.AppendString(b, *x.Writingprogram)
	}

	if x.Source != nil {
		b = protowire.AppendTag(b, 17, protowire.BytesType)
		b = protowire.AppendString(b, *x.Source)
	}

	if x.OsmosisReplicationTimestamp != nil {
		b = protowire.AppendTag(b, 32, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*x.OsmosisReplicationTimestamp))
	}

	if x.OsmosisReplicationSequenceNumber != nil {
		b = protowire.AppendTag(b, 33, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*x.OsmosisReplicationSequenceNumber))
	}

	if x.OsmosisReplicationBaseUrl != nil {
		b = protowire.AppendTag(b, 34, protowire.BytesType)
		b = protowire.AppendString(b, *x.OsmosisReplicationBaseUrl)
	}

	return b, nil
}

func (x *HeaderBlock) Unmarshal(b []byte) error {
	*x = HeaderBlock{}

	return unmarshal(b, x)
}

func (x *HeaderBlock) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		buf, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: HeaderBlock.bbox: %w", ErrMalformed, protowire.ParseError(n))
		}

		bbox := &HeaderBBox{}
		if err := bbox.Unmarshal(buf); err != nil {
			return 0, err
		}

		x.Bbox = bbox

		return n, nil

	case 4:
		s, n := protowire.ConsumeString(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: HeaderBlock.required_features: %w", ErrMalformed, protowire.ParseError(n))
		}

		x.RequiredFeatures = append(x.RequiredFeatures, s)

		return n, nil

	case 5:
		s, n := protowire.ConsumeString(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: HeaderBlock.optional_features: %w", ErrMalformed, protowire.ParseError(n))
		}

		x.OptionalFeatures = append(x.OptionalFeatures, s)

		return n, nil

	case 16:
		s, n := protowire.ConsumeString(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: HeaderBlock.writingprogram: %w", ErrMalformed, protowire.ParseError(n))
		}

		x.Writingprogram = &s

		return n, nil

	case 17:
		s, n := protowire.ConsumeString(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: HeaderBlock.source: %w", ErrMalformed, protowire.ParseError(n))
		}

		x.Source = &s

		return n, nil

	case 32:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: HeaderBlock.osmosis_replication_timestamp: %w", ErrMalformed, protowire.ParseError(n))
		}

		ts := int64(v)
		x.OsmosisReplicationTimestamp = &ts

		return n, nil

	case 33:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: HeaderBlock.osmosis_replication_sequence_number: %w", ErrMalformed, protowire.ParseError(n))
		}

		sn := int64(v)
		x.OsmosisReplicationSequenceNumber = &sn

		return n, nil

	case 34:
		s, n := protowire.ConsumeString(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: HeaderBlock.osmosis_replication_base_url: %w", ErrMalformed, protowire.ParseError(n))
		}

		x.OsmosisReplicationBaseUrl = &s

		return n, nil

	default:
		return -1, nil
	}
}

// StringTable mirrors osmformat.proto's StringTable.
type StringTable struct {
	S []string
}

func (x *StringTable) GetS() []string { return x.S }

func (x *StringTable) Marshal() ([]byte, error) {
	var b []byte
	for _, s := range x.S {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}

	return b, nil
}

func (x *StringTable) Unmarshal(b []byte) error {
	*x = StringTable{}

	return unmarshal(b, x)
}

func (x *StringTable) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	if num != 1 {
		return -1, nil
	}

	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, fmt.Errorf("%w: StringTable.s: %w", ErrMalformed, protowire.ParseError(n))
	}

	x.S = append(x.S, string(v))

	return n, nil
}

// Info mirrors osmformat.proto's Info.
type Info struct {
	Version   *int32
	Timestamp *int64
	Changeset *int64
	Uid       *int32
	UserSid   *int32
	Visible   *bool
}

func (x *Info) GetVersion() int32 {
	if x == nil || x.Version == nil {
		return -1
	}

	return *x.Version
}

func (x *Info) GetTimestamp() int64   { return derefI64(x.Timestamp) }
func (x *Info) GetChangeset() int64   { return derefI64(x.Changeset) }

func (x *Info) GetUid() int32 {
	if x == nil || x.Uid == nil {
		return 0
	}

	return *x.Uid
}

func (x *Info) GetUserSid() int32 {
	if x == nil || x.UserSid == nil {
		return 0
	}

	return *x.UserSid
}

func (x *Info) GetVisible() bool {
	if x == nil || x.Visible == nil {
		return true
	}

	return *x.Visible
}

func (x *Info) Marshal() ([]byte, error) {
	var b []byte

	if x.Version != nil {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(uint32(*x.Version)))
	}

	if x.Timestamp != nil {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*x.Timestamp))
	}

	if x.Changeset != nil {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*x.Changeset))
	}

	if x.Uid != nil {
		b = protowire.AppendTag(b, 4, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(uint32(*x.Uid)))
	}

	if x.UserSid != nil {
		b = protowire.AppendTag(b, 5, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(uint32(*x.UserSid)))
	}

	if x.Visible != nil {
		b = protowire.AppendTag(b, 6, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(*x.Visible))
	}

	return b, nil
}

func (x *Info) Unmarshal(b []byte) error {
	*x = Info{}

	return unmarshal(b, x)
}

func (x *Info) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Info.version: %w", ErrMalformed, protowire.ParseError(n))
		}

		ver := int32(v)
		x.Version = &ver

		return n, nil

	case 2:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Info.timestamp: %w", ErrMalformed, protowire.ParseError(n))
		}

		ts := int64(v)
		x.Timestamp = &ts

		return n, nil

	case 3:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Info.changeset: %w", ErrMalformed, protowire.ParseError(n))
		}

		cs := int64(v)
		x.Changeset = &cs

		return n, nil

	case 4:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Info.uid: %w", ErrMalformed, protowire.ParseError(n))
		}

		uid := int32(v)
		x.Uid = &uid

		return n, nil

	case 5:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Info.user_sid: %w", ErrMalformed, protowire.ParseError(n))
		}

		sid := int32(v)
		x.UserSid = &sid

		return n, nil

	case 6:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Info.visible: %w", ErrMalformed, protowire.ParseError(n))
		}

		vis := protowire.DecodeBool(v)
		x.Visible = &vis

		return n, nil

	default:
		return -1, nil
	}
}

// DenseInfo mirrors osmformat.proto's DenseInfo; all fields are packed.
type DenseInfo struct {
	Version   []int32
	Timestamp []int64
	Changeset []int64
	Uid       []int32
	UserSid   []int32
	Visible   []bool
}

func (x *DenseInfo) GetVersion() []int32   { return x.Version }
func (x *DenseInfo) GetTimestamp() []int64 { return x.Timestamp }
func (x *DenseInfo) GetChangeset() []int64 { return x.Changeset }
func (x *DenseInfo) GetUid() []int32       { return x.Uid }
func (x *DenseInfo) GetUserSid() []int32   { return x.UserSid }
func (x *DenseInfo) GetVisible() []bool    { return x.Visible }

func (x *DenseInfo) Marshal() ([]byte, error) {
	var b []byte

	b = appendPackedVarint(b, 1, int32sToUint64s(x.Version))
	b = appendPackedVarint(b, 2, zigzagSlice(x.Timestamp))
	b = appendPackedVarint(b, 3, zigzagSlice(x.Changeset))
	b = appendPackedVarint(b, 4, zigzagSlice(int32sToInt64s(x.Uid)))
	b = appendPackedVarint(b, 5, zigzagSlice(int32sToInt64s(x.UserSid)))

	if len(x.Visible) > 0 {
		bools := make([]uint64, len(x.Visible))
		for i, v := range x.Visible {
			bools[i] = protowire.EncodeBool(v)
		}

		b = appendPackedVarint(b, 6, bools)
	}

	return b, nil
}

func (x *DenseInfo) Unmarshal(b []byte) error {
	*x = DenseInfo{}

	return unmarshal(b, x)
}

func (x *DenseInfo) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("DenseInfo.version: %w", err)
		}

		x.Version = append(x.Version, uint64sToInt32s(vs)...)

		return n, nil

	case 2:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("DenseInfo.timestamp: %w", err)
		}

		x.Timestamp = append(x.Timestamp, unzigzagSlice(vs)...)

		return n, nil

	case 3:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("DenseInfo.changeset: %w", err)
		}

		x.Changeset = append(x.Changeset, unzigzagSlice(vs)...)

		return n, nil

	case 4:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("DenseInfo.uid: %w", err)
		}

		x.Uid = append(x.Uid, int64sToInt32s(unzigzagSlice(vs))...)

		return n, nil

	case 5:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("DenseInfo.user_sid: %w", err)
		}

		x.UserSid = append(x.UserSid, int64sToInt32s(unzigzagSlice(vs))...)

		return n, nil

	case 6:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("DenseInfo.visible: %w", err)
		}

		for _, v := range vs {
			x.Visible = append(x.Visible, protowire.DecodeBool(v))
		}

		return n, nil

	default:
		return -1, nil
	}
}

func int32sToInt64s(values []int32) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = int64(v)
	}

	return out
}

func int64sToInt32s(values []int64) []int32 {
	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = int32(v)
	}

	return out
}

// ChangeSet mirrors osmformat.proto's ChangeSet.
type ChangeSet struct {
	Id *int64
}

func (x *ChangeSet) GetId() int64 { return derefI64(x.Id) }

func (x *ChangeSet) Marshal() ([]byte, error) {
	var b []byte
	if x.Id != nil {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*x.Id))
	}

	return b, nil
}

func (x *ChangeSet) Unmarshal(b []byte) error {
	*x = ChangeSet{}

	return unmarshal(b, x)
}

func (x *ChangeSet) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	if num != 1 {
		return -1, nil
	}

	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, fmt.Errorf("%w: ChangeSet.id: %w", ErrMalformed, protowire.ParseError(n))
	}

	id := int64(v)
	x.Id = &id

	return n, nil
}

// Node mirrors osmformat.proto's Node.
type Node struct {
	Id   *int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Lat  *int64
	Lon  *int64
}

func (x *Node) GetId() int64     { return derefI64(x.Id) }
func (x *Node) GetKeys() []uint32 { return x.Keys }
func (x *Node) GetVals() []uint32 { return x.Vals }
func (x *Node) GetInfo() *Info   { return x.Info }
func (x *Node) GetLat() int64    { return derefI64(x.Lat) }
func (x *Node) GetLon() int64    { return derefI64(x.Lon) }

func (x *Node) Marshal() ([]byte, error) {
	var b []byte

	if x.Id != nil {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(*x.Id))
	}

	b = appendPackedVarint(b, 2, uint32sToUint64s(x.Keys))
	b = appendPackedVarint(b, 3, uint32sToUint64s(x.Vals))

	if x.Info != nil {
		inner, err := x.Info.Marshal()
		if err != nil {
			return nil, err
		}

		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}

	if x.Lat != nil {
		b = protowire.AppendTag(b, 8, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(*x.Lat))
	}

	if x.Lon != nil {
		b = protowire.AppendTag(b, 9, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(*x.Lon))
	}

	return b, nil
}

func (x *Node) Unmarshal(b []byte) error {
	*x = Node{}

	return unmarshal(b, x)
}

func (x *Node) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Node.id: %w", ErrMalformed, protowire.ParseError(n))
		}

		id := protowire.DecodeZigZag(v)
		x.Id = &id

		return n, nil

	case 2:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("Node.keys: %w", err)
		}

		x.Keys = append(x.Keys, uint64sToUint32s(vs)...)

		return n, nil

	case 3:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("Node.vals: %w", err)
		}

		x.Vals = append(x.Vals, uint64sToUint32s(vs)...)

		return n, nil

	case 4:
		buf, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Node.info: %w", ErrMalformed, protowire.ParseError(n))
		}

		info := &Info{}
		if err := info.Unmarshal(buf); err != nil {
			return 0, err
		}

		x.Info = info

		return n, nil

	case 8:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Node.lat: %w", ErrMalformed, protowire.ParseError(n))
		}

		lat := protowire.DecodeZigZag(v)
		x.Lat = &lat

		return n, nil

	case 9:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Node.lon: %w", ErrMalformed, protowire.ParseError(n))
		}

		lon := protowire.DecodeZigZag(v)
		x.Lon = &lon

		return n, nil

	default:
		return -1, nil
	}
}

// DenseNodes mirrors osmformat.proto's DenseNodes.
type DenseNodes struct {
	Id        []int64
	Denseinfo *DenseInfo
	Lat       []int64
	Lon       []int64
	KeysVals  []int32
}

func (x *DenseNodes) GetId() []int64            { return x.Id }
func (x *DenseNodes) GetDenseinfo() *DenseInfo   { return x.Denseinfo }
func (x *DenseNodes) GetLat() []int64            { return x.Lat }
func (x *DenseNodes) GetLon() []int64            { return x.Lon }
func (x *DenseNodes) GetKeysVals() []int32       { return x.KeysVals }

func (x *DenseNodes) Marshal() ([]byte, error) {
	var b []byte

	b = appendPackedVarint(b, 1, zigzagSlice(x.Id))

	if x.Denseinfo != nil {
		inner, err := x.Denseinfo.Marshal()
		if err != nil {
			return nil, err
		}

		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}

	b = appendPackedVarint(b, 8, zigzagSlice(x.Lat))
	b = appendPackedVarint(b, 9, zigzagSlice(x.Lon))
	b = appendPackedVarint(b, 10, int32sToUint64s(x.KeysVals))

	return b, nil
}

func (x *DenseNodes) Unmarshal(b []byte) error {
	*x = DenseNodes{}

	return unmarshal(b, x)
}

func (x *DenseNodes) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("DenseNodes.id: %w", err)
		}

		x.Id = append(x.Id, unzigzagSlice(vs)...)

		return n, nil

	case 5:
		buf, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: DenseNodes.denseinfo: %w", ErrMalformed, protowire.ParseError(n))
		}

		di := &DenseInfo{}
		if err := di.Unmarshal(buf); err != nil {
			return 0, err
		}

		x.Denseinfo = di

		return n, nil

	case 8:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("DenseNodes.lat: %w", err)
		}

		x.Lat = append(x.Lat, unzigzagSlice(vs)...)

		return n, nil

	case 9:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("DenseNodes.lon: %w", err)
		}

		x.Lon = append(x.Lon, unzigzagSlice(vs)...)

		return n, nil

	case 10:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("DenseNodes.keys_vals: %w", err)
		}

		x.KeysVals = append(x.KeysVals, uint64sToInt32s(vs)...)

		return n, nil

	default:
		return -1, nil
	}
}

// Way mirrors osmformat.proto's Way.
type Way struct {
	Id   *int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Refs []int64
}

func (x *Way) GetId() int64      { return derefI64(x.Id) }
func (x *Way) GetKeys() []uint32 { return x.Keys }
func (x *Way) GetVals() []uint32 { return x.Vals }
func (x *Way) GetInfo() *Info    { return x.Info }
func (x *Way) GetRefs() []int64  { return x.Refs }

func (x *Way) Marshal() ([]byte, error) {
	var b []byte

	if x.Id != nil {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*x.Id))
	}

	b = appendPackedVarint(b, 2, uint32sToUint64s(x.Keys))
	b = appendPackedVarint(b, 3, uint32sToUint64s(x.Vals))

	if x.Info != nil {
		inner, err := x.Info.Marshal()
		if err != nil {
			return nil, err
		}

		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}

	b = appendPackedVarint(b, 8, zigzagSlice(x.Refs))

	return b, nil
}

func (x *Way) Unmarshal(b []byte) error {
	*x = Way{}

	return unmarshal(b, x)
}

func (x *Way) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Way.id: %w", ErrMalformed, protowire.ParseError(n))
		}

		id := int64(v)
		x.Id = &id

		return n, nil

	case 2:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("Way.keys: %w", err)
		}

		x.Keys = append(x.Keys, uint64sToUint32s(vs)...)

		return n, nil

	case 3:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("Way.vals: %w", err)
		}

		x.Vals = append(x.Vals, uint64sToUint32s(vs)...)

		return n, nil

	case 4:
		buf, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Way.info: %w", ErrMalformed, protowire.ParseError(n))
		}

		info := &Info{}
		if err := info.Unmarshal(buf); err != nil {
			return 0, err
		}

		x.Info = info

		return n, nil

	case 8:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("Way.refs: %w", err)
		}

		x.Refs = append(x.Refs, unzigzagSlice(vs)...)

		return n, nil

	default:
		return -1, nil
	}
}

// Relation_MemberType mirrors osmformat.proto's Relation.MemberType enum.
type Relation_MemberType int32

const (
	Relation_NODE     Relation_MemberType = 0
	Relation_WAY       Relation_MemberType = 1
	Relation_RELATION Relation_MemberType = 2
)

// Relation mirrors osmformat.proto's Relation.
type Relation struct {
	Id       *int64
	Keys     []uint32
	Vals     []uint32
	Info     *Info
	RolesSid []int32
	Memids   []int64
	Types    []Relation_MemberType
}

func (x *Relation) GetId() int64                       { return derefI64(x.Id) }
func (x *Relation) GetKeys() []uint32                   { return x.Keys }
func (x *Relation) GetVals() []uint32                   { return x.Vals }
func (x *Relation) GetInfo() *Info                      { return x.Info }
func (x *Relation) GetRolesSid() []int32                { return x.RolesSid }
func (x *Relation) GetMemids() []int64                  { return x.Memids }
func (x *Relation) GetTypes() []Relation_MemberType     { return x.Types }

func (x *Relation) Marshal() ([]byte, error) {
	var b []byte

	if x.Id != nil {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*x.Id))
	}

	b = appendPackedVarint(b, 2, uint32sToUint64s(x.Keys))
	b = appendPackedVarint(b, 3, uint32sToUint64s(x.Vals))

	if x.Info != nil {
		inner, err := x.Info.Marshal()
		if err != nil {
			return nil, err
		}

		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}

	roles := make([]uint64, len(x.RolesSid))
	for i, v := range x.RolesSid {
		roles[i] = uint64(uint32(v))
	}

	b = appendPackedVarint(b, 8, roles)
	b = appendPackedVarint(b, 9, zigzagSlice(x.Memids))

	types := make([]uint64, len(x.Types))
	for i, v := range x.Types {
		types[i] = uint64(v)
	}

	b = appendPackedVarint(b, 10, types)

	return b, nil
}

func (x *Relation) Unmarshal(b []byte) error {
	*x = Relation{}

	return unmarshal(b, x)
}

func (x *Relation) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Relation.id: %w", ErrMalformed, protowire.ParseError(n))
		}

		id := int64(v)
		x.Id = &id

		return n, nil

	case 2:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("Relation.keys: %w", err)
		}

		x.Keys = append(x.Keys, uint64sToUint32s(vs)...)

		return n, nil

	case 3:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("Relation.vals: %w", err)
		}

		x.Vals = append(x.Vals, uint64sToUint32s(vs)...)

		return n, nil

	case 4:
		buf, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: Relation.info: %w", ErrMalformed, protowire.ParseError(n))
		}

		info := &Info{}
		if err := info.Unmarshal(buf); err != nil {
			return 0, err
		}

		x.Info = info

		return n, nil

	case 8:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("Relation.roles_sid: %w", err)
		}

		x.RolesSid = append(x.RolesSid, uint64sToInt32s(vs)...)

		return n, nil

	case 9:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("Relation.memids: %w", err)
		}

		x.Memids = append(x.Memids, unzigzagSlice(vs)...)

		return n, nil

	case 10:
		vs, n, err := consumeVarintSlice(typ, b, nil)
		if err != nil {
			return 0, fmt.Errorf("Relation.types: %w", err)
		}

		for _, v := range vs {
			x.Types = append(x.Types, Relation_MemberType(v))
		}

		return n, nil

	default:
		return -1, nil
	}
}

// PrimitiveGroup mirrors osmformat.proto's PrimitiveGroup.
type PrimitiveGroup struct {
	Nodes      []*Node
	Dense      *DenseNodes
	Ways       []*Way
	Relations  []*Relation
	Changesets []*ChangeSet
}

func (x *PrimitiveGroup) GetNodes() []*Node           { return x.Nodes }
func (x *PrimitiveGroup) GetDense() *DenseNodes        { return x.Dense }
func (x *PrimitiveGroup) GetWays() []*Way              { return x.Ways }
func (x *PrimitiveGroup) GetRelations() []*Relation    { return x.Relations }
func (x *PrimitiveGroup) GetChangesets() []*ChangeSet  { return x.Changesets }

func (x *PrimitiveGroup) Marshal() ([]byte, error) {
	var b []byte

	for _, n := range x.Nodes {
		inner, err := n.Marshal()
		if err != nil {
			return nil, err
		}

		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}

	if x.Dense != nil {
		inner, err := x.Dense.Marshal()
		if err != nil {
			return nil, err
		}

		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}

	for _, w := range x.Ways {
		inner, err := w.Marshal()
		if err != nil {
			return nil, err
		}

		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}

	for _, r := range x.Relations {
		inner, err := r.Marshal()
		if err != nil {
			return nil, err
		}

		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}

	for _, c := range x.Changesets {
		inner, err := c.Marshal()
		if err != nil {
			return nil, err
		}

		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}

	return b, nil
}

func (x *PrimitiveGroup) Unmarshal(b []byte) error {
	*x = PrimitiveGroup{}

	return unmarshal(b, x)
}

func (x *PrimitiveGroup) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		buf, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: PrimitiveGroup.nodes: %w", ErrMalformed, protowire.ParseError(n))
		}

		node := &Node{}
		if err := node.Unmarshal(buf); err != nil {
			return 0, err
		}

		x.Nodes = append(x.Nodes, node)

		return n, nil

	case 2:
		buf, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: PrimitiveGroup.dense: %w", ErrMalformed, protowire.ParseError(n))
		}

		dense := &DenseNodes{}
		if err := dense.Unmarshal(buf); err != nil {
			return 0, err
		}

		x.Dense = dense

		return n, nil

	case 3:
		buf, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: PrimitiveGroup.ways: %w", ErrMalformed, protowire.ParseError(n))
		}

		way := &Way{}
		if err := way.Unmarshal(buf); err != nil {
			return 0, err
		}

		x.Ways = append(x.Ways, way)

		return n, nil

	case 4:
		buf, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: PrimitiveGroup.relations: %w", ErrMalformed, protowire.ParseError(n))
		}

		rel := &Relation{}
		if err := rel.Unmarshal(buf); err != nil {
			return 0, err
		}

		x.Relations = append(x.Relations, rel)

		return n, nil

	case 5:
		buf, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: PrimitiveGroup.changesets: %w", ErrMalformed, protowire.ParseError(n))
		}

		cs := &ChangeSet{}
		if err := cs.Unmarshal(buf); err != nil {
			return 0, err
		}

		x.Changesets = append(x.Changesets, cs)

		return n, nil

	default:
		return -1, nil
	}
}

// PrimitiveBlock mirrors osmformat.proto's PrimitiveBlock.
type PrimitiveBlock struct {
	Stringtable     *StringTable
	Primitivegroup  []*PrimitiveGroup
	Granularity     *int32
	LatOffset       *int64
	LonOffset       *int64
	DateGranularity *int32
}

func (x *PrimitiveBlock) GetStringtable() *StringTable      { return x.Stringtable }
func (x *PrimitiveBlock) GetPrimitivegroup() []*PrimitiveGroup { return x.Primitivegroup }

func (x *PrimitiveBlock) GetGranularity() int32 {
	if x.Granularity == nil {
		return 100
	}

	return *x.Granularity
}

func (x *PrimitiveBlock) GetLatOffset() int64 {
	if x.LatOffset == nil {
		return 0
	}

	return *x.LatOffset
}

func (x *PrimitiveBlock) GetLonOffset() int64 {
	if x.LonOffset == nil {
		return 0
	}

	return *x.LonOffset
}

func (x *PrimitiveBlock) GetDateGranularity() int32 {
	if x.DateGranularity == nil {
		return 1000
	}

	return *x.DateGranularity
}

func (x *PrimitiveBlock) Marshal() ([]byte, error) {
	var b []byte

	if x.Stringtable != nil {
		inner, err := x.Stringtable.Marshal()
		if err != nil {
			return nil, err
		}

		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}

	for _, pg := range x.Primitivegroup {
		inner, err := pg.Marshal()
		if err != nil {
			return nil, err
		}

		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}

	if x.Granularity != nil {
		b = protowire.AppendTag(b, 17, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(uint32(*x.Granularity)))
	}

	if x.DateGranularity != nil {
		b = protowire.AppendTag(b, 18, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(uint32(*x.DateGranularity)))
	}

	if x.LatOffset != nil {
		b = protowire.AppendTag(b, 19, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*x.LatOffset))
	}

	if x.LonOffset != nil {
		b = protowire.AppendTag(b, 20, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*x.LonOffset))
	}

	return b, nil
}

func (x *PrimitiveBlock) Unmarshal(b []byte) error {
	*x = PrimitiveBlock{}

	return unmarshal(b, x)
}

func (x *PrimitiveBlock) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		buf, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: PrimitiveBlock.stringtable: %w", ErrMalformed, protowire.ParseError(n))
		}

		st := &StringTable{}
		if err := st.Unmarshal(buf); err != nil {
			return 0, err
		}

		x.Stringtable = st

		return n, nil

	case 2:
		buf, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: PrimitiveBlock.primitivegroup: %w", ErrMalformed, protowire.ParseError(n))
		}

		pg := &PrimitiveGroup{}
		if err := pg.Unmarshal(buf); err != nil {
			return 0, err
		}

		x.Primitivegroup = append(x.Primitivegroup, pg)

		return n, nil

	case 17:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: PrimitiveBlock.granularity: %w", ErrMalformed, protowire.ParseError(n))
		}

		g := int32(v)
		x.Granularity = &g

		return n, nil

	case 18:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: PrimitiveBlock.date_granularity: %w", ErrMalformed, protowire.ParseError(n))
		}

		g := int32(v)
		x.DateGranularity = &g

		return n, nil

	case 19:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: PrimitiveBlock.lat_offset: %w", ErrMalformed, protowire.ParseError(n))
		}

		o := int64(v)
		x.LatOffset = &o

		return n, nil

	case 20:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: PrimitiveBlock.lon_offset: %w", ErrMalformed, protowire.ParseError(n))
		}

		o := int64(v)
		x.LonOffset = &o

		return n, nil

	default:
		return -1, nil
	}
}
