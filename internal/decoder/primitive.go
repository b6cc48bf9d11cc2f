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
	"fmt"
	"time"

	"github.com/willtemperley/gopbf/internal/core"
	"github.com/willtemperley/gopbf/internal/pb"
	"github.com/willtemperley/gopbf/model"
)

// ErrMalformedBlock marks a protobuf decode failure inside a blob payload,
// an out-of-range string-table index, or a parallel-array length mismatch
// within a primitive group.
var ErrMalformedBlock = core.ErrMalformedBlock

func parsePrimitiveBlock(buf []byte) ([]model.Entity, error) {
	blk := &pb.PrimitiveBlock{}
	if err := blk.Unmarshal(buf); err != nil {
		return nil, fmt.Errorf("%w: unable to unmarshal primitive block: %w", ErrMalformedBlock, err)
	}

	c := newBlockContext(blk)

	entities := make([]model.Entity, 0)

	for _, pg := range blk.GetPrimitivegroup() {
		nodes, err := c.decodeNodes(pg.GetNodes())
		if err != nil {
			return nil, err
		}

		entities = append(entities, nodes...)

		dense, err := c.decodeDenseNodes(pg.GetDense())
		if err != nil {
			return nil, err
		}

		entities = append(entities, dense...)

		ways, err := c.decodeWays(pg.GetWays())
		if err != nil {
			return nil, err
		}

		entities = append(entities, ways...)

		relations, err := c.decodeRelations(pg.GetRelations())
		if err != nil {
			return nil, err
		}

		entities = append(entities, relations...)

		for _, cs := range pg.GetChangesets() {
			entities = append(entities, model.Changeset{ID: model.ID(cs.GetId())})
		}
	}

	return entities, nil
}

type blockContext struct {
	strings         []string
	granularity     int32
	latOffset       int64
	lonOffset       int64
	dateGranularity int32
}

func newBlockContext(pb *pb.PrimitiveBlock) *blockContext {
	return &blockContext{
		strings:         pb.GetStringtable().GetS(),
		granularity:     pb.GetGranularity(),
		latOffset:       pb.GetLatOffset(),
		lonOffset:       pb.GetLonOffset(),
		dateGranularity: pb.GetDateGranularity(),
	}
}

// str resolves a string-table index, rejecting out-of-range references per
// the block's invariant that every key/value/role/username index is valid.
func (c *blockContext) str(idx int64) (string, error) {
	if idx < 0 || int(idx) >= len(c.strings) {
		return "", fmt.Errorf("%w: string index %d out of range [0,%d)", ErrMalformedBlock, idx, len(c.strings))
	}

	return c.strings[idx], nil
}

func (c *blockContext) decodeNodes(nodes []*pb.Node) ([]model.Entity, error) {
	entities := make([]model.Entity, len(nodes))

	for i, node := range nodes {
		tags, err := c.decodeTags(node.GetKeys(), node.GetVals())
		if err != nil {
			return nil, err
		}

		info, err := c.decodeInfo(node.GetInfo())
		if err != nil {
			return nil, err
		}

		entities[i] = &model.Node{
			ID:   model.ID(node.GetId()),
			Tags: tags,
			Info: info,
			Lat:  model.ToDegrees(c.latOffset, c.granularity, node.GetLat()),
			Lon:  model.ToDegrees(c.lonOffset, c.granularity, node.GetLon()),
		}
	}

	return entities, nil
}

func (c *blockContext) decodeDenseNodes(nodes *pb.DenseNodes) ([]model.Entity, error) {
	if nodes == nil {
		return nil, nil
	}

	ids := nodes.GetId()
	entities := make([]model.Entity, len(ids))

	tic := c.newTagsContext(nodes.GetKeysVals())
	dic := c.newDenseInfoContext(nodes.GetDenseinfo())
	lats := nodes.GetLat()
	lons := nodes.GetLon()

	if len(lats) != len(ids) || len(lons) != len(ids) {
		return nil, fmt.Errorf("%w: dense node id/lat/lon array length mismatch", ErrMalformedBlock)
	}

	var id, lat, lon int64

	for i := range ids {
		id += ids[i]
		lat += lats[i]
		lon += lons[i]

		tags, err := tic.decodeTags()
		if err != nil {
			return nil, err
		}

		info, err := dic.decodeInfo(i)
		if err != nil {
			return nil, err
		}

		entities[i] = &model.Node{
			ID:   model.ID(id),
			Tags: tags,
			Info: info,
			Lat:  model.ToDegrees(c.latOffset, c.granularity, lat),
			Lon:  model.ToDegrees(c.lonOffset, c.granularity, lon),
		}
	}

	return entities, nil
}

func (c *blockContext) decodeWays(ways []*pb.Way) ([]model.Entity, error) {
	entities := make([]model.Entity, len(ways))

	for i, way := range ways {
		refs := way.GetRefs()
		nodeIDs := make([]model.ID, len(refs))

		var nodeID int64

		for j, delta := range refs {
			nodeID += delta
			nodeIDs[j] = model.ID(nodeID)
		}

		tags, err := c.decodeTags(way.GetKeys(), way.GetVals())
		if err != nil {
			return nil, err
		}

		info, err := c.decodeInfo(way.GetInfo())
		if err != nil {
			return nil, err
		}

		entities[i] = &model.Way{
			ID:      model.ID(way.GetId()),
			Tags:    tags,
			NodeIDs: nodeIDs,
			Info:    info,
		}
	}

	return entities, nil
}

func (c *blockContext) decodeRelations(relations []*pb.Relation) ([]model.Entity, error) {
	entities := make([]model.Entity, len(relations))

	for i, rel := range relations {
		tags, err := c.decodeTags(rel.GetKeys(), rel.GetVals())
		if err != nil {
			return nil, err
		}

		info, err := c.decodeInfo(rel.GetInfo())
		if err != nil {
			return nil, err
		}

		members, err := c.decodeMembers(rel)
		if err != nil {
			return nil, err
		}

		entities[i] = &model.Relation{
			ID:      model.ID(rel.GetId()),
			Tags:    tags,
			Info:    info,
			Members: members,
		}
	}

	return entities, nil
}

func (c *blockContext) decodeMembers(rel *pb.Relation) ([]model.Member, error) {
	memids := rel.GetMemids()
	memtypes := rel.GetTypes()
	memroles := rel.GetRolesSid()

	if len(memtypes) != len(memids) || len(memroles) != len(memids) {
		return nil, fmt.Errorf("%w: relation member array length mismatch", ErrMalformedBlock)
	}

	members := make([]model.Member, len(memids))

	var memid int64

	for i := range memids {
		memid += memids[i]

		mtype, err := decodeMemberType(memtypes[i])
		if err != nil {
			return nil, err
		}

		role, err := c.str(int64(memroles[i]))
		if err != nil {
			return nil, err
		}

		members[i] = model.Member{
			ID:   model.ID(memid),
			Type: mtype,
			Role: role,
		}
	}

	return members, nil
}

func (c *blockContext) decodeTags(keyIDs, valIDs []uint32) (map[string]string, error) {
	if len(keyIDs) != len(valIDs) {
		return nil, fmt.Errorf("%w: keys/vals array length mismatch", ErrMalformedBlock)
	}

	tags := make(map[string]string, len(keyIDs))

	for i, keyID := range keyIDs {
		k, err := c.str(int64(keyID))
		if err != nil {
			return nil, err
		}

		v, err := c.str(int64(valIDs[i]))
		if err != nil {
			return nil, err
		}

		tags[k] = v
	}

	return tags, nil
}

func (c *blockContext) decodeInfo(info *pb.Info) (*model.Info, error) {
	i := &model.Info{Visible: true}
	if info != nil {
		i.Version = info.GetVersion()
		i.Timestamp = toTimestamp(c.dateGranularity, info.GetTimestamp())
		i.Changeset = info.GetChangeset()
		i.UID = model.UID(info.GetUid())

		user, err := c.str(int64(info.GetUserSid()))
		if err != nil {
			return nil, err
		}

		i.User = user

		if info.Visible != nil {
			i.Visible = info.GetVisible()
		}
	}

	return i, nil
}

func (c *blockContext) newDenseInfoContext(di *pb.DenseInfo) *denseInfoContext {
	uids := make([]model.UID, len(di.GetUid()))
	for i, uid := range di.GetUid() {
		uids[i] = model.UID(uid)
	}

	dic := &denseInfoContext{
		dateGranularity: c.dateGranularity,
		strings:         c.strings,
		versions:        di.GetVersion(),
		uids:            uids,
		timestamps:      di.GetTimestamp(),
		changesets:      di.GetChangeset(),
		userSids:        di.GetUserSid(),
	}

	visibilities := di.GetVisible()
	if len(visibilities) > 0 {
		dic.visibilities = visibilities
	}

	return dic
}

type denseInfoContext struct {
	version   int32
	timestamp int64
	changeset int64
	uid       model.UID
	userSid   int32

	dateGranularity int32
	strings         []string
	versions        []int32
	uids            []model.UID
	timestamps      []int64
	changesets      []int64
	userSids        []int32
	visibilities    []bool
}

// decodeInfo advances the independent per-field delta state and returns the
// info for dense node i. Returns nil, nil when denseinfo was absent.
func (dic *denseInfoContext) decodeInfo(i int) (*model.Info, error) {
	if len(dic.versions) == 0 {
		return nil, nil
	}

	dic.version += dic.versions[i]
	dic.uid += dic.uids[i]
	dic.timestamp += dic.timestamps[i]
	dic.changeset += dic.changesets[i]
	dic.userSid += dic.userSids[i]

	user := ""
	if dic.userSid >= 0 && int(dic.userSid) < len(dic.strings) {
		user = dic.strings[dic.userSid]
	} else {
		return nil, fmt.Errorf("%w: dense info user_sid %d out of range [0,%d)", ErrMalformedBlock, dic.userSid, len(dic.strings))
	}

	info := &model.Info{
		Version:   dic.version,
		UID:       dic.uid,
		Timestamp: toTimestamp(dic.dateGranularity, dic.timestamp),
		Changeset: dic.changeset,
		User:      user,
		Visible:   true,
	}

	if dic.visibilities != nil {
		info.Visible = dic.visibilities[i]
	}

	return info, nil
}

type tagsContext struct {
	strings []string
	i       int
	keyVals []int32
}

func (c *blockContext) newTagsContext(keyVals []int32) *tagsContext {
	tc := &tagsContext{strings: c.strings}

	if len(keyVals) != 0 {
		tc.keyVals = keyVals
	}

	return tc
}

func (tic *tagsContext) decodeTags() (map[string]string, error) {
	if tic.keyVals == nil {
		return map[string]string{}, nil
	}

	tags := make(map[string]string)
	i := tic.i

	for tic.keyVals[i] > 0 {
		k, err := tic.str(tic.keyVals[i])
		if err != nil {
			return nil, err
		}

		v, err := tic.str(tic.keyVals[i+1])
		if err != nil {
			return nil, err
		}

		tags[k] = v
		i += 2
	}

	tic.i = i + 1

	return tags, nil
}

func (tic *tagsContext) str(idx int32) (string, error) {
	if idx < 0 || int(idx) >= len(tic.strings) {
		return "", fmt.Errorf("%w: dense tag string index %d out of range [0,%d)", ErrMalformedBlock, idx, len(tic.strings))
	}

	return tic.strings[idx], nil
}

// decodeMemberType converts protobuf enum Relation_MemberType to an EntityType.
func decodeMemberType(mt pb.Relation_MemberType) (model.EntityType, error) {
	switch mt {
	case pb.Relation_NODE:
		return model.NODE, nil
	case pb.Relation_WAY:
		return model.WAY, nil
	case pb.Relation_RELATION:
		return model.RELATION, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized member type %d", ErrMalformedBlock, mt)
	}
}

// toTimestamp converts a timestamp with a specific granularity, in units of
// milliseconds, to a UTC timestamp of type Time.
func toTimestamp(granularity int32, timestamp int64) time.Time {
	return time.UnixMilli(timestamp * int64(granularity)).UTC()
}
