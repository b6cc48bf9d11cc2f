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

	"github.com/willtemperley/gopbf/internal/pb"
	"github.com/willtemperley/gopbf/model"
)

// DateGranularityMs is the fixed granularity, in milliseconds, used to scale
// the header's osmosis_replication_timestamp field.
const DateGranularityMs = 1000

// DecodeHeader unpacks an OSMHeader blob into a model.Header. The header
// block's bounding box, if present, uses a fixed zero offset and unit
// granularity per the file format, independent of any PrimitiveBlock's
// granularity/offset fields.
func DecodeHeader(raw []byte) (*model.Header, error) {
	hb := &pb.HeaderBlock{}
	if err := hb.Unmarshal(raw); err != nil {
		return nil, fmt.Errorf("%w: unable to unmarshal header block: %w", ErrMalformedBlock, err)
	}

	h := &model.Header{
		RequiredFeatures:                 hb.GetRequiredFeatures(),
		OptionalFeatures:                 hb.GetOptionalFeatures(),
		WritingProgram:                   hb.GetWritingprogram(),
		Source:                           hb.GetSource(),
		OsmosisReplicationTimestamp:      toTimestamp(DateGranularityMs, hb.GetOsmosisReplicationTimestamp()),
		OsmosisReplicationSequenceNumber: hb.GetOsmosisReplicationSequenceNumber(),
		OsmosisReplicationBaseURL:        hb.GetOsmosisReplicationBaseUrl(),
	}

	if bbox := hb.GetBbox(); bbox != nil {
		h.BoundingBox = &model.BoundingBox{
			Top:    model.ToDegrees(0, 1, bbox.GetTop()),
			Left:   model.ToDegrees(0, 1, bbox.GetLeft()),
			Bottom: model.ToDegrees(0, 1, bbox.GetBottom()),
			Right:  model.ToDegrees(0, 1, bbox.GetRight()),
		}
	}

	return h, nil
}
