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

package info

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willtemperley/gopbf/model"
	pbf "github.com/willtemperley/gopbf"
)

func encodeSample(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer

	enc, err := pbf.NewEncoder(&buf, pbf.WithWritingProgram("gopbf-test"))
	require.NoError(t, err)

	require.NoError(t, enc.Encode(&model.Node{ID: 1, Lat: 51.5, Lon: -0.1}))
	require.NoError(t, enc.Encode(&model.Node{ID: 2, Lat: 51.6, Lon: -0.2}))
	require.NoError(t, enc.Encode(&model.Way{ID: 10, NodeIDs: []model.ID{1, 2}}))
	require.NoError(t, enc.Encode(&model.Relation{ID: 100}))
	require.NoError(t, enc.Encode(model.Changeset{ID: 1000}))

	require.NoError(t, enc.Close())

	return buf.Bytes()
}

func TestRunInfo(t *testing.T) {
	data := encodeSample(t)

	info, err := runInfo(bytes.NewReader(data), 2, false)
	require.NoError(t, err)

	assert.Equal(t, "gopbf-test", info.WritingProgram)
	assert.Equal(t, int64(0), info.NodeCount)
	assert.Equal(t, int64(0), info.WayCount)
	assert.Equal(t, int64(0), info.RelationCount)
	assert.Equal(t, int64(0), info.ChangesetCount)
}

func TestRunInfoExtended(t *testing.T) {
	data := encodeSample(t)

	info, err := runInfo(bytes.NewReader(data), 2, true)
	require.NoError(t, err)

	assert.Equal(t, "gopbf-test", info.WritingProgram)
	assert.Equal(t, int64(2), info.NodeCount)
	assert.Equal(t, int64(1), info.WayCount)
	assert.Equal(t, int64(1), info.RelationCount)
	assert.Equal(t, int64(1), info.ChangesetCount)
	assert.True(t, info.BoundingBox.Contains(51.5, -0.1))
	assert.True(t, info.BoundingBox.Contains(51.6, -0.2))
}
