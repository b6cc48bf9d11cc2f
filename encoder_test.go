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

package pbf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willtemperley/gopbf/internal/encoder"
	"github.com/willtemperley/gopbf/model"
	pbf "github.com/willtemperley/gopbf"
)

func TestEncoderRoundTripsThroughParser(t *testing.T) {
	var buf bytes.Buffer

	enc, err := pbf.NewEncoder(&buf,
		pbf.WithWritingProgram("gopbf-encoder-test"),
		pbf.WithCompression(encoder.ZLIB),
		pbf.WithRequiredFeatures("OsmSchema-V0.6", "DenseNodes"),
	)
	require.NoError(t, err)

	nodes := []*model.Node{
		{ID: 1, Lat: 51.5, Lon: -0.1},
		{ID: 2, Lat: 51.6, Lon: -0.2},
		{ID: 3, Lat: 51.4, Lon: 0.1},
	}

	for _, n := range nodes {
		require.NoError(t, enc.Encode(n))
	}

	require.NoError(t, enc.Encode(&model.Way{ID: 10, NodeIDs: []model.ID{1, 2, 3}}))
	require.NoError(t, enc.Close())

	var (
		gotNodes []*model.Node
		gotWays  []*model.Way
		header   *model.Header
	)

	p := pbf.NewParser(bytes.NewReader(buf.Bytes()), 2).
		OnHeader(func(h *model.Header) { header = h }).
		OnNode(func(n *model.Node) { gotNodes = append(gotNodes, n) }).
		OnWay(func(w *model.Way) { gotWays = append(gotWays, w) })

	require.NoError(t, p.Parse(context.Background()))

	assert.Equal(t, "gopbf-encoder-test", header.WritingProgram)
	assert.Equal(t, []string{"OsmSchema-V0.6", "DenseNodes"}, header.RequiredFeatures)
	require.Len(t, gotNodes, 3)
	require.Len(t, gotWays, 1)

	for i, n := range nodes {
		assert.Equal(t, n.ID, gotNodes[i].ID)
		assert.InDelta(t, float64(n.Lat), float64(gotNodes[i].Lat), 1e-6)
		assert.InDelta(t, float64(n.Lon), float64(gotNodes[i].Lon), 1e-6)
	}

	assert.Equal(t, model.ID(10), gotWays[0].ID)
	assert.Equal(t, []model.ID{1, 2, 3}, gotWays[0].NodeIDs)

	assert.True(t, header.BoundingBox.Contains(51.5, -0.1))
	assert.True(t, header.BoundingBox.Contains(51.4, 0.1))
}

func TestEncoderRejectsWritesAfterClose(t *testing.T) {
	var buf bytes.Buffer

	enc, err := pbf.NewEncoder(&buf)
	require.NoError(t, err)

	require.NoError(t, enc.Encode(&model.Node{ID: 1, Lat: 1, Lon: 1}))
	require.NoError(t, enc.Close())

	assert.ErrorIs(t, enc.Encode(&model.Node{ID: 2, Lat: 2, Lon: 2}), pbf.ErrConsumed)
}

func TestNewEncoderFailsOnInvalidStorePath(t *testing.T) {
	var buf bytes.Buffer

	_, err := pbf.NewEncoder(&buf, pbf.WithStorePath("/nonexistent/path/that/does/not/exist"))
	assert.Error(t, err)
}
