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
	"encoding/binary"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willtemperley/gopbf/model"
	pbf "github.com/willtemperley/gopbf"
)

func encodeSamplePBF(t *testing.T, nodes int) []byte {
	t.Helper()

	var buf bytes.Buffer

	enc, err := pbf.NewEncoder(&buf, pbf.WithWritingProgram("gopbf-parser-test"))
	require.NoError(t, err)

	for i := 0; i < nodes; i++ {
		lat := model.Degrees(float64(i) * 0.001)
		lon := model.Degrees(float64(i) * -0.001)
		require.NoError(t, enc.Encode(&model.Node{ID: model.ID(i + 1), Lat: lat, Lon: lon}))
	}

	require.NoError(t, enc.Encode(&model.Way{ID: 1, NodeIDs: []model.ID{1, 2}}))
	require.NoError(t, enc.Encode(&model.Relation{ID: 1}))

	require.NoError(t, enc.Close())

	return buf.Bytes()
}

func TestParserRoundTrip(t *testing.T) {
	data := encodeSamplePBF(t, 50)

	var (
		mu                         sync.Mutex
		nodes, ways, relations     int
		headerCalls, completeCalls int
		header                     *model.Header
	)

	p := pbf.NewParser(bytes.NewReader(data), 4).
		OnHeader(func(h *model.Header) {
			mu.Lock()
			defer mu.Unlock()
			headerCalls++
			header = h
		}).
		OnNode(func(*model.Node) {
			mu.Lock()
			defer mu.Unlock()
			nodes++
		}).
		OnWay(func(*model.Way) {
			mu.Lock()
			defer mu.Unlock()
			ways++
		}).
		OnRelation(func(*model.Relation) {
			mu.Lock()
			defer mu.Unlock()
			relations++
		}).
		OnComplete(func() {
			mu.Lock()
			defer mu.Unlock()
			completeCalls++
		})

	assert.Equal(t, pbf.Idle, p.State())

	require.NoError(t, p.Parse(context.Background()))

	assert.Equal(t, 1, headerCalls)
	assert.Equal(t, "gopbf-parser-test", header.WritingProgram)
	assert.Equal(t, 50, nodes)
	assert.Equal(t, 1, ways)
	assert.Equal(t, 1, relations)
	assert.Equal(t, 1, completeCalls)
	assert.Equal(t, pbf.Idle, p.State())
}

func TestParserShortCircuitsWithNoEntitySinks(t *testing.T) {
	data := encodeSamplePBF(t, 50)

	var headerCalls int

	p := pbf.NewParser(bytes.NewReader(data), 2).
		OnHeader(func(*model.Header) { headerCalls++ })

	require.NoError(t, p.Parse(context.Background()))
	assert.Equal(t, 1, headerCalls)
}

func TestParserBusyOnReentry(t *testing.T) {
	data := encodeSamplePBF(t, 1)

	p := pbf.NewParser(bytes.NewReader(data), 1)

	block := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once
	p.OnNode(func(*model.Node) {
		once.Do(func() { close(entered) })
		<-block
	})

	done := make(chan error, 1)
	go func() { done <- p.Parse(context.Background()) }()

	<-entered

	assert.ErrorIs(t, p.Parse(context.Background()), pbf.ErrParserBusy)

	close(block)
	require.NoError(t, <-done)
}

// TestParseReportsMalformedFrameWithoutWorkerFailed checks that a failure
// raised synchronously in the read loop, before any task reaches a worker,
// is not misreported as ErrWorkerFailed.
func TestParseReportsMalformedFrameWithoutWorkerFailed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, uint32(10)))
	buf.WriteString("short")

	p := pbf.NewParser(&buf, 2)

	err := p.Parse(context.Background())
	assert.ErrorIs(t, err, pbf.ErrMalformedFrame)
	assert.NotErrorIs(t, err, pbf.ErrWorkerFailed)
}

// TestParseBusyDuringDrain checks that a second Parse is rejected while the
// first call has finished reading but is still waiting on in-flight workers.
func TestParseBusyDuringDrain(t *testing.T) {
	data := encodeSamplePBF(t, 1)

	// Four slots cover the header blob and all three data blobs, so the
	// reader can submit every blob and reach Draining while the node sink
	// still holds its slot.
	p := pbf.NewParser(bytes.NewReader(data), 4)

	block := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once
	p.OnNode(func(*model.Node) {
		once.Do(func() { close(entered) })
		<-block
	})

	done := make(chan error, 1)
	go func() { done <- p.Parse(context.Background()) }()

	<-entered

	require.Eventually(t, func() bool {
		return p.State() == pbf.Draining
	}, time.Second, time.Millisecond, "reader loop never reached Draining")

	assert.ErrorIs(t, p.Parse(context.Background()), pbf.ErrParserBusy)

	close(block)
	require.NoError(t, <-done)
}

// TestShardedParserUnionCoversEveryDataBlock checks that every data block
// lands in exactly one shard: running every shard of a partitioning and
// unioning what each one reports reproduces the unsharded node set exactly,
// regardless of how many data blocks the stream happens to contain.
func TestShardedParserUnionCoversEveryDataBlock(t *testing.T) {
	const nodeCount = 100

	data := encodeSamplePBF(t, nodeCount)

	const partitions = 3

	var mu sync.Mutex
	seen := map[model.ID]bool{}

	for shard := 0; shard < partitions; shard++ {
		p := pbf.NewShardedParser(bytes.NewReader(data), 2, partitions, shard)
		p.OnNode(func(n *model.Node) {
			mu.Lock()
			defer mu.Unlock()
			seen[n.ID] = true
		})

		require.NoError(t, p.Parse(context.Background()))
	}

	assert.Len(t, seen, nodeCount)
}
