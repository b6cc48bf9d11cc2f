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

// Package pbf implements a parallel reader and writer for the OpenStreetMap
// PBF planet-file format.
package pbf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/willtemperley/gopbf/internal/core"
	"github.com/willtemperley/gopbf/internal/decoder"
	"github.com/willtemperley/gopbf/internal/pb"
	"github.com/willtemperley/gopbf/model"
)

// State is one of the five states a Parser occupies across a Parse call.
type State int

const (
	Idle State = iota
	Running
	Draining
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Draining:
		return "Draining"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Parser drives the blob framer and a bounded worker pool against a single
// input stream, dispatching decoded entities to the configured sinks. A
// Parser is reusable across calls to Parse, but not reentrant: a second
// concurrent Parse on the same Parser fails with ErrParserBusy.
type Parser struct {
	stream     io.Reader
	workers    int
	partitions int
	shard      int

	onNode      func(*model.Node)
	onWay       func(*model.Way)
	onRelation  func(*model.Relation)
	onChangeset func(*model.Changeset)
	onHeader    func(*model.Header)
	onBoundBox  func(*model.BoundingBox)
	onComplete  func()

	mu    sync.Mutex
	state State
}

// NewParser creates a Parser over stream with a worker pool of the given
// size and no sharding (equivalent to partitions=1, shard=0).
func NewParser(stream io.Reader, workers int) *Parser {
	return newParser(stream, workers, 1, 0)
}

// NewShardedParser creates a Parser that only processes OSMData blobs whose
// index modulo partitions equals shard; OSMHeader blobs are always
// processed regardless of sharding.
func NewShardedParser(stream io.Reader, workers, partitions, shard int) *Parser {
	return newParser(stream, workers, partitions, shard)
}

func newParser(stream io.Reader, workers, partitions, shard int) *Parser {
	if workers < 1 {
		workers = 1
	}

	if partitions < 1 {
		partitions = 1
	}

	return &Parser{
		stream:     stream,
		workers:    workers,
		partitions: partitions,
		shard:      shard,
		state:      Idle,
	}
}

// State reports the Parser's current state.
func (p *Parser) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

func (p *Parser) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// tryStart atomically transitions Idle/Done/Failed to Running, and reports
// whether the transition happened. Draining also rejects a second Parse:
// the prior run is still consuming p.stream in wg.Wait, and starting a new
// run concurrently would read the same stream from two goroutines at once.
func (p *Parser) tryStart() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Idle && p.state != Done && p.state != Failed {
		return false
	}

	p.state = Running

	return true
}

// Parse blocks until stream is fully consumed (or a failure occurs),
// dispatching decoded entities to the configured sinks. When no entity sink
// is registered, it stops at the first OSMData blob after the header. If ctx
// is cancelled, Parse returns ctx's error after in-flight tasks finish and
// does not invoke the completion callback. Only one Parse call may run at a
// time for a given Parser.
func (p *Parser) Parse(ctx context.Context) error {
	if !p.tryStart() {
		return core.ErrParserBusy
	}

	err, fromWorker := p.run(ctx)

	if err != nil {
		p.setState(Failed)
		p.setState(Idle)

		if fromWorker {
			return fmt.Errorf("%w: %w", core.ErrWorkerFailed, err)
		}

		return err
	}

	p.setState(Done)

	if p.onComplete != nil {
		p.onComplete()
	}

	p.setState(Idle)

	return nil
}

// run implements the Running state's algorithm: a sequential read loop that
// submits decode tasks to a bounded pool, using a buffered channel of
// capacity workers as the slot semaphore described in the scheduler design.
// It reports the first failure alongside whether that failure came from a
// submitted task (decompression, block decoding, sink dispatch) as opposed
// to the read loop itself (framing), so Parse can apply ErrWorkerFailed only
// to the former.
func (p *Parser) run(ctx context.Context) (error, bool) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, p.workers)

	var wg sync.WaitGroup

	var errMu sync.Mutex

	var firstErr error
	var firstErrFromWorker bool

	fail := func(err error, fromWorker bool) {
		errMu.Lock()
		defer errMu.Unlock()

		if firstErr == nil {
			firstErr = err
			firstErrFromWorker = fromWorker
			cancel()
		}
	}

	submit := func(task func() error) {
		select {
		case sem <- struct{}{}:
		case <-runCtx.Done():
			return
		}

		wg.Add(1)

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := task(); err != nil {
				fail(err, true)
			}
		}()
	}

	anySink := p.onNode != nil || p.onWay != nil || p.onRelation != nil || p.onChangeset != nil

	headerSeen := false
	dataBlockCounter := 0

loop:
	for {
		select {
		case <-runCtx.Done():
			break loop
		default:
		}

		frame, err := decoder.ReadFrame(p.stream)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fail(err, false)
			}

			break loop
		}

		switch frame.Type {
		case decoder.BlobTypeHeader:
			headerSeen = true

			blob, err := decoder.ReadPayload(p.stream, frame.Datasize)
			if err != nil {
				fail(err, false)

				break loop
			}

			submit(func() error { return p.handleHeader(blob) })

		case decoder.BlobTypeData:
			if !anySink && headerSeen {
				break loop
			}

			shard := dataBlockCounter % p.partitions
			dataBlockCounter++

			if shard != p.shard {
				if err := decoder.SkipPayload(p.stream, frame.Datasize); err != nil {
					fail(err, false)

					break loop
				}

				continue loop
			}

			if !headerSeen {
				slog.Warn("data blob observed before header, skipping", "error", core.ErrSequenceViolation)

				if err := decoder.SkipPayload(p.stream, frame.Datasize); err != nil {
					fail(err, false)

					break loop
				}

				continue loop
			}

			blob, err := decoder.ReadPayload(p.stream, frame.Datasize)
			if err != nil {
				fail(err, false)

				break loop
			}

			submit(func() error { return p.handleData(blob) })

		default:
			if err := decoder.SkipPayload(p.stream, frame.Datasize); err != nil {
				fail(err, false)

				break loop
			}
		}
	}

	p.setState(Draining)
	wg.Wait()

	if firstErr == nil && ctx.Err() != nil {
		return ctx.Err(), false
	}

	return firstErr, firstErrFromWorker
}

func (p *Parser) handleHeader(blob *pb.Blob) error {
	h, err := decoder.DecodeHeaderBlob(blob)
	if err != nil {
		return err
	}

	if p.onHeader != nil {
		p.onHeader(h)
	}

	if h.BoundingBox != nil && p.onBoundBox != nil {
		p.onBoundBox(h.BoundingBox)
	}

	return nil
}

func (p *Parser) handleData(blob *pb.Blob) error {
	entities, err := decoder.DecodeEntities(blob)
	if err != nil {
		return err
	}

	for _, e := range entities {
		switch v := e.(type) {
		case *model.Node:
			if p.onNode != nil {
				p.onNode(v)
			}
		case *model.Way:
			if p.onWay != nil {
				p.onWay(v)
			}
		case *model.Relation:
			if p.onRelation != nil {
				p.onRelation(v)
			}
		case model.Changeset:
			if p.onChangeset != nil {
				c := v
				p.onChangeset(&c)
			}
		default:
			return fmt.Errorf("%w: unrecognized entity type %T", core.ErrMalformedBlock, e)
		}
	}

	return nil
}
