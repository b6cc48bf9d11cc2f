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

package pbf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/destel/rill"

	"github.com/willtemperley/gopbf/internal/encoder"
	"github.com/willtemperley/gopbf/model"
)

const (
	numConsumers = 2

	singleCPU = 5
)

// ErrConsumed is returned by EncodeBatch (and its wrapper Encode) once an
// Encoder has been Closed; writing through a closed Encoder is undefined
// per the encoder's terminal-write contract, so it is rejected instead.
var ErrConsumed = errors.New("pbf: encoder already closed")

// Encoder encodes OpenStreetMap entities to PBF, streaming them to a
// scratch file while accumulating the header's bounding box, then writing
// the header — with its now-final bounding box — ahead of the entities
// once Close is called.
type Encoder struct {
	Header   model.Header
	Entities chan<- []model.Entity

	cfg  *encoderOptions
	wrtr io.Writer

	close     sync.Once
	closeOnce sync.Once
	closeErr  error

	completed sync.WaitGroup
	closed    sync.WaitGroup
}

// NewEncoder returns a new encoder that writes framed, compressed blobs to
// wrtr as entities arrive on Entities.
func NewEncoder(wrtr io.Writer, opts ...EncoderOption) (*Encoder, error) {
	cfg := defaultEncoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := initializeTempStore(&cfg); err != nil {
		return nil, fmt.Errorf("cannot initialize encoder: %w", err)
	}

	e := &Encoder{
		Header: model.Header{
			BoundingBox:                      model.InitialBoundingBox(),
			RequiredFeatures:                 cfg.requiredFeatures,
			OptionalFeatures:                 cfg.optionalFeatures,
			WritingProgram:                   cfg.writingProgram,
			Source:                           cfg.source,
			OsmosisReplicationTimestamp:      cfg.osmosisReplicationTimestamp,
			OsmosisReplicationSequenceNumber: cfg.osmosisReplicationSequenceNumber,
			OsmosisReplicationBaseURL:        cfg.osmosisReplicationBaseURL,
		},

		cfg:  &cfg,
		wrtr: wrtr,
	}

	entities := make(chan []model.Entity)

	e.Entities = entities

	coalesced := encoder.Coalesce(entities, encoder.EntityLimit)
	inspected, bboxes := encoder.ExtractBoundingBoxes(coalesced)
	encoded := rill.OrderedMap(inspected, singleCPU, encoder.EncodeBatch)
	packed := rill.OrderedMap(encoded, singleCPU, encoder.GenerateBatchPacker(cfg.compression))
	statuses := encoder.SavePacked(cfg.wrtr, packed)

	// writeHeaderAndBody waits for these two consumers to complete.
	e.completed.Add(numConsumers)
	go e.consumeBBoxes(bboxes)
	go e.consumeStatuses(statuses)

	// Close waits for the header and body to be written.
	e.closed.Add(1)
	go e.writeHeaderAndBody()

	return e, nil
}

// Encode writes a single entity.
func (e *Encoder) Encode(entity model.Entity) error {
	return e.EncodeBatch([]model.Entity{entity})
}

// EncodeBatch writes a batch of entities. It returns ErrConsumed if the
// encoder has already been closed.
func (e *Encoder) EncodeBatch(entities []model.Entity) (err error) {
	defer func() {
		if recover() != nil {
			err = ErrConsumed
		}
	}()

	e.Entities <- entities

	return nil
}

// Close finalizes the file: it waits for every in-flight batch to be
// encoded, compressed and written to the scratch store, then writes the
// header — with the bounding box accumulated across every Node seen — to
// wrtr followed by the scratch store's contents. It returns the first
// error encountered while encoding or writing, if any.
func (e *Encoder) Close() error {
	e.close.Do(func() {
		close(e.Entities)
	})

	e.closed.Wait()

	return e.closeErr
}

func (e *Encoder) fail(err error) {
	e.closeOnce.Do(func() {
		e.closeErr = err
	})
}

func (e *Encoder) consumeBBoxes(bboxes <-chan rill.Try[*model.BoundingBox]) {
	defer e.completed.Done()

	for bbox := range bboxes {
		e.Header.BoundingBox.ExpandWithBoundingBox(bbox.Value)
	}
}

func (e *Encoder) consumeStatuses(statuses <-chan rill.Try[struct{}]) {
	defer e.completed.Done()

	for status := range statuses {
		if status.Error != nil {
			slog.Error("encoder: batch failed", "error", status.Error)
			e.fail(status.Error)
		}
	}
}

func (e *Encoder) writeHeaderAndBody() {
	defer e.closed.Done()
	defer func() {
		if err := os.RemoveAll(e.cfg.store); err != nil {
			slog.Error("encoder: error removing temp store", "error", err)
		}
	}()

	e.completed.Wait()

	if e.closeErr != nil {
		return
	}

	if err := e.cfg.wrtr.Sync(); err != nil {
		e.fail(fmt.Errorf("cannot sync scratch store: %w", err))

		return
	}

	if offset, err := e.cfg.wrtr.Seek(0, io.SeekStart); err != nil {
		e.fail(fmt.Errorf("cannot seek to beginning of scratch store: %w", err))

		return
	} else if offset != 0 {
		e.fail(errors.New("cannot seek to beginning of scratch store"))

		return
	}

	if err := encoder.SaveHeader(e.wrtr, e.Header, e.cfg.compression); err != nil {
		e.fail(fmt.Errorf("error writing header: %w", err))

		return
	}

	if _, err := io.Copy(e.wrtr, e.cfg.wrtr); err != nil {
		e.fail(fmt.Errorf("error copying entities file: %w", err))
	}
}
