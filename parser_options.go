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

import "github.com/willtemperley/gopbf/model"

// OnNode registers a sink for decoded Node entities. If this sink is left
// unset along with OnWay, OnRelation and OnChangeset, Parse stops as soon as
// it reaches the first OSMData blob after the header instead of scanning the
// rest of the stream.
func (p *Parser) OnNode(fn func(*model.Node)) *Parser {
	p.onNode = fn

	return p
}

// OnWay registers a sink for decoded Way entities.
func (p *Parser) OnWay(fn func(*model.Way)) *Parser {
	p.onWay = fn

	return p
}

// OnRelation registers a sink for decoded Relation entities.
func (p *Parser) OnRelation(fn func(*model.Relation)) *Parser {
	p.onRelation = fn

	return p
}

// OnChangeset registers a sink for decoded Changeset entities.
func (p *Parser) OnChangeset(fn func(*model.Changeset)) *Parser {
	p.onChangeset = fn

	return p
}

// OnHeader registers a sink invoked once with the file's header metadata.
func (p *Parser) OnHeader(fn func(*model.Header)) *Parser {
	p.onHeader = fn

	return p
}

// OnBoundBox registers a sink invoked with the header's bounding box, if
// present. Never called when the header carries no bbox.
func (p *Parser) OnBoundBox(fn func(*model.BoundingBox)) *Parser {
	p.onBoundBox = fn

	return p
}

// OnComplete registers a callback invoked exactly once after every prior
// sink invocation, only on a successful Parse.
func (p *Parser) OnComplete(fn func()) *Parser {
	p.onComplete = fn

	return p
}
