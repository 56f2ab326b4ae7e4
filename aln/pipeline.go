// alnpack: a tool for compressing and converting pseudoalignment data.
// Copyright (c) 2025, 2026 the alnpack authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License along with this program. If not, see
// <https://github.com/alnpack/alnpack/blob/master/LICENSE.txt>.

package aln

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/exascience/pargo/pipeline"

	"github.com/alnpack/alnpack/internal"
)

// parseBatchSize is fixed so that parallel parse stages can compute
// the 1-based line number of every record from the batch serial
// number.
const parseBatchSize = 512

// parseLines feeds the plaintext body lines through a pargo pipeline:
// lines are parsed into canonical records on parallel workers, then
// handed to sink one at a time, in original row order. The sink is
// the single writer of whatever it appends to.
//
// When the adapter merges rows, consecutive records with the same
// query name are combined into one record before reaching the sink.
func parseLines(input *bufio.Reader, adapter Adapter, sink func(*Record) error) error {
	headerLines := adapter.HeaderLines()
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(input))
	p.SetVariableBatchSize(parseBatchSize, parseBatchSize)
	p.Add(pipeline.LimitedPar(0, func(p *pipeline.Pipeline, _ pipeline.NodeKind, _ *int) (receiver pipeline.Receiver, _ pipeline.Finalizer) {
		receiver = func(serial int, data interface{}) interface{} {
			lines := data.([]string)
			records := make([]*Record, 0, len(lines))
			for index, line := range lines {
				rec, err := adapter.Parse(line, headerLines+serial*parseBatchSize+index+1)
				if err != nil {
					p.SetErr(err)
					return records
				}
				if rec != nil {
					records = append(records, rec)
				}
			}
			return records
		}
		return
	}))
	var pending *Record
	flush := func() {
		if pending != nil {
			if err := sink(pending); err != nil {
				p.SetErr(err)
			}
			pending = nil
		}
	}
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		for _, rec := range data.([]*Record) {
			if !adapter.MergeRows() {
				if err := sink(rec); err != nil {
					p.SetErr(err)
					return data
				}
				continue
			}
			if pending != nil && pending.Name == rec.Name {
				pending.Targets = append(pending.Targets, rec.Targets...)
				continue
			}
			flush()
			pending = rec
		}
		return data
	}), pipeline.Finalize(flush)))
	p.Run()
	return p.Err()
}

// EncodeRecords builds a container from the canonical record stream
// of a plaintext adapter. Reference names declared by the adapter's
// header are registered before the first row, fixing the universe up
// front; names that only appear in rows extend the universe
// mid-stream, which both codec encodings tolerate because they carry
// no trailing zeros.
func EncodeRecords(input *bufio.Reader, adapter Adapter, queryName string) (*Container, error) {
	ctr := NewContainer()
	ctr.QueryName = queryName
	for _, name := range adapter.Targets() {
		if _, err := ctr.Dict.Register(name); err != nil {
			return nil, err
		}
	}
	allIDs := true
	anyName := false
	var positions []uint32
	err := parseLines(input, adapter, func(rec *Record) error {
		positions = positions[:0]
		for _, name := range rec.Targets {
			id, err := ctr.Dict.Register(name)
			if err != nil {
				return err
			}
			positions = append(positions, id)
		}
		sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })
		positions = dedupeSorted(positions)
		row := len(ctr.Rows)
		ctr.Rows = append(ctr.Rows, ctr.Classes.Insert(positions))
		if rec.HasID {
			ctr.RowIDs = append(ctr.RowIDs, rec.RowID)
		} else {
			allIDs = false
			ctr.RowIDs = append(ctr.RowIDs, uint32(row))
		}
		if rec.Name != "" {
			anyName = true
		}
		ctr.RowNames = append(ctr.RowNames, rec.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !allIDs {
		ctr.RowIDs = nil
	}
	if !anyName {
		ctr.RowNames = nil
	}
	return ctr, nil
}

func dedupeSorted(positions []uint32) []uint32 {
	out := positions[:0]
	for i, p := range positions {
		if i == 0 || p != positions[i-1] {
			out = append(out, p)
		}
	}
	return out
}

// rowRange is one batch of container rows flowing through the decode
// pipeline.
type rowRange struct {
	start, count int
}

// rowSource feeds row batches of a container into a pargo pipeline.
type rowSource struct {
	ctr   *Container
	pos   int
	batch rowRange
}

// Err implements the method of the pipeline.Source interface.
func (src *rowSource) Err() error { return nil }

// Prepare implements the method of the pipeline.Source interface.
func (src *rowSource) Prepare(_ context.Context) int {
	return src.ctr.RowCount()
}

// Fetch implements the method of the pipeline.Source interface.
func (src *rowSource) Fetch(size int) int {
	n := src.ctr.RowCount() - src.pos
	if n > size {
		n = size
	}
	src.batch = rowRange{start: src.pos, count: n}
	src.pos += n
	return n
}

// Data implements the method of the pipeline.Source interface.
func (src *rowSource) Data() interface{} {
	return src.batch
}

// DecodeRecords streams the rows of a container through the given
// formatter to out: the reverse of EncodeRecords. Row resolution and
// formatting run on parallel workers; writing is strictly ordered.
func DecodeRecords(ctr *Container, formatter Formatter, out io.Writer) error {
	header, err := formatter.Header()
	if err != nil {
		return err
	}
	if len(header) > 0 {
		if _, err := out.Write(header); err != nil {
			return err
		}
	}
	var p pipeline.Pipeline
	p.Source(&rowSource{ctr: ctr})
	p.Add(pipeline.LimitedPar(0, func(p *pipeline.Pipeline, _ pipeline.NodeKind, _ *int) (receiver pipeline.Receiver, _ pipeline.Finalizer) {
		receiver = func(_ int, data interface{}) interface{} {
			rows := data.(rowRange)
			buf := internal.ReserveByteBuffer()
			var err error
			for i := rows.start; i < rows.start+rows.count; i++ {
				if buf, err = formatter.Format(ctr.Record(i), buf); err != nil {
					p.SetErr(fmt.Errorf("%v, while formatting row %v", err, i))
					return buf
				}
			}
			return buf
		}
		return
	}))
	p.Add(pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
		buf := data.([]byte)
		if _, err := out.Write(buf); err != nil {
			p.SetErr(err)
		}
		internal.ReleaseByteBuffer(buf)
		return nil
	})))
	p.Run()
	return p.Err()
}

// ConvertRecords converts between two plaintext formats without
// building a container: the adapter's canonical record stream is fed
// directly into the formatter.
func ConvertRecords(input *bufio.Reader, adapter Adapter, formatter Formatter, out io.Writer) error {
	header, err := formatter.Header()
	if err != nil {
		return err
	}
	if len(header) > 0 {
		if _, err := out.Write(header); err != nil {
			return err
		}
	}
	rows := 0
	var buf []byte
	return parseLines(input, adapter, func(rec *Record) error {
		if !rec.HasID {
			rec.RowID = uint32(rows)
			rec.HasID = true
		}
		rows++
		var err error
		if buf, err = formatter.Format(rec, buf[:0]); err != nil {
			return err
		}
		_, err = out.Write(buf)
		return err
	})
}
