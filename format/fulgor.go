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

package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alnpack/alnpack/aln"
)

// A FulgorReader parses Fulgor pseudoalignment output: one
// tab-separated line per read holding the query name, the number of
// hits, and the reference IDs the read aligns to.
type FulgorReader struct {
	targets []string
}

// NewFulgorReader returns a Fulgor reading adapter over the given
// target name list.
func NewFulgorReader(targets []string) *FulgorReader {
	return &FulgorReader{targets: targets}
}

// Targets implements the method of the aln.Adapter interface.
func (r *FulgorReader) Targets() []string { return r.targets }

// HeaderLines implements the method of the aln.Adapter interface.
func (r *FulgorReader) HeaderLines() int { return 0 }

// MergeRows implements the method of the aln.Adapter interface.
func (r *FulgorReader) MergeRows() bool { return false }

// Parse implements the method of the aln.Adapter interface.
func (r *FulgorReader) Parse(line string, lineno int) (*aln.Record, error) {
	if skipBlank(line) {
		return nil, nil
	}
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return nil, &ParseError{Format: Fulgor, Line: lineno, Msg: "expected a query name and a hit count"}
	}
	count, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return nil, &ParseError{Format: Fulgor, Line: lineno, Msg: fmt.Sprintf("invalid hit count %v", fields[1])}
	}
	if uint64(len(fields)-2) != count {
		return nil, &ParseError{Format: Fulgor, Line: lineno, Msg: fmt.Sprintf("hit count %v does not match %v reference IDs", count, len(fields)-2)}
	}
	rec := &aln.Record{Name: fields[0]}
	for _, field := range fields[2:] {
		id, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return nil, &ParseError{Format: Fulgor, Line: lineno, Msg: fmt.Sprintf("invalid reference ID %v", field)}
		}
		if id >= uint64(len(r.targets)) {
			return nil, &ParseError{Format: Fulgor, Line: lineno, Msg: fmt.Sprintf("reference ID %v exceeds the target list size %v", id, len(r.targets))}
		}
		rec.Targets = append(rec.Targets, r.targets[id])
	}
	return rec, nil
}

// A FulgorWriter formats canonical records as Fulgor pseudoalignment
// lines.
type FulgorWriter struct {
	index map[string]uint32
}

// NewFulgorWriter returns a Fulgor writing adapter over the given
// target name list.
func NewFulgorWriter(targets []string) *FulgorWriter {
	return &FulgorWriter{index: targetIndex(targets)}
}

// Header implements the method of the aln.Formatter interface. The
// Fulgor format has no header section.
func (w *FulgorWriter) Header() ([]byte, error) { return nil, nil }

// Format implements the method of the aln.Formatter interface.
func (w *FulgorWriter) Format(rec *aln.Record, buf []byte) ([]byte, error) {
	if rec.Name == "" {
		return nil, errors.New("record carries no query name, required by the fulgor format")
	}
	ids, err := recordIDs(w.index, rec)
	if err != nil {
		return nil, err
	}
	buf = append(buf, rec.Name...)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, int64(len(ids)), 10)
	for _, id := range ids {
		buf = append(buf, '\t')
		buf = strconv.AppendUint(buf, uint64(id), 10)
	}
	return append(buf, '\n'), nil
}
