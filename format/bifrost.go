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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnpack/alnpack/aln"
)

const bifrostNameColumn = "query_name"

// A BifrostReader parses the TSV presence/absence matrix emitted by
// Bifrost query: a header line naming the query-name column and the
// references, then one 0/1 row per query.
type BifrostReader struct {
	targets []string
}

// NewBifrostReader returns a Bifrost reading adapter. The target names
// come from the matrix header, which is consumed from input
// immediately.
func NewBifrostReader(input *bufio.Reader) (*BifrostReader, error) {
	header, err := input.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	fields := strings.Split(strings.TrimRight(header, "\r\n"), "\t")
	if len(fields) < 2 || fields[0] != bifrostNameColumn {
		return nil, &ParseError{Format: Bifrost, Line: 1, Msg: fmt.Sprintf("expected a header starting with %v", bifrostNameColumn)}
	}
	return &BifrostReader{targets: fields[1:]}, nil
}

// Targets implements the method of the aln.Adapter interface.
func (r *BifrostReader) Targets() []string { return r.targets }

// HeaderLines implements the method of the aln.Adapter interface.
func (r *BifrostReader) HeaderLines() int { return 1 }

// MergeRows implements the method of the aln.Adapter interface.
func (r *BifrostReader) MergeRows() bool { return false }

// Parse implements the method of the aln.Adapter interface.
func (r *BifrostReader) Parse(line string, lineno int) (*aln.Record, error) {
	if skipBlank(line) {
		return nil, nil
	}
	fields := strings.Split(line, "\t")
	if len(fields) != len(r.targets)+1 {
		return nil, &ParseError{Format: Bifrost, Line: lineno, Msg: fmt.Sprintf("expected %v columns, got %v", len(r.targets)+1, len(fields))}
	}
	rec := &aln.Record{Name: fields[0]}
	for i, field := range fields[1:] {
		switch field {
		case "1":
			rec.Targets = append(rec.Targets, r.targets[i])
		case "0":
		default:
			return nil, &ParseError{Format: Bifrost, Line: lineno, Msg: fmt.Sprintf("expected 0 or 1, got %v", field)}
		}
	}
	return rec, nil
}

// A BifrostWriter formats canonical records as rows of a Bifrost
// presence/absence matrix.
type BifrostWriter struct {
	targets []string
	index   map[string]uint32
}

// NewBifrostWriter returns a Bifrost writing adapter over the given
// target name list, which becomes the matrix header.
func NewBifrostWriter(targets []string) *BifrostWriter {
	return &BifrostWriter{targets: targets, index: targetIndex(targets)}
}

// Header implements the method of the aln.Formatter interface.
func (w *BifrostWriter) Header() ([]byte, error) {
	header := make([]byte, 0, 16*(len(w.targets)+1))
	header = append(header, bifrostNameColumn...)
	for _, name := range w.targets {
		header = append(header, '\t')
		header = append(header, name...)
	}
	return append(header, '\n'), nil
}

// Format implements the method of the aln.Formatter interface.
func (w *BifrostWriter) Format(rec *aln.Record, buf []byte) ([]byte, error) {
	ids, err := recordIDs(w.index, rec)
	if err != nil {
		return nil, err
	}
	if rec.Name != "" {
		buf = append(buf, rec.Name...)
	} else {
		buf = strconv.AppendUint(buf, uint64(rec.RowID), 10)
	}
	next := 0
	for i := range w.targets {
		if next < len(ids) && ids[next] == uint32(i) {
			buf = append(buf, '\t', '1')
			next++
		} else {
			buf = append(buf, '\t', '0')
		}
	}
	return append(buf, '\n'), nil
}
