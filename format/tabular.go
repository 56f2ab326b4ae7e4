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
	"github.com/alnpack/alnpack/utils"
)

// A TabularReader parses alnpack's own self-contained plaintext
// format: a header line carrying the target names, then one
// tab-separated line per row holding the row ID, the query name, and
// the comma-joined reference IDs.
type TabularReader struct {
	targets []string
}

// NewTabularReader returns a tabular reading adapter. The header line
// is consumed from input immediately.
func NewTabularReader(input *bufio.Reader) (*TabularReader, error) {
	header, err := input.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	fields := strings.Split(strings.TrimRight(header, "\r\n"), "\t")
	if fields[0] != "#"+utils.ProgramName {
		return nil, &ParseError{Format: Tabular, Line: 1, Msg: fmt.Sprintf("expected a #%v header", utils.ProgramName)}
	}
	return &TabularReader{targets: fields[1:]}, nil
}

// Targets implements the method of the aln.Adapter interface.
func (r *TabularReader) Targets() []string { return r.targets }

// HeaderLines implements the method of the aln.Adapter interface.
func (r *TabularReader) HeaderLines() int { return 1 }

// MergeRows implements the method of the aln.Adapter interface.
func (r *TabularReader) MergeRows() bool { return false }

// Parse implements the method of the aln.Adapter interface.
func (r *TabularReader) Parse(line string, lineno int) (*aln.Record, error) {
	if skipBlank(line) {
		return nil, nil
	}
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return nil, &ParseError{Format: Tabular, Line: lineno, Msg: "expected a row ID and a query name"}
	}
	rowID, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return nil, &ParseError{Format: Tabular, Line: lineno, Msg: fmt.Sprintf("invalid row ID %v", fields[0])}
	}
	rec := &aln.Record{RowID: uint32(rowID), HasID: true, Name: fields[1]}
	if len(fields) > 2 && fields[2] != "" {
		for _, field := range strings.Split(fields[2], ",") {
			id, err := strconv.ParseUint(field, 10, 32)
			if err != nil {
				return nil, &ParseError{Format: Tabular, Line: lineno, Msg: fmt.Sprintf("invalid reference ID %v", field)}
			}
			if id >= uint64(len(r.targets)) {
				return nil, &ParseError{Format: Tabular, Line: lineno, Msg: fmt.Sprintf("reference ID %v exceeds the target list size %v", id, len(r.targets))}
			}
			rec.Targets = append(rec.Targets, r.targets[id])
		}
	}
	return rec, nil
}

// A TabularWriter formats canonical records in alnpack's tabular
// format.
type TabularWriter struct {
	targets []string
	index   map[string]uint32
}

// NewTabularWriter returns a tabular writing adapter over the given
// target name list, which becomes the header line.
func NewTabularWriter(targets []string) *TabularWriter {
	return &TabularWriter{targets: targets, index: targetIndex(targets)}
}

// Header implements the method of the aln.Formatter interface.
func (w *TabularWriter) Header() ([]byte, error) {
	header := append([]byte{'#'}, utils.ProgramName...)
	for _, name := range w.targets {
		header = append(header, '\t')
		header = append(header, name...)
	}
	return append(header, '\n'), nil
}

// Format implements the method of the aln.Formatter interface.
func (w *TabularWriter) Format(rec *aln.Record, buf []byte) ([]byte, error) {
	ids, err := recordIDs(w.index, rec)
	if err != nil {
		return nil, err
	}
	buf = strconv.AppendUint(buf, uint64(rec.RowID), 10)
	buf = append(buf, '\t')
	buf = append(buf, rec.Name...)
	buf = append(buf, '\t')
	for i, id := range ids {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, uint64(id), 10)
	}
	return append(buf, '\n'), nil
}
