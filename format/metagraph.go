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
	"fmt"
	"strconv"
	"strings"

	"github.com/alnpack/alnpack/aln"
)

// A MetagraphReader parses Metagraph query output: one tab-separated
// line per query holding the query ID, the query name, and the
// colon-joined reference names it matches. Reference labels are names
// rather than indices, so the target list is optional; when given it
// only pins the ID order of the universe.
type MetagraphReader struct {
	targets []string
}

// NewMetagraphReader returns a Metagraph reading adapter.
func NewMetagraphReader(targets []string) *MetagraphReader {
	return &MetagraphReader{targets: targets}
}

// Targets implements the method of the aln.Adapter interface.
func (r *MetagraphReader) Targets() []string { return r.targets }

// HeaderLines implements the method of the aln.Adapter interface.
func (r *MetagraphReader) HeaderLines() int { return 0 }

// MergeRows implements the method of the aln.Adapter interface.
func (r *MetagraphReader) MergeRows() bool { return false }

// Parse implements the method of the aln.Adapter interface.
func (r *MetagraphReader) Parse(line string, lineno int) (*aln.Record, error) {
	if skipBlank(line) {
		return nil, nil
	}
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return nil, &ParseError{Format: Metagraph, Line: lineno, Msg: "expected a query ID and a query name"}
	}
	rowID, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return nil, &ParseError{Format: Metagraph, Line: lineno, Msg: fmt.Sprintf("invalid query ID %v", fields[0])}
	}
	rec := &aln.Record{RowID: uint32(rowID), HasID: true, Name: fields[1]}
	if len(fields) > 2 && fields[2] != "" {
		rec.Targets = strings.Split(fields[2], ":")
	}
	return rec, nil
}

// A MetagraphWriter formats canonical records as Metagraph query
// output lines. Reference labels are written as names, so no target
// list is needed.
type MetagraphWriter struct{}

// NewMetagraphWriter returns a Metagraph writing adapter.
func NewMetagraphWriter() *MetagraphWriter {
	return &MetagraphWriter{}
}

// Header implements the method of the aln.Formatter interface. The
// Metagraph format has no header section.
func (w *MetagraphWriter) Header() ([]byte, error) { return nil, nil }

// Format implements the method of the aln.Formatter interface.
func (w *MetagraphWriter) Format(rec *aln.Record, buf []byte) ([]byte, error) {
	buf = strconv.AppendUint(buf, uint64(rec.RowID), 10)
	buf = append(buf, '\t')
	buf = append(buf, rec.Name...)
	buf = append(buf, '\t')
	for i, name := range rec.Targets {
		if i > 0 {
			buf = append(buf, ':')
		}
		buf = append(buf, name...)
	}
	return append(buf, '\n'), nil
}
