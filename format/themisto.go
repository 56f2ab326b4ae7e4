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

// A ThemistoReader parses Themisto pseudoalignment output: one
// space-separated line per read, the explicit read ID first, followed
// by the reference IDs the read aligns to.
type ThemistoReader struct {
	targets []string
}

// NewThemistoReader returns a Themisto reading adapter over the given
// target name list.
func NewThemistoReader(targets []string) *ThemistoReader {
	return &ThemistoReader{targets: targets}
}

// Targets implements the method of the aln.Adapter interface.
func (r *ThemistoReader) Targets() []string { return r.targets }

// HeaderLines implements the method of the aln.Adapter interface.
func (r *ThemistoReader) HeaderLines() int { return 0 }

// MergeRows implements the method of the aln.Adapter interface.
func (r *ThemistoReader) MergeRows() bool { return false }

// Parse implements the method of the aln.Adapter interface.
func (r *ThemistoReader) Parse(line string, lineno int) (*aln.Record, error) {
	if skipBlank(line) {
		return nil, nil
	}
	fields := strings.Split(line, " ")
	rowID, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return nil, &ParseError{Format: Themisto, Line: lineno, Msg: fmt.Sprintf("invalid read ID %v", fields[0])}
	}
	rec := &aln.Record{RowID: uint32(rowID), HasID: true}
	for _, field := range fields[1:] {
		id, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return nil, &ParseError{Format: Themisto, Line: lineno, Msg: fmt.Sprintf("invalid reference ID %v", field)}
		}
		if id >= uint64(len(r.targets)) {
			return nil, &ParseError{Format: Themisto, Line: lineno, Msg: fmt.Sprintf("reference ID %v exceeds the target list size %v", id, len(r.targets))}
		}
		rec.Targets = append(rec.Targets, r.targets[id])
	}
	return rec, nil
}

// A ThemistoWriter formats canonical records as Themisto
// pseudoalignment lines.
type ThemistoWriter struct {
	index map[string]uint32
}

// NewThemistoWriter returns a Themisto writing adapter over the given
// target name list.
func NewThemistoWriter(targets []string) *ThemistoWriter {
	return &ThemistoWriter{index: targetIndex(targets)}
}

// Header implements the method of the aln.Formatter interface. The
// Themisto format has no header section.
func (w *ThemistoWriter) Header() ([]byte, error) { return nil, nil }

// Format implements the method of the aln.Formatter interface.
func (w *ThemistoWriter) Format(rec *aln.Record, buf []byte) ([]byte, error) {
	ids, err := recordIDs(w.index, rec)
	if err != nil {
		return nil, err
	}
	buf = strconv.AppendUint(buf, uint64(rec.RowID), 10)
	for _, id := range ids {
		buf = append(buf, ' ')
		buf = strconv.AppendUint(buf, uint64(id), 10)
	}
	return append(buf, '\n'), nil
}
