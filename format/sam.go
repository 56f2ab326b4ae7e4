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

// SAM alignment flag for an unmapped read.
const samUnmapped = 0x4

// A SAMReader treats SAM alignments as pseudoalignments: each
// alignment line contributes its RNAME to the reference set of its
// QNAME, and multi-mapped reads appear as consecutive lines that are
// merged into one row. The reference names come from the @SQ header
// records.
type SAMReader struct {
	targets     []string
	headerLines int
}

// NewSAMReader returns a SAM reading adapter. The @ header section is
// consumed from input immediately.
func NewSAMReader(input *bufio.Reader) (*SAMReader, error) {
	r := &SAMReader{}
	for {
		first, err := input.Peek(1)
		if err == io.EOF || (err == nil && first[0] != '@') {
			return r, nil
		}
		if err != nil {
			return nil, err
		}
		line, err := input.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		r.headerLines++
		line = strings.TrimRight(line, "\r\n")
		if !strings.HasPrefix(line, "@SQ") {
			continue
		}
		record := utils.StringMap{}
		for _, field := range strings.Split(line, "\t")[1:] {
			colon := strings.IndexByte(field, ':')
			if colon < 0 {
				return nil, &ParseError{Format: SAM, Line: r.headerLines, Msg: fmt.Sprintf("invalid @SQ field %v", field)}
			}
			if !record.SetUniqueEntry(field[:colon], field[colon+1:]) {
				return nil, &ParseError{Format: SAM, Line: r.headerLines, Msg: fmt.Sprintf("duplicate @SQ field %v", field[:colon])}
			}
		}
		name, found := record["SN"]
		if !found {
			return nil, &ParseError{Format: SAM, Line: r.headerLines, Msg: "@SQ record without an SN field"}
		}
		r.targets = append(r.targets, name)
	}
}

// Targets implements the method of the aln.Adapter interface.
func (r *SAMReader) Targets() []string { return r.targets }

// HeaderLines implements the method of the aln.Adapter interface.
func (r *SAMReader) HeaderLines() int { return r.headerLines }

// MergeRows implements the method of the aln.Adapter interface.
// Multi-mapped reads occupy consecutive alignment lines that describe
// one row.
func (r *SAMReader) MergeRows() bool { return true }

// Parse implements the method of the aln.Adapter interface.
func (r *SAMReader) Parse(line string, lineno int) (*aln.Record, error) {
	if skipBlank(line) {
		return nil, nil
	}
	fields := strings.SplitN(line, "\t", 4)
	if len(fields) < 3 {
		return nil, &ParseError{Format: SAM, Line: lineno, Msg: "expected at least QNAME, FLAG, and RNAME fields"}
	}
	flag, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return nil, &ParseError{Format: SAM, Line: lineno, Msg: fmt.Sprintf("invalid FLAG %v", fields[1])}
	}
	rec := &aln.Record{Name: fields[0]}
	if flag&samUnmapped == 0 && fields[2] != "*" {
		rec.Targets = append(rec.Targets, fields[2])
	}
	return rec, nil
}

// A SAMWriter formats canonical records as minimal SAM alignment
// lines: one line per aligned reference, or a single unmapped line
// for an empty reference set. Sequences are not recoverable from a
// pseudoalignment, so SEQ and QUAL are written as *, and every @SQ
// length is 1.
type SAMWriter struct {
	targets []string
}

// NewSAMWriter returns a SAM writing adapter over the given target
// name list, which becomes the @SQ header section.
func NewSAMWriter(targets []string) *SAMWriter {
	return &SAMWriter{targets: targets}
}

// Header implements the method of the aln.Formatter interface.
func (w *SAMWriter) Header() ([]byte, error) {
	header := []byte("@HD\tVN:1.6\tSO:unknown\n")
	for _, name := range w.targets {
		header = append(header, "@SQ\tSN:"...)
		header = append(header, name...)
		header = append(header, "\tLN:1\n"...)
	}
	header = append(header, "@PG\tID:"...)
	header = append(header, utils.ProgramName...)
	header = append(header, "\tPN:"...)
	header = append(header, utils.ProgramName...)
	header = append(header, "\tVN:"...)
	header = append(header, utils.ProgramVersion...)
	return append(header, '\n'), nil
}

func appendSAMLine(buf []byte, name string, flag int, rname string) []byte {
	buf = append(buf, name...)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, int64(flag), 10)
	buf = append(buf, '\t')
	buf = append(buf, rname...)
	if flag&samUnmapped != 0 {
		buf = append(buf, "\t0\t255\t*\t*\t0\t0\t*\t*\n"...)
	} else {
		buf = append(buf, "\t1\t255\t*\t*\t0\t0\t*\t*\n"...)
	}
	return buf
}

// Format implements the method of the aln.Formatter interface.
func (w *SAMWriter) Format(rec *aln.Record, buf []byte) ([]byte, error) {
	name := rec.Name
	if name == "" {
		name = "r" + strconv.FormatUint(uint64(rec.RowID), 10)
	}
	if len(rec.Targets) == 0 {
		return appendSAMLine(buf, name, samUnmapped, "*"), nil
	}
	for i, target := range rec.Targets {
		flag := 0
		if i > 0 {
			flag = 0x100
		}
		buf = appendSAMLine(buf, name, flag, target)
	}
	return buf, nil
}
