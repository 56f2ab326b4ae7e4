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

/*
Package format implements the plaintext pseudoalignment format
adapters of alnpack. Each adapter translates between one external
format and the canonical (row, reference-name-set) record stream that
package aln encodes, decodes, and converts.

Supported formats are Themisto, Fulgor, Bifrost, Metagraph, SAM, and
alnpack's own tabular format.
*/
package format

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	"github.com/alnpack/alnpack/aln"
	"github.com/alnpack/alnpack/internal"
)

// Names of the supported plaintext formats.
const (
	Themisto  = "themisto"
	Fulgor    = "fulgor"
	Bifrost   = "bifrost"
	Metagraph = "metagraph"
	SAM       = "sam"
	Tabular   = "tabular"
)

// DefaultFormat is assumed when no format is requested.
const DefaultFormat = Themisto

// A ParseError reports a malformed plaintext record, with the
// 1-based line number of the offending input line.
type ParseError struct {
	Format string
	Line   int
	Msg    string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("%v parse error at line %v: %v", err.Format, err.Line, err.Msg)
}

// NewReader returns the reading adapter for the named format.
// Formats with a header section (Bifrost, SAM, Tabular) consume it
// from input immediately. The Themisto and Fulgor formats identify
// references by index and need the out-of-band target name list.
func NewReader(name string, input *bufio.Reader, targets []string) (aln.Adapter, error) {
	switch strings.ToLower(name) {
	case "", Themisto:
		if len(targets) == 0 {
			return nil, fmt.Errorf("the %v format needs a target name list to resolve reference IDs", Themisto)
		}
		return NewThemistoReader(targets), nil
	case Fulgor:
		if len(targets) == 0 {
			return nil, fmt.Errorf("the %v format needs a target name list to resolve reference IDs", Fulgor)
		}
		return NewFulgorReader(targets), nil
	case Bifrost:
		reader, err := NewBifrostReader(input)
		if err != nil {
			return nil, err
		}
		return reader, nil
	case Metagraph:
		return NewMetagraphReader(targets), nil
	case SAM:
		reader, err := NewSAMReader(input)
		if err != nil {
			return nil, err
		}
		return reader, nil
	case Tabular:
		reader, err := NewTabularReader(input)
		if err != nil {
			return nil, err
		}
		return reader, nil
	default:
		return nil, fmt.Errorf("unknown input format %v", name)
	}
}

// NewWriter returns the writing adapter for the named format. The
// targets are the reference names of the universe in ID order; every
// format except Metagraph needs them for its header or for resolving
// names back to reference IDs.
func NewWriter(name string, targets []string) (aln.Formatter, error) {
	switch strings.ToLower(name) {
	case "", Themisto:
		if len(targets) == 0 {
			return nil, fmt.Errorf("the %v format needs a target name list to assign reference IDs", Themisto)
		}
		return NewThemistoWriter(targets), nil
	case Fulgor:
		if len(targets) == 0 {
			return nil, fmt.Errorf("the %v format needs a target name list to assign reference IDs", Fulgor)
		}
		return NewFulgorWriter(targets), nil
	case Bifrost:
		if len(targets) == 0 {
			return nil, fmt.Errorf("the %v format needs a target name list for its header", Bifrost)
		}
		return NewBifrostWriter(targets), nil
	case Metagraph:
		return NewMetagraphWriter(), nil
	case SAM:
		return NewSAMWriter(targets), nil
	case Tabular:
		return NewTabularWriter(targets), nil
	default:
		return nil, fmt.Errorf("unknown output format %v", name)
	}
}

// ReadTargets loads a target name list: one reference name per line,
// in the order the aligner's index assigns reference IDs.
func ReadTargets(filename string) (targets []string, err error) {
	file := internal.FileOpen(filename)
	defer func() {
		if nerr := file.Close(); err == nil {
			err = nerr
		}
	}()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			targets = append(targets, name)
		}
	}
	return targets, scanner.Err()
}

// targetIndex builds the name-to-ID lookup used by writers that emit
// reference IDs instead of names.
func targetIndex(targets []string) map[string]uint32 {
	index := make(map[string]uint32, len(targets))
	for id, name := range targets {
		if _, found := index[name]; !found {
			index[name] = uint32(id)
		}
	}
	return index
}

// recordIDs resolves the target names of a record to ascending
// reference IDs via the given index.
func recordIDs(index map[string]uint32, rec *aln.Record) ([]uint32, error) {
	ids := make([]uint32, 0, len(rec.Targets))
	for _, name := range rec.Targets {
		id, found := index[name]
		if !found {
			return nil, fmt.Errorf("reference name %v is not in the target list", name)
		}
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids, nil
}

func sortIDs(ids []uint32) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// skipBlank reports whether a body line carries no record.
func skipBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
