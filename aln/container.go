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
	"github.com/google/uuid"
)

// A Record is one row of the canonical pseudoalignment stream that
// format adapters produce and consume: a read or k-mer together with
// the set of reference names it aligns to. Rows are identified by
// their position in the stream; RowID additionally carries the
// explicit identifier when the source format has one.
type Record struct {
	RowID   uint32
	HasID   bool
	Name    string
	Targets []string
}

// An Adapter is the reading half of a plaintext format adapter. Parse
// must be a pure function so that lines can be parsed on parallel
// worker threads; ordering is restored by the pipeline before records
// reach the color-class table.
type Adapter interface {
	// Targets returns the reference names declared by the format's
	// header section, or nil when the format does not declare them.
	Targets() []string

	// HeaderLines returns the number of header lines the adapter
	// consumed before the body, for line number accounting.
	HeaderLines() int

	// Parse parses one line of the body into a canonical record.
	// It may return (nil, nil) for lines that carry no record.
	// lineno is the 1-based line number, for error context.
	Parse(line string, lineno int) (*Record, error)

	// MergeRows reports whether consecutive records with the same
	// query name describe one row (as in SAM multi-mapping output).
	MergeRows() bool
}

// A Formatter is the writing half of a plaintext format adapter.
type Formatter interface {
	// Header returns the format's header bytes, or nil when the
	// format has no header section.
	Header() ([]byte, error)

	// Format appends the formatted record, including the trailing
	// newline, to buf.
	Format(rec *Record, buf []byte) ([]byte, error)
}

// A Container is the self-contained compressed representation of a
// pseudoalignment run: the reference dictionary, the deduplicated
// color-class table, the per-row class index, and metadata. It is the
// unit all commands operate on. Containers never share dictionaries
// or class tables; merges build fresh ones.
type Container struct {
	// ID distinguishes a container from the containers it was
	// derived from; regenerated on every encode, cat, and set.
	ID uuid.UUID

	// QueryName is the basename of the query file the alignment was
	// generated from, when known.
	QueryName string

	Dict    *Dictionary
	Classes *ColorTable

	// Rows maps each row to its color-class ID, in original row
	// order.
	Rows []uint32

	// RowIDs holds the explicit per-row identifiers when the source
	// format carried them; empty otherwise. Length 0 or len(Rows).
	RowIDs []uint32

	// RowNames holds the per-row query names when the source format
	// carried them; empty otherwise. Length 0 or len(Rows).
	RowNames []string
}

// NewContainer returns an empty container with a fresh identity.
func NewContainer() *Container {
	return &Container{
		ID:      uuid.New(),
		Dict:    NewDictionary(),
		Classes: NewColorTable(),
	}
}

// Universe returns the size of the reference universe.
func (ctr *Container) Universe() uint32 {
	return uint32(ctr.Dict.Size())
}

// RowCount returns the number of rows.
func (ctr *Container) RowCount() int {
	return len(ctr.Rows)
}

// Record resolves row i into a canonical record, expanding its color
// class to reference names via the dictionary.
func (ctr *Container) Record(i int) *Record {
	members := ctr.Classes.Get(ctr.Rows[i]).Members()
	targets := make([]string, len(members))
	for j, id := range members {
		targets[j] = ctr.Dict.Resolve(id)
	}
	rec := &Record{RowID: uint32(i), HasID: true, Targets: targets}
	if len(ctr.RowIDs) > 0 {
		rec.RowID = ctr.RowIDs[i]
	}
	if len(ctr.RowNames) > 0 {
		rec.Name = ctr.RowNames[i]
	}
	return rec
}
