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
	"log"
	"math"

	"github.com/bits-and-blooms/bitset"
)

// A ColorTable is the deduplicating store of color classes. Each
// distinct alignment set is assigned one class ID, shared by all rows
// with that set; IDs are assigned in strict first-occurrence order so
// that encoding the same input twice yields identical containers.
//
// The table exclusively owns its classes. It is not safe for
// concurrent insertion: all insertions must go through a single
// writer, see EncodeRecords.
type ColorTable struct {
	classes []*ColorClass
	index   map[string]uint32
}

// NewColorTable returns an empty color-class table.
func NewColorTable() *ColorTable {
	return &ColorTable{index: make(map[string]uint32)}
}

// Insert returns the class ID for the given alignment set, appending
// a new class if no bit-identical set is present. members must be
// ascending and duplicate-free; the slice is not retained.
//
// The lookup key is the canonical sparse-list byte form of the set,
// which is independent of the sparse/dense encoding choice.
func (table *ColorTable) Insert(members []uint32) uint32 {
	key := string(sparsePayload(members, nil))
	if id, found := table.index[key]; found {
		return id
	}
	if uint64(len(table.classes)) > math.MaxUint32 {
		log.Panicf("color-class table overflow at %v classes", len(table.classes))
	}
	id := uint32(len(table.classes))
	table.classes = append(table.classes, newColorClass(members))
	table.index[key] = id
	return id
}

// InsertBits is Insert for an explicit bitset.
func (table *ColorTable) InsertBits(bits *bitset.BitSet) uint32 {
	members := make([]uint32, 0, bits.Count())
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		members = append(members, uint32(i))
	}
	return table.Insert(members)
}

// insertClass re-indexes an already decoded class, bypassing
// re-encoding. Used when loading a container from disk.
func (table *ColorTable) insertClass(class *ColorClass) {
	key := string(sparsePayload(class.Members(), nil))
	if _, found := table.index[key]; !found {
		table.index[key] = uint32(len(table.classes))
	}
	table.classes = append(table.classes, class)
}

// Get returns the class stored under the given ID. The ID must be
// below Len().
func (table *ColorTable) Get(id uint32) *ColorClass {
	return table.classes[id]
}

// Len returns the number of distinct classes in the table.
func (table *ColorTable) Len() int {
	return len(table.classes)
}
