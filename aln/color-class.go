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
	"encoding/binary"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

type classKind byte

const (
	classSparse classKind = iota
	classDense
)

// Encoding tags as stored in the container class-table section.
const (
	tagSparse byte = 0
	tagDense  byte = 1
)

// A ColorClass is one deduplicated alignment set: a subset of the
// reference universe. It is stored either as an ascending list of
// set-bit positions (sparse) or as alternating 0/1 run lengths
// (dense), whichever serializes smaller. Neither representation
// records trailing zeros, so a class stays valid when the universe is
// later extended with new reference names.
//
// A ColorClass is immutable after construction.
type ColorClass struct {
	kind classKind

	// positions holds the ascending set-bit positions (sparse only).
	positions []uint32

	// bounds holds the cumulative run boundaries (dense only). Runs
	// alternate between zeros and ones, starting with a zero run that
	// may be empty; the final run is always a ones run. Bit b is set
	// iff the first boundary greater than b has an odd index.
	bounds []uint32
}

func appendUvarint(buf []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	return append(buf, tmp[:n]...)
}

// sparsePayload appends the delta-encoded position list: the first
// position absolute, then the gaps between consecutive positions
// minus one. This byte form doubles as the canonical lookup key of the
// color-class table because it is deterministic for a given set no
// matter which encoding the codec ends up choosing.
func sparsePayload(positions []uint32, buf []byte) []byte {
	for i, p := range positions {
		if i == 0 {
			buf = appendUvarint(buf, uint64(p))
		} else {
			buf = appendUvarint(buf, uint64(p-positions[i-1]-1))
		}
	}
	return buf
}

// denseRuns converts an ascending position list into alternating run
// lengths, starting with the (possibly empty) leading zero run and
// ending with a ones run. The result is empty for the empty set.
func denseRuns(positions []uint32) []uint32 {
	if len(positions) == 0 {
		return nil
	}
	runs := []uint32{positions[0]}
	ones := uint32(1)
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			ones++
		} else {
			runs = append(runs, ones, positions[i]-positions[i-1]-1)
			ones = 1
		}
	}
	return append(runs, ones)
}

func densePayload(runs []uint32, buf []byte) []byte {
	for _, r := range runs {
		buf = appendUvarint(buf, uint64(r))
	}
	return buf
}

func boundsFromRuns(runs []uint32) []uint32 {
	bounds := make([]uint32, len(runs))
	var total uint32
	for i, r := range runs {
		total += r
		bounds[i] = total
	}
	return bounds
}

// newColorClass builds a color class for the given ascending,
// duplicate-free position list. The codec computes both encodings and
// keeps whichever serializes smaller, with ties going to sparse.
func newColorClass(positions []uint32) *ColorClass {
	sparse := sparsePayload(positions, nil)
	runs := denseRuns(positions)
	dense := densePayload(runs, nil)
	if len(dense) < len(sparse) {
		return &ColorClass{kind: classDense, bounds: boundsFromRuns(runs)}
	}
	owned := make([]uint32, len(positions))
	copy(owned, positions)
	return &ColorClass{kind: classSparse, positions: owned}
}

// colorClassFromPayload rebuilds a color class from its encoding tag
// and decoded payload values, validating it against the declared
// universe size. classIdx is only used for error reporting.
func colorClassFromPayload(tag byte, values []uint64, classIdx int, universe uint32) (*ColorClass, error) {
	switch tag {
	case tagSparse:
		positions := make([]uint32, len(values))
		var prev uint64
		for i, v := range values {
			if i == 0 {
				prev = v
			} else {
				prev += v + 1
			}
			if prev >= uint64(universe) {
				return nil, &CodecCorruptionError{Class: classIdx, Position: uint32(prev), Universe: universe}
			}
			positions[i] = uint32(prev)
		}
		return &ColorClass{kind: classSparse, positions: positions}, nil
	case tagDense:
		if len(values)%2 != 0 {
			return nil, &CodecCorruptionError{Class: classIdx, Position: 0, Universe: universe}
		}
		bounds := make([]uint32, len(values))
		var total uint64
		for i, v := range values {
			if i > 0 && v == 0 {
				return nil, &CodecCorruptionError{Class: classIdx, Position: uint32(total), Universe: universe}
			}
			total += v
			if total > uint64(universe) {
				return nil, &CodecCorruptionError{Class: classIdx, Position: uint32(total), Universe: universe}
			}
			bounds[i] = uint32(total)
		}
		return &ColorClass{kind: classDense, bounds: bounds}, nil
	default:
		return nil, &CodecCorruptionError{Class: classIdx, Position: 0, Universe: universe}
	}
}

// tag returns the encoding tag stored in the container.
func (class *ColorClass) tag() byte {
	if class.kind == classDense {
		return tagDense
	}
	return tagSparse
}

// payload appends the serialized payload values of the class.
func (class *ColorClass) payload(buf []byte) []byte {
	if class.kind == classDense {
		runs := make([]uint32, len(class.bounds))
		var prev uint32
		for i, b := range class.bounds {
			runs[i] = b - prev
			prev = b
		}
		return densePayload(runs, buf)
	}
	return sparsePayload(class.positions, buf)
}

// payloadValues returns the number of values in the payload.
func (class *ColorClass) payloadValues() int {
	if class.kind == classDense {
		return len(class.bounds)
	}
	return len(class.positions)
}

// Contains reports whether the given reference ID is a member of the
// class, without materializing the full bitset.
func (class *ColorClass) Contains(id uint32) bool {
	if class.kind == classSparse {
		i := sort.Search(len(class.positions), func(i int) bool { return class.positions[i] >= id })
		return i < len(class.positions) && class.positions[i] == id
	}
	i := sort.Search(len(class.bounds), func(i int) bool { return class.bounds[i] > id })
	return i < len(class.bounds) && i%2 == 1
}

// Count returns the number of members of the class.
func (class *ColorClass) Count() int {
	if class.kind == classSparse {
		return len(class.positions)
	}
	count := 0
	var prev uint32
	for i, b := range class.bounds {
		if i%2 == 1 {
			count += int(b - prev)
		}
		prev = b
	}
	return count
}

// Members returns the ascending reference IDs of the class members.
// The returned slice is owned by the class and must not be modified.
func (class *ColorClass) Members() []uint32 {
	if class.kind == classSparse {
		return class.positions
	}
	members := make([]uint32, 0, class.Count())
	iter := class.Iter()
	for id, ok := iter.Next(); ok; id, ok = iter.Next() {
		members = append(members, id)
	}
	return members
}

// Bits materializes the class into an explicit bitset of the given
// universe size.
func (class *ColorClass) Bits(universe uint32) *bitset.BitSet {
	bits := bitset.New(uint(universe))
	iter := class.Iter()
	for id, ok := iter.Next(); ok; id, ok = iter.Next() {
		bits.Set(uint(id))
	}
	return bits
}

// A ClassIter lazily produces the ascending member IDs of a color
// class. Reset restarts the sequence.
type ClassIter struct {
	class *ColorClass
	index int    // next position index (sparse)
	run   int    // boundary index of the current ones run (dense)
	next  uint32 // next candidate bit (dense)
}

// Iter returns a restartable iterator over the class members.
func (class *ColorClass) Iter() *ClassIter {
	iter := &ClassIter{class: class}
	iter.Reset()
	return iter
}

// Reset restarts the iterator at the first member.
func (iter *ClassIter) Reset() {
	iter.index = 0
	iter.run = 1
	if iter.class.kind == classDense && len(iter.class.bounds) > 0 {
		iter.next = iter.class.bounds[0]
	} else {
		iter.next = 0
	}
}

// Next returns the next member ID, or false when the sequence is
// exhausted.
func (iter *ClassIter) Next() (uint32, bool) {
	class := iter.class
	if class.kind == classSparse {
		if iter.index >= len(class.positions) {
			return 0, false
		}
		id := class.positions[iter.index]
		iter.index++
		return id, true
	}
	for {
		if iter.run >= len(class.bounds) {
			return 0, false
		}
		if iter.next < class.bounds[iter.run] {
			id := iter.next
			iter.next++
			return id, true
		}
		iter.run += 2
		if iter.run >= len(class.bounds) {
			return 0, false
		}
		iter.next = class.bounds[iter.run-1]
	}
}
