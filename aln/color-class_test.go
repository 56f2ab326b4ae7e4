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
	"math/rand"
	"testing"
)

func positionsEqual(positions1, positions2 []uint32) bool {
	if len(positions1) != len(positions2) {
		return false
	}
	for i, p := range positions1 {
		if p != positions2[i] {
			return false
		}
	}
	return true
}

func makeRandomPositions(universe uint32, density int) []uint32 {
	var positions []uint32
	for i := uint32(0); i < universe; i++ {
		if rand.Intn(100) < density {
			positions = append(positions, i)
		}
	}
	return positions
}

func TestCodecChoice(t *testing.T) {
	if newColorClass([]uint32{0, 100, 1000}).kind != classSparse {
		t.Error("codec choice scattered failed")
	}
	run := make([]uint32, 100)
	for i := range run {
		run[i] = uint32(i)
	}
	if newColorClass(run).kind != classDense {
		t.Error("codec choice contiguous failed")
	}
	// Ties go to the sparse encoding.
	if newColorClass(nil).kind != classSparse {
		t.Error("codec choice empty failed")
	}
	if newColorClass([]uint32{5}).kind != classSparse {
		t.Error("codec choice singleton failed")
	}
}

func TestDenseRuns(t *testing.T) {
	runs := denseRuns([]uint32{2, 3, 4, 10, 11, 20})
	if !positionsEqual(runs, []uint32{2, 3, 5, 2, 8, 1}) {
		t.Error("denseRuns 1 failed")
	}
	if !positionsEqual(denseRuns([]uint32{0, 1, 2}), []uint32{0, 3}) {
		t.Error("denseRuns 2 failed")
	}
	if denseRuns(nil) != nil {
		t.Error("denseRuns empty failed")
	}
}

func TestContains(t *testing.T) {
	positions := []uint32{2, 3, 4, 10, 11, 20}
	sparse := &ColorClass{kind: classSparse, positions: positions}
	dense, err := colorClassFromPayload(tagDense, []uint64{2, 3, 5, 2, 8, 1}, 0, 21)
	if err != nil {
		t.Fatal(err)
	}
	for _, class := range []*ColorClass{sparse, dense} {
		next := 0
		for id := uint32(0); id < 25; id++ {
			want := next < len(positions) && positions[next] == id
			if want {
				next++
			}
			if class.Contains(id) != want {
				t.Error("Contains failed for ID", id)
			}
		}
		if class.Count() != len(positions) {
			t.Error("Count failed")
		}
		if !positionsEqual(class.Members(), positions) {
			t.Error("Members failed")
		}
	}
}

func TestClassIter(t *testing.T) {
	dense, err := colorClassFromPayload(tagDense, []uint64{2, 3, 5, 2, 8, 1}, 0, 21)
	if err != nil {
		t.Fatal(err)
	}
	iter := dense.Iter()
	var members []uint32
	for id, ok := iter.Next(); ok; id, ok = iter.Next() {
		members = append(members, id)
	}
	if !positionsEqual(members, []uint32{2, 3, 4, 10, 11, 20}) {
		t.Error("ClassIter dense failed")
	}
	iter.Reset()
	if id, ok := iter.Next(); !ok || id != 2 {
		t.Error("ClassIter Reset failed")
	}
	empty := newColorClass(nil)
	if _, ok := empty.Iter().Next(); ok {
		t.Error("ClassIter empty failed")
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	for _, density := range []int{2, 20, 50, 90} {
		positions := makeRandomPositions(2000, density)
		class := newColorClass(positions)
		payload := class.payload(nil)
		values := make([]uint64, 0, class.payloadValues())
		c := byteCursor{data: payload}
		for len(values) < class.payloadValues() {
			v, err := c.uvarint()
			if err != nil {
				t.Fatal(err)
			}
			values = append(values, v)
		}
		decoded, err := colorClassFromPayload(class.tag(), values, 0, 2000)
		if err != nil {
			t.Fatal(err)
		}
		if !positionsEqual(decoded.Members(), positions) {
			t.Error("payload round trip failed for density", density)
		}
	}
}

func TestBits(t *testing.T) {
	positions := []uint32{1, 2, 3, 7}
	bits := newColorClass(positions).Bits(10)
	if bits.Count() != 4 {
		t.Error("Bits count failed")
	}
	for _, p := range positions {
		if !bits.Test(uint(p)) {
			t.Error("Bits membership failed for position", p)
		}
	}
}

func TestCodecCorruption(t *testing.T) {
	if _, err := colorClassFromPayload(tagSparse, []uint64{5}, 0, 5); err == nil {
		t.Error("sparse position beyond universe not detected")
	} else if _, ok := err.(*CodecCorruptionError); !ok {
		t.Error("sparse corruption has wrong error type")
	}
	if _, err := colorClassFromPayload(tagDense, []uint64{2, 3, 5}, 0, 100); err == nil {
		t.Error("dense odd run count not detected")
	}
	if _, err := colorClassFromPayload(tagDense, []uint64{2, 3, 0, 2}, 0, 100); err == nil {
		t.Error("dense empty run not detected")
	}
	if _, err := colorClassFromPayload(tagDense, []uint64{2, 3}, 0, 4); err == nil {
		t.Error("dense run beyond universe not detected")
	}
	if _, err := colorClassFromPayload(7, nil, 0, 100); err == nil {
		t.Error("unknown encoding tag not detected")
	}
}

func TestExtensionStability(t *testing.T) {
	// Growing the universe must not change the members of an
	// existing class, whichever encoding it uses.
	for _, density := range []int{5, 80} {
		positions := makeRandomPositions(500, density)
		class := newColorClass(positions)
		if !positionsEqual(class.Members(), positions) {
			t.Error("extension stability members failed")
		}
		for _, id := range []uint32{500, 800, 5000} {
			if class.Contains(id) {
				t.Error("extension stability Contains failed for ID", id)
			}
		}
	}
}
