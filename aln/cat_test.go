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

import "testing"

func TestConcatenate(t *testing.T) {
	ctr1 := makeSetOpContainer(t, []string{"refA", "refB"}, []uint32{0, 1}, []uint32{1})
	ctr1.QueryName = "reads1"
	ctr2 := makeSetOpContainer(t, []string{"refB", "refC"}, []uint32{0}, []uint32{0, 1})
	ctr2.QueryName = "reads2"

	out, err := Concatenate([]*Container{ctr1, ctr2})
	if err != nil {
		t.Fatal(err)
	}
	if out.QueryName != "reads1" {
		t.Error("cat query name failed")
	}
	if !namesEqual(out.Dict.Names(), []string{"refA", "refB", "refC"}) {
		t.Error("cat dictionary failed")
	}
	if out.RowCount() != 4 {
		t.Error("cat row count failed")
	}
	if !namesEqual(rowTargets(out, 0), []string{"refA", "refB"}) ||
		!namesEqual(rowTargets(out, 1), []string{"refB"}) ||
		!namesEqual(rowTargets(out, 2), []string{"refB"}) ||
		!namesEqual(rowTargets(out, 3), []string{"refB", "refC"}) {
		t.Error("cat row resolution failed")
	}
	// ctr1's {refB} and ctr2's {refB} collapse onto one class after
	// the remap.
	if out.Rows[1] != out.Rows[2] {
		t.Error("cat class dedup across inputs failed")
	}
	if out.Classes.Len() != 3 {
		t.Error("cat class count failed")
	}
}

func TestConcatenateSingleInput(t *testing.T) {
	ctr := makeSetOpContainer(t, []string{"refA", "refB"}, []uint32{0, 1}, []uint32{0})
	ctr.QueryName = "reads"
	ctr.RowIDs = []uint32{5, 6}
	ctr.RowNames = []string{"r5", "r6"}
	out, err := Concatenate([]*Container{ctr})
	if err != nil {
		t.Fatal(err)
	}
	if !namesEqual(out.Dict.Names(), ctr.Dict.Names()) ||
		!positionsEqual(out.Rows, ctr.Rows) ||
		!positionsEqual(out.RowIDs, ctr.RowIDs) ||
		!namesEqual(out.RowNames, ctr.RowNames) ||
		out.QueryName != ctr.QueryName {
		t.Error("cat single input failed")
	}
	if out.ID == ctr.ID {
		t.Error("cat container identity not refreshed")
	}
}

func TestConcatenateMetadataGating(t *testing.T) {
	// Row IDs and names are only carried when every input has them.
	ctr1 := makeSetOpContainer(t, []string{"refA"}, []uint32{0})
	ctr1.RowIDs = []uint32{0}
	ctr1.RowNames = []string{"r0"}
	ctr2 := makeSetOpContainer(t, []string{"refA"}, []uint32{0})
	out, err := Concatenate([]*Container{ctr1, ctr2})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.RowIDs) != 0 || len(out.RowNames) != 0 {
		t.Error("cat metadata gating failed")
	}
}

func TestConcatenateEmpty(t *testing.T) {
	if _, err := Concatenate(nil); err == nil {
		t.Error("cat without inputs not detected")
	}
}
