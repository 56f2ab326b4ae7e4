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
	"sort"
	"testing"
)

func TestMergeSorted(t *testing.T) {
	a := []uint32{0, 2, 4}
	b := []uint32{2, 3, 4, 7}
	if !positionsEqual(mergeSorted(Union, a, b), []uint32{0, 2, 3, 4, 7}) {
		t.Error("mergeSorted union failed")
	}
	if !positionsEqual(mergeSorted(Intersect, a, b), []uint32{2, 4}) {
		t.Error("mergeSorted intersect failed")
	}
	if !positionsEqual(mergeSorted(Diff, a, b), []uint32{0}) {
		t.Error("mergeSorted diff failed")
	}
	if !positionsEqual(mergeSorted(Xor, a, b), []uint32{0, 3, 7}) {
		t.Error("mergeSorted xor failed")
	}
	if len(mergeSorted(Intersect, a, nil)) != 0 {
		t.Error("mergeSorted empty intersect failed")
	}
	if !positionsEqual(mergeSorted(Union, nil, b), b) {
		t.Error("mergeSorted empty union failed")
	}
	if !positionsEqual(mergeSorted(Diff, a, nil), a) {
		t.Error("mergeSorted empty diff failed")
	}
}

func TestParseSetOp(t *testing.T) {
	for _, want := range []SetOp{Union, Intersect, Diff, Xor} {
		op, err := ParseSetOp(want.String())
		if err != nil || op != want {
			t.Error("ParseSetOp failed for", want)
		}
	}
	if _, err := ParseSetOp("symdiff"); err == nil {
		t.Error("ParseSetOp unknown operation failed")
	}
}

func makeSetOpContainer(t *testing.T, names []string, rows ...[]uint32) *Container {
	ctr := NewContainer()
	for _, name := range names {
		if _, err := ctr.Dict.Register(name); err != nil {
			t.Fatal(err)
		}
	}
	for _, members := range rows {
		ctr.Rows = append(ctr.Rows, ctr.Classes.Insert(members))
	}
	return ctr
}

func rowTargets(ctr *Container, i int) []string {
	return ctr.Record(i).Targets
}

func TestApplySetOp(t *testing.T) {
	// ctr1 rows: {refA,refB}, {refB}
	// ctr2 rows: {refB,refC}, {refC}
	ctr1 := makeSetOpContainer(t, []string{"refA", "refB"}, []uint32{0, 1}, []uint32{1})
	ctr2 := makeSetOpContainer(t, []string{"refB", "refC"}, []uint32{0, 1}, []uint32{1})

	union, err := ApplySetOp(Union, ctr1, ctr2)
	if err != nil {
		t.Fatal(err)
	}
	if !namesEqual(union.Dict.Names(), []string{"refA", "refB", "refC"}) {
		t.Error("union dictionary failed")
	}
	if !namesEqual(rowTargets(union, 0), []string{"refA", "refB", "refC"}) {
		t.Error("union row 0 failed")
	}
	if !namesEqual(rowTargets(union, 1), []string{"refB", "refC"}) {
		t.Error("union row 1 failed")
	}

	intersect, err := ApplySetOp(Intersect, ctr1, ctr2)
	if err != nil {
		t.Fatal(err)
	}
	if !namesEqual(rowTargets(intersect, 0), []string{"refB"}) {
		t.Error("intersect row 0 failed")
	}
	if len(rowTargets(intersect, 1)) != 0 {
		t.Error("intersect row 1 failed")
	}

	diff, err := ApplySetOp(Diff, ctr1, ctr2)
	if err != nil {
		t.Fatal(err)
	}
	if !namesEqual(rowTargets(diff, 0), []string{"refA"}) {
		t.Error("diff row 0 failed")
	}
	if !namesEqual(rowTargets(diff, 1), []string{"refB"}) {
		t.Error("diff row 1 failed")
	}

	xor, err := ApplySetOp(Xor, ctr1, ctr2)
	if err != nil {
		t.Fatal(err)
	}
	if !namesEqual(rowTargets(xor, 0), []string{"refA", "refC"}) {
		t.Error("xor row 0 failed")
	}
	if !namesEqual(rowTargets(xor, 1), []string{"refB", "refC"}) {
		t.Error("xor row 1 failed")
	}
}

func TestApplySetOpCommutativeMembers(t *testing.T) {
	ctr1 := makeSetOpContainer(t, []string{"refA", "refB"}, []uint32{0}, []uint32{0, 1})
	ctr2 := makeSetOpContainer(t, []string{"refB", "refC"}, []uint32{1}, []uint32{0})
	for _, op := range []SetOp{Union, Intersect, Xor} {
		out1, err := ApplySetOp(op, ctr1, ctr2)
		if err != nil {
			t.Fatal(err)
		}
		out2, err := ApplySetOp(op, ctr2, ctr1)
		if err != nil {
			t.Fatal(err)
		}
		// The dictionaries of the two results order names
		// differently, so rows are compared as name sets.
		for i := 0; i < out1.RowCount(); i++ {
			targets1 := append([]string(nil), rowTargets(out1, i)...)
			targets2 := append([]string(nil), rowTargets(out2, i)...)
			sort.Strings(targets1)
			sort.Strings(targets2)
			if !namesEqual(targets1, targets2) {
				t.Error("commutativity failed for", op, "row", i)
			}
		}
	}
}

func TestApplySetOpRowMismatch(t *testing.T) {
	ctr1 := makeSetOpContainer(t, []string{"refA"}, []uint32{0})
	ctr2 := makeSetOpContainer(t, []string{"refA"}, []uint32{0}, []uint32{0})
	if _, err := ApplySetOp(Union, ctr1, ctr2); err == nil {
		t.Error("row count mismatch not detected")
	}
}

func TestApplySetOpMetadata(t *testing.T) {
	ctr1 := makeSetOpContainer(t, []string{"refA"}, []uint32{0})
	ctr1.QueryName = "reads"
	ctr1.RowIDs = []uint32{7}
	ctr1.RowNames = []string{"r7"}
	ctr2 := makeSetOpContainer(t, []string{"refA"}, []uint32{0})
	out, err := ApplySetOp(Union, ctr1, ctr2)
	if err != nil {
		t.Fatal(err)
	}
	if out.QueryName != "reads" || !positionsEqual(out.RowIDs, []uint32{7}) || !namesEqual(out.RowNames, []string{"r7"}) {
		t.Error("set-op metadata carry-over failed")
	}
	if out.ID == ctr1.ID {
		t.Error("set-op container identity not refreshed")
	}
}
