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
	"fmt"
	"sort"

	"github.com/exascience/pargo/pipeline"
)

// A SetOp is one of the binary operators applied row-wise between two
// containers with an aligned row domain.
type SetOp int

const (
	Union SetOp = iota
	Intersect
	Diff
	Xor
)

func (op SetOp) String() string {
	switch op {
	case Union:
		return "union"
	case Intersect:
		return "intersect"
	case Diff:
		return "diff"
	case Xor:
		return "xor"
	default:
		return fmt.Sprintf("SetOp(%d)", int(op))
	}
}

// ParseSetOp maps a set subcommand name to its operator.
func ParseSetOp(name string) (SetOp, error) {
	switch name {
	case "union":
		return Union, nil
	case "intersect":
		return Intersect, nil
	case "diff":
		return Diff, nil
	case "xor":
		return Xor, nil
	default:
		return 0, fmt.Errorf("unknown set operation %v", name)
	}
}

// mergeSorted applies the operator to two ascending, duplicate-free
// ID lists with a two-pointer merge, so per-row cost is proportional
// to the set sizes rather than the universe size.
func mergeSorted(op SetOp, a, b []uint32) []uint32 {
	result := make([]uint32, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			if op == Union || op == Diff || op == Xor {
				result = append(result, a[i])
			}
			i++
		case a[i] > b[j]:
			if op == Union || op == Xor {
				result = append(result, b[j])
			}
			j++
		default:
			if op == Union || op == Intersect {
				result = append(result, a[i])
			}
			i++
			j++
		}
	}
	if op != Intersect {
		result = append(result, a[i:]...)
	}
	if op == Union || op == Xor {
		result = append(result, b[j:]...)
	}
	return result
}

// remappedMembers resolves every class of a table into its member
// list under the given dictionary remap, sorted ascending. Classes
// are resolved once, not per row.
func remappedMembers(table *ColorTable, remap []uint32) [][]uint32 {
	members := make([][]uint32, table.Len())
	for i := range members {
		old := table.Get(uint32(i)).Members()
		mapped := make([]uint32, len(old))
		for j, id := range old {
			mapped[j] = remap[id]
		}
		sort.Slice(mapped, func(a, b int) bool { return mapped[a] < mapped[b] })
		members[i] = mapped
	}
	return members
}

// ApplySetOp computes the row-wise set operation between two
// containers that share a row domain: row i of the result is
// op(A_i, B_i). The result has the union dictionary of both inputs, a
// fresh deduplicated class table, and the row identity metadata of
// the first input.
//
// Per-row operator evaluation runs on parallel workers; insertions
// into the output table go through a single ordered writer so class
// IDs are assigned in first-occurrence row order.
func ApplySetOp(op SetOp, ctr1, ctr2 *Container) (*Container, error) {
	if ctr1.RowCount() != ctr2.RowCount() {
		return nil, fmt.Errorf("cannot apply %v to containers with %v and %v rows", op, ctr1.RowCount(), ctr2.RowCount())
	}
	merged, remap1, remap2, err := ctr1.Dict.Union(ctr2.Dict)
	if err != nil {
		return nil, err
	}
	members1 := remappedMembers(ctr1.Classes, remap1)
	members2 := remappedMembers(ctr2.Classes, remap2)

	out := NewContainer()
	out.Dict = merged
	out.QueryName = ctr1.QueryName
	out.Rows = make([]uint32, 0, ctr1.RowCount())
	out.RowIDs = append([]uint32(nil), ctr1.RowIDs...)
	out.RowNames = append([]string(nil), ctr1.RowNames...)

	var p pipeline.Pipeline
	p.Source(&rowSource{ctr: ctr1})
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		rows := data.(rowRange)
		results := make([][]uint32, rows.count)
		for i := 0; i < rows.count; i++ {
			row := rows.start + i
			results[i] = mergeSorted(op, members1[ctr1.Rows[row]], members2[ctr2.Rows[row]])
		}
		return results
	})))
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		for _, members := range data.([][]uint32) {
			out.Rows = append(out.Rows, out.Classes.Insert(members))
		}
		return nil
	})))
	p.Run()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
