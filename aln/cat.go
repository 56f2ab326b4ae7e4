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

import "errors"

// Concatenate combines the inputs end-to-end: the output holds the
// rows of the first container, then the second, and so on, over the
// union of all input dictionaries. Every input color class is
// remapped onto the merged dictionary and re-inserted into one fresh
// deduplicated table, so classes that become identical after the
// remap collapse to a single ID. The inputs are not modified.
//
// Row identifiers and query names are carried over only when every
// input has them; the query name of the result is that of the first
// input.
func Concatenate(inputs []*Container) (*Container, error) {
	if len(inputs) == 0 {
		return nil, errors.New("cat needs at least one input container")
	}

	dict := NewDictionary()
	remaps := make([][]uint32, len(inputs))
	for i, in := range inputs {
		// The merged dictionary keeps earlier names in place, so
		// only the remap of the newly merged input matters.
		var err error
		if dict, _, remaps[i], err = dict.Union(in.Dict); err != nil {
			return nil, err
		}
	}

	allIDs := true
	allNames := true
	totalRows := 0
	for _, in := range inputs {
		totalRows += in.RowCount()
		if len(in.RowIDs) == 0 {
			allIDs = false
		}
		if len(in.RowNames) == 0 {
			allNames = false
		}
	}

	out := NewContainer()
	out.Dict = dict
	out.QueryName = inputs[0].QueryName
	out.Rows = make([]uint32, 0, totalRows)

	// Insertion order must follow row order across all inputs for
	// the first-occurrence determinism of class IDs, so the inputs
	// are processed strictly in sequence.
	for i, in := range inputs {
		members := remappedMembers(in.Classes, remaps[i])
		classIDs := make([]uint32, in.Classes.Len())
		seen := make([]bool, in.Classes.Len())
		for _, class := range in.Rows {
			if !seen[class] {
				classIDs[class] = out.Classes.Insert(members[class])
				seen[class] = true
			}
			out.Rows = append(out.Rows, classIDs[class])
		}
		if allIDs {
			out.RowIDs = append(out.RowIDs, in.RowIDs...)
		}
		if allNames {
			out.RowNames = append(out.RowNames, in.RowNames...)
		}
	}
	return out, nil
}
