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

func namesEqual(names1, names2 []string) bool {
	if len(names1) != len(names2) {
		return false
	}
	for i, name := range names1 {
		if name != names2[i] {
			return false
		}
	}
	return true
}

func TestRegister(t *testing.T) {
	dict := NewDictionary()
	for i, name := range []string{"refA", "refB", "refC"} {
		id, err := dict.Register(name)
		if err != nil {
			t.Fatal(err)
		}
		if id != uint32(i) {
			t.Error("Register ID assignment failed")
		}
	}
	if id, err := dict.Register("refB"); err != nil || id != 1 {
		t.Error("Register dedup failed")
	}
	if dict.Size() != 3 {
		t.Error("Size failed")
	}
	if id, found := dict.Lookup("refC"); !found || id != 2 {
		t.Error("Lookup failed")
	}
	if _, found := dict.Lookup("refD"); found {
		t.Error("Lookup of unregistered name failed")
	}
	if dict.Resolve(0) != "refA" {
		t.Error("Resolve failed")
	}
	if !namesEqual(dict.Names(), []string{"refA", "refB", "refC"}) {
		t.Error("Names failed")
	}
}

func TestNewDictionaryFromNames(t *testing.T) {
	dict, err := NewDictionaryFromNames([]string{"refA", "refB", "refA"})
	if err != nil {
		t.Fatal(err)
	}
	if dict.Size() != 2 {
		t.Error("NewDictionaryFromNames dedup failed")
	}
	if id, _ := dict.Lookup("refA"); id != 0 {
		t.Error("NewDictionaryFromNames first-seen ID failed")
	}
}

func TestDictionaryUnion(t *testing.T) {
	dict1, _ := NewDictionaryFromNames([]string{"refA", "refB"})
	dict2, _ := NewDictionaryFromNames([]string{"refC", "refB", "refD"})
	merged, remap1, remap2, err := dict1.Union(dict2)
	if err != nil {
		t.Fatal(err)
	}
	if !namesEqual(merged.Names(), []string{"refA", "refB", "refC", "refD"}) {
		t.Error("Union name order failed")
	}
	// The first input's names keep their IDs.
	if !positionsEqual(remap1, []uint32{0, 1}) {
		t.Error("Union remap1 failed")
	}
	if !positionsEqual(remap2, []uint32{2, 1, 3}) {
		t.Error("Union remap2 failed")
	}
	if dict1.Size() != 2 || dict2.Size() != 3 {
		t.Error("Union modified its inputs")
	}
}
