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

import "math"

// A Dictionary is an ordered, deduplicated registry of reference
// sequence names. Each name is assigned a stable integer ID from the
// dense range [0, Size()). The dictionary defines the universe against
// which every color class in a container is a bitset.
type Dictionary struct {
	names []string
	ids   map[string]uint32
}

// NewDictionary returns an empty reference dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{ids: make(map[string]uint32)}
}

// NewDictionaryFromNames returns a dictionary that registers the given
// names in order. Duplicate names keep their first-seen ID.
func NewDictionaryFromNames(names []string) (*Dictionary, error) {
	dict := NewDictionary()
	for _, name := range names {
		if _, err := dict.Register(name); err != nil {
			return nil, err
		}
	}
	return dict, nil
}

// Register returns the ID for the given reference name, assigning the
// next dense ID if the name has not been seen before.
func (dict *Dictionary) Register(name string) (uint32, error) {
	if id, found := dict.ids[name]; found {
		return id, nil
	}
	if uint64(len(dict.names)) > math.MaxUint32 {
		return 0, &DictionaryOverflowError{Name: name}
	}
	id := uint32(len(dict.names))
	dict.names = append(dict.names, name)
	dict.ids[name] = id
	return id, nil
}

// Lookup returns the ID for the given reference name, or false if the
// name is not registered.
func (dict *Dictionary) Lookup(name string) (uint32, bool) {
	id, found := dict.ids[name]
	return id, found
}

// Resolve returns the name registered for the given ID. The ID must be
// below Size().
func (dict *Dictionary) Resolve(id uint32) string {
	return dict.names[id]
}

// Names returns the registered names in ID order. The returned slice
// is owned by the dictionary and must not be modified.
func (dict *Dictionary) Names() []string {
	return dict.names
}

// Size returns the number of registered names.
func (dict *Dictionary) Size() int {
	return len(dict.names)
}

// Union builds a fresh dictionary containing the names of dict
// followed by the names of other that dict does not contain, in
// first-seen order. It also returns the remap tables from the old IDs
// of both inputs to the IDs in the merged dictionary. The inputs are
// not modified.
func (dict *Dictionary) Union(other *Dictionary) (merged *Dictionary, remap1, remap2 []uint32, err error) {
	merged = NewDictionary()
	remap1 = make([]uint32, len(dict.names))
	remap2 = make([]uint32, len(other.names))
	for oldID, name := range dict.names {
		newID, err := merged.Register(name)
		if err != nil {
			return nil, nil, nil, err
		}
		remap1[oldID] = newID
	}
	for oldID, name := range other.names {
		newID, err := merged.Register(name)
		if err != nil {
			return nil, nil, nil, err
		}
		remap2[oldID] = newID
	}
	return merged, remap1, remap2, nil
}
