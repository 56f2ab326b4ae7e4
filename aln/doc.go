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

/*
Package aln implements the compressed color-set codec and set-algebra
engine of alnpack.

A pseudoalignment records, per sequencing read or k-mer, the subset of
a reference universe it aligns to. Package aln deduplicates these
alignment sets into color classes, encodes each class with a
per-class choice between a sparse position-list encoding and a dense
run-length encoding, and bundles a reference dictionary, the
deduplicated color-class table, and a per-row class index into a
self-contained container that supports set operations and
concatenation without decompressing to plaintext.
*/
package aln
