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

import "fmt"

// A DictionaryOverflowError is reported when the reference universe
// would exceed the representable ID range.
type DictionaryOverflowError struct {
	Name string
}

func (err *DictionaryOverflowError) Error() string {
	return fmt.Sprintf("reference dictionary overflow while registering %v", err.Name)
}

// A CodecCorruptionError is reported when a decoded color class is
// inconsistent with the declared universe size. The container it was
// read from must be treated as corrupt.
type CodecCorruptionError struct {
	Class    int
	Position uint32
	Universe uint32
}

func (err *CodecCorruptionError) Error() string {
	return fmt.Sprintf("color class %v references position %v beyond universe size %v", err.Class, err.Position, err.Universe)
}

// A ChecksumMismatchError is reported when the trailing checksum of a
// container does not match its contents.
type ChecksumMismatchError struct {
	Want uint64
	Got  uint64
}

func (err *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("container checksum mismatch: stored %#x, computed %#x", err.Want, err.Got)
}

// A RowIndexOutOfRangeError is reported when a row references a color
// class that does not exist in the container's class table.
type RowIndexOutOfRangeError struct {
	Row     int
	Class   uint64
	Classes int
}

func (err *RowIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("row %v references color class %v, but the class table holds only %v classes", err.Row, err.Class, err.Classes)
}

// An InvalidContainerError is reported when a file is not an alnpack
// container, or was written by an unrecognized version.
type InvalidContainerError struct {
	Reason string
}

func (err *InvalidContainerError) Error() string {
	return fmt.Sprintf("invalid container: %v", err.Reason)
}
