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
	"bufio"
	"encoding/binary"
	"fmt"
	"hash/crc64"
	"io"
	"io/ioutil"
	"os"

	"github.com/alnpack/alnpack/internal"
)

// Container file layout. All fixed-width integers are little-endian;
// variable-width integers use the unsigned varint encoding of
// encoding/binary. The trailing CRC-64/ECMA checksum covers every
// byte that precedes it.
const (
	containerMagic   = "ALNP"
	containerVersion = uint16(1)

	// Extension is the conventional filename extension for alnpack
	// containers.
	Extension = ".alp"
)

var crcTable = crc64.MakeTable(crc64.ECMA)

func writeUvarint(w io.Writer, v uint64) error {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	_, err := w.Write(tmp[:n])
	return err
}

func writeUint(w io.Writer, v interface{}) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func writeString(w io.Writer, s string) error {
	if err := writeUvarint(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// Write serializes the container. The checksum written last covers
// all preceding bytes, so a partially written container is rejected
// on the next read.
func (ctr *Container) Write(out io.Writer) error {
	bw := bufio.NewWriter(out)
	crc := crc64.New(crcTable)
	w := io.MultiWriter(bw, crc)

	if _, err := io.WriteString(w, containerMagic); err != nil {
		return err
	}
	if err := writeUint(w, containerVersion); err != nil {
		return err
	}
	if _, err := w.Write(ctr.ID[:]); err != nil {
		return err
	}
	if err := writeString(w, ctr.QueryName); err != nil {
		return err
	}
	if err := writeUint(w, ctr.Universe()); err != nil {
		return err
	}

	if err := writeUint(w, uint32(ctr.Dict.Size())); err != nil {
		return err
	}
	for _, name := range ctr.Dict.Names() {
		if err := writeString(w, name); err != nil {
			return err
		}
	}

	if err := writeUint(w, uint32(ctr.Classes.Len())); err != nil {
		return err
	}
	var payload []byte
	for i := 0; i < ctr.Classes.Len(); i++ {
		class := ctr.Classes.Get(uint32(i))
		if _, err := w.Write([]byte{class.tag()}); err != nil {
			return err
		}
		if err := writeUvarint(w, uint64(class.payloadValues())); err != nil {
			return err
		}
		payload = class.payload(payload[:0])
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}

	if err := writeUint(w, uint64(len(ctr.Rows))); err != nil {
		return err
	}
	for _, id := range ctr.Rows {
		if err := writeUvarint(w, uint64(id)); err != nil {
			return err
		}
	}

	if len(ctr.RowIDs) > 0 {
		if _, err := w.Write([]byte{1}); err != nil {
			return err
		}
		for _, id := range ctr.RowIDs {
			if err := writeUvarint(w, uint64(id)); err != nil {
				return err
			}
		}
	} else if _, err := w.Write([]byte{0}); err != nil {
		return err
	}

	if len(ctr.RowNames) > 0 {
		if _, err := w.Write([]byte{1}); err != nil {
			return err
		}
		for _, name := range ctr.RowNames {
			if err := writeString(w, name); err != nil {
				return err
			}
		}
	} else if _, err := w.Write([]byte{0}); err != nil {
		return err
	}

	if err := writeUint(bw, crc.Sum64()); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile serializes the container to the named file.
func (ctr *Container) WriteFile(name string) (err error) {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := file.Close(); err == nil {
			err = nerr
		}
	}()
	return ctr.Write(file)
}

// byteCursor walks a fully checksummed byte slice during decode.
type byteCursor struct {
	data []byte
	off  int
}

func (c *byteCursor) take(n int) ([]byte, error) {
	if c.off+n > len(c.data) {
		return nil, &InvalidContainerError{Reason: fmt.Sprintf("truncated at byte offset %v", c.off)}
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *byteCursor) uvarint() (uint64, error) {
	v, n := binary.Uvarint(c.data[c.off:])
	if n <= 0 {
		return 0, &InvalidContainerError{Reason: fmt.Sprintf("bad varint at byte offset %v", c.off)}
	}
	c.off += n
	return v, nil
}

func (c *byteCursor) uint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *byteCursor) uint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *byteCursor) uint64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *byteCursor) str() (string, error) {
	n, err := c.uvarint()
	if err != nil {
		return "", err
	}
	b, err := c.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadContainer deserializes a container. The checksum is verified
// before any section is decoded; no partial decode is attempted on a
// corrupt container.
func ReadContainer(in io.Reader) (*Container, error) {
	data, err := ioutil.ReadAll(in)
	if err != nil {
		return nil, err
	}
	if len(data) < len(containerMagic)+2+16+8 {
		return nil, &InvalidContainerError{Reason: "file too short to be an alnpack container"}
	}
	if string(data[:len(containerMagic)]) != containerMagic {
		return nil, &InvalidContainerError{Reason: "bad magic bytes"}
	}
	body, stored := data[:len(data)-8], binary.LittleEndian.Uint64(data[len(data)-8:])
	if computed := crc64.Checksum(body, crcTable); computed != stored {
		return nil, &ChecksumMismatchError{Want: stored, Got: computed}
	}

	c := &byteCursor{data: body, off: len(containerMagic)}
	version, err := c.uint16()
	if err != nil {
		return nil, err
	}
	if version != containerVersion {
		return nil, &InvalidContainerError{Reason: fmt.Sprintf("unrecognized container version %v", version)}
	}

	ctr := &Container{Dict: NewDictionary(), Classes: NewColorTable()}
	idBytes, err := c.take(16)
	if err != nil {
		return nil, err
	}
	copy(ctr.ID[:], idBytes)
	if ctr.QueryName, err = c.str(); err != nil {
		return nil, err
	}
	universe, err := c.uint32()
	if err != nil {
		return nil, err
	}

	dictCount, err := c.uint32()
	if err != nil {
		return nil, err
	}
	if dictCount != universe {
		return nil, &InvalidContainerError{Reason: fmt.Sprintf("universe size %v does not match dictionary size %v", universe, dictCount)}
	}
	for i := uint32(0); i < dictCount; i++ {
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		if _, err := ctr.Dict.Register(name); err != nil {
			return nil, err
		}
	}
	if uint32(ctr.Dict.Size()) != dictCount {
		return nil, &InvalidContainerError{Reason: "duplicate names in dictionary section"}
	}

	classCount, err := c.uint32()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < classCount; i++ {
		tagByte, err := c.take(1)
		if err != nil {
			return nil, err
		}
		valueCount, err := c.uvarint()
		if err != nil {
			return nil, err
		}
		values := make([]uint64, valueCount)
		for j := range values {
			if values[j], err = c.uvarint(); err != nil {
				return nil, err
			}
		}
		class, err := colorClassFromPayload(tagByte[0], values, int(i), universe)
		if err != nil {
			return nil, err
		}
		ctr.Classes.insertClass(class)
	}

	rowCount, err := c.uint64()
	if err != nil {
		return nil, err
	}
	ctr.Rows = make([]uint32, rowCount)
	for i := range ctr.Rows {
		id, err := c.uvarint()
		if err != nil {
			return nil, err
		}
		if id >= uint64(classCount) {
			return nil, &RowIndexOutOfRangeError{Row: i, Class: id, Classes: int(classCount)}
		}
		ctr.Rows[i] = uint32(id)
	}

	idsFlag, err := c.take(1)
	if err != nil {
		return nil, err
	}
	if idsFlag[0] == 1 {
		ctr.RowIDs = make([]uint32, rowCount)
		for i := range ctr.RowIDs {
			id, err := c.uvarint()
			if err != nil {
				return nil, err
			}
			ctr.RowIDs[i] = uint32(id)
		}
	}

	namesFlag, err := c.take(1)
	if err != nil {
		return nil, err
	}
	if namesFlag[0] == 1 {
		ctr.RowNames = make([]string, rowCount)
		for i := range ctr.RowNames {
			if ctr.RowNames[i], err = c.str(); err != nil {
				return nil, err
			}
		}
	}

	if c.off != len(body) {
		return nil, &InvalidContainerError{Reason: fmt.Sprintf("%v trailing bytes after row-name section", len(body)-c.off)}
	}
	return ctr, nil
}

// ReadContainerFile deserializes the named container file.
func ReadContainerFile(name string) (ctr *Container, err error) {
	file := internal.FileOpen(name)
	defer func() {
		if nerr := file.Close(); err == nil {
			err = nerr
		}
	}()
	return ReadContainer(file)
}
