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

package format

import (
	"bufio"
	"strings"
	"testing"

	"github.com/alnpack/alnpack/aln"
)

var testTargets = []string{"refA", "refB", "refC"}

func targetsEqual(targets1, targets2 []string) bool {
	if len(targets1) != len(targets2) {
		return false
	}
	for i, name := range targets1 {
		if name != targets2[i] {
			return false
		}
	}
	return true
}

func TestThemistoAdapter(t *testing.T) {
	reader := NewThemistoReader(testTargets)
	rec, err := reader.Parse("7 2 0", 1)
	if err != nil {
		t.Fatal(err)
	}
	if rec.RowID != 7 || !rec.HasID || !targetsEqual(rec.Targets, []string{"refC", "refA"}) {
		t.Error("themisto parse failed")
	}
	if rec, err := reader.Parse("3", 2); err != nil || rec.RowID != 3 || len(rec.Targets) != 0 {
		t.Error("themisto parse unaligned failed")
	}
	if rec, err := reader.Parse("", 3); err != nil || rec != nil {
		t.Error("themisto parse blank failed")
	}
	if _, err := reader.Parse("x 1", 4); err == nil {
		t.Error("themisto invalid read ID not detected")
	} else if perr, ok := err.(*ParseError); !ok || perr.Line != 4 {
		t.Error("themisto parse error line failed")
	}
	if _, err := reader.Parse("0 3", 5); err == nil {
		t.Error("themisto out-of-range reference ID not detected")
	}

	writer := NewThemistoWriter(testTargets)
	buf, err := writer.Format(&aln.Record{RowID: 7, HasID: true, Targets: []string{"refC", "refA"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "7 0 2\n" {
		t.Error("themisto format failed:", string(buf))
	}
	if _, err := writer.Format(&aln.Record{Targets: []string{"refD"}}, nil); err == nil {
		t.Error("themisto unknown reference name not detected")
	}
}

func TestFulgorAdapter(t *testing.T) {
	reader := NewFulgorReader(testTargets)
	rec, err := reader.Parse("read1\t2\t0\t2", 1)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Name != "read1" || !targetsEqual(rec.Targets, []string{"refA", "refC"}) {
		t.Error("fulgor parse failed")
	}
	if rec, err := reader.Parse("read2\t0", 2); err != nil || len(rec.Targets) != 0 {
		t.Error("fulgor parse unaligned failed")
	}
	if _, err := reader.Parse("read3\t2\t0", 3); err == nil {
		t.Error("fulgor hit count mismatch not detected")
	}

	writer := NewFulgorWriter(testTargets)
	buf, err := writer.Format(&aln.Record{Name: "read1", Targets: []string{"refC", "refA"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "read1\t2\t0\t2\n" {
		t.Error("fulgor format failed:", string(buf))
	}
	if _, err := writer.Format(&aln.Record{Targets: []string{"refA"}}, nil); err == nil {
		t.Error("fulgor nameless record not detected")
	}
}

func TestBifrostAdapter(t *testing.T) {
	input := "query_name\trefA\trefB\trefC\nread1\t1\t0\t1\nread2\t0\t0\t0\n"
	reader, err := NewBifrostReader(bufio.NewReader(strings.NewReader(input)))
	if err != nil {
		t.Fatal(err)
	}
	if !targetsEqual(reader.Targets(), testTargets) {
		t.Error("bifrost header failed")
	}
	if reader.HeaderLines() != 1 {
		t.Error("bifrost header line count failed")
	}
	rec, err := reader.Parse("read1\t1\t0\t1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Name != "read1" || !targetsEqual(rec.Targets, []string{"refA", "refC"}) {
		t.Error("bifrost parse failed")
	}
	if _, err := reader.Parse("read3\t1\t0", 3); err == nil {
		t.Error("bifrost column count mismatch not detected")
	}
	if _, err := reader.Parse("read4\t1\t0\t2", 4); err == nil {
		t.Error("bifrost invalid matrix value not detected")
	}
	if _, err := NewBifrostReader(bufio.NewReader(strings.NewReader("wrong\theader\n"))); err == nil {
		t.Error("bifrost bad header not detected")
	}

	writer := NewBifrostWriter(testTargets)
	header, err := writer.Header()
	if err != nil {
		t.Fatal(err)
	}
	if string(header) != "query_name\trefA\trefB\trefC\n" {
		t.Error("bifrost format header failed")
	}
	buf, err := writer.Format(&aln.Record{Name: "read1", Targets: []string{"refC", "refA"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "read1\t1\t0\t1\n" {
		t.Error("bifrost format failed:", string(buf))
	}
}

func TestMetagraphAdapter(t *testing.T) {
	reader := NewMetagraphReader(nil)
	rec, err := reader.Parse("0\tread1\trefA:refC", 1)
	if err != nil {
		t.Fatal(err)
	}
	if rec.RowID != 0 || rec.Name != "read1" || !targetsEqual(rec.Targets, []string{"refA", "refC"}) {
		t.Error("metagraph parse failed")
	}
	if rec, err := reader.Parse("1\tread2\t", 2); err != nil || len(rec.Targets) != 0 {
		t.Error("metagraph parse unaligned failed")
	}
	if _, err := reader.Parse("x\tread3\trefA", 3); err == nil {
		t.Error("metagraph invalid query ID not detected")
	}

	writer := NewMetagraphWriter()
	buf, err := writer.Format(&aln.Record{RowID: 0, HasID: true, Name: "read1", Targets: []string{"refA", "refC"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "0\tread1\trefA:refC\n" {
		t.Error("metagraph format failed:", string(buf))
	}
}

func TestSAMAdapter(t *testing.T) {
	input := "@HD\tVN:1.6\n" +
		"@SQ\tSN:refA\tLN:100\n" +
		"@SQ\tSN:refB\tLN:200\n" +
		"read1\t0\trefA\t1\t255\t*\t*\t0\t0\t*\t*\n"
	reader, err := NewSAMReader(bufio.NewReader(strings.NewReader(input)))
	if err != nil {
		t.Fatal(err)
	}
	if !targetsEqual(reader.Targets(), []string{"refA", "refB"}) {
		t.Error("sam header targets failed")
	}
	if reader.HeaderLines() != 3 {
		t.Error("sam header line count failed")
	}
	if !reader.MergeRows() {
		t.Error("sam merge rows failed")
	}
	rec, err := reader.Parse("read1\t0\trefA\t1\t255\t*\t*\t0\t0\t*\t*", 4)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Name != "read1" || !targetsEqual(rec.Targets, []string{"refA"}) {
		t.Error("sam parse failed")
	}
	rec, err = reader.Parse("read2\t4\t*\t0\t255\t*\t*\t0\t0\t*\t*", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Targets) != 0 {
		t.Error("sam parse unmapped failed")
	}
	if _, err := reader.Parse("read3\tx\trefA", 6); err == nil {
		t.Error("sam invalid flag not detected")
	}
	if _, err := NewSAMReader(bufio.NewReader(strings.NewReader("@SQ\tLN:100\n"))); err == nil {
		t.Error("sam @SQ without SN not detected")
	}

	writer := NewSAMWriter([]string{"refA", "refB"})
	header, err := writer.Header()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(header), "@SQ\tSN:refA\tLN:1\n") {
		t.Error("sam format header failed")
	}
	buf, err := writer.Format(&aln.Record{Name: "read1", Targets: []string{"refA", "refB"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(buf), "\n"), "\n")
	if len(lines) != 2 ||
		!strings.HasPrefix(lines[0], "read1\t0\trefA\t") ||
		!strings.HasPrefix(lines[1], "read1\t256\trefB\t") {
		t.Error("sam format multi-mapped failed:", string(buf))
	}
	buf, err = writer.Format(&aln.Record{Name: "read2"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(buf), "read2\t4\t*\t") {
		t.Error("sam format unmapped failed:", string(buf))
	}
}

func TestTabularAdapter(t *testing.T) {
	writer := NewTabularWriter(testTargets)
	header, err := writer.Header()
	if err != nil {
		t.Fatal(err)
	}
	buf, err := writer.Format(&aln.Record{RowID: 0, HasID: true, Name: "read1", Targets: []string{"refA", "refC"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "0\tread1\t0,2\n" {
		t.Error("tabular format failed:", string(buf))
	}

	input := string(header) + string(buf) + "1\tread2\t\n"
	reader, err := NewTabularReader(bufio.NewReader(strings.NewReader(input)))
	if err != nil {
		t.Fatal(err)
	}
	if !targetsEqual(reader.Targets(), testTargets) {
		t.Error("tabular header failed")
	}
	rec, err := reader.Parse("0\tread1\t0,2", 2)
	if err != nil {
		t.Fatal(err)
	}
	if rec.RowID != 0 || rec.Name != "read1" || !targetsEqual(rec.Targets, []string{"refA", "refC"}) {
		t.Error("tabular parse failed")
	}
	if rec, err := reader.Parse("1\tread2\t", 3); err != nil || len(rec.Targets) != 0 {
		t.Error("tabular parse unaligned failed")
	}
	if _, err := NewTabularReader(bufio.NewReader(strings.NewReader("no header\n"))); err == nil {
		t.Error("tabular bad header not detected")
	}
}

func TestNewReaderRequirements(t *testing.T) {
	if _, err := NewReader(Themisto, nil, nil); err == nil {
		t.Error("themisto reader without targets not detected")
	}
	if _, err := NewReader(Fulgor, nil, nil); err == nil {
		t.Error("fulgor reader without targets not detected")
	}
	if _, err := NewReader("unknown", nil, testTargets); err == nil {
		t.Error("unknown input format not detected")
	}
	if _, err := NewWriter("unknown", testTargets); err == nil {
		t.Error("unknown output format not detected")
	}
	if _, err := NewWriter(Bifrost, nil); err == nil {
		t.Error("bifrost writer without targets not detected")
	}
	if adapter, err := NewReader("", nil, testTargets); err != nil || adapter == nil {
		t.Error("default format failed")
	}
}
