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

// alnpack compresses pseudoalignment data into a compact binary
// container format, converts between the plaintext formats produced by
// common pseudoalignment tools, and computes set operations and
// concatenations directly on the compressed containers.
//
// Please see https://github.com/alnpack/alnpack for a documentation of
// the tool, and below for the API documentation.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alnpack/alnpack/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: encode, decode, convert, cat, set")
	fmt.Fprint(os.Stderr, "\n", cmd.EncodeHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.DecodeHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.ConvertHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.CatHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.SetHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "encode":
		err = cmd.Encode()
	case "decode":
		err = cmd.Decode()
	case "convert":
		err = cmd.Convert()
	case "cat":
		err = cmd.Cat()
	case "set":
		err = cmd.Set()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Printf("Unknown command %v.\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
