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

package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/alnpack/alnpack/aln"
)

// SetHelp is the help string for this command.
const SetHelp = "set parameters:\n" +
	"alnpack set (union | intersect | diff | xor) alp-file-1 alp-file-2 alp-output-file\n" +
	"[--nr-of-threads nr]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// Set implements the alnpack set command. It applies the named set
// operation row by row between two containers with the same number of
// rows.
func Set() error {
	var (
		profile, logPath string
		nrOfThreads      int
		timed            bool
	)

	var flags flag.FlagSet

	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	if len(os.Args) < 6 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, SetHelp)
		os.Exit(1)
	}

	op, err := aln.ParseSetOp(os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, SetHelp)
		os.Exit(1)
	}

	input1 := getFilename(os.Args[3], SetHelp)
	input2 := getFilename(os.Args[4], SetHelp)
	output := getFilename(os.Args[5], SetHelp)

	parseFlags(flags, 6, SetHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input1) {
		sanityChecksFailed = true
	}
	if !checkExist("", input2) {
		sanityChecksFailed = true
	}
	if !checkCreate("", output) {
		sanityChecksFailed = true
	}
	if profile != "" && !checkCreate("--profile", profile) {
		sanityChecksFailed = true
	}
	if nrOfThreads < 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid nr-of-threads: ", nrOfThreads)
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, SetHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " set ", op, " ", input1, " ", input2, " ", output)
	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
		fmt.Fprint(&command, " --nr-of-threads ", nrOfThreads)
	}
	if timed {
		fmt.Fprint(&command, " --timed ")
	}
	if profile != "" {
		fmt.Fprint(&command, " --profile ", profile)
	}
	if logPath != "" {
		fmt.Fprint(&command, " --log-path ", logPath)
	}

	// executing command

	log.Println("Executing command:\n", command.String())

	return timedRun(timed, profile, fmt.Sprint("Computing the row-wise ", op, " of two containers."), 1, func() error {
		ctr1, err := aln.ReadContainerFile(input1)
		if err != nil {
			return err
		}
		ctr2, err := aln.ReadContainerFile(input2)
		if err != nil {
			return err
		}
		ctr, err := aln.ApplySetOp(op, ctr1, ctr2)
		if err != nil {
			return err
		}
		return ctr.WriteFile(output)
	})
}
