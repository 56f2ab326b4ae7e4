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
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnpack/alnpack/aln"
	"github.com/alnpack/alnpack/format"
	"github.com/alnpack/alnpack/internal"
)

// EncodeHelp is the help string for this command.
const EncodeHelp = "encode parameters:\n" +
	"alnpack encode aln-file alp-file\n" +
	"[--format [themisto | fulgor | bifrost | metagraph | sam | tabular]]\n" +
	"[--targets target-list-file]\n" +
	"[--query name]\n" +
	"[--nr-of-threads nr]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// Encode implements the alnpack encode command.
func Encode() error {
	var (
		inputFormat, targetsFile, queryName string
		profile, logPath                    string
		nrOfThreads                         int
		timed                               bool
	)

	var flags flag.FlagSet

	flags.StringVar(&inputFormat, "format", "", "format of the input file")
	flags.StringVar(&targetsFile, "targets", "", "file with the target names of the aligner's index, one per line")
	flags.StringVar(&queryName, "query", "", "name of the query the alignment was generated from")
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(flags, 4, EncodeHelp)

	input := getFilename(os.Args[2], EncodeHelp)
	output := getFilename(os.Args[3], EncodeHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if !checkCreate("", output) {
		sanityChecksFailed = true
	}
	if !checkFormat("--format", inputFormat, format.Themisto, format.Fulgor, format.Bifrost, format.Metagraph, format.SAM, format.Tabular) {
		sanityChecksFailed = true
	}
	if targetsFile != "" && !checkExist("--targets", targetsFile) {
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
		fmt.Fprint(os.Stderr, EncodeHelp)
		os.Exit(1)
	}

	if queryName == "" {
		base := filepath.Base(input)
		queryName = strings.TrimSuffix(base, filepath.Ext(base))
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " encode ", input, " ", output)
	if inputFormat != "" {
		fmt.Fprint(&command, " --format ", inputFormat)
	}
	if targetsFile != "" {
		fmt.Fprint(&command, " --targets ", targetsFile)
	}
	fmt.Fprint(&command, " --query ", queryName)
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

	var targets []string
	if targetsFile != "" {
		var err error
		if targets, err = format.ReadTargets(targetsFile); err != nil {
			return err
		}
	}

	return timedRun(timed, profile, "Encoding pseudoalignment data.", 1, func() error {
		in := internal.OpenPlaintext(input)
		defer internal.Close(in)
		reader := bufio.NewReader(in)
		adapter, err := format.NewReader(inputFormat, reader, targets)
		if err != nil {
			return err
		}
		ctr, err := aln.EncodeRecords(reader, adapter, queryName)
		if err != nil {
			return err
		}
		return ctr.WriteFile(output)
	})
}
