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
	"runtime"

	"github.com/alnpack/alnpack/aln"
	"github.com/alnpack/alnpack/format"
	"github.com/alnpack/alnpack/internal"
)

// ConvertHelp is the help string for this command.
const ConvertHelp = "convert parameters:\n" +
	"alnpack convert input-aln-file output-aln-file\n" +
	"[--from [themisto | fulgor | bifrost | metagraph | sam | tabular]]\n" +
	"[--to [themisto | fulgor | bifrost | metagraph | sam | tabular]]\n" +
	"[--targets target-list-file]\n" +
	"[--nr-of-threads nr]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// Convert implements the alnpack convert command. It translates
// between two plaintext formats without building a container.
func Convert() error {
	var (
		fromFormat, toFormat, targetsFile string
		profile, logPath                  string
		nrOfThreads                       int
		timed                             bool
	)

	var flags flag.FlagSet

	flags.StringVar(&fromFormat, "from", "", "format of the input file")
	flags.StringVar(&toFormat, "to", "", "format of the output file")
	flags.StringVar(&targetsFile, "targets", "", "file with the target names of the aligner's index, one per line")
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(flags, 4, ConvertHelp)

	input := getFilename(os.Args[2], ConvertHelp)
	output := getFilename(os.Args[3], ConvertHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if !checkCreate("", output) {
		sanityChecksFailed = true
	}
	if !checkFormat("--from", fromFormat, format.Themisto, format.Fulgor, format.Bifrost, format.Metagraph, format.SAM, format.Tabular) {
		sanityChecksFailed = true
	}
	if !checkFormat("--to", toFormat, format.Themisto, format.Fulgor, format.Bifrost, format.Metagraph, format.SAM, format.Tabular) {
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
		fmt.Fprint(os.Stderr, ConvertHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " convert ", input, " ", output)
	if fromFormat != "" {
		fmt.Fprint(&command, " --from ", fromFormat)
	}
	if toFormat != "" {
		fmt.Fprint(&command, " --to ", toFormat)
	}
	if targetsFile != "" {
		fmt.Fprint(&command, " --targets ", targetsFile)
	}
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

	return timedRun(timed, profile, "Converting pseudoalignment data.", 1, func() error {
		in := internal.OpenPlaintext(input)
		defer internal.Close(in)
		reader := bufio.NewReader(in)
		adapter, err := format.NewReader(fromFormat, reader, targets)
		if err != nil {
			return err
		}
		writerTargets := targets
		if len(writerTargets) == 0 {
			writerTargets = adapter.Targets()
		}
		formatter, err := format.NewWriter(toFormat, writerTargets)
		if err != nil {
			return err
		}
		file := internal.FileCreate(output)
		out := bufio.NewWriter(file)
		if err := aln.ConvertRecords(reader, adapter, formatter, out); err != nil {
			_ = file.Close()
			return err
		}
		if err := out.Flush(); err != nil {
			_ = file.Close()
			return err
		}
		return file.Close()
	})
}
