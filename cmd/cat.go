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
	"strings"

	"github.com/alnpack/alnpack/aln"
	"github.com/alnpack/alnpack/internal"
)

// CatHelp is the help string for this command.
const CatHelp = "cat parameters:\n" +
	"alnpack cat alp-input-file... alp-output-file\n" +
	"[--nr-of-threads nr]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// Cat implements the alnpack cat command. It concatenates the rows of
// the input containers, in order, into the output container.
func Cat() error {
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

	// The number of input files is variable, so filenames are
	// collected up to the first flag.
	var files []string
	rest := 2
	for rest < len(os.Args) && !strings.HasPrefix(os.Args[rest], "-") {
		files = append(files, os.Args[rest])
		rest++
	}
	if len(files) < 2 {
		if rest < len(os.Args) {
			getFilename(os.Args[rest], CatHelp)
		}
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, CatHelp)
		os.Exit(1)
	}
	parseFlags(flags, rest, CatHelp)

	inputs := files[:len(files)-1]
	output := files[len(files)-1]

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	for _, input := range inputs {
		if !checkExist("", input) {
			sanityChecksFailed = true
		}
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
		fmt.Fprint(os.Stderr, CatHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " cat")
	for _, file := range files {
		fmt.Fprint(&command, " ", file)
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

	return timedRun(timed, profile, "Concatenating containers.", 1, func() error {
		ctrs := make([]*aln.Container, len(inputs))
		for i, input := range inputs {
			fullInput, err := internal.FullPathname(input)
			if err != nil {
				return err
			}
			if ctrs[i], err = aln.ReadContainerFile(fullInput); err != nil {
				return err
			}
		}
		ctr, err := aln.Concatenate(ctrs)
		if err != nil {
			return err
		}
		return ctr.WriteFile(output)
	})
}
