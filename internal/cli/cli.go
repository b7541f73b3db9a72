// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Package cli implements the thin glue around the search core: flag
// parsing, usage text, reading the prefix file, and writing the result
// file.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/pflag"

	"github.com/md5rush/md5rush/internal/md5core"
)

// Config is the validated result of parsing argv.
type Config struct {
	Zeros      uint32
	Threads    int
	PrefixFile string
	OutFile    string
}

// ExitUsage is returned by Parse when -h was given, after Parse has
// printed the usage text: the caller should exit 0, not 1.
var ExitUsage = fmt.Errorf("usage requested")

// Parse parses argv (excluding the program name) against the md5rush
// contract: -z ZEROS (required, 0..32), -t THREADS (default 0 =
// autodetect), -p PREFIXFILE (optional), -o OUTFILE (optional), -h
// (usage). Any extra positional operand is an error.
func Parse(progname string, argv []string, usage io.Writer) (Config, error) {
	fs := pflag.NewFlagSet(progname, pflag.ContinueOnError)
	fs.SetOutput(io.Discard) // we print our own errors, matching the one-line stderr contract

	help := fs.BoolP("help", "h", false, "print this usage message and exit")
	zeros := fs.IntP("zeros", "z", -1, "number of leading zero hex nibbles to search for (0-32)")
	threads := fs.IntP("threads", "t", 0, "number of worker threads (0: autodetect)")
	prefixFile := fs.StringP("prefix", "p", "", "path to a prefix file (optional)")
	outFile := fs.StringP("out", "o", "", "path to write the winning byte sequence to (optional)")

	if err := fs.Parse(argv); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", progname, err)
		return Config{}, err
	}

	if *help {
		printUsage(progname, usage)
		return Config{}, ExitUsage
	}

	if fs.NArg() > 0 {
		err := fmt.Errorf("extra operand '%s'", fs.Arg(0))
		fmt.Fprintf(os.Stderr, "%s: %v\n", progname, err)
		return Config{}, err
	}

	if *zeros < 0 {
		err := fmt.Errorf("missing required argument '-z'")
		fmt.Fprintf(os.Stderr, "%s: %v\n", progname, err)
		return Config{}, err
	}
	if *zeros > 32 {
		err := fmt.Errorf("invalid argument '%d' for '-z': valid arguments are 0 to 32 (inclusive)", *zeros)
		fmt.Fprintf(os.Stderr, "%s: %v\n", progname, err)
		return Config{}, err
	}

	nThreads := *threads
	if nThreads == 0 {
		nThreads = runtime.NumCPU()
		if nThreads == 0 {
			err := fmt.Errorf("unknown number of hardware thread contexts, please specify '-t <threads>'")
			fmt.Fprintf(os.Stderr, "%s: %v\n", progname, err)
			return Config{}, err
		}
	}

	return Config{
		Zeros:      uint32(*zeros),
		Threads:    nThreads,
		PrefixFile: *prefixFile,
		OutFile:    *outFile,
	}, nil
}

func printUsage(progname string, out io.Writer) {
	fmt.Fprintf(out, "Usage: %s [OPTION]...\n\n", progname)
	fmt.Fprintln(out, "  -z ZEROS      number of leading zero hex nibbles to search for (required, 0-32)")
	fmt.Fprintln(out, "  -t THREADS    number of worker threads (0: autodetect)")
	fmt.Fprintln(out, "  -p PREFIXFILE path to a prefix file (optional)")
	fmt.Fprintln(out, "  -o OUTFILE    path to write the winning byte sequence to (optional)")
	fmt.Fprintln(out, "  -h            print this message and exit")
}

// ReadPrefix reads path verbatim and packs it into 32-bit words. An
// empty path yields an empty prefix.
func ReadPrefix(path string) ([]uint32, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read prefix from '%s'", path)
	}
	return md5core.BytesToWords(b), nil
}

// WriteResult writes the winning word sequence to path in the same
// little-endian packing ReadPrefix expects.
func WriteResult(path string, words []uint32) error {
	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, md5core.WordsToBytes(words), 0o644); err != nil {
		return fmt.Errorf("cannot write result to '%s'", path)
	}
	return nil
}
