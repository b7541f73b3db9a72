// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Command md5rush searches for a byte sequence whose MD5 digest begins
// with a specified number of hexadecimal-zero nibbles.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/md5rush/md5rush/internal/cli"
	"github.com/md5rush/md5rush/internal/cpufeature"
	"github.com/md5rush/md5rush/internal/driver"
	"github.com/md5rush/md5rush/internal/md5core"
	"github.com/md5rush/md5rush/internal/search"

	log "github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	progname := filepath.Base(argv[0])

	cfg, err := cli.Parse(progname, argv[1:], os.Stdout)
	if err != nil {
		if errors.Is(err, cli.ExitUsage) {
			return 0
		}
		return 1
	}

	prefix, err := cli.ReadPrefix(cfg.PrefixFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", progname, err)
		return 1
	}

	fmt.Printf("Using %d threads.\n", cfg.Threads)

	width := cpufeature.Width()
	log.WithFields(log.Fields{"threads": cfg.Threads, "lane_width": width}).Debug("starting coordinator")

	coord := search.NewCoordinator(cfg.Threads, width, 2*cfg.Threads, 10000)

	drv := &driver.Driver{Coordinator: coord, Zeros: cfg.Zeros}
	result, runErr := drv.Run(prefix)

	if shutdownErr := coord.Shutdown(); shutdownErr != nil {
		log.WithError(shutdownErr).Error("worker pool reported errors during shutdown")
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", progname, runErr)
		return 1
	}

	fmt.Println("Treasure Found!")
	fmt.Printf("Treasure: %s\n", md5core.FormatHex(result.Words))
	fmt.Printf("Hash: %s\n", hex.EncodeToString(rehash(result.Words)))

	if cfg.OutFile != "" {
		if err := cli.WriteResult(cfg.OutFile, result.Words); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", progname, err)
			return 1
		}
	}
	return 0
}

// rehash independently recomputes the MD5 of the winning sequence by
// streaming it through the ordinary hash.Hash-shaped Digest, rather than
// reusing the search kernel's own running state, so any drift between
// the kernel and the framer shows in the printed Hash line. The result
// is printed only; it is not compared against the zero-nibble target.
func rehash(words []uint32) []byte {
	d := md5core.NewDigest()
	d.Write(md5core.WordsToBytes(words))
	return d.Sum(nil)
}
