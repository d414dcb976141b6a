// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Command matdump prints the variable tree of a MAT-file Version 7
// container to stdout.
package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"firefly-os.dev/matio"
)

var program = filepath.Base(os.Args[0])

func main() {
	if err := Main(context.Background(), os.Stdout, os.Args[1:]); err != nil {
		log.Printf("%s: %v", program, err)
		os.Exit(1)
	}
}

// Main parses a MAT-file and prints its variable tree to w.
func Main(ctx context.Context, w io.Writer, args []string) error {
	flags := flag.NewFlagSet(program, flag.ExitOnError)

	var help, verbose, verify bool
	flags.BoolVar(&verbose, "v", false, "Log each variable as it is read.")
	flags.BoolVar(&verify, "verify", false, "Recompute the file's SHA-256 checksum and compare it against a FILE.mat.sha256 sidecar, if present.")
	flags.BoolVar(&help, "h", false, "Show this message and exit.")

	flags.Usage = func() {
		log.Printf("Usage:\n  %s [OPTIONS] FILE.mat\n\n", program)
		flags.PrintDefaults()
		os.Exit(2)
	}

	if err := flags.Parse(args); err != nil || help {
		flags.Usage()
	}

	filenames := flags.Args()
	if len(filenames) != 1 {
		flags.Usage()
	}
	path := filenames[0]

	if verify {
		sum, err := checksumFile(path)
		if err != nil {
			return fmt.Errorf("failed to checksum %s: %w", path, err)
		}
		digest := hex.EncodeToString(sum[:])
		fmt.Fprintf(w, "%s  %s\n", digest, path)

		sidecar := path + ".sha256"
		want, err := readSidecarDigest(sidecar)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// No sidecar to verify against.
		case err != nil:
			return fmt.Errorf("failed to read %s: %w", sidecar, err)
		case !strings.EqualFold(want, digest):
			return fmt.Errorf("checksum mismatch for %s: sidecar says %s, computed %s", path, want, digest)
		default:
			fmt.Fprintf(w, "%s: OK\n", sidecar)
		}
	}

	f, err := matio.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	f.Each(func(name string, v matio.Variable) {
		if verbose {
			log.Printf("%s: read variable %q", program, name)
		}
		printVariable(w, name, v, 0)
	})

	return nil
}

func checksumFile(path string) ([32]byte, error) {
	r, err := os.Open(path)
	if err != nil {
		return [32]byte{}, err
	}
	defer r.Close()
	return matio.Checksum(r)
}

// readSidecarDigest reads a hex SHA-256 digest from a ".sha256" sidecar
// file, tolerating the common "DIGEST  FILENAME" checksum-tool format
// as well as a bare digest on its own line.
func readSidecarDigest(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(strings.SplitN(string(bytes.TrimSpace(raw)), "\n", 2)[0])
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty sidecar %s", path)
	}
	return fields[0], nil
}

func printVariable(w io.Writer, name string, v matio.Variable, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	if kind, ok := v.ElementKind(); ok {
		fmt.Fprintf(w, "%s%s: %s %v\n", indent, name, kind, v.Dim())
		return
	}
	if names, ok := v.FieldNames(); ok {
		fmt.Fprintf(w, "%s%s: struct %v fields=%v\n", indent, name, v.Dim(), names)
		return
	}
	fmt.Fprintf(w, "%s%s: %v\n", indent, name, v.Dim())
}
