// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package dealfile reads and writes game script files. A script is a flat
// text file of repeating 5-line groups: a header naming the deal type and
// first leader, then the four hands in seat order N, E, S, W, each line 13
// cards concatenated with no separators.
package dealfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmisiaszek/sik-2/kierki"
)

// Load reads and validates the script at path. Any error is fatal to the
// caller and names the file and line it came from.
func Load(path string) ([]kierki.DealSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	deals, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return deals, nil
}

// Parse decodes a script from r. Every line must be newline-terminated and
// the line count must be a positive multiple of 5.
func Parse(r io.Reader) ([]kierki.DealSpec, error) {
	br := bufio.NewReader(r)
	var deals []kierki.DealSpec
	lineNo := 0
	for {
		header, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		lineNo++
		spec, err := parseHeader(header)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		for _, seat := range kierki.Seats {
			line, err := readLine(br)
			if err != nil {
				return nil, fmt.Errorf("line %d: hand for seat %v: %w", lineNo+1, seat, err)
			}
			lineNo++
			hand, err := kierki.ParseCards(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: hand for seat %v: %w", lineNo, seat, err)
			}
			spec.Hands[seat] = hand
		}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: deal %d: %w", lineNo, len(deals)+1, err)
		}
		deals = append(deals, spec)
	}
	if len(deals) == 0 {
		return nil, fmt.Errorf("script holds no deals")
	}
	return deals, nil
}

func parseHeader(line string) (kierki.DealSpec, error) {
	var spec kierki.DealSpec
	if len(line) != 2 {
		return spec, fmt.Errorf("bad deal header %q, want type digit and leader letter", line)
	}
	dealType, err := kierki.ParseDealType(line[0])
	if err != nil {
		return spec, err
	}
	leader, err := kierki.ParseSeat(line[1])
	if err != nil {
		return spec, err
	}
	spec.Type = dealType
	spec.Leader = leader
	return spec, nil
}

// readLine reads one newline-terminated line without its terminator. A
// final line with no newline is an error; scripts end with a newline.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err == io.EOF {
		if line != "" {
			return "", fmt.Errorf("unterminated final line")
		}
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// Write renders deals back into script form, the inverse of Parse.
func Write(w io.Writer, deals []kierki.DealSpec) error {
	bw := bufio.NewWriter(w)
	for _, d := range deals {
		fmt.Fprintf(bw, "%v%v\n", d.Type, d.Leader)
		for _, seat := range kierki.Seats {
			fmt.Fprintf(bw, "%s\n", kierki.FormatCards(d.Hands[seat]))
		}
	}
	return bw.Flush()
}
