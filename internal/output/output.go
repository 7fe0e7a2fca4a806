// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package output renders a scanner.Outcome the way the original scanner
// did: a bracketed header naming the check, green "OK" for a clean result,
// and red text — one escape sequence per line so blank lines stay blank —
// for findings or a collection error.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ree4pwn/ghostscan/internal/scanner"
)

const (
	green = "\x1b[32m"
	red   = "\x1b[31m"
	reset = "\x1b[0m"
)

// Render writes one scanner's outcome to w, in the scanner's display
// format: a "[name]" header line followed by the colored body.
func Render(w io.Writer, s scanner.Scanner, outcome scanner.Outcome) {
	fmt.Fprintf(w, "[%s]\n", s.Name)

	switch outcome.Kind {
	case scanner.KindClean:
		fmt.Fprintf(w, "%sOK%s\n", green, reset)
	case scanner.KindFindings, scanner.KindError:
		for _, line := range strings.Split(outcome.Text, "\n") {
			if line == "" {
				fmt.Fprintln(w)
				continue
			}
			fmt.Fprintf(w, "%s%s%s\n", red, line, reset)
		}
	}
}

// RenderAll runs every scanner in order, writing each outcome to w as it
// completes. Scanners never run concurrently: output order must match
// registration order for the report to be diff-friendly run to run.
func RenderAll(w io.Writer, scanners []scanner.Scanner) {
	for _, s := range scanners {
		Render(w, s, s.Run())
	}
}
