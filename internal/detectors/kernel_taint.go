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

package detectors

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

var taintFlagNames = map[int]string{
	12: "out_of_tree_module",
	13: "unsigned_module",
	14: "soft_lockup_occurred",
}

// KernelTaint decodes a non-zero /proc/sys/kernel/tainted bitmask into its
// documented flag meanings. An unset bitmask is the common case and is
// Clean; a set bitmask is reported, not because every taint is malicious,
// but because several specific bits (out-of-tree/unsigned modules) are
// exactly what a kernel-level implant leaves behind.
func KernelTaint() scanner.Outcome {
	content, ok, err := evidence.ReadTrimmed("/proc/sys/kernel/tainted")
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read tainted: %v", err))
	}
	if !ok {
		return scanner.Clean()
	}

	value, err := strconv.ParseUint(content, 10, 64)
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to parse tainted=%s: %v", content, err))
	}
	if value == 0 {
		return scanner.Clean()
	}

	flags := decodeTaintFlags(value)

	return scanner.Outcome{
		Kind: scanner.KindFindings,
		Text: fmt.Sprintf("tainted=%d flags=%s", value, strings.Join(flags, "|")),
	}
}

// decodeTaintFlags renders each set bit of a tainted bitmask as its
// documented flag name, falling back to a bit_N label for bits without
// a known name. The result is sorted for deterministic output.
func decodeTaintFlags(value uint64) []string {
	var flags []string
	for bit := 0; bit < 32; bit++ {
		if value&(1<<uint(bit)) == 0 {
			continue
		}
		if name, known := taintFlagNames[bit]; known {
			flags = append(flags, name)
		} else {
			flags = append(flags, fmt.Sprintf("bit_%d", bit))
		}
	}
	sort.Strings(flags)
	return flags
}
