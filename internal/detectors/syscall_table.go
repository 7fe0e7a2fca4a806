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
	"strconv"
	"strings"

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// SyscallTable checks that the kernel's sys_call_table symbol sits inside
// the kernel text range reported by /proc/kallsyms. When kptr_restrict
// hides addresses (all entries read back as zero), no determination is
// possible and the check is Clean rather than Error — absence of the
// capability to check is not evidence of compromise.
func SyscallTable() scanner.Outcome {
	content, ok, err := evidence.ReadTrimmed("/proc/kallsyms")
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc/kallsyms: %v", err))
	}
	if !ok {
		return scanner.Clean()
	}

	syms := parseKallsyms(content)

	syscallTable, ok := syms["sys_call_table"]
	textStart, startOK := syms["_text"]
	textEnd, endOK := syms["_etext"]

	if !ok || !startOK || !endOK {
		return scanner.Clean()
	}
	if syscallTable == 0 || textStart == 0 || textEnd == 0 {
		// kptr_restrict in effect; no determination possible.
		return scanner.Clean()
	}

	if syscallTable < textStart || syscallTable > textEnd {
		return scanner.Findings([]string{"symbol=sys_call_table issues=out_of_range_address"})
	}
	return scanner.Clean()
}

func parseKallsyms(content string) map[string]uint64 {
	syms := make(map[string]uint64)
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		name := fields[2]
		if _, exists := syms[name]; exists {
			continue
		}
		addr, err := strconv.ParseUint(fields[0], 16, 64)
		if err != nil {
			continue
		}
		syms[name] = addr
	}
	return syms
}
