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
	"strings"

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/procutil"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// DeletedMemfd flags processes whose exe resolves to an unlinked backing
// file or to an anonymous memfd — both are how fileless malware keeps a
// running binary off disk entirely after execution.
func DeletedMemfd() scanner.Outcome {
	pids, err := evidence.ProcPIDs()
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc: %v", err))
	}

	var findings []string
	for _, pid := range pids {
		exe, ok := procutil.Exe(pid)
		if !ok || exe == "" || exe == "unknown" {
			continue
		}

		var issue string
		switch {
		case strings.HasPrefix(exe, "/memfd:"):
			issue = "memfd_backed"
		case procutil.IsDeleted(exe):
			issue = "exe_deleted"
		default:
			continue
		}

		findings = append(findings, fmt.Sprintf(
			"pid=%d comm=%s exe=%s issues=%s", pid, procutil.Comm(pid), exe, issue,
		))
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}
