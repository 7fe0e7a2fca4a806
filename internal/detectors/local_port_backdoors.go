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
	"github.com/ree4pwn/ghostscan/internal/netutil"
	"github.com/ree4pwn/ghostscan/internal/procutil"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// LocalPortBackdoors flags a listening socket owned by a process whose exe
// is deleted or staged under a temporary path — a listener that survives
// even after its own binary has been unlinked or run straight out of /tmp.
func LocalPortBackdoors() scanner.Outcome {
	pids, err := evidence.ProcPIDs()
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc: %v", err))
	}
	owners := netutil.InodeOwners(pids)

	sockets, err := collectTCPSockets()
	if err != nil {
		return scanner.Err(err.Error())
	}

	var findings []string
	for _, s := range sockets {
		if s.State != netutil.StateListen {
			continue
		}
		pid, owned := owners[s.Inode]
		if !owned {
			continue
		}

		exe, ok := procutil.Exe(pid)
		if !ok || exe == "" {
			continue
		}

		issues := procutil.ExeIssues(exe)
		if len(issues) == 0 {
			continue
		}

		findings = append(findings, fmt.Sprintf(
			"local_address=%s pid=%d exe=%s issues=%s", s.String(), pid, exe, strings.Join(issues, "|"),
		))
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}
