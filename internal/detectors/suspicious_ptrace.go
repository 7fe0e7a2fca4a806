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

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/procutil"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

var allowedTracers = map[string]bool{
	"gdb":    true,
	"strace": true,
	"ltrace": true,
	"rr":     true,
}

// SuspiciousPtrace flags any process being traced (TracerPid != 0) by a
// tracer whose comm isn't one of the small set of known debugging tools —
// ptrace is how an injector reads and rewrites another process's memory
// and registers live.
func SuspiciousPtrace() scanner.Outcome {
	pids, err := evidence.ProcPIDs()
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc: %v", err))
	}

	var findings []string
	for _, pid := range pids {
		tracerStr, ok, err := procutil.StatusField(pid, "TracerPid")
		if err != nil || !ok {
			continue
		}
		tracerPid, err := strconv.Atoi(tracerStr)
		if err != nil || tracerPid == 0 {
			continue
		}

		tracerComm := procutil.Comm(tracerPid)
		if allowedTracers[tracerComm] {
			continue
		}

		findings = append(findings, fmt.Sprintf(
			"pid=%d tracer_pid=%d tracer_comm=%s issues=unexpected_tracer", pid, tracerPid, tracerComm,
		))
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}
