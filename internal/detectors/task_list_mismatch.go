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
	"regexp"

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

var schedDebugPidRe = regexp.MustCompile(`(?m)^\s*\S+\s+\((\d+),`)

// TaskListMismatch cross-references the pid set visible via /proc readdir
// against the pid set implied by the scheduler's own task dump — a
// process the scheduler still runs but that a /proc readdir never
// surfaces (or vice versa) is exactly the discrepancy a syscall-table or
// VFS-level process hider introduces.
func TaskListMismatch() scanner.Outcome {
	content, ok, err := evidence.ReadTrimmed("/sys/kernel/debug/sched/debug")
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read sched/debug: %v", err))
	}
	if !ok {
		return scanner.Clean()
	}

	procPids, err := evidence.ProcPIDs()
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc: %v", err))
	}

	return crossReferencePidSets(procPids, extractSchedDebugPids(content), "proc_only", "sched_debug_only")
}

func extractSchedDebugPids(content string) []int {
	matches := schedDebugPidRe.FindAllStringSubmatch(content, -1)
	pids := make([]int, 0, len(matches))
	for _, m := range matches {
		var pid int
		if _, err := fmt.Sscanf(m[1], "%d", &pid); err == nil {
			pids = append(pids, pid)
		}
	}
	return pids
}

// crossReferencePidSets reports a pid present in one set but absent from
// the other, tagged with the label naming which set it was found in.
func crossReferencePidSets(a, b []int, onlyInALabel, onlyInBLabel string) scanner.Outcome {
	setA := make(map[int]bool, len(a))
	for _, pid := range a {
		setA[pid] = true
	}
	setB := make(map[int]bool, len(b))
	for _, pid := range b {
		setB[pid] = true
	}

	var findings []string
	for pid := range setA {
		if !setB[pid] {
			findings = append(findings, fmt.Sprintf("pid=%d issues=%s", pid, onlyInALabel))
		}
	}
	for pid := range setB {
		if !setA[pid] {
			findings = append(findings, fmt.Sprintf("pid=%d issues=%s", pid, onlyInBLabel))
		}
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}
