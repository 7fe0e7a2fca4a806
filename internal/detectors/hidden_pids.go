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
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

const cgroupV2Root = "/sys/fs/cgroup"

// HiddenPids cross-references the pids recorded in every cgroup.procs file
// under the default cgroup v2 hierarchy against a /proc readdir — a pid a
// cgroup still charges but that /proc hides is a process the kernel
// schedules while userspace enumeration can't see it.
func HiddenPids() scanner.Outcome {
	cgroupPids, err := collectCgroupPids(cgroupV2Root)
	if err != nil {
		if evidence.IsNotExist(err) {
			return scanner.Clean()
		}
		return scanner.Err(fmt.Sprintf("failed to walk %s: %v", cgroupV2Root, err))
	}
	if cgroupPids == nil {
		return scanner.Clean()
	}

	procPids, err := evidence.ProcPIDs()
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc: %v", err))
	}
	procSet := make(map[int]bool, len(procPids))
	for _, pid := range procPids {
		procSet[pid] = true
	}

	var findings []string
	for pid := range cgroupPids {
		if !procSet[pid] {
			findings = append(findings, fmt.Sprintf("pid=%d issues=cgroup_only_hidden_from_proc", pid))
		}
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

func collectCgroupPids(root string) (map[int]bool, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}

	pids := make(map[int]bool)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if evidence.IsPermissionDenied(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || info.Name() != "cgroup.procs" {
			return nil
		}
		content, ok, err := evidence.ReadTrimmed(path)
		if err != nil || !ok {
			return nil
		}
		for _, line := range strings.Split(content, "\n") {
			if pid, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				pids[pid] = true
			}
		}
		return nil
	})
	return pids, err
}
