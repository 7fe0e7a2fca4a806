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

	"github.com/ree4pwn/ghostscan/internal/config"
	"github.com/ree4pwn/ghostscan/internal/containerinv"
	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/procutil"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// FanotifyWatchers flags processes holding a fanotify fd watching the root
// filesystem, /proc, a container's merged root, or a mount this host can't
// resolve — each a way to intercept filesystem activity system-wide.
func FanotifyWatchers() scanner.Outcome {
	containerRoots := containerinv.ContainerRoots(config.ContainerInventoryLimit)

	pids, err := evidence.ProcPIDs()
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc: %v", err))
	}

	var findings []string
	var errs []string
	for _, pid := range pids {
		list, err := scanPidFanotify(pid, containerRoots)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		findings = append(findings, list...)
	}

	return scanner.Resolve(findings, errs)
}

func scanPidFanotify(pid int, containerRoots []string) ([]string, error) {
	entries, err := procutil.FdinfoEntries(pid)
	if err != nil {
		if evidence.IsPermissionDenied(err) || evidence.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("pid=%d fdinfo: %w", pid, err)
	}

	var mountTable evidence.MountTable
	var findings []string
	seen := make(map[uint64]bool)

	comm := procutil.Comm(pid)
	exe, _ := procutil.Exe(pid)
	if exe == "" {
		exe = "unknown"
	}
	exeIssues := procutil.ExeIssues(exe)

	for _, entry := range entries {
		content, err := procutil.FdinfoContent(pid, entry.Name())
		if err != nil {
			if evidence.IsPermissionDenied(err) || evidence.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("pid=%d fdinfo %s: %w", pid, entry.Name(), err)
		}

		if !strings.Contains(content, "fanotify") {
			continue
		}

		mntIDs := extractMntIDs(content)
		if len(mntIDs) == 0 {
			continue
		}

		if mountTable == nil {
			mountTable, err = evidence.BuildMountTable(pid)
			if err != nil {
				return nil, fmt.Errorf("pid=%d mountinfo: %w", pid, err)
			}
		}

		for _, mntID := range mntIDs {
			if seen[mntID] {
				continue
			}
			seen[mntID] = true

			var issues []string
			issues = append(issues, exeIssues...)

			mountPoint, ok := mountTable[mntID]
			if !ok {
				mountPoint = "unknown"
			}

			switch {
			case mountPoint == "/":
				issues = append(issues, "watching_root")
			case mountPoint == "/proc":
				issues = append(issues, "watching_proc")
			case isUnderAnyRoot(mountPoint, containerRoots):
				issues = append(issues, "watching_container_root")
			}
			if mountPoint == "unknown" {
				issues = append(issues, "mount_unresolved")
			}

			if len(issues) == 0 {
				continue
			}

			findings = append(findings, fmt.Sprintf(
				"pid=%d comm=%s exe=%s mount=%s issues=%s",
				pid, comm, exe, mountPoint, strings.Join(issues, "|"),
			))
		}
	}

	return findings, nil
}

func extractMntIDs(fdinfo string) []uint64 {
	var ids []uint64
	for _, line := range strings.Split(fdinfo, "\n") {
		rest, ok := strings.CutPrefix(line, "fanotify mnt_id:")
		if !ok {
			continue
		}
		if id, err := strconv.ParseUint(strings.TrimSpace(rest), 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func isUnderAnyRoot(path string, roots []string) bool {
	for _, root := range roots {
		if strings.HasPrefix(path, root) {
			return true
		}
	}
	return false
}
