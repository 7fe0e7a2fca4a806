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

// SeccompUserNotify flags processes holding a seccomp user-notify listener
// fd — the mechanism a privileged responder uses to intercept another
// process's syscalls, legitimate for container runtimes but otherwise rare.
func SeccompUserNotify() scanner.Outcome {
	pids, err := evidence.ProcPIDs()
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc: %v", err))
	}

	var findings []string
	var errs []string
	for _, pid := range pids {
		finding, err := scanPidSeccompNotify(pid)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		if finding != "" {
			findings = append(findings, finding)
		}
	}

	return scanner.Resolve(findings, errs)
}

func scanPidSeccompNotify(pid int) (string, error) {
	entries, err := procutil.FdEntries(pid)
	if err != nil {
		if evidence.IsPermissionDenied(err) || evidence.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("pid=%d fd: %w", pid, err)
	}

	var notifyFDs int
	for _, fd := range entries {
		target, err := procutil.FdTarget(pid, fd.Name())
		if err != nil {
			if evidence.IsPermissionDenied(err) || evidence.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("pid=%d fd %s: %w", pid, fd.Name(), err)
		}
		if strings.Contains(target, "seccomp") && strings.Contains(target, "notify") {
			notifyFDs++
		}
	}

	if notifyFDs == 0 {
		return "", nil
	}

	comm := procutil.Comm(pid)
	exe, _ := procutil.Exe(pid)
	if exe == "" {
		exe = "unknown"
	}
	root := procutil.Root(pid)

	var issues []string
	if notifyFDs > 1 {
		issues = append(issues, "multiple_listeners")
	}
	issues = append(issues, procutil.ExeIssues(exe)...)
	if root != "/" {
		issues = append(issues, "containerized_root")
	}

	return fmt.Sprintf(
		"pid=%d comm=%s exe=%s root=%s seccomp_notify_fds=%d issues=%s",
		pid, comm, exe, root, notifyFDs, strings.Join(issues, "|"),
	), nil
}
