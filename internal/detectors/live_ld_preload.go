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

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/procutil"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// LiveLdPreload flags a running process with LD_PRELOAD set to a deleted
// or group/world-writable shared object — ld.so.preload tampering that
// never touched the global config file, injected per-process instead.
func LiveLdPreload() scanner.Outcome {
	pids, err := evidence.ProcPIDs()
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc: %v", err))
	}

	var findings []string
	var errs []string
	for _, pid := range pids {
		value, ok, err := procutil.EnvironValue(pid, "LD_PRELOAD")
		if err != nil {
			if evidence.IsPermissionDenied(err) || evidence.IsNotExist(err) {
				continue
			}
			errs = append(errs, fmt.Sprintf("pid=%d environ: %v", pid, err))
			continue
		}
		if !ok || value == "" {
			continue
		}

		if issue := ldPreloadIssue(value); issue != "" {
			findings = append(findings, fmt.Sprintf("pid=%d ld_preload=%s issues=%s", pid, value, issue))
		}
	}

	return scanner.Resolve(findings, errs)
}

func ldPreloadIssue(path string) string {
	if procutil.IsDeleted(path) {
		return "exe_deleted"
	}
	info, ok, err := evidence.Stat(path)
	if err != nil || !ok {
		return ""
	}
	if info.Mode.Perm()&0o022 != 0 {
		return "group_or_world_writable"
	}
	return ""
}
