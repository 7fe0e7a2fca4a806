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

// statTTYFieldIndex is the 0-based index of the tty_nr field in
// /proc/<pid>/stat, counting from the pid field (procutil.StatFields keeps
// comm as the single element at index 1).
const statTTYFieldIndex = 6

// LdAudit flags a daemon process (no controlling tty) with LD_AUDIT set —
// LD_AUDIT runs arbitrary code inside the dynamic linker's audit API for
// every loaded object, making it a favorite for userland rootkits that
// never touch disk.
func LdAudit() scanner.Outcome {
	pids, err := evidence.ProcPIDs()
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc: %v", err))
	}

	var findings []string
	var errs []string
	for _, pid := range pids {
		value, ok, err := procutil.EnvironValue(pid, "LD_AUDIT")
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

		if !isDaemonPid(pid) {
			continue
		}

		findings = append(findings, fmt.Sprintf("pid=%d ld_audit=%s issues=ld_audit_in_daemon", pid, value))
	}

	return scanner.Resolve(findings, errs)
}

func isDaemonPid(pid int) bool {
	fields, err := procutil.StatFields(pid)
	if err != nil || len(fields) <= statTTYFieldIndex {
		return false
	}
	return fields[statTTYFieldIndex] == "0"
}
