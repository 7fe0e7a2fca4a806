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

// pfKthread is the /proc/<pid>/stat flags-field bit the kernel sets on
// every kernel thread.
const pfKthread = 0x00200000

// statFlagsFieldIndex is the zero-based index of the flags field once
// procutil.StatFields has normalized the parenthesized comm field into a
// single element.
const statFlagsFieldIndex = 8

// KernelThreadMasquerade flags a process carrying the kernel's PF_KTHREAD
// flag that nonetheless has a real, non-deleted exe — genuine kernel
// threads never have a backing executable, so this combination means a
// userspace process forged its own stat flags to blend in with the
// kernel's own worker threads.
func KernelThreadMasquerade() scanner.Outcome {
	pids, err := evidence.ProcPIDs()
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc: %v", err))
	}

	var findings []string
	for _, pid := range pids {
		fields, err := procutil.StatFields(pid)
		if err != nil {
			continue
		}
		if len(fields) <= statFlagsFieldIndex {
			continue
		}
		flags, err := strconv.ParseUint(fields[statFlagsFieldIndex], 10, 64)
		if err != nil || flags&pfKthread == 0 {
			continue
		}

		exe, ok := procutil.Exe(pid)
		if !ok || exe == "" || procutil.IsDeleted(exe) {
			continue
		}

		findings = append(findings, fmt.Sprintf("pid=%d issues=kthread_flag_with_exe", pid))
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}
