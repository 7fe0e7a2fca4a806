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
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// KernelTextRo is a best-effort check: direct verification that the
// kernel's text segment is mapped read-only isn't broadly available from
// userspace, so this instead looks for the combination of a present but
// weak lockdown mode and an unrestricted kptr_restrict, which together
// mean nothing is stopping a privileged write from repointing kernel text.
func KernelTextRo() scanner.Outcome {
	lockdown, ok, err := evidence.ReadTrimmed("/sys/kernel/security/lockdown")
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read lockdown state: %v", err))
	}
	if !ok {
		return scanner.Clean()
	}

	mode := activeLockdownMode(lockdown)
	if mode == "integrity" || mode == "confidentiality" {
		return scanner.Clean()
	}

	kptr, ok, err := evidence.ReadTrimmed("/proc/sys/kernel/kptr_restrict")
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read kptr_restrict: %v", err))
	}
	if !ok || kptr != "0" {
		return scanner.Clean()
	}

	return scanner.Findings([]string{
		fmt.Sprintf("lockdown=%s kptr_restrict=0 issues=kernel_text_protection_weak", mode),
	})
}

// activeLockdownMode extracts the bracketed active mode from
// /sys/kernel/security/lockdown's "none [integrity] confidentiality"
// style content.
func activeLockdownMode(content string) string {
	start := -1
	for i, r := range content {
		if r == '[' {
			start = i + 1
		} else if r == ']' && start >= 0 {
			return content[start:i]
		}
	}
	return content
}
