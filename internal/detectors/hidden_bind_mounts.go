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

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// HiddenBindMounts flags a mount id visible in pid 1's mount namespace but
// absent from the scanner's own, or vice versa — a mount namespace escape
// or a deliberately unshared bind mount can hide a filesystem from one
// view while leaving it fully visible, and reachable, from the other.
func HiddenBindMounts() scanner.Outcome {
	self, err := evidence.BuildMountTable(os.Getpid())
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read self mountinfo: %v", err))
	}
	pid1, err := evidence.BuildMountTable(1)
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read pid 1 mountinfo: %v", err))
	}

	findings := diffMountTables(self, pid1)
	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

// diffMountTables reports every mount id present in pid1's table but
// absent from self (hidden_from_self) and vice versa (hidden_from_pid1).
func diffMountTables(self, pid1 evidence.MountTable) []string {
	var findings []string
	for id, mountPoint := range pid1 {
		if _, ok := self[id]; !ok {
			findings = append(findings, fmt.Sprintf("mount_point=%s issues=hidden_from_self", mountPoint))
		}
	}
	for id, mountPoint := range self {
		if _, ok := pid1[id]; !ok {
			findings = append(findings, fmt.Sprintf("mount_point=%s issues=hidden_from_pid1", mountPoint))
		}
	}
	return findings
}
