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

	"github.com/moby/sys/mountinfo"

	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// PinsNonBpffs flags a mount point matching the conventional "*/bpf" naming
// whose actual filesystem type is not bpf — a pin directory masquerading
// as bpffs without kernel-enforced pin semantics behind it.
func PinsNonBpffs() scanner.Outcome {
	mounts, err := mountinfo.GetMounts(nil)
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read mountinfo: %v", err))
	}

	var findings []string
	for _, m := range mounts {
		if isMasqueradingBpfMount(m.Mountpoint, m.FSType) {
			findings = append(findings, fmt.Sprintf("path=%s fstype=%s issues=pin_outside_bpffs", m.Mountpoint, m.FSType))
		}
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

// isMasqueradingBpfMount reports whether mountpoint looks like a bpffs pin
// directory by name but is backed by a different filesystem type.
func isMasqueradingBpfMount(mountpoint, fsType string) bool {
	if fsType == "bpf" {
		return false
	}
	return strings.HasSuffix(strings.TrimRight(mountpoint, "/"), "/bpf")
}
