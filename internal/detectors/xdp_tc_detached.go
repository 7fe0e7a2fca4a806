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

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// XdpTcDetached flags network interfaces with an attached XDP program that
// has no corresponding pin under bpffs — a program installed without going
// through the normal pinning convention tooling uses to track ownership.
func XdpTcDetached() scanner.Outcome {
	ifaces, err := os.ReadDir("/sys/class/net")
	if err != nil {
		if evidence.IsNotExist(err) {
			return scanner.Clean()
		}
		return scanner.Err(fmt.Sprintf("failed to read /sys/class/net: %v", err))
	}

	var findings []string
	for _, iface := range ifaces {
		progIDPath := filepath.Join("/sys/class/net", iface.Name(), "xdp", "prog_id")
		progID, ok, err := evidence.ReadTrimmed(progIDPath)
		if err != nil || !ok || progID == "" || progID == "0" {
			continue
		}

		pinPath := filepath.Join(bpffsRoot, "xdp", iface.Name())
		if _, err := os.Stat(pinPath); err == nil {
			continue
		}

		findings = append(findings, fmt.Sprintf("iface=%s prog_id=%s issues=unpinned_xdp_program", iface.Name(), progID))
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}
