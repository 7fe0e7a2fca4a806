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
	"github.com/ree4pwn/ghostscan/internal/netutil"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// HiddenListeners flags a LISTEN-state socket in /proc/net/tcp{,6} with no
// resolvable owning pid — a listener the kernel will happily route traffic
// to that no ordinary process enumeration can explain.
func HiddenListeners() scanner.Outcome {
	pids, err := evidence.ProcPIDs()
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc: %v", err))
	}

	sockets, err := collectTCPSockets()
	if err != nil {
		return scanner.Err(err.Error())
	}

	owners := netutil.InodeOwners(pids)

	var findings []string
	for _, s := range sockets {
		if s.State != netutil.StateListen {
			continue
		}
		if _, owned := owners[s.Inode]; !owned {
			findings = append(findings, fmt.Sprintf("local_address=%s issues=listener_without_owning_pid", s.String()))
		}
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}
