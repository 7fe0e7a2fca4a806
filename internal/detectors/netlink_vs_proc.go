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

// NetlinkVsProc cross-references every socket inode visible in
// /proc/net/tcp{,6} against the socket inodes resolvable by walking every
// pid's /proc/<pid>/fd — a socket the kernel reports but no process's fd
// table accounts for is either a very short race or a hidden process
// holding it open.
func NetlinkVsProc() scanner.Outcome {
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
		if _, owned := owners[s.Inode]; !owned {
			findings = append(findings, fmt.Sprintf("inode=%d issues=unowned_in_procfs", s.Inode))
		}
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

func collectTCPSockets() ([]netutil.Socket, error) {
	var all []netutil.Socket
	for _, path := range []string{"/proc/net/tcp", "/proc/net/tcp6"} {
		sockets, err := netutil.ParseTable(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		all = append(all, sockets...)
	}
	return all, nil
}
