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

// ownerlessSocketTables are the protocol/file pairs this detector checks,
// generalizing hidden_listeners beyond LISTEN-state TCP to every socket
// state across TCP and UDP.
var ownerlessSocketTables = []struct {
	proto string
	path  string
}{
	{"tcp", "/proc/net/tcp"},
	{"tcp6", "/proc/net/tcp6"},
	{"udp", "/proc/net/udp"},
	{"udp6", "/proc/net/udp6"},
}

// OwnerlessSockets flags any socket, in any state, whose inode has no
// resolvable owning pid.
func OwnerlessSockets() scanner.Outcome {
	pids, err := evidence.ProcPIDs()
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc: %v", err))
	}
	owners := netutil.InodeOwners(pids)

	var findings []string
	for _, table := range ownerlessSocketTables {
		sockets, err := netutil.ParseTable(table.path)
		if err != nil {
			return scanner.Err(fmt.Sprintf("failed to parse %s: %v", table.path, err))
		}
		for _, s := range sockets {
			if _, owned := owners[s.Inode]; !owned {
				findings = append(findings, fmt.Sprintf("proto=%s local_address=%s issues=no_owning_pid", table.proto, s.String()))
			}
		}
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}
