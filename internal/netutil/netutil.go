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

// Package netutil parses /proc/net/{tcp,tcp6,udp,udp6} socket tables and
// cross-references them against /proc/<pid>/fd socket inode links, giving
// detectors a way to tell whether a visible socket has a resolvable owning
// process.
package netutil

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/ree4pwn/ghostscan/internal/evidence"
)

// StateListen is the /proc/net/tcp "st" column value for LISTEN.
const StateListen = 0x0A

// Socket is a single parsed row from a /proc/net/{tcp,tcp6,udp,udp6} table.
type Socket struct {
	LocalAddr net.IP
	LocalPort uint16
	State     int
	Inode     uint64
}

// String renders the local address the way the report vocabulary expects:
// "addr:port".
func (s Socket) String() string {
	return fmt.Sprintf("%s:%d", s.LocalAddr, s.LocalPort)
}

// ParseTable parses one /proc/net/{tcp,tcp6,udp,udp6} file. A missing file
// yields a nil slice and no error — not every protocol family is always
// enabled.
func ParseTable(path string) ([]Socket, error) {
	f, err := os.Open(path)
	if err != nil {
		if evidence.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var sockets []Socket
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 10 || fields[1] == "local_address" {
			continue
		}

		state, err := strconv.ParseInt(fields[3], 16, 32)
		if err != nil {
			continue
		}
		addr, port, err := parseAddressBlock(fields[1])
		if err != nil {
			continue
		}
		inode, err := strconv.ParseUint(fields[9], 10, 64)
		if err != nil {
			continue
		}

		sockets = append(sockets, Socket{LocalAddr: addr, LocalPort: port, State: int(state), Inode: inode})
	}
	return sockets, scanner.Err()
}

func parseAddressBlock(block string) (net.IP, uint16, error) {
	parts := strings.Split(block, ":")
	if len(parts) != 2 {
		return nil, 0, fmt.Errorf("invalid address block %q", block)
	}
	addr, err := parseHexIP(parts[0])
	if err != nil {
		return nil, 0, err
	}
	port, err := strconv.ParseUint(parts[1], 16, 32)
	if err != nil {
		return nil, 0, err
	}
	return addr, uint16(port), nil
}

func parseHexIP(hexa string) (net.IP, error) {
	b, err := hex.DecodeString(hexa)
	if err != nil {
		return nil, err
	}
	switch len(b) {
	case 4:
		return net.IPv4(b[3], b[2], b[1], b[0]), nil
	case 16:
		return net.IP{
			b[3], b[2], b[1], b[0],
			b[7], b[6], b[5], b[4],
			b[11], b[10], b[9], b[8],
			b[15], b[14], b[13], b[12],
		}, nil
	default:
		return nil, fmt.Errorf("unexpected address length %d", len(b))
	}
}

// InodeOwners walks every /proc/<pid>/fd looking for "socket:[N]" links and
// returns the set of socket inodes with at least one resolvable owning
// pid. Permission-denied on an individual pid's fd directory is a silent
// skip, per the universal per-record tie-break.
func InodeOwners(pids []int) map[uint64]int {
	owners := make(map[uint64]int)
	for _, pid := range pids {
		entries, err := os.ReadDir(fmt.Sprintf("/proc/%d/fd", pid))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			target, err := os.Readlink(fmt.Sprintf("/proc/%d/fd/%s", pid, entry.Name()))
			if err != nil {
				continue
			}
			var inode uint64
			if _, err := fmt.Sscanf(target, "socket:[%d]", &inode); err == nil {
				owners[inode] = pid
			}
		}
	}
	return owners
}
