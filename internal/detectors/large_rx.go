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
	"strings"

	"github.com/ree4pwn/ghostscan/internal/config"
	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/procutil"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

var jitComms = map[string]bool{
	"java": true, "node": true, "python3": true, "dotnet": true,
}

// LargeRx flags a large anonymous r-x memory region in a process that
// isn't a known JIT-using runtime — shellcode and reflectively loaded
// binaries need exactly this kind of mapping, while ordinary daemons
// never grow one on their own.
func LargeRx() scanner.Outcome {
	pids, err := evidence.ProcPIDs()
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc: %v", err))
	}

	var findings []string
	var errs []string
	for _, pid := range pids {
		comm := procutil.Comm(pid)
		if jitComms[comm] {
			continue
		}

		content, ok, err := evidence.ReadTrimmed(fmt.Sprintf("/proc/%d/maps", pid))
		if err != nil {
			if evidence.IsPermissionDenied(err) || evidence.IsNotExist(err) {
				continue
			}
			errs = append(errs, fmt.Sprintf("pid=%d maps: %v", pid, err))
			continue
		}
		if !ok {
			continue
		}

		for _, line := range strings.Split(content, "\n") {
			region, size, isLargeRx := parseMapsLine(line)
			if !isLargeRx {
				continue
			}
			findings = append(findings, fmt.Sprintf(
				"pid=%d comm=%s region=%s size=%d issues=large_anonymous_rx", pid, comm, region, size,
			))
		}
	}

	return scanner.Resolve(findings, errs)
}

// parseMapsLine reports whether an /proc/<pid>/maps line is an anonymous
// r-x mapping larger than the threshold, returning its address range and
// size when so.
func parseMapsLine(line string) (region string, size uint64, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return "", 0, false
	}

	perms := fields[1]
	if !strings.HasPrefix(perms, "r-x") {
		return "", 0, false
	}

	// An anonymous mapping has no backing path, or a path field that is
	// empty; named pseudo-paths like [heap]/[stack] are never anonymous.
	if len(fields) >= 6 {
		return "", 0, false
	}

	region = fields[0]
	bounds := strings.SplitN(region, "-", 2)
	if len(bounds) != 2 {
		return "", 0, false
	}
	start, err := strconv.ParseUint(bounds[0], 16, 64)
	if err != nil {
		return "", 0, false
	}
	end, err := strconv.ParseUint(bounds[1], 16, 64)
	if err != nil || end < start {
		return "", 0, false
	}

	size = end - start
	if size <= config.LargeRXRegionBytes {
		return "", 0, false
	}
	return region, size, true
}
