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
	"strings"

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/procutil"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

var systemdUnitDirs = []string{"/etc/systemd/system", "/run/systemd/system"}

// SystemdGhost flags a .service unit whose ExecStart= references a
// deleted binary or one staged under a temporary path — a unit
// definition persists across reboots, long after the ad hoc tooling it
// launches has been cleaned up or replaced.
func SystemdGhost() scanner.Outcome {
	var findings []string
	var errs []string

	for _, dir := range systemdUnitDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if evidence.IsNotExist(err) {
				continue
			}
			errs = append(errs, fmt.Sprintf("%s: %v", dir, err))
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".service") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			content, ok, err := evidence.ReadTrimmed(path)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", path, err))
				continue
			}
			if !ok {
				continue
			}

			for _, exec := range extractExecStarts(content) {
				bin := firstPathToken(exec)
				if bin == "" {
					continue
				}
				var issues []string
				if _, statErr := os.Stat(bin); procutil.IsDeleted(bin) || evidence.IsNotExist(statErr) {
					issues = append(issues, "exe_deleted")
				}
				if procutil.IsTemporary(bin) {
					issues = append(issues, "suspicious_location")
				}
				if len(issues) == 0 {
					continue
				}
				findings = append(findings, fmt.Sprintf("unit=%s exec=%s issues=%s", entry.Name(), exec, joinIssues(issues)))
			}
		}
	}

	return scanner.Resolve(findings, errs)
}

func extractExecStarts(content string) []string {
	var execs []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "ExecStart=") {
			continue
		}
		value := strings.TrimPrefix(line, "ExecStart=")
		value = strings.TrimPrefix(value, "-")
		if value != "" {
			execs = append(execs, value)
		}
	}
	return execs
}
