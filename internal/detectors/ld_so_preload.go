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
	"path/filepath"
	"strings"

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// LdSoPreload flags any entry in /etc/ld.so.preload that is missing,
// not owned by root, has any permission mode other than 0644, or sits in
// a world-writable directory — ld.so.preload is loaded into every
// dynamically linked process on the system, making it one of the highest-
// value persistence targets on a host.
func LdSoPreload() scanner.Outcome {
	content, ok, err := evidence.ReadTrimmed("/etc/ld.so.preload")
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /etc/ld.so.preload: %v", err))
	}
	if !ok {
		return scanner.Clean()
	}

	var findings []string
	for _, line := range strings.Split(content, "\n") {
		entry := strings.TrimSpace(line)
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}

		parts := evaluatePreloadEntry(entry)
		if len(parts) == 0 {
			continue
		}
		findings = append(findings, fmt.Sprintf("entry=%s, %s", entry, strings.Join(parts, ", ")))
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

func evaluatePreloadEntry(entry string) []string {
	var parts []string

	info, ok, err := evidence.Stat(entry)
	if err != nil || !ok {
		return []string{"exists=false"}
	}

	parent := filepath.Dir(entry)
	if parentInfo, parentOK, parentErr := evidence.Stat(parent); parentErr == nil && parentOK {
		if parentInfo.Mode.Perm()&0o002 != 0 {
			parts = append(parts, fmt.Sprintf("parent_writable=true (dir=%s)", parent))
		}
	}
	if info.UID != 0 {
		parts = append(parts, "owner!=root")
	}
	if info.Mode.Perm() != 0o644 {
		parts = append(parts, fmt.Sprintf("mode=%o", info.Mode.Perm()))
	}

	return parts
}
