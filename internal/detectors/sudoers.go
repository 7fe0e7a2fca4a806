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
	"strconv"
	"strings"

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

const sudoersNonSystemUIDMin = 1000

// Sudoers flags a dangerous rule in /etc/sudoers or /etc/sudoers.d/* —
// blanket NOPASSWD grants, unrestricted ALL=(ALL) ALL rules given to a
// non-system account, or an !authenticate tag that removes the password
// prompt entirely.
func Sudoers() scanner.Outcome {
	uids, err := passwdUIDsByName()
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /etc/passwd: %v", err))
	}

	var findings []string
	var errs []string

	for _, path := range sudoersFiles() {
		content, ok, err := evidence.ReadTrimmed(path)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		if !ok {
			continue
		}

		for _, line := range strings.Split(content, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}

			issue := sudoersLineIssue(trimmed, uids)
			if issue == "" {
				continue
			}
			findings = append(findings, fmt.Sprintf("rule=%s issues=%s", trimmed, issue))
		}
	}

	return scanner.Resolve(findings, errs)
}

func sudoersFiles() []string {
	files := []string{"/etc/sudoers"}
	entries, err := os.ReadDir("/etc/sudoers.d")
	if err != nil {
		return files
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join("/etc/sudoers.d", entry.Name()))
	}
	return files
}

func sudoersLineIssue(line string, uids map[string]int) string {
	if strings.Contains(line, "!authenticate") {
		return "auth_bypass"
	}
	if strings.Contains(line, "NOPASSWD:ALL") {
		return "nopasswd_all"
	}
	if strings.Contains(line, "ALL=(ALL) ALL") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return ""
		}
		user := fields[0]
		uid, known := uids[user]
		if known && uid >= sudoersNonSystemUIDMin {
			return "unrestricted_all"
		}
	}
	return ""
}

func passwdUIDsByName() (map[string]int, error) {
	content, ok, err := evidence.ReadTrimmed("/etc/passwd")
	if err != nil {
		return nil, err
	}
	uids := map[string]int{}
	if !ok {
		return uids, nil
	}
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}
		uid, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}
		uids[fields[0]] = uid
	}
	return uids, nil
}
