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
	"github.com/ree4pwn/ghostscan/internal/procutil"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

var scriptsDHookDirs = []string{
	"/etc/update-motd.d",
	"/etc/cron.d",
	"/etc/apt/apt.conf.d",
	"/etc/ppp/ip-up.d",
}

// ScriptsD flags an executable entry in a well-known root-run hook
// directory that is owned by a non-root user or staged under a temporary
// path — these directories are invoked unattended by root-owned tooling,
// so an entry that doesn't belong to root is a plausible foothold.
func ScriptsD() scanner.Outcome {
	var findings []string
	var errs []string

	for _, dir := range scriptsDHookDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if evidence.IsNotExist(err) {
				continue
			}
			errs = append(errs, fmt.Sprintf("%s: %v", dir, err))
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			info, ok, err := evidence.Stat(path)
			if err != nil || !ok {
				continue
			}
			if finding, flagged := scriptsDFinding(path, info); flagged {
				findings = append(findings, finding)
			}
		}
	}

	return scanner.Resolve(findings, errs)
}

// scriptsDFinding evaluates a single hook-directory entry's stat info and
// returns its finding line when it is executable and carries an issue.
func scriptsDFinding(path string, info evidence.StatInfo) (string, bool) {
	if info.Mode.Perm()&0o111 == 0 {
		return "", false
	}

	var issues []string
	if info.UID != 0 {
		issues = append(issues, "non_root_owner")
	}
	if procutil.IsTemporary(path) {
		issues = append(issues, "suspicious_location")
	}
	if len(issues) == 0 {
		return "", false
	}
	return fmt.Sprintf("path=%s issues=%s", path, joinIssues(issues)), true
}
