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
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// SshFootholds flags dangerous directives across sshd_config and its
// Include'd drop-ins: root login left enabled, password authentication
// left enabled, or a wildcard Match/ForceCommand block that overrides
// the session for every user.
func SshFootholds() scanner.Outcome {
	var findings []string
	var errs []string

	for _, path := range sshdConfigFiles() {
		content, ok, err := evidence.ReadTrimmed(path)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		if !ok {
			continue
		}

		findings = append(findings, sshdConfigIssues(content)...)
	}

	return scanner.Resolve(findings, errs)
}

// sshdConfigIssues scans a single sshd_config-style file's content and
// returns one finding per dangerous directive it contains.
func sshdConfigIssues(content string) []string {
	var findings []string
	for _, line := range strings.Split(content, "\n") {
		directive := strings.TrimSpace(line)
		if directive == "" || strings.HasPrefix(directive, "#") {
			continue
		}

		lower := strings.ToLower(directive)
		switch {
		case strings.HasPrefix(lower, "match ") && (strings.Contains(lower, "user *") || strings.Contains(lower, "address *")):
			findings = append(findings, fmt.Sprintf("directive=%s issues=wildcard_match", directive))
			continue
		case strings.HasPrefix(lower, "permitrootlogin") && strings.Contains(lower, "yes"):
			findings = append(findings, fmt.Sprintf("directive=%s issues=permit_root_login", directive))
		case strings.HasPrefix(lower, "passwordauthentication") && strings.Contains(lower, "yes"):
			findings = append(findings, fmt.Sprintf("directive=%s issues=password_auth_enabled", directive))
		case strings.HasPrefix(lower, "forcecommand"):
			findings = append(findings, fmt.Sprintf("directive=%s issues=wildcard_match", directive))
		}
	}
	return findings
}

func sshdConfigFiles() []string {
	files := []string{"/etc/ssh/sshd_config"}
	entries, err := os.ReadDir("/etc/ssh/sshd_config.d")
	if err != nil {
		return files
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".conf") {
			continue
		}
		files = append(files, filepath.Join("/etc/ssh/sshd_config.d", entry.Name()))
	}
	return files
}
