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

// CronGhost flags a cron job (from /etc/crontab, /etc/cron.d or the
// per-user crontab spool; anacron and at jobs are not read) whose command
// references a deleted file or a path under a temporary directory — a job definition
// left behind after the tool it invokes has been removed, or one that
// runs straight out of /tmp.
func CronGhost() scanner.Outcome {
	var findings []string
	var errs []string

	for _, source := range cronJobSources() {
		content, ok, err := evidence.ReadTrimmed(source)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", source, err))
			continue
		}
		if !ok {
			continue
		}

		for _, command := range extractCronCommands(content) {
			bin := firstPathToken(command)
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
			findings = append(findings, fmt.Sprintf("source=%s command=%s issues=%s", source, command, joinIssues(issues)))
		}
	}

	return scanner.Resolve(findings, errs)
}

func cronJobSources() []string {
	sources := []string{"/etc/crontab"}
	for _, dir := range []string{"/etc/cron.d", "/var/spool/cron/crontabs"} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			sources = append(sources, filepath.Join(dir, entry.Name()))
		}
	}
	return sources
}

// extractCronCommands pulls the command portion out of each non-comment
// crontab line: five schedule fields, an optional user field on
// system-style crontabs, then the command to run.
func extractCronCommands(content string) []string {
	var commands []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		// Fields: min hour dom mon dow [user] command...
		// A command always starts with a path or shell token; a bare
		// word in the 6th field is instead a system-crontab user column.
		cmdStart := 5
		if !strings.HasPrefix(fields[5], "/") && len(fields) > 6 {
			cmdStart = 6
		}
		if cmdStart >= len(fields) {
			continue
		}
		commands = append(commands, strings.Join(fields[cmdStart:], " "))
	}
	return commands
}

func firstPathToken(command string) string {
	for _, token := range strings.Fields(command) {
		if strings.HasPrefix(token, "/") {
			return token
		}
	}
	return ""
}
