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
	"strings"

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// FtraceRedirection flags any symbol configured in the kernel's ftrace
// filter — a clean host ships this file empty, so any entry at rest (not
// installed for a one-off trace) is a redirection hook worth surfacing.
func FtraceRedirection() scanner.Outcome {
	content, ok, err := readFirstAvailable(
		"/sys/kernel/tracing/set_ftrace_filter",
		"/sys/kernel/debug/tracing/set_ftrace_filter",
	)
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read set_ftrace_filter: %v", err))
	}
	if !ok || strings.TrimSpace(content) == "" {
		return scanner.Clean()
	}

	findings := ftraceFilterFindings(content)
	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

func ftraceFilterFindings(content string) []string {
	var findings []string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		symbol := strings.Fields(line)
		if len(symbol) == 0 {
			continue
		}
		findings = append(findings, fmt.Sprintf("symbol=%s issues=ftrace_filter_active", symbol[0]))
	}
	return findings
}

// readFirstAvailable returns the content of the first path that exists
// among paths, or ok=false if none of them do.
func readFirstAvailable(paths ...string) (content string, ok bool, err error) {
	for _, path := range paths {
		content, ok, err = evidence.ReadTrimmed(path)
		if err != nil {
			return "", false, err
		}
		if ok {
			return content, true, nil
		}
	}
	return "", false, nil
}
