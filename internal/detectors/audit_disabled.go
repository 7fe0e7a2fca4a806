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
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// AuditDisabled flags auditd being disabled outright, dropping events, or
// configured with a backlog too small to absorb a burst.
func AuditDisabled() scanner.Outcome {
	enabled, ok, err := evidence.ReadTrimmed("/proc/sys/kernel/audit_enabled")
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read audit_enabled: %v", err))
	}
	if !ok {
		return scanner.Clean()
	}

	var findings []string
	if enabled == "0" {
		findings = append(findings, "enabled=0")
	}

	netAuditContent, _, _ := evidence.ReadTrimmed("/proc/net/audit")
	findings = append(findings, analyzeNetAudit(netAuditContent)...)

	return scanner.Resolve(findings, nil)
}

// analyzeNetAudit extracts lost_events/backlog_limit_small findings from
// /proc/net/audit's space-separated key=value token stream.
func analyzeNetAudit(content string) []string {
	var findings []string
	var backlogLimit string
	for _, line := range strings.Split(content, "\n") {
		for _, token := range strings.Fields(line) {
			if rest, found := strings.CutPrefix(token, "lost="); found {
				if rest != "0" {
					findings = append(findings, "lost_events="+rest)
				}
			}
			if rest, found := strings.CutPrefix(token, "backlog_limit="); found {
				backlogLimit = rest
			}
		}
	}

	if backlogLimit != "" {
		if limit, err := strconv.ParseUint(backlogLimit, 10, 64); err == nil && limit < config.AuditBacklogLimitMin {
			findings = append(findings, fmt.Sprintf("backlog_limit_small=%d", limit))
		}
	}
	return findings
}
