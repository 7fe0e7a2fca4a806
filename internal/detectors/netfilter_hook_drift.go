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

var knownNetfilterFamilies = map[string]bool{"2": true, "10": true}

// NetfilterHookDrift flags a well-known address family (IPv4, IPv6) with
// no registered netfilter logger — a common side effect of a rootkit
// unregistering hooks to hide its own traffic from nflog-based auditing.
func NetfilterHookDrift() scanner.Outcome {
	content, ok, err := evidence.ReadTrimmed("/proc/net/netfilter/nf_log")
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read nf_log: %v", err))
	}
	if !ok {
		return scanner.Clean()
	}

	findings := analyzeNfLog(content)
	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

func analyzeNfLog(content string) []string {
	var findings []string
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		family, logger := fields[0], fields[1]
		if knownNetfilterFamilies[family] && logger == "NONE" {
			findings = append(findings, fmt.Sprintf("family=%s issues=no_logger_registered", family))
		}
	}
	return findings
}
