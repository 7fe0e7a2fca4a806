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

var knownNetfilterMatches = map[string]bool{
	"tcp": true, "udp": true, "state": true, "conntrack": true, "comment": true, "limit": true,
}

// NetfilterCloaking flags an iptables-legacy match module that isn't on
// the small known-good list — legacy iptables leaves traces of every
// loaded match module here, so an unrecognized one can be a custom rule
// built to cloak a backdoor's traffic from casual inspection.
func NetfilterCloaking() scanner.Outcome {
	names, ok, err := evidence.ReadTrimmed("/proc/net/ip_tables_matches")
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read ip_tables_matches: %v", err))
	}
	if !ok {
		return scanner.Clean()
	}

	if _, ok, err := evidence.ReadTrimmed("/proc/net/ip_tables_names"); err != nil {
		return scanner.Err(fmt.Sprintf("failed to read ip_tables_names: %v", err))
	} else if !ok {
		return scanner.Clean()
	}

	findings := unrecognizedNetfilterMatches(names)
	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

func unrecognizedNetfilterMatches(names string) []string {
	var findings []string
	for _, name := range strings.Split(names, "\n") {
		name = strings.TrimSpace(name)
		if name == "" || knownNetfilterMatches[name] {
			continue
		}
		findings = append(findings, fmt.Sprintf("match=%s issues=unrecognized_netfilter_match", name))
	}
	return findings
}
