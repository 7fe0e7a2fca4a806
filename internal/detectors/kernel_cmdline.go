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

// cmdlineDisableTokens are kernel boot parameters that explicitly turn
// off a security feature. Absence of an enabling flag is never flagged
// here, since whether a given kernel build defaults a feature on or off
// can't be determined generically from the cmdline alone.
var cmdlineDisableTokens = map[string]bool{
	"audit=0": true, "lockdown=off": true, "selinux=0": true, "apparmor=0": true,
}

// KernelCmdline flags a boot parameter that explicitly disables auditing,
// lockdown, SELinux, AppArmor, or tampers with the IMA policy — every one
// of these narrows what the rest of the host's integrity checks can see.
func KernelCmdline() scanner.Outcome {
	content, ok, err := evidence.ReadTrimmed("/proc/cmdline")
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc/cmdline: %v", err))
	}
	if !ok {
		return scanner.Clean()
	}

	findings := flaggedCmdlineTokens(content)
	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

// flaggedCmdlineTokens evaluates a /proc/cmdline string and returns one
// finding per boot parameter that disables a security feature.
func flaggedCmdlineTokens(content string) []string {
	var findings []string
	for _, token := range strings.Fields(content) {
		if cmdlineDisableTokens[token] || strings.HasPrefix(token, "ima_policy=") {
			findings = append(findings, fmt.Sprintf("cmdline_token=%s issues=security_feature_disabled", token))
		}
	}
	return findings
}
