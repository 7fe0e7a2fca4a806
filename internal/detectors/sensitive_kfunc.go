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

	"github.com/ree4pwn/ghostscan/internal/scanner"
)

var sensitiveKfuncs = map[string]bool{
	"commit_creds":        true,
	"override_creds":      true,
	"security_bprm_check": true,
}

// SensitiveKfunc flags kernel functions on the credential-override hot
// path currently being traced — the same class of function a BPF-based
// privilege-escalation implant hooks to forge root credentials.
func SensitiveKfunc() scanner.Outcome {
	content, ok, err := readFirstAvailable(
		"/sys/kernel/tracing/enabled_functions",
		"/sys/kernel/debug/tracing/enabled_functions",
	)
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read enabled_functions: %v", err))
	}
	if !ok {
		return scanner.Clean()
	}

	findings := traceableSensitiveKfuncs(content)
	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

func traceableSensitiveKfuncs(content string) []string {
	var findings []string
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := strings.SplitN(fields[0], "+", 2)[0]
		if sensitiveKfuncs[name] {
			findings = append(findings, fmt.Sprintf("kfunc=%s issues=sensitive_kfunc_traced", name))
		}
	}
	return findings
}
