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

// BpfLsm reports whether the BPF LSM is active. Its presence isn't
// inherently malicious — it's a legitimate hardening mechanism — but it is
// tradecraft-relevant (an attacker-loaded BPF LSM program can silently
// veto security-relevant operations), so this detector always emits an
// informational line rather than staying silent.
func BpfLsm() scanner.Outcome {
	content, ok, err := evidence.ReadTrimmed("/sys/kernel/security/lsm")
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read lsm list: %v", err))
	}
	if !ok {
		return scanner.Clean()
	}

	if lsmListContainsBpf(content) {
		return scanner.Findings([]string{"lsm=bpf issues=bpf_lsm_active"})
	}
	return scanner.Clean()
}

func lsmListContainsBpf(content string) bool {
	for _, name := range strings.Split(content, ",") {
		if strings.TrimSpace(name) == "bpf" {
			return true
		}
	}
	return false
}
