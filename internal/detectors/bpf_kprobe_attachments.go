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

// BpfKprobeAttachments flags kprobes on sensitive symbols whose type or
// module column references bpf — a BPF program attached on the
// credential/access-control hot path, the same symbol set unknown_kprobes
// watches for non-BPF attachments.
func BpfKprobeAttachments() scanner.Outcome {
	_, lines, err := scanKprobeList()
	if err != nil {
		if evidence.IsNotExist(err) {
			return scanner.Clean()
		}
		return scanner.Err(fmt.Sprintf("failed to read kprobes list: %v", err))
	}

	var findings []string
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		symbol := strings.SplitN(fields[1], "+", 2)[0]
		if !sensitiveKprobeSymbols[symbol] {
			continue
		}
		if strings.Contains(line, "bpf") {
			findings = append(findings, fmt.Sprintf("symbol=%s issues=bpf_kprobe_on_sensitive_symbol", symbol))
		}
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}
