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

// sensitiveKprobeSymbols are kernel symbols whose instrumentation is a
// strong intrusion signal: they sit on the credential and access-control
// hot path most LKM rootkits hook.
var sensitiveKprobeSymbols = map[string]bool{
	"sys_call_table": true,
	"do_exit":        true,
	"commit_creds":   true,
	"security_ops":   true,
}

// UnknownKprobes flags any active kprobe attached to a sensitive symbol.
func UnknownKprobes() scanner.Outcome {
	findings, _, err := scanKprobeList()
	if err != nil {
		if evidence.IsNotExist(err) {
			return scanner.Clean()
		}
		return scanner.Err(fmt.Sprintf("failed to read kprobes list: %v", err))
	}
	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

// scanKprobeList reads /sys/kernel/debug/kprobes/list and returns one
// finding line per probe on a sensitive symbol, plus the raw lines for
// reuse by bpf_kprobe_attachments.
func scanKprobeList() (findings []string, lines []string, err error) {
	content, ok, err := evidence.ReadTrimmed("/sys/kernel/debug/kprobes/list")
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, nil
	}

	lines = strings.Split(content, "\n")
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		symbol := strings.SplitN(fields[1], "+", 2)[0]
		if sensitiveKprobeSymbols[symbol] {
			findings = append(findings, fmt.Sprintf("symbol=%s issues=sensitive_symbol", symbol))
		}
	}
	return findings, lines, nil
}
