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

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/procutil"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// CorePatternPipeline flags a core_pattern configured to pipe crash dumps
// into a helper that is missing, world-writable, not root-owned, or staged
// under a temporary path — all ways an attacker can turn any crash into
// code execution as root.
func CorePatternPipeline() scanner.Outcome {
	raw, err := readFileRequired("/proc/sys/kernel/core_pattern")
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read /proc/sys/kernel/core_pattern: %v", err))
	}

	pattern := strings.TrimSpace(raw)
	if !strings.HasPrefix(pattern, "|") {
		return scanner.Clean()
	}

	var errs []string
	pipeLimit, ok, err := evidence.ReadTrimmed("/proc/sys/kernel/core_pipe_limit")
	if err != nil {
		errs = append(errs, fmt.Sprintf("core_pipe_limit: %v", err))
	} else if !ok {
		errs = append(errs, "core_pipe_limit: not found")
	}

	var findings []string
	if f := analyzeCorePattern(pattern, pipeLimit, &errs); f != "" {
		findings = append(findings, f)
	}

	return scanner.Resolve(findings, errs)
}

func analyzeCorePattern(pattern, pipeLimit string, errs *[]string) string {
	pipeline := strings.TrimSpace(strings.TrimPrefix(pattern, "|"))
	fields := strings.Fields(pipeline)
	var target string
	if len(fields) > 0 {
		target = fields[0]
	}

	var issues []string
	if target == "" {
		issues = append(issues, "missing_target")
	} else {
		if !strings.HasPrefix(target, "/") {
			issues = append(issues, "non_absolute")
		}
		if procutil.IsTemporary(target) || procutil.IsDeleted(target) {
			issues = append(issues, "suspicious_location")
		}
		issues = append(issues, evaluateTarget(target, errs)...)
	}

	if pipeLimit != "" {
		if value, err := strconv.ParseInt(pipeLimit, 10, 64); err == nil {
			if value == 0 {
				issues = append(issues, "unbounded_pipe_limit")
			} else if value < 0 {
				issues = append(issues, "negative_pipe_limit")
			}
		} else {
			*errs = append(*errs, "failed to parse core_pipe_limit="+pipeLimit)
		}
	}

	if len(issues) == 0 {
		return ""
	}
	return fmt.Sprintf("core_pattern pipeline=%s issues=%s", pipeline, strings.Join(issues, "|"))
}

func evaluateTarget(target string, errs *[]string) []string {
	info, ok, err := evidence.Stat(target)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("stat %s: %v", target, err))
		return nil
	}
	if !ok {
		return []string{"target_missing"}
	}

	var issues []string
	if info.UID != 0 {
		issues = append(issues, "non_root_owner")
	}
	if info.Mode.Perm()&0o022 != 0 {
		issues = append(issues, "group_or_world_writable")
	}
	return issues
}
