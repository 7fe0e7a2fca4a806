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
	"github.com/ree4pwn/ghostscan/internal/procutil"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// ModprobeHotplug flags tampering with the kernel's modprobe hotplug
// helper path — a process the kernel itself execs as root whenever an
// unrecognized module is requested.
func ModprobeHotplug() scanner.Outcome {
	var findings []string
	var errs []string

	analyzeHotplugPath("/proc/sys/kernel/modprobe", "/sbin/modprobe", "modprobe", &findings, &errs)

	return scanner.Resolve(findings, errs)
}

func analyzeHotplugPath(procPath, defaultPath, label string, findings, errs *[]string) {
	raw, ok, err := evidence.ReadTrimmed(procPath)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: failed to read %s: %v", label, procPath, err))
		return
	}
	if !ok {
		*errs = append(*errs, fmt.Sprintf("%s: failed to read %s: not found", label, procPath))
		return
	}

	if raw == "" {
		*findings = append(*findings, fmt.Sprintf("%s path=<empty> issues=empty_value", label))
		return
	}

	var issues []string
	if raw != defaultPath {
		issues = append(issues, "non_default")
	}
	if !strings.HasPrefix(raw, "/") {
		issues = append(issues, "non_absolute")
	}
	if procutil.IsTemporary(raw) || procutil.IsDeleted(raw) {
		issues = append(issues, "suspicious_location")
	}

	targetIssues, err := investigateHotplugTarget(raw)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: %v", label, err))
	} else {
		issues = append(issues, targetIssues...)
	}

	if len(issues) > 0 {
		*findings = append(*findings, fmt.Sprintf("%s path=%s issues=%s", label, raw, strings.Join(issues, "|")))
	}
}

func investigateHotplugTarget(path string) ([]string, error) {
	info, ok, err := evidence.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !ok {
		return []string{"missing_target"}, nil
	}

	var issues []string
	if info.UID != 0 {
		issues = append(issues, "non_root_owner")
	}
	if info.Mode.Perm()&0o022 != 0 {
		issues = append(issues, "group_or_world_writable")
	}

	if target, ok, err := evidence.ReadSymlink(path); err == nil && ok {
		if procutil.IsTemporary(target) {
			issues = append(issues, "symlink_to_temporary")
		}
	}

	return issues, nil
}
