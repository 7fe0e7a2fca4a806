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
	"os"
	"strings"

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// HiddenLkm cross-references /proc/modules against /sys/module/* —
// a loaded kernel module that unlinks itself from one listing but not the
// other is a classic LKM-rootkit self-hiding technique.
func HiddenLkm() scanner.Outcome {
	procNames, err := procModuleNames()
	if err != nil {
		if evidence.IsNotExist(err) {
			return scanner.Clean()
		}
		return scanner.Err(fmt.Sprintf("failed to read /proc/modules: %v", err))
	}

	sysNames, err := sysModuleNames()
	if err != nil {
		if evidence.IsNotExist(err) {
			return scanner.Clean()
		}
		return scanner.Err(fmt.Sprintf("failed to read /sys/module: %v", err))
	}

	var findings []string
	for name := range procNames {
		if !sysNames[name] {
			findings = append(findings, fmt.Sprintf("module=%s issues=proc_only", name))
		}
	}
	for name := range sysNames {
		if !procNames[name] {
			findings = append(findings, fmt.Sprintf("module=%s issues=sysfs_only", name))
		}
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

func procModuleNames() (map[string]bool, error) {
	content, ok, err := evidence.ReadTrimmed("/proc/modules")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, os.ErrNotExist
	}
	names := make(map[string]bool)
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			names[fields[0]] = true
		}
	}
	return names, nil
}

func sysModuleNames() (map[string]bool, error) {
	entries, err := os.ReadDir("/sys/module")
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() {
			names[e.Name()] = true
		}
	}
	return names, nil
}
