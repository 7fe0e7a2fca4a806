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

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// moduleCountSlack absorbs load/unload timing races between the two
// listings this detector compares.
const moduleCountSlack = 2

// ModuleListLinkageTamper compares the module count from /proc/modules
// against the directory count under /sys/module — a rootkit that unlinks
// itself from one linked list but not the sysfs kobject tree (or vice
// versa) shows up as a persistent count mismatch beyond normal timing
// slack.
func ModuleListLinkageTamper() scanner.Outcome {
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

	if !moduleCountMismatch(len(procNames), len(sysNames)) {
		return scanner.Clean()
	}

	return scanner.Findings([]string{
		fmt.Sprintf("proc_modules=%d sys_module=%d issues=count_mismatch", len(procNames), len(sysNames)),
	})
}

func moduleCountMismatch(procCount, sysCount int) bool {
	diff := procCount - sysCount
	if diff < 0 {
		diff = -diff
	}
	return diff > moduleCountSlack
}
