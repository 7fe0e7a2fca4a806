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

	"github.com/ree4pwn/ghostscan/internal/config"
	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// KernelMessageSuppression flags dmesg being readable by unprivileged
// users (dmesg_restrict != 1) or the console loglevel silencing kernel
// messages that would otherwise surface an intrusion.
//
// Unlike the rest of this detector's original implementation, a missing
// dmesg_restrict or printk file is treated as Clean rather than Error —
// both files are absent on some hardened or containerized kernels, and
// their absence is not itself evidence of tampering.
func KernelMessageSuppression() scanner.Outcome {
	var findings []string
	var errs []string

	if restrict, ok, err := evidence.ReadTrimmed("/proc/sys/kernel/dmesg_restrict"); err != nil {
		errs = append(errs, fmt.Sprintf("failed to read dmesg_restrict: %v", err))
	} else if ok && restrict != "1" {
		findings = append(findings, "dmesg_restrict!=1")
	}

	if printk, ok, err := evidence.ReadTrimmed("/proc/sys/kernel/printk"); err != nil {
		errs = append(errs, fmt.Sprintf("failed to read printk levels: %v", err))
	} else if ok && printkConsoleLevelSilenced(printk) {
		findings = append(findings, "printk_console_level_silenced=true")
	}

	return scanner.Resolve(findings, errs)
}

// printkConsoleLevelSilenced reports whether the console loglevel (the
// first whitespace-separated field of /proc/sys/kernel/printk) sits below
// config.PrintkConsoleLevelThreshold (7), the level at which the console
// prints every message up to and including info priority.
func printkConsoleLevelSilenced(printk string) bool {
	levels := strings.Fields(printk)
	if len(levels) == 0 {
		return false
	}
	level, err := strconv.Atoi(levels[0])
	if err != nil {
		return false
	}
	return level < config.PrintkConsoleLevelThreshold
}
