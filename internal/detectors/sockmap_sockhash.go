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

	"github.com/ree4pwn/ghostscan/internal/config"
	"github.com/ree4pwn/ghostscan/internal/containerinv"
	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// knownBpffsPrefixes are pin locations ghostscan recognizes as
// legitimately owned (container filesystems are checked separately via
// ContainerRoots).
var knownBpffsPrefixes = []string{"/sys/fs/bpf/tc", "/sys/fs/bpf/xdp", "/sys/fs/bpf/cgroup"}

// SockmapSockhash flags sockmap/sockhash pins outside both the known
// system prefixes and any running container's root — verdict maps route
// socket traffic at the kernel level, so an unrecognized owner is worth
// surfacing even though the map alone can't prove intent.
func SockmapSockhash() scanner.Outcome {
	paths, err := walkBpffs(bpffsRoot)
	if err != nil {
		if evidence.IsNotExist(err) {
			return scanner.Clean()
		}
		return scanner.Err(fmt.Sprintf("failed to walk %s: %v", bpffsRoot, err))
	}

	containerRoots := containerinv.ContainerRoots(config.ContainerInventoryLimit)

	var findings []string
	for _, path := range paths {
		lower := strings.ToLower(path)
		if !strings.Contains(lower, "sockmap") && !strings.Contains(lower, "sockhash") {
			continue
		}
		if hasKnownPrefix(path, knownBpffsPrefixes) || isUnderAnyRoot(path, containerRoots) {
			continue
		}
		findings = append(findings, fmt.Sprintf("path=%s issues=unrecognized_sockmap_owner", path))
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

func hasKnownPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
