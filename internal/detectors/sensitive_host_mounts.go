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
	"slices"

	"github.com/ree4pwn/ghostscan/internal/config"
	"github.com/ree4pwn/ghostscan/internal/containerinv"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

var sensitiveHostMountSources = []string{
	"/", "/etc", "/var/run/docker.sock", "/proc", "/sys", "/dev",
}

// SensitiveHostMounts flags a container whose mount table bind-mounts one
// of a small set of sensitive host paths without the `ro` option — a
// writable bind of the host's docker socket, /etc, or /proc is an easy
// path out of the container back onto the host.
func SensitiveHostMounts() scanner.Outcome {
	inv := containerinv.Collect(config.ContainerInventoryLimit)

	var findings []string
	for _, state := range inv.States {
		for _, mount := range state.Mounts {
			if !isWritableSensitiveMount(mount) {
				continue
			}
			findings = append(findings, fmt.Sprintf(
				"container_id=%s source=%s destination=%s issues=sensitive_host_path_rw",
				state.ID, mount.Source, mount.Destination,
			))
		}
	}

	return scanner.Resolve(findings, inv.Errors)
}

// isWritableSensitiveMount reports whether mount binds a sensitive host
// path without the read-only option.
func isWritableSensitiveMount(mount containerinv.Mount) bool {
	if !slices.Contains(sensitiveHostMountSources, mount.Source) {
		return false
	}
	return !slices.Contains(mount.Options, "ro")
}
