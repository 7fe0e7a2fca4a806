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

	"github.com/ree4pwn/ghostscan/internal/config"
	"github.com/ree4pwn/ghostscan/internal/containerinv"
	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// HostNetNs flags containers sharing the host's network namespace — a
// container that can sniff or bind on every host interface.
func HostNetNs() scanner.Outcome {
	return sharedHostNamespace("net", "host_net_ns")
}

// HostPidNs flags containers sharing the host's PID namespace — a
// container that can see and signal every host process.
func HostPidNs() scanner.Outcome {
	return sharedHostNamespace("pid", "host_pid_ns")
}

func sharedHostNamespace(ns, tag string) scanner.Outcome {
	hostNS, ok, err := evidence.ReadSymlink(fmt.Sprintf("/proc/1/ns/%s", ns))
	if err != nil {
		if evidence.IsPermissionDenied(err) {
			return scanner.Clean()
		}
		return scanner.Err(fmt.Sprintf("failed to read host %s ns: %v", ns, err))
	}
	if !ok {
		return scanner.Clean()
	}

	inv := containerinv.Collect(config.ContainerInventoryLimit)

	var findings []string
	for _, state := range inv.States {
		if state.PID == nil {
			continue
		}
		link, ok, err := evidence.ReadSymlink(fmt.Sprintf("/proc/%d/ns/%s", *state.PID, ns))
		if err != nil || !ok {
			continue
		}
		if link == hostNS {
			findings = append(findings, fmt.Sprintf("container_id=%s, %s=true", state.ID, tag))
		}
	}

	return scanner.Resolve(findings, inv.Errors)
}
