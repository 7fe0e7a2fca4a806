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

	"github.com/moby/sys/mountinfo"

	"github.com/ree4pwn/ghostscan/internal/config"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// OverlayLowerdir flags an overlay mount whose lowerdir option points
// somewhere outside the known container storage roots (and their
// conventional diff/lower subdirectories) — a legitimate container image
// layer always lives under one of those roots, so a lowerdir anywhere
// else means the merged view is built, at least in part, from an
// attacker-supplied layer.
func OverlayLowerdir() scanner.Outcome {
	mounts, err := mountinfo.GetMounts(func(info *mountinfo.Info) (bool, bool) {
		return info.FSType != "overlay", false
	})
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read mountinfo: %v", err))
	}
	if len(mounts) == 0 {
		return scanner.Clean()
	}

	var findings []string
	for _, m := range mounts {
		for _, dir := range outsideStorageLowerdirs(m.VFSOptions) {
			findings = append(findings, fmt.Sprintf(
				"mount_point=%s lowerdir=%s issues=lowerdir_outside_storage_root", m.Mountpoint, dir,
			))
		}
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

// outsideStorageLowerdirs parses an overlay mount's vfs options and
// returns every colon-separated lowerdir entry that doesn't sit under a
// known container storage root.
func outsideStorageLowerdirs(vfsOptions string) []string {
	lowerdirOpt := overlayOptionValue(vfsOptions, "lowerdir")
	if lowerdirOpt == "" {
		return nil
	}

	// Image layers live in the storage drivers' own trees, next to the
	// runtime state roots.
	layerRoots := []string{"/var/lib/docker/overlay2", "/var/lib/containers/storage/overlay"}

	var outside []string
	for _, dir := range strings.Split(lowerdirOpt, ":") {
		if dir == "" || isUnderAnyRoot(dir, config.ContainerStateRoots) || isUnderAnyRoot(dir, layerRoots) {
			continue
		}
		outside = append(outside, dir)
	}
	return outside
}
