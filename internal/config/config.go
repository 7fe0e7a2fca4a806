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

// Package config holds the compile-time tunables detectors share. ghostscan
// takes no runtime flags (see spec §6), so anything that would otherwise be
// a flag lives here as a named constant instead.
package config

import "time"

const (
	// ContainerInventoryLimit bounds the number of directory entries the
	// container state BFS visits per root before truncating.
	ContainerInventoryLimit = 1024

	// JournalGapThresholdSecs is the minimum silence, in seconds, between
	// two adjacent journal timestamps for journal_gaps to flag a gap.
	JournalGapThresholdSecs = 3600

	// PrintkConsoleLevelThreshold is the minimum console loglevel (from
	// /proc/sys/kernel/printk's first field) considered unsuppressed.
	// Kept at the spec's literal value; flagged in DESIGN.md as tunable
	// because it over-triggers on distributions that ship a lower
	// default.
	PrintkConsoleLevelThreshold = 7

	// AuditBacklogLimitMin is the smallest /proc/net/audit backlog_limit
	// value that isn't flagged as too small to absorb a burst.
	AuditBacklogLimitMin = 32

	// JournalctlTimeout bounds the one external subprocess invocation
	// ghostscan makes. The original scanner had no timeout here; this is
	// a deliberate redesign (spec §9 open question) to keep a hung
	// systemd-journald from hanging the whole run.
	JournalctlTimeout = 15 * time.Second

	// LargeRXRegionBytes is the size threshold for an anonymous
	// executable mapping to be considered suspicious in a non-JIT
	// process.
	LargeRXRegionBytes = 2 * 1024 * 1024

	// SUIDBit is the raw setuid mode bit. library_search_hijack does not
	// use it: it tests os.ModeSetuid, the fs.FileMode encoding that
	// evidence.Stat returns.
	SUIDBit = 0o4000
)

// ContainerStateRoots are the fixed, ordered runtime state roots the
// container inventory collector walks.
var ContainerStateRoots = []string{
	"/run",
	"/var/run",
	"/var/lib/containers/storage/overlay-containers",
	"/var/lib/docker/containers",
}
