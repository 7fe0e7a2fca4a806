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

// Package detectors holds the full ghostscan check catalog and the fixed
// registry order the report is rendered in.
package detectors

import (
	"os"
	"strings"
)

// readFileRequired reads a file whose absence the caller wants to treat as
// a hard failure rather than Clean — core_pattern_pipeline.go follows the
// original scanner's stricter behavior here instead of the universal
// absent-evidence policy, because /proc/sys/kernel/core_pattern is
// guaranteed present on any Linux kernel ghostscan targets.
func readFileRequired(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// joinIssues renders a detector's per-record issue tags as the
// pipe-separated `issues=` value shared across the detector catalog.
func joinIssues(issues []string) string {
	return strings.Join(issues, "|")
}
