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
	"path/filepath"
	"strings"

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// suidScanRoots are the fixed directories walked for a SUID-bit binary
// when a writable library search path is found.
var suidScanRoots = []string{"/usr/bin", "/usr/sbin", "/bin", "/sbin"}

// LibrarySearchHijack flags a world-writable directory on the dynamic
// linker's search path while a SUID binary sits directly in one of
// suidScanRoots (subdirectories are not searched) — an attacker who can write into that directory can plant a shared object
// that a privileged binary will load on its next exec.
func LibrarySearchHijack() scanner.Outcome {
	dirs, err := ldSoConfSearchDirs("/etc/ld.so.conf.d")
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read ld.so.conf.d: %v", err))
	}
	if len(dirs) == 0 {
		return scanner.Clean()
	}

	var writable []string
	for _, dir := range dirs {
		info, ok, err := evidence.Stat(dir)
		if err != nil || !ok {
			continue
		}
		if info.Mode.Perm()&0o002 != 0 {
			writable = append(writable, dir)
		}
	}
	if len(writable) == 0 {
		return scanner.Clean()
	}

	suidBinaries := findSuidBinaries(suidScanRoots)
	if len(suidBinaries) == 0 {
		return scanner.Clean()
	}

	var findings []string
	for _, dir := range writable {
		for _, bin := range suidBinaries {
			findings = append(findings, fmt.Sprintf("dir=%s issues=world_writable_search_path suid_binary=%s", dir, bin))
		}
	}
	return scanner.Findings(findings)
}

func ldSoConfSearchDirs(confDir string) ([]string, error) {
	entries, err := os.ReadDir(confDir)
	if err != nil {
		if evidence.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, ok, err := evidence.ReadTrimmed(filepath.Join(confDir, entry.Name()))
		if err != nil || !ok {
			continue
		}
		for _, line := range strings.Split(content, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "include") {
				continue
			}
			dirs = append(dirs, line)
		}
	}
	return dirs, nil
}

func findSuidBinaries(roots []string) []string {
	var found []string
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(root, entry.Name())
			info, ok, err := evidence.Stat(path)
			if err != nil || !ok {
				continue
			}
			if info.Mode&os.ModeSetuid != 0 {
				found = append(found, path)
			}
		}
	}
	return found
}
