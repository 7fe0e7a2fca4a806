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

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// bpffsRoot is the conventional bpffs mount point.
const bpffsRoot = "/sys/fs/bpf"

// OwnerlessBpfObjects flags pinned BPF objects sitting in a world-writable
// bpffs directory — anyone on the host could replace or add pins there,
// defeating whatever access control the pin was meant to provide.
func OwnerlessBpfObjects() scanner.Outcome {
	entries, err := walkBpffs(bpffsRoot)
	if err != nil {
		if evidence.IsNotExist(err) {
			return scanner.Clean()
		}
		return scanner.Err(fmt.Sprintf("failed to walk %s: %v", bpffsRoot, err))
	}

	seen := make(map[string]bool)
	var findings []string
	for _, path := range entries {
		dir := filepath.Dir(path)
		if seen[dir] {
			continue
		}
		seen[dir] = true

		info, ok, err := evidence.Stat(dir)
		if err != nil || !ok {
			continue
		}
		if info.Mode.Perm()&0o002 != 0 {
			findings = append(findings, fmt.Sprintf("path=%s issues=world_writable_bpffs_dir", dir))
		}
	}

	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

// walkBpffs returns every pinned object path under root. Not all kernels
// mount bpffs, so a missing root is reported via the usual fs.ErrNotExist.
func walkBpffs(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}

	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if evidence.IsPermissionDenied(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}
