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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectCgroupPidsWalksNestedHierarchy(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "user.slice", "user-1000.slice")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cgroup.procs"), []byte("1\n2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "cgroup.procs"), []byte("3\n4\n"), 0o644))

	pids, err := collectCgroupPids(root)
	require.NoError(t, err)
	assert.True(t, pids[1] && pids[2] && pids[3] && pids[4])
}

func TestCollectCgroupPidsMissingRootErrors(t *testing.T) {
	_, err := collectCgroupPids(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestCollectCgroupPidsIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "cgroup.controllers"), []byte("cpu"), 0o644))

	pids, err := collectCgroupPids(root)
	require.NoError(t, err)
	assert.Empty(t, pids)
}
