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

func TestInvestigateHotplugTargetMissingTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist")
	issues, err := investigateHotplugTarget(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"missing_target"}, issues)
}

func TestInvestigateHotplugTargetWorldWritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modprobe")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o777))
	require.NoError(t, os.Chmod(path, 0o777))

	issues, err := investigateHotplugTarget(path)
	require.NoError(t, err)
	assert.Contains(t, issues, "group_or_world_writable")
}

func TestInvestigateHotplugTargetCleanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modprobe")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

	issues, err := investigateHotplugTarget(path)
	require.NoError(t, err)
	assert.NotContains(t, issues, "group_or_world_writable")
}

func TestAnalyzeHotplugPathFlagsNonDefaultPath(t *testing.T) {
	var findings, errs []string
	path := filepath.Join(t.TempDir(), "custom-modprobe")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

	analyzeHotplugPath(mustWriteHotplugSysctl(t, path), "/sbin/modprobe", "modprobe", &findings, &errs)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "non_default")
}

func mustWriteHotplugSysctl(t *testing.T, target string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modprobe-sysctl")
	require.NoError(t, os.WriteFile(path, []byte(target+"\n"), 0o644))
	return path
}
