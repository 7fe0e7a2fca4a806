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

func TestLdSoConfSearchDirsParsesEntries(t *testing.T) {
	confDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "local.conf"), []byte("# comment\ninclude /etc/ld.so.conf.d/*.conf\n/usr/local/lib\n"), 0o644))

	dirs, err := ldSoConfSearchDirs(confDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/local/lib"}, dirs)
}

func TestLdSoConfSearchDirsMissingDirIsClean(t *testing.T) {
	dirs, err := ldSoConfSearchDirs(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestFindSuidBinariesDetectsSetuidBit(t *testing.T) {
	root := t.TempDir()
	suidPath := filepath.Join(root, "su")
	require.NoError(t, os.WriteFile(suidPath, []byte{}, 0o755))
	require.NoError(t, os.Chmod(suidPath, 0o4755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ls"), []byte{}, 0o755))

	found := findSuidBinaries([]string{root})
	assert.Equal(t, []string{suidPath}, found)
}

func TestFindSuidBinariesMissingRootSkipped(t *testing.T) {
	found := findSuidBinaries([]string{filepath.Join(t.TempDir(), "missing")})
	assert.Empty(t, found)
}
