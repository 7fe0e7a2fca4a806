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

func TestResolveModuleBareNameFoundInAllowedDirIsClean(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pam_unix.so"), []byte{}, 0o644))

	_, flagged := resolveModule("pam_unix.so", []string{dir})
	assert.False(t, flagged)
}

func TestResolveModuleBareNameNotFoundAnywhereIsNotFlagged(t *testing.T) {
	dir := t.TempDir()
	_, flagged := resolveModule("pam_ghost.so", []string{dir})
	assert.False(t, flagged)
}

func TestResolveModuleAbsolutePathOutsideAllowedIsFlagged(t *testing.T) {
	outside := t.TempDir()
	modPath := filepath.Join(outside, "pam_backdoor.so")
	require.NoError(t, os.WriteFile(modPath, []byte{}, 0o644))

	allowed := t.TempDir()
	path, flagged := resolveModule(modPath, []string{allowed})
	assert.True(t, flagged)
	assert.Equal(t, modPath, path)
}

func TestResolveModuleAbsolutePathInsideAllowedIsClean(t *testing.T) {
	allowed := t.TempDir()
	modPath := filepath.Join(allowed, "pam_unix.so")
	require.NoError(t, os.WriteFile(modPath, []byte{}, 0o644))

	_, flagged := resolveModule(modPath, []string{allowed})
	assert.False(t, flagged)
}

func TestCollectNsswitchModuleNamesParsesServiceLines(t *testing.T) {
	content := "passwd: files systemd\n# comment\nhosts: files dns [NOTFOUND=return] myhostresolver\n"
	modules := parseNsswitchContent(content)
	assert.Contains(t, modules, "files")
	assert.Contains(t, modules, "dns")
	assert.Contains(t, modules, "myhostresolver")
	assert.Contains(t, modules, "systemd")
	assert.NotContains(t, modules, "[NOTFOUND=return]")
}
