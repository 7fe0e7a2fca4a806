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

package containerinv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindStateFilesTruncatesAtLimit(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 10; i++ {
		dir := filepath.Join(root, "c"+string(rune('a'+i)))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte(`{"id":"x"}`), 0o644))
	}

	var files []string
	var errs []string
	findStateFiles(root, 3, &files, &errs)

	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "truncated at 3 entries")
}

func TestFindStateFilesSkipsDotDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".hidden"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden", "state.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "visible"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "visible", "state.json"), []byte(`{}`), 0o644))

	var files []string
	var errs []string
	findStateFiles(root, 100, &files, &errs)

	require.Len(t, files, 1)
	assert.Contains(t, files[0], "visible")
}

func TestParseStateToleratesMissingFields(t *testing.T) {
	content := []byte(`{"mounts":[{"destination":"/"}]}`)
	state := parseState("/some/path/state.json", content)

	assert.Equal(t, "/some/path/state.json", state.ID)
	assert.Nil(t, state.PID)
	require.Len(t, state.Mounts, 1)
	assert.Equal(t, "/", state.Mounts[0].Destination)
	assert.Empty(t, state.Mounts[0].Source)
}

func TestParseStateFullDocument(t *testing.T) {
	content := []byte(`{"id":"abc123","pid":4242,"mounts":[{"destination":"/","source":"/var/lib/docker/overlay2/xyz/merged","options":["rw","rbind"]}]}`)
	state := parseState("unused.json", content)

	assert.Equal(t, "abc123", state.ID)
	require.NotNil(t, state.PID)
	assert.EqualValues(t, 4242, *state.PID)
	require.Len(t, state.Mounts, 1)
	assert.Equal(t, []string{"rw", "rbind"}, state.Mounts[0].Options)
}

func TestCollectSortsAndDedupesAcrossRoots(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "nested")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte(`{"id":"only"}`), 0o644))

	var files []string
	var errs []string
	findStateFiles(root, 1024, &files, &errs)
	findStateFiles(root, 1024, &files, &errs) // simulate a second root yielding the same file

	files = dedupeSorted(files)
	assert.Len(t, files, 1)
}

func dedupeSorted(files []string) []string {
	sortedCopy := append([]string(nil), files...)
	sortStrings(sortedCopy)
	return dedupe(sortedCopy)
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
