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

package procutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExeIssuesDeletedAndTemporary(t *testing.T) {
	assert.Equal(t, []string{"exe_deleted"}, ExeIssues("/usr/bin/foo (deleted)"))
	assert.Equal(t, []string{"exe_temporary"}, ExeIssues("/tmp/payload"))
	assert.Empty(t, ExeIssues("/usr/bin/foo"))
}

func TestIsTemporary(t *testing.T) {
	assert.True(t, IsTemporary("/tmp/x"))
	assert.True(t, IsTemporary("/var/tmp/x"))
	assert.True(t, IsTemporary("/dev/shm/x"))
	assert.False(t, IsTemporary("/usr/bin/x"))
}
