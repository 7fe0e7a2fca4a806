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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCronCommandsSystemStyleWithUserColumn(t *testing.T) {
	commands := extractCronCommands("* * * * * root /usr/local/bin/backup.sh\n")
	assert.Equal(t, []string{"/usr/local/bin/backup.sh"}, commands)
}

func TestExtractCronCommandsUserCrontabWithoutUserColumn(t *testing.T) {
	commands := extractCronCommands("*/5 * * * * /tmp/.hidden/run.sh --daemon\n")
	assert.Equal(t, []string{"/tmp/.hidden/run.sh --daemon"}, commands)
}

func TestExtractCronCommandsSkipsCommentsAndBlankLines(t *testing.T) {
	commands := extractCronCommands("# a comment\n\nMAILTO=root\n")
	assert.Empty(t, commands)
}

func TestFirstPathTokenFindsAbsolutePath(t *testing.T) {
	assert.Equal(t, "/usr/bin/curl", firstPathToken("nice -n 19 /usr/bin/curl http://example"))
}

func TestFirstPathTokenNoneFound(t *testing.T) {
	assert.Equal(t, "", firstPathToken("echo hello"))
}
