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

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/stretchr/testify/assert"
)

func TestDiffMountTablesFindsBothDirections(t *testing.T) {
	self := evidence.MountTable{1: "/", 2: "/proc"}
	pid1 := evidence.MountTable{1: "/", 3: "/sys"}

	findings := diffMountTables(self, pid1)
	assert.Contains(t, findings, "mount_point=/sys issues=hidden_from_self")
	assert.Contains(t, findings, "mount_point=/proc issues=hidden_from_pid1")
}

func TestDiffMountTablesIdenticalIsEmpty(t *testing.T) {
	table := evidence.MountTable{1: "/", 2: "/proc"}
	assert.Empty(t, diffMountTables(table, table))
}
