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

	"github.com/ree4pwn/ghostscan/internal/scanner"
	"github.com/stretchr/testify/assert"
)

func TestExtractSchedDebugPidsParsesEntries(t *testing.T) {
	content := "runnable tasks:\n" +
		" task   PID         tree-key  switches  prio\n" +
		"-------------------------------------------------------\n" +
		" sshd (1234, 0.000000, 1, 100)\n" +
		" bash (5678, 0.000000, 1, 100)\n"
	assert.ElementsMatch(t, []int{1234, 5678}, extractSchedDebugPids(content))
}

func TestExtractSchedDebugPidsEmptyOnNoMatches(t *testing.T) {
	assert.Empty(t, extractSchedDebugPids("nothing to see here"))
}

func TestCrossReferencePidSetsFindsBothDirections(t *testing.T) {
	outcome := crossReferencePidSets([]int{1, 2, 3}, []int{2, 3, 4}, "proc_only", "other_only")
	assert.Equal(t, scanner.KindFindings, outcome.Kind)
	assert.Contains(t, outcome.Text, "pid=1 issues=proc_only")
	assert.Contains(t, outcome.Text, "pid=4 issues=other_only")
}

func TestCrossReferencePidSetsCleanWhenIdentical(t *testing.T) {
	outcome := crossReferencePidSets([]int{1, 2}, []int{2, 1}, "a", "b")
	assert.Equal(t, scanner.KindClean, outcome.Kind)
}
